package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "pawapay",
		Usage: "Mobile money payments CLI",
		Description: `A command-line tool for initiating deposits and payouts through the
pawaPay aggregator, checking transaction status, and verifying callbacks.

Requests run against the sandbox environment unless --environment production
is set. Credentials come from flags or PAWAPAY_* environment variables.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			depositCommands(),
			payoutCommands(),
			correspondentCommands(),
			paymentPageCommands(),
			callbackCommands(),
			configCommands(),
		},
		// Global flags available to all commands
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-token",
				Usage:   "API bearer token",
				EnvVars: []string{"PAWAPAY_API_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "environment",
				Aliases: []string{"e"},
				Usage:   "Provider environment (sandbox or production)",
				EnvVars: []string{"PAWAPAY_ENVIRONMENT"},
				Value:   "sandbox",
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Override the provider base URL (testing)",
				EnvVars: []string{"PAWAPAY_BASE_URL"},
				Hidden:  true,
			},
			&cli.StringFlag{
				Name:    "callback-secret",
				Usage:   "Shared secret for callback verification",
				EnvVars: []string{"PAWAPAY_CALLBACK_SECRET"},
			},
			&cli.BoolFlag{
				Name:    "sign-requests",
				Usage:   "Attach a Content-Digest header to request bodies",
				EnvVars: []string{"PAWAPAY_SIGNED_REQUESTS"},
			},
			&cli.StringFlag{
				Name:    "signing-key-path",
				Usage:   "Key material registered with the provider, required with --sign-requests",
				EnvVars: []string{"PAWAPAY_SIGNING_KEY_PATH"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Per-call timeout, backoff included",
				EnvVars: []string{"PAWAPAY_TIMEOUT"},
				Value:   30 * time.Second,
			},
			&cli.IntFlag{
				Name:    "max-retries",
				Usage:   "Maximum attempts per call",
				EnvVars: []string{"PAWAPAY_MAX_RETRIES"},
				Value:   4,
			},
			&cli.DurationFlag{
				Name:    "retry-base-delay",
				Usage:   "Backoff starting point between retries",
				EnvVars: []string{"PAWAPAY_RETRY_BASE_DELAY"},
				Value:   500 * time.Millisecond,
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output in JSON format",
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
