package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kelasa/pawapay/client"
	"github.com/kelasa/pawapay/config"
)

func configCommands() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect environment configuration",
		Subcommands: []*cli.Command{
			configCheckCommand(),
		},
	}
}

func configCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate the PAWAPAY_* environment configuration",
		Description: `Loads configuration from the environment the way a service embedding
the client would, constructs a client from it, and reports every problem
found. Exits non-zero on invalid configuration. Secrets are redacted.`,
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if _, err := client.NewClient(cfg.ClientConfig(), nil, nil, nil); err != nil {
				return fmt.Errorf("configuration loads but client construction failed: %w", err)
			}

			if c.Bool("json") {
				return printJSON(map[string]any{
					"environment":      cfg.Environment,
					"api_token":        redact(cfg.APIToken),
					"callback_secret":  redact(cfg.CallbackSecret),
					"sign_requests":    cfg.SignRequests,
					"signing_key_path": cfg.SigningKeyPath,
					"timeout":          cfg.Timeout.String(),
					"max_attempts":     cfg.MaxAttempts,
					"retry_base_delay": cfg.RetryBaseDelay.String(),
					"log_level":        cfg.LogLevel,
				})
			}

			fmt.Println("✓ Configuration OK")
			fmt.Printf("Environment:      %s\n", cfg.Environment)
			fmt.Printf("API token:        %s\n", redact(cfg.APIToken))
			fmt.Printf("Callback secret:  %s\n", redact(cfg.CallbackSecret))
			fmt.Printf("Sign requests:    %t\n", cfg.SignRequests)
			if cfg.SigningKeyPath != "" {
				fmt.Printf("Signing key path: %s\n", cfg.SigningKeyPath)
			}
			fmt.Printf("Timeout:          %s\n", cfg.Timeout)
			fmt.Printf("Max attempts:     %d\n", cfg.MaxAttempts)
			fmt.Printf("Retry base delay: %s\n", cfg.RetryBaseDelay)
			fmt.Printf("Log level:        %s\n", cfg.LogLevel)
			return nil
		},
	}
}

// redact hides a credential while still showing whether it is set.
func redact(s string) string {
	if s == "" {
		return "(not set)"
	}
	return "****"
}
