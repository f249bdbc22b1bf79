package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kelasa/pawapay/client"
)

func callbackCommands() *cli.Command {
	return &cli.Command{
		Name:  "callback",
		Usage: "Work with inbound status callbacks",
		Subcommands: []*cli.Command{
			callbackVerifyCommand(),
		},
	}
}

func callbackVerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify a callback payload's signature and decode it",
		Description: `Reads the raw callback payload from stdin and checks the signature
against the configured callback secret. Exits non-zero when verification
fails, so it can gate a processing pipeline.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "signature",
				Aliases:  []string{"s"},
				Usage:    "Signature header value from the callback request",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			payload, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read payload from stdin: %w", err)
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			if !cl.VerifyCallback(payload, c.String("signature")) {
				return fmt.Errorf("callback signature verification failed")
			}

			cb, err := client.ParseCallback(payload)
			if err != nil {
				return fmt.Errorf("verified but unparseable: %w", err)
			}

			if c.Bool("json") {
				return printJSON(cb)
			}

			id := cb.DepositID
			kind := "deposit"
			if id == "" {
				id = cb.PayoutID
				kind = "payout"
			}
			fmt.Printf("✓ Verified %s callback\n", kind)
			fmt.Printf("ID:     %s\n", id)
			fmt.Printf("Status: %s\n", cb.Status)
			if cb.FailureReason != "" {
				fmt.Printf("Failure: %s\n", cb.FailureReason)
			}
			return nil
		},
	}
}
