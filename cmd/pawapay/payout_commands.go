package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kelasa/pawapay/client"
)

func payoutCommands() *cli.Command {
	return &cli.Command{
		Name:  "payout",
		Usage: "Disburse funds to a recipient",
		Subcommands: []*cli.Command{
			payoutRequestCommand(),
			payoutStatusCommand(),
			payoutResendCallbackCommand(),
		},
	}
}

func payoutRequestCommand() *cli.Command {
	return &cli.Command{
		Name:  "request",
		Usage: "Initiate a payout to a recipient's mobile money account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "amount",
				Aliases:  []string{"a"},
				Usage:    "Amount as a decimal string, e.g. 100.00",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "currency",
				Aliases:  []string{"c"},
				Usage:    "3-letter currency code, e.g. KES",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "country",
				Usage:    "Recipient country code, e.g. KEN",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "phone",
				Aliases:  []string{"p"},
				Usage:    "Recipient phone number (MSISDN)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "correspondent",
				Usage: "Mobile money operator code; predicted from the phone number when omitted",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Statement description shown to the recipient",
			},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			resp, err := cl.RequestPayout(context.Background(), client.PayoutParams{
				Amount:               c.String("amount"),
				Currency:             c.String("currency"),
				Country:              c.String("country"),
				PhoneNumber:          c.String("phone"),
				Correspondent:        c.String("correspondent"),
				StatementDescription: c.String("description"),
			})
			if err != nil {
				return fmt.Errorf("payout request failed: %w", err)
			}

			if c.Bool("json") {
				return printJSON(resp)
			}
			printTransactionDetailed("Payout", resp.Transaction)
			fmt.Printf("Recipient:     %s\n", resp.Recipient.Value)
			return nil
		},
	}
}

func payoutStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Check the current status of a payout",
		ArgsUsage: "PAYOUT_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("payout ID is required")
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			resp, err := cl.CheckPayoutStatus(context.Background(), c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("status check failed: %w", err)
			}

			if c.Bool("json") {
				return printJSON(resp)
			}
			printTransactionDetailed("Payout", resp.Transaction)
			return nil
		},
	}
}

func payoutResendCallbackCommand() *cli.Command {
	return &cli.Command{
		Name:      "resend-callback",
		Usage:     "Ask the provider to re-deliver the payout's status callback",
		ArgsUsage: "PAYOUT_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("payout ID is required")
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			raw, err := cl.ResendCallback(context.Background(), c.Args().Get(0), client.KindPayout)
			if err != nil {
				return fmt.Errorf("resend callback failed: %w", err)
			}

			fmt.Println(string(raw))
			return nil
		},
	}
}
