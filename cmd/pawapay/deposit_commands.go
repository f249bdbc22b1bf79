package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kelasa/pawapay/client"
)

func depositCommands() *cli.Command {
	return &cli.Command{
		Name:  "deposit",
		Usage: "Collect funds from a payer",
		Subcommands: []*cli.Command{
			depositRequestCommand(),
			depositStatusCommand(),
			depositRefundCommand(),
			depositResendCallbackCommand(),
		},
	}
}

func depositRequestCommand() *cli.Command {
	return &cli.Command{
		Name:  "request",
		Usage: "Initiate a deposit from a payer's mobile money account",
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
				Name:     "phone",
				Aliases:  []string{"p"},
				Usage:    "Payer phone number (MSISDN)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "correspondent",
				Usage: "Mobile money operator code; predicted from the phone number when omitted",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Statement description shown to the payer",
			},
			&cli.BoolFlag{
				Name:  "normalize",
				Usage: "Canonicalize the amount (trim trailing zeros) before submission",
			},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			amount := c.String("amount")
			if c.Bool("normalize") {
				amount, err = client.NormalizeAmount(amount)
				if err != nil {
					return err
				}
			}

			resp, err := cl.RequestDeposit(context.Background(), client.DepositParams{
				Amount:               amount,
				Currency:             c.String("currency"),
				PhoneNumber:          c.String("phone"),
				Correspondent:        c.String("correspondent"),
				StatementDescription: c.String("description"),
			})
			if err != nil {
				return fmt.Errorf("deposit request failed: %w", err)
			}

			if c.Bool("json") {
				return printJSON(resp)
			}
			printTransactionDetailed("Deposit", resp.Transaction)
			fmt.Printf("Payer:         %s\n", resp.Payer.Address.Value)
			return nil
		},
	}
}

func depositStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Check the current status of a deposit",
		ArgsUsage: "DEPOSIT_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("deposit ID is required")
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			resp, err := cl.CheckDepositStatus(context.Background(), c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("status check failed: %w", err)
			}

			if c.Bool("json") {
				return printJSON(resp)
			}
			printTransactionDetailed("Deposit", resp.Transaction)
			return nil
		},
	}
}

func depositRefundCommand() *cli.Command {
	return &cli.Command{
		Name:      "refund",
		Usage:     "Refund a completed deposit",
		ArgsUsage: "DEPOSIT_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("deposit ID is required")
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			raw, err := cl.RefundDeposit(context.Background(), c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("refund failed: %w", err)
			}

			fmt.Println(string(raw))
			return nil
		},
	}
}

func depositResendCallbackCommand() *cli.Command {
	return &cli.Command{
		Name:      "resend-callback",
		Usage:     "Ask the provider to re-deliver the deposit's status callback",
		ArgsUsage: "DEPOSIT_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("deposit ID is required")
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			raw, err := cl.ResendCallback(context.Background(), c.Args().Get(0), client.KindDeposit)
			if err != nil {
				return fmt.Errorf("resend callback failed: %w", err)
			}

			fmt.Println(string(raw))
			return nil
		},
	}
}
