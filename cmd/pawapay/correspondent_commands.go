package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kelasa/pawapay/client"
)

func correspondentCommands() *cli.Command {
	return &cli.Command{
		Name:  "correspondents",
		Usage: "Inspect available mobile money operators",
		Subcommands: []*cli.Command{
			correspondentListCommand(),
			correspondentPredictCommand(),
		},
	}
}

func correspondentListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List active correspondents from the provider configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "country",
				Usage: "Restrict to one country code, e.g. KEN",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "jq expression applied to the JSON output, e.g. '.[] | .correspondent'",
			},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			ctx := context.Background()
			var correspondents []client.Correspondent
			if country := c.String("country"); country != "" {
				correspondents, err = cl.ListCorrespondentsByCountry(ctx, country)
			} else {
				correspondents, err = cl.ListCorrespondents(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list correspondents: %w", err)
			}

			if filter := c.String("filter"); filter != "" {
				return applyJQFilter(filter, correspondents)
			}
			if c.Bool("json") {
				return printJSON(correspondents)
			}

			fmt.Printf("%-24s %-8s %s\n", "CORRESPONDENT", "COUNTRY", "CURRENCY")
			for _, corr := range correspondents {
				fmt.Printf("%-24s %-8s %s\n", corr.Correspondent, corr.Country, corr.Currency)
			}
			return nil
		},
	}
}

func correspondentPredictCommand() *cli.Command {
	return &cli.Command{
		Name:      "predict",
		Usage:     "Predict which operator serves a phone number",
		ArgsUsage: "PHONE_NUMBER",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("phone number is required")
			}

			cl, err := newClientFromFlags(c)
			if err != nil {
				return err
			}

			msisdn, err := client.NormalizeMSISDN(c.Args().Get(0))
			if err != nil {
				return err
			}

			correspondent, err := cl.PredictCorrespondent(context.Background(), msisdn)
			if err != nil {
				return err
			}
			if correspondent == "" {
				return fmt.Errorf("no correspondent could be determined for %s", msisdn)
			}

			fmt.Println(correspondent)
			return nil
		},
	}
}
