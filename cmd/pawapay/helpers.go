package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"

	"github.com/kelasa/pawapay/client"
)

// newClientFromFlags builds a provider client from the global CLI flags.
func newClientFromFlags(c *cli.Context) (*client.Client, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn, // Only warnings and errors to stderr
	}))

	cfg := client.Config{
		APIToken:       c.String("api-token"),
		Environment:    client.Environment(c.String("environment")),
		BaseURL:        c.String("base-url"),
		CallbackSecret: c.String("callback-secret"),
		SignRequests:   c.Bool("sign-requests"),
		SigningKeyPath: c.String("signing-key-path"),
		Timeout:        c.Duration("timeout"),
		MaxAttempts:    c.Int("max-retries"),
		RetryBaseDelay: c.Duration("retry-base-delay"),
	}

	cl, err := client.NewClient(cfg, nil, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return cl, nil
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// applyJQFilter runs a jq expression over a value (via its JSON form) and
// prints each result. Lets scripts slice CLI output without piping to jq.
func applyJQFilter(filter string, v any) error {
	query, err := gojq.Parse(filter)
	if err != nil {
		return fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
	}

	// Round-trip through JSON so gojq sees plain maps and slices.
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for filter: %w", err)
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to unmarshal value for filter: %w", err)
	}

	iter := code.Run(input)
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := result.(error); isErr {
			return fmt.Errorf("jq filter error: %w", err)
		}
		out, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal filter result: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}

// printTransactionDetailed renders a transaction snapshot for humans.
func printTransactionDetailed(kind string, txn client.Transaction) {
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✓ %s %s\n", kind, txn.Status)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("ID:            %s\n", txn.ID)
	fmt.Printf("Amount:        %s %s\n", txn.Amount, txn.Currency)
	fmt.Printf("Correspondent: %s\n", txn.Correspondent)

	if !txn.Created.IsZero() {
		fmt.Printf("Created:       %s\n", txn.Created.Format(time.RFC3339))
	}
	if txn.FailureReason != "" {
		fmt.Printf("Failure:       %s\n", txn.FailureReason)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}
