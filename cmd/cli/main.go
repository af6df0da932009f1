package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loans-cli",
		Short: "Loan book CLI tool",
		Long:  `A command line interface for interacting with the loan book API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the loan book API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	loanCmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan operations",
	}
	loanCmd.AddCommand(loanScheduleCmd())
	rootCmd.AddCommand(loanCmd)

	ruleCmd := &cobra.Command{
		Use:   "rule",
		Short: "Penalty rule operations",
	}
	ruleCmd.AddCommand(ruleActiveCmd())
	rootCmd.AddCommand(ruleCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Penalty sweep operations",
	}
	sweepCmd.AddCommand(sweepRunCmd())
	rootCmd.AddCommand(sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loanScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <loan-id>",
		Short: "Show the repayment schedule for a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet("/api/v1/loans/" + args[0] + "/schedule")
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	}
}

func ruleActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the active penalty rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet("/api/v1/rules/active")
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	}
}

func sweepRunCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Trigger a penalty sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{}
			if asOf != "" {
				ts, err := time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of date: %w", err)
				}
				payload["as_of"] = ts.UTC().Format(time.RFC3339)
			}

			body, err := apiPost("/api/v1/sweeps", payload)
			if err != nil {
				return err
			}

			var report map[string]any
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("Sweep completed\n")
			printJSON(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Run the sweep as of this date (YYYY-MM-DD)")
	return cmd
}

func apiGet(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func apiPost(path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
