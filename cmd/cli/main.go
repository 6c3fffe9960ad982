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
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// swappable for tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletd-cli",
		Short: "walletd CLI tool",
		Long:  `A command line interface for interacting with the walletd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the walletd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "JWT bearer token")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	getCmd := &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a wallet balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallets/" + args[0] + "/")
		},
	}

	var limit, offset int
	entriesCmd := &cobra.Command{
		Use:   "entries <user-id>",
		Short: "List ledger entries, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/wallets/%s/entries?limit=%d&offset=%d", args[0], limit, offset))
		},
	}
	entriesCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	entriesCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	var kind, description, referenceID string
	var amount int64
	recordCmd := &cobra.Command{
		Use:   "record <user-id>",
		Short: "Record a ledger entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"kind":        kind,
				"amount":      amount,
				"description": description,
			}
			if referenceID != "" {
				payload["reference_id"] = referenceID
			}
			post("/api/v1/wallets/"+args[0]+"/entries", payload)
		},
	}
	recordCmd.Flags().StringVar(&kind, "kind", "", "Entry kind (trade_profit, trade_loss, ...)")
	recordCmd.Flags().Int64Var(&amount, "amount", 0, "Amount in cents, negative for debits")
	recordCmd.Flags().StringVar(&description, "description", "", "Entry description")
	recordCmd.Flags().StringVar(&referenceID, "reference", "", "Idempotent reference ID")
	_ = recordCmd.MarkFlagRequired("kind")
	_ = recordCmd.MarkFlagRequired("amount")

	var newBalance int64
	resetCmd := &cobra.Command{
		Use:   "reset <user-id>",
		Short: "Reset a wallet to an explicit balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/wallets/"+args[0]+"/reset", map[string]any{"new_balance": newBalance})
		},
	}
	resetCmd.Flags().Int64Var(&newBalance, "balance", 1_000_000, "New balance in cents")

	verifyCmd := &cobra.Command{
		Use:   "verify <user-id>",
		Short: "Replay the ledger and check the balance projection",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallets/" + args[0] + "/verify")
		},
	}

	auditCmd := &cobra.Command{
		Use:   "audit <user-id>",
		Short: "List administrative actions against a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/wallets/" + args[0] + "/audit")
		},
	}

	walletCmd.AddCommand(getCmd, entriesCmd, recordCmd, resetCmd, verifyCmd, auditCmd)
	rootCmd.AddCommand(walletCmd)

	// User commands
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User operations",
	}

	var email, name, password, tier, role string
	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user and provision their wallet",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/users", map[string]any{
				"email":    email,
				"name":     name,
				"password": password,
				"tier":     tier,
				"role":     role,
			})
		},
	}
	createUserCmd.Flags().StringVar(&email, "email", "", "User email")
	createUserCmd.Flags().StringVar(&name, "name", "", "Display name")
	createUserCmd.Flags().StringVar(&password, "password", "", "Password")
	createUserCmd.Flags().StringVar(&tier, "tier", "free", "Subscription tier (free, pro, elite)")
	createUserCmd.Flags().StringVar(&role, "role", "", "Role (admin, operator, viewer)")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	hashPasswordCmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding users",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			hashPassword(args[0])
		},
	}

	userCmd.AddCommand(createUserCmd, hashPasswordCmd)
	rootCmd.AddCommand(userCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	do(http.MethodGet, path, nil)
}

func post(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}
	do(http.MethodPost, path, body)
}

func do(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(respBody), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func hashPassword(password string) {
	hash, err := bcryptGenerate([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
