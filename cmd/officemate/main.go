// Command officemate is a small CLI client for the office-mate API, meant
// for smoke testing a deployment without the web frontend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "officemate",
	Short: "Client for the office-mate document and task API",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOr("OFFICEMATE_API_URL", "http://localhost:8080"),
		"Base URL of the office-mate API")
	rootCmd.AddCommand(uploadCmd, tasksCmd, documentsCmd, dashboardCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
