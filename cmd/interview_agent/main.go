// Package main provides the entry point for the interview coach CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Mock interview engine driven by a resume and a job posting",
	Long:  "Interview Agent analyzes a resume against a job posting, plans a mock interview, generates questions grounded in both documents, and scores the candidate's answers.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
