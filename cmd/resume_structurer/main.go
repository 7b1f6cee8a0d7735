// Package main provides the entry point for the resume structurer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_structurer",
	Short: "Resume text to structured data",
	Long:  "Resume Structurer turns free-text resumes (plain text, PDF, DOCX or HTML) into a structured JSON document, and can rewrite its fields with a language model via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
