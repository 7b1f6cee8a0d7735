package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-structurer/internal/schemas"
	"github.com/jonathan/resume-structurer/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a ResumeDocument JSON file",
	Long:  "Validate a ResumeDocument JSON file against the resume document schema and the document's field rules.",
	RunE:  runValidate,
}

var (
	validateInputFile  string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to ResumeDocument JSON file")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to an alternative JSON schema file")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	if validateSchemaFile != "" {
		err = schemas.ValidateJSON(validateSchemaFile, validateInputFile)
	} else {
		err = schemas.ValidateDocumentJSON(data)
	}
	if err != nil {
		return err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("resume document is invalid: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s is a valid resume document\n", validateInputFile)
	return nil
}
