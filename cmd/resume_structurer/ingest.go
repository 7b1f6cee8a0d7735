package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-structurer/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract and clean the text of a resume file",
	Long:  "Extract text from a resume file (.txt, .md, .pdf, .docx, .html), clean it, and write <name>.cleaned.txt and <name>.meta.json to the output directory.",
	RunE:  runIngest,
}

var (
	ingestInputFile string
	ingestOutputDir string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestInputFile, "in", "i", "", "Path to resume file")
	ingestCmd.Flags().StringVarP(&ingestOutputDir, "out", "o", "", "Output directory")
	_ = ingestCmd.MarkFlagRequired("in")
	_ = ingestCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	text, meta, err := ingestion.IngestFromFile(ingestInputFile)
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", ingestInputFile, err)
	}

	if err := ingestion.WriteOutput(ingestOutputDir, text, meta); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s (%s, %d chars, sha256 %s)\n", meta.Filename, meta.Format, meta.Chars, meta.Hash[:12])
	return nil
}
