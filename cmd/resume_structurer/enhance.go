package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-structurer/internal/config"
	"github.com/jonathan/resume-structurer/internal/enhance"
	"github.com/jonathan/resume-structurer/internal/observability"
	"github.com/jonathan/resume-structurer/internal/types"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Rewrite resume content with a language model",
	Long: `Rewrite a single field (--field with --content) or every eligible field of a parsed
resume (--in resume.json). Requires a Gemini API key.`,
	RunE: runEnhance,
}

var (
	enhanceField      string
	enhanceContent    string
	enhanceInputFile  string
	enhanceOutputFile string
	enhanceIndustry   string
	enhanceRole       string
	enhanceAPIKey     string
	enhanceConfigFile string
	enhanceVerbose    bool
)

func init() {
	enhanceCmd.Flags().StringVar(&enhanceField, "field", "general", "Field type: summary, description, achievements, title, skills or general")
	enhanceCmd.Flags().StringVar(&enhanceContent, "content", "", "Text to rewrite")
	enhanceCmd.Flags().StringVarP(&enhanceInputFile, "in", "i", "", "Path to a ResumeDocument JSON file")
	enhanceCmd.Flags().StringVarP(&enhanceOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	enhanceCmd.Flags().StringVar(&enhanceIndustry, "industry", "", "Target industry")
	enhanceCmd.Flags().StringVar(&enhanceRole, "role", "", "Target role")
	enhanceCmd.Flags().StringVar(&enhanceAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	enhanceCmd.Flags().StringVarP(&enhanceConfigFile, "config", "c", "", "Path to JSON or YAML config file")
	enhanceCmd.Flags().BoolVarP(&enhanceVerbose, "verbose", "v", false, "Print each field before and after rewriting to stderr")
	enhanceCmd.MarkFlagsMutuallyExclusive("content", "in")
	enhanceCmd.MarkFlagsOneRequired("content", "in")

	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(enhanceConfigFile)
	if err != nil {
		return err
	}

	apiKey := enhanceAPIKey
	if apiKey == "" {
		apiKey = cfg.Server.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, cfg.LLM, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	enhancer := enhance.New(client)
	rc := enhance.Context{Industry: enhanceIndustry, TargetRole: enhanceRole}
	printer := observability.NewPrinter(cmd.ErrOrStderr())

	if enhanceInputFile == "" {
		resp, err := enhancer.Enhance(ctx, enhance.Request{
			FieldType: enhance.ParseFieldType(enhanceField),
			Content:   enhanceContent,
			Context:   rc,
		})
		if err != nil {
			return err
		}
		if enhanceVerbose {
			printer.PrintEnhancement(string(resp.FieldType), resp.OriginalContent, resp.EnhancedContent)
		}
		if enhanceOutputFile != "" {
			return writeJSON(cmd.OutOrStdout(), enhanceOutputFile, resp)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.EnhancedContent)
		return nil
	}

	data, err := os.ReadFile(enhanceInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	enhanced, err := enhancer.EnhanceDocument(ctx, &doc, rc)
	if err != nil {
		return err
	}
	if enhanceVerbose {
		printer.PrintEnhancement(string(enhance.FieldSummary), doc.Summary, enhanced.Summary)
		printer.PrintResume(filepath.Base(enhanceInputFile), enhanced, false)
	}
	return writeJSON(cmd.OutOrStdout(), enhanceOutputFile, enhanced)
}
