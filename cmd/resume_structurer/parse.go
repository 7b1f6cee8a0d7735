package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-structurer/internal/config"
	"github.com/jonathan/resume-structurer/internal/db"
	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/observability"
	"github.com/jonathan/resume-structurer/internal/schemas"
	"github.com/jonathan/resume-structurer/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse resume files into structured JSON",
	Long: `Parse one or more resume files (.txt, .md, .pdf, .docx, .html) into structured ResumeDocument JSON.
Use "-" as the input to read plain text from stdin. With several inputs, --out names a directory.`,
	RunE: runParse,
}

var (
	parseInputs      []string
	parseOutput      string
	parseConfigFile  string
	parseValidate    bool
	parseSave        bool
	parseDatabaseURL string
	parseConcurrency int
	parseVerbose     bool
)

func init() {
	parseCmd.Flags().StringArrayVarP(&parseInputs, "in", "i", nil, "Path to a resume file (repeatable, \"-\" for stdin)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Output JSON file, or directory with several inputs (default: stdout)")
	parseCmd.Flags().StringVarP(&parseConfigFile, "config", "c", "", "Path to JSON or YAML config file")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate each result against the resume document schema")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Store each result in the database")
	parseCmd.Flags().StringVar(&parseDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	parseCmd.Flags().IntVar(&parseConcurrency, "concurrency", 4, "Files parsed in parallel")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a readable summary of each result to stderr")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

const stdinSource = "stdin"

// parseResult is one parsed input
type parseResult struct {
	Source        string                `json:"source"`
	Resume        *types.ResumeDocument `json:"resume"`
	LowConfidence bool                  `json:"low_confidence"`
	ID            string                `json:"id,omitempty"`

	format ingestion.Format
	hash   string
}

func runParse(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(parseConfigFile)
	if err != nil {
		return err
	}
	p, err := newParsers(cfg)
	if err != nil {
		return err
	}
	if parseConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	if err := checkInputs(parseInputs, parseOutput); err != nil {
		return err
	}

	results := make([]*parseResult, len(parseInputs))
	var g errgroup.Group
	g.SetLimit(parseConcurrency)
	for i, input := range parseInputs {
		g.Go(func() error {
			res, err := parseInput(cmd, p, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	for _, res := range results {
		if parseVerbose {
			printer.PrintResume(res.Source, res.Resume, res.LowConfidence)
		}
		if parseValidate {
			if err := schemas.ValidateDocument(res.Resume); err != nil {
				return fmt.Errorf("%s: %w", res.Source, err)
			}
		}
		if res.LowConfidence {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: no resume structure recognised, output is placeholders only\n", res.Source)
		}
	}

	if parseSave {
		if err := saveResults(cmd.Context(), cfg, results); err != nil {
			return err
		}
	}

	return writeResults(cmd, results)
}

func parseInput(cmd *cobra.Command, p *parsers, input string) (*parseResult, error) {
	if input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		doc := p.text.Parse(ingestion.CleanText(string(data)))
		return &parseResult{Source: stdinSource, Resume: doc, LowConfidence: p.text.IsLowConfidence(doc), format: ingestion.FormatText}, nil
	}

	text, meta, err := ingestion.IngestFromFile(input)
	if err != nil {
		return nil, err
	}
	parser := p.forFormat(meta.Format)
	doc := parser.Parse(text)
	return &parseResult{
		Source:        meta.Filename,
		Resume:        doc,
		LowConfidence: parser.IsLowConfidence(doc),
		format:        meta.Format,
		hash:          meta.Hash,
	}, nil
}

// checkInputs rejects input sets that cannot be read or written unambiguously:
// stdin given more than once, or two inputs that would share an output file.
func checkInputs(inputs []string, outDir string) error {
	stdinCount := 0
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		source := stdinSource
		if input == "-" {
			stdinCount++
		} else {
			source = filepath.Base(input)
		}
		if stdinCount > 1 {
			return fmt.Errorf("stdin (\"-\") can only be given once")
		}
		if len(inputs) < 2 || outDir == "" {
			continue
		}
		name := outputName(source)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, input, name)
		}
		seen[name] = input
	}
	return nil
}

// outputName is the file a parsed source is written to inside --out.
func outputName(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".resume.json"
}

func saveResults(ctx context.Context, cfg *config.Config, results []*parseResult) error {
	dbURL := parseDatabaseURL
	if dbURL == "" {
		dbURL = cfg.Server.DatabaseURL
	}
	if dbURL == "" {
		return fmt.Errorf("--save requires a database URL (set DATABASE_URL or use --db-url)")
	}

	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	for _, res := range results {
		if res.hash != "" {
			existing, err := database.FindByContentHash(ctx, res.hash)
			if err != nil {
				return fmt.Errorf("%s: %w", res.Source, err)
			}
			// same source bytes are stored once
			if existing != nil {
				res.ID = existing.ID.String()
				continue
			}
		}

		id, err := database.SaveParsedResume(ctx, &db.ParsedResume{
			SourceName:    res.Source,
			Format:        string(res.format),
			ContentHash:   res.hash,
			Document:      res.Resume,
			LowConfidence: res.LowConfidence,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", res.Source, err)
		}
		res.ID = id.String()
	}
	return nil
}

func writeResults(cmd *cobra.Command, results []*parseResult) error {
	out := cmd.OutOrStdout()
	if len(results) == 1 {
		return writeJSON(out, parseOutput, results[0].Resume)
	}
	if parseOutput == "" {
		return writeJSON(out, "", results)
	}

	for _, res := range results {
		path := filepath.Join(parseOutput, outputName(res.Source))
		if err := writeJSON(out, path, res.Resume); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return nil
}
