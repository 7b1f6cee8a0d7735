package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-structurer/internal/config"
	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/llm"
	"github.com/jonathan/resume-structurer/internal/parsing"
)

// newLLMClient is swapped out in tests
var newLLMClient = llm.NewClient

// parsers holds the configured parser and the one used for Word documents
type parsers struct {
	text *parsing.Parser
	docx *parsing.Parser
}

// newParsers builds parsers from cfg. With the basic profile, .docx input is
// parsed with the docx keyword set and the same overrides.
func newParsers(cfg *config.Config) (*parsers, error) {
	opts, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	text, err := parsing.NewParser(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Parser.Profile == config.ProfileDocx {
		return &parsers{text: text, docx: text}, nil
	}

	docxCfg := *cfg
	docxCfg.Parser.Profile = config.ProfileDocx
	docxOpts, err := docxCfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	docx, err := parsing.NewParser(docxOpts)
	if err != nil {
		return nil, err
	}
	return &parsers{text: text, docx: docx}, nil
}

func (p *parsers) forFormat(format ingestion.Format) *parsing.Parser {
	if format == ingestion.FormatDOCX {
		return p.docx
	}
	return p.text
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
