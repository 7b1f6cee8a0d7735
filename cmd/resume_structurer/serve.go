package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-structurer/internal/config"
	"github.com/jonathan/resume-structurer/internal/server"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for parsing, uploading and enhancing resumes.
Storage endpoints need DATABASE_URL; enhancement endpoints need GEMINI_API_KEY.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	p, err := newParsers(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Server.Port,
		DatabaseURL:    cfg.Server.DatabaseURL,
		APIKey:         cfg.Server.APIKey,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		LLM:            cfg.LLM,
		Parser:         p.text,
		DocxParser:     p.docx,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
