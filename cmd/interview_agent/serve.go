package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview coach HTTP API server",
	Long: `Serves the REST API: match analysis, session lifecycle, question
generation, answer evaluation, transcripts and exports.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runServeCmd,
}

var (
	serveConfigPath string
	servePort       int
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (defaults to PORT env var or 8080)")

	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	eng, cleanup, err := buildEngine(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(server.Config{Port: cfg.Port}, eng, log.Named("http"))
	return srv.Start()
}
