package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reasonlab/epistress/internal/api"
	"github.com/reasonlab/epistress/internal/config"
	"github.com/reasonlab/epistress/internal/pipeline"
	"github.com/reasonlab/epistress/internal/runner"
)

func serveCmd() *cobra.Command {
	var runnerName string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the harness HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(runnerName)
		},
	}

	cmd.Flags().StringVar(&runnerName, "runner", "local", "Runner: local, anthropic, or openai")
	return cmd
}

func serve(runnerName string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := loadSuite(cfg.SuitePath)
	if err != nil {
		return err
	}

	run, err := resolveRunner(runnerName, "", cfg.SourceDir)
	if err != nil {
		return err
	}

	// Hosted-model runners expose latency stats for /api/stats/llm.
	var llmStats *runner.LLMStats
	var llmModel string
	switch r := run.(type) {
	case *runner.AnthropicRunner:
		llmStats, llmModel = r.Stats, r.Model()
		defer r.Close()
	case *runner.OpenAIRunner:
		llmStats, llmModel = r.Stats, r.Model()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orch := pipeline.NewOrchestrator(cfg, run, s, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, llmStats, llmModel, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting epistress", "port", cfg.Port, "runner", run.Name(), "suite_version", s.Version)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
