package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"greenlens/config"
	"greenlens/internal/adapter/chunker"
	"greenlens/internal/adapter/index"
	"greenlens/internal/adapter/loader"
	"greenlens/internal/monitor"
	"greenlens/internal/server"
	"greenlens/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GreenLens HTTP API",
	Long: `Run the HTTP API exposing document ingestion, question answering,
live usage data, and ESG report generation.

Example:
  greenlens serve --addr :8000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	if err := config.EnsureDataDir(rootDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// The server owns one long-lived index handle for its lifetime.
	idx, err := index.Open(config.IndexDBPath(rootDir))
	if err != nil {
		return err
	}
	defer idx.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	generator, err := buildGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	ingestUC := usecase.NewIngestUseCase(
		loader.NewFileLoader(),
		chunker.NewTextChunker(cfg.Chunking.MaxChunkSize, cfg.Chunking.Overlap),
		embedder,
		idx,
	)
	answerUC := usecase.NewAnswerUseCase(usecase.NewRetriever(embedder, idx), generator, cfg.Retrieve.TopK)

	live := monitor.NewLiveMonitor(
		time.Duration(cfg.Live.IntervalSecs)*time.Second,
		cfg.Live.Window,
		cfg.Live.ThresholdKW,
	)
	live.Start()
	defer live.Stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.Logging.Level),
	}))

	srv := server.New(
		ingestUC,
		answerUC,
		live,
		filepath.Join(rootDir, cfg.Server.DocsDir),
		filepath.Join(rootDir, cfg.Server.ReportsDir),
		logger,
	)

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	return srv.ListenAndServe(addr)
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
