package cli

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"greenlens/config"
	"greenlens/internal/adapter/chunker"
	"greenlens/internal/adapter/index"
	"greenlens/internal/adapter/loader"
	"greenlens/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path|glob>...",
	Short: "Ingest documents into the vector index",
	Long: `Ingest one or more documents into the local vector index.
Arguments may be file paths or glob patterns.

Examples:
  greenlens ingest report.pdf
  greenlens ingest docs/**/*.pdf notes/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents matched the given paths")
	}

	if err := config.EnsureDataDir(rootDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	idx, err := index.Open(config.IndexDBPath(rootDir))
	if err != nil {
		return err
	}
	defer idx.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	ingestUC := usecase.NewIngestUseCase(
		loader.NewFileLoader(),
		chunker.NewTextChunker(cfg.Chunking.MaxChunkSize, cfg.Chunking.Overlap),
		embedder,
		idx,
	)

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	var (
		totalChunks int
		ingested    int
		failures    []string
	)

	for _, path := range paths {
		summary, err := ingestUC.Ingest(path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			bar.Add(1)
			continue
		}
		totalChunks += summary.Chunks
		ingested++
		bar.Add(1)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Documents ingested: %d\n", ingested)
	fmt.Printf("  Chunks stored:      %d\n", totalChunks)

	if len(failures) > 0 {
		fmt.Printf("\nFailures:\n")
		for _, f := range failures {
			fmt.Printf("  - %s\n", f)
		}
	}

	stats, err := idx.Stats()
	if err == nil {
		fmt.Printf("\nIndex: %d records at %s\n", stats.Records, stats.Path)
	}

	if len(failures) > 0 && ingested == 0 {
		return fmt.Errorf("all documents failed to ingest")
	}
	return nil
}

// expandPatterns resolves arguments that may be literal paths or glob
// patterns into a sorted, de-duplicated path list.
func expandPatterns(args []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// Not a pattern match; keep the literal path so a missing
			// file surfaces as DocumentNotFound instead of vanishing.
			seen[arg] = struct{}{}
			continue
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
