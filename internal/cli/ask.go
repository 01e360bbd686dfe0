package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"greenlens/config"
	"greenlens/internal/adapter/index"
	"greenlens/internal/usecase"
)

var (
	askQuestion string
	askTopK     int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question against the indexed documents",
	Long: `Answer a natural-language question using retrieval-augmented
generation over the ingested documents.

Examples:
  greenlens ask -q "What are the CSRD disclosure deadlines?"
  greenlens ask -q "Which emissions are in scope?" --top-k 8 --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	dbPath := config.IndexDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no index found. Run 'greenlens ingest' first")
	}

	idx, err := index.Open(dbPath)
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

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	answerUC := usecase.NewAnswerUseCase(usecase.NewRetriever(embedder, idx), generator, topK)

	answer, err := answerUC.Answer(askQuestion)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		output, _ := json.MarshalIndent(map[string]string{
			"question": askQuestion,
			"answer":   answer,
		}, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Println(answer)
	}

	return nil
}
