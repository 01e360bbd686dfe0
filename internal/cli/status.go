package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"greenlens/config"
	"greenlens/internal/adapter/index"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vector index status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	rootDir := GetRootDir()

	dbPath := config.IndexDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No index found. Run 'greenlens ingest' first.")
		return nil
	}

	idx, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer idx.Close()

	stats, err := idx.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Index:     %s\n", stats.Path)
	fmt.Printf("Records:   %d\n", stats.Records)
	if stats.Dimension > 0 {
		fmt.Printf("Dimension: %d\n", stats.Dimension)
	} else {
		fmt.Println("Dimension: (no records yet)")
	}

	return nil
}
