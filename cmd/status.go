package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gianmaria/reddit-image-downloader/internal/checkpoint"
	"github.com/gianmaria/reddit-image-downloader/internal/ledger"
)

// statusCmd inspects a destination folder: pending checkpoint plus outcome
// counts from the download ledger.
var statusCmd = &cobra.Command{
	Use:   "status [dest-folder]",
	Short: "Show download progress for a destination folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	destDir := args[0]

	after, err := checkpoint.NewStore(destDir).Load()
	if err != nil {
		return fmt.Errorf("read checkpoint: %w", err)
	}
	if after == "" {
		fmt.Println("Checkpoint: none (next run starts from the first page)")
	} else {
		fmt.Printf("Checkpoint: %s (run in progress or interrupted)\n", after)
	}

	led, err := ledger.Open(destDir)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer led.Close()

	sum, err := led.Summary()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	fmt.Printf("Posts processed: %d\n", sum.Total)
	for _, outcome := range []string{"OK", "SKIP", "FAILED", "UNABLE"} {
		if count, ok := sum.ByResult[outcome]; ok {
			fmt.Printf("  %-6s %d\n", outcome, count)
		}
	}
	return nil
}
