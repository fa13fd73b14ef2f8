package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusfs/nexuscore/index"
	"github.com/nexusfs/nexuscore/search"
	"github.com/nexusfs/nexuscore/store"
)

func newIndexCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index configured drives, or a single directory with --directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			sharedMap := store.New()
			orch := index.New(configFromFlags(), sharedMap, log)

			engine, err := search.OpenOrCreate(indexPath)
			if err != nil {
				return fmt.Errorf("open search index: %w", err)
			}
			defer engine.Close()

			if directory != "" {
				got, err := orch.IndexDirectory(context.Background(), directory)
				if err != nil {
					return fmt.Errorf("index directory: %w", err)
				}
				if err := engine.IndexEntries(got); err != nil {
					return fmt.Errorf("commit index: %w", err)
				}
				fmt.Printf("indexed %d entries from %s\n", len(got), directory)
				return nil
			}

			got, stats := orch.IndexAll(context.Background())
			if err := engine.IndexEntries(got); err != nil {
				return fmt.Errorf("commit index: %w", err)
			}
			fmt.Printf("indexed %d files, %d dirs across %v in %dms\n",
				stats.TotalFiles, stats.TotalDirs, stats.DrivesIndexed, stats.IndexTimeMs)
			return nil
		},
	}

	cmd.Flags().StringVar(&directory, "directory", "", "index a single directory via the fallback walker instead of configured drives")
	return cmd
}
