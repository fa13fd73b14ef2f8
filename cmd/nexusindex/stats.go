package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/search"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show persisted index statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := search.OpenOrCreate(indexPath)
			if err != nil {
				return fmt.Errorf("open search index: %w", err)
			}
			defer engine.Close()

			numDocs, numSegments := engine.Stats()
			fmt.Printf("documents: %d\nsegments:  %d\n", numDocs, numSegments)

			results, err := engine.Search(search.Query{Type: search.TypeSemantic, Text: "", Limit: 0})
			if err == nil {
				var total uint64
				for _, r := range results {
					total += r.Entry.Size
				}
				fmt.Printf("total size: %s\n", nexuscore.FormatSize(total))
			}
			return nil
		},
	}
}
