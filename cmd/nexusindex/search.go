package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/search"
)

var searchTypeNames = map[string]search.Type{
	"exact":    search.TypeExact,
	"fuzzy":    search.TypeFuzzy,
	"glob":     search.TypeGlob,
	"regex":    search.TypeRegex,
	"semantic": search.TypeSemantic,
}

func newSearchCmd() *cobra.Command {
	var (
		queryType string
		limit     int
		filesOnly bool
		dirsOnly  bool
		minSize   uint64
		maxSize   uint64
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the persisted index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := searchTypeNames[queryType]
			if !ok {
				return fmt.Errorf("unknown search type %q", queryType)
			}

			engine, err := search.OpenOrCreate(indexPath)
			if err != nil {
				return fmt.Errorf("open search index: %w", err)
			}
			defer engine.Close()

			results, err := engine.Search(search.Query{
				Type:  t,
				Text:  args[0],
				Limit: limit,
				Filter: search.PostFilter{
					FilesOnly: filesOnly,
					DirsOnly:  dirsOnly,
					MinSize:   minSize,
					MaxSize:   maxSize,
				},
			})
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			for _, r := range results {
				fmt.Printf("%-10.3f %s (%s)\n", r.Score, r.Entry.Path, nexuscore.FormatSize(r.Entry.Size))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&queryType, "type", "semantic", "one of exact, fuzzy, glob, regex, semantic")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of results")
	cmd.Flags().BoolVar(&filesOnly, "files-only", false, "")
	cmd.Flags().BoolVar(&dirsOnly, "dirs-only", false, "")
	cmd.Flags().Uint64Var(&minSize, "min-size", 0, "")
	cmd.Flags().Uint64Var(&maxSize, "max-size", 0, "")
	return cmd
}
