package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kinview/internal/model"
)

func querySearchCmd() *cobra.Command {
	var kindName string
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search gramps ids and names using the full-text index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySearch(strings.Join(args, " "), kindName)
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "", "Object kind to filter")
	return cmd
}

func runQuerySearch(query, kindName string) error {
	ctx := context.Background()

	var kind model.Kind
	if kindName != "" {
		var err error
		if kind, err = parseKind(kindName); err != nil {
			return err
		}
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	v, db, err := openView(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	hits, err := db.Search(ctx, query, kind)
	if err != nil {
		return err
	}
	results, err := v.Visible(query, hits)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, result := range results {
		fmt.Fprintf(os.Stdout, "%s %s (%s) score=%.2f\n", result.Kind, result.GrampsID, result.SortKey, result.Score)
	}
	return nil
}
