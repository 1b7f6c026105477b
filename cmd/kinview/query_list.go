package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kinview/internal/store"
)

func queryListCmd() *cobra.Command {
	var kindName string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible objects of one kind in sort order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryList(kindName, limit)
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "Person", "Object kind to list")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of objects (0 lists all)")
	return cmd
}

func runQueryList(kindName string, limit int) error {
	ctx := context.Background()

	kind, err := parseKind(kindName)
	if err != nil {
		return err
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

	handles, err := v.Sorted(kind)
	if err != nil {
		return err
	}
	if len(handles) == 0 {
		fmt.Fprintf(os.Stdout, "No %s objects visible.\n", kind)
		return nil
	}
	if limit > 0 && len(handles) > limit {
		handles = handles[:limit]
	}

	for _, h := range handles {
		obj, err := store.Get(v, kind, h)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", store.GrampsID(obj), obj.SortKey(), h)
	}
	return nil
}
