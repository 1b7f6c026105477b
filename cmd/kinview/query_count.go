package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kinview/internal/model"
)

func queryCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count visible objects of every kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCount()
		},
	}
}

func runQueryCount() error {
	ctx := context.Background()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	v, db, err := openView(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	layers := "none"
	if len(v.Layers) > 0 {
		layers = strings.Join(v.Layers, " > ")
	}
	fmt.Fprintf(os.Stdout, "View: %s\n", layers)
	for _, kind := range model.Kinds {
		n, err := v.Count(kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  %-12s %d\n", kind+":", n)
	}
	return nil
}
