package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kinview/internal/ingest"
	"kinview/internal/model"
	"kinview/internal/validate"
)

var importFull bool

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the tree files listed in the project config",
		RunE:  runImport,
	}
	cmd.Flags().BoolVar(&importFull, "full", false, "Import even if the tree files are unchanged")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := ingest.Run(ctx, cfg.Sources, db, ingest.Options{
		Full:    importFull,
		Exclude: cfg.Exclude,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintf(os.Stdout, "Tree unchanged (%d files), nothing imported.\n", result.Files)
		return nil
	}

	fmt.Fprintln(os.Stdout, "Import complete.")
	fmt.Fprintf(os.Stdout, "  Files: %d\n", result.Files)
	for _, kind := range model.Kinds {
		if n := result.Objects[kind]; n > 0 {
			fmt.Fprintf(os.Stdout, "  %-12s %d\n", kind+":", n)
		}
	}

	errs := result.Report.Count(validate.SeverityError)
	warns := result.Report.Count(validate.SeverityWarn)
	if errs > 0 || warns > 0 {
		fmt.Fprintf(os.Stdout, "\n%d errors, %d warnings; run kinview check --raw for details.\n", errs, warns)
	}
	return nil
}
