package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kinview/internal/export"
)

func exportCmd() *cobra.Command {
	var outDir string
	var toS3 bool
	var split bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered tree as snapshot files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(outDir, toS3, split)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (defaults to export.dir)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "Upload to the configured S3 bucket instead of a directory")
	cmd.Flags().BoolVar(&split, "split", false, "Write one file per object kind")
	return cmd
}

func runExport(outDir string, toS3, split bool) error {
	ctx := context.Background()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	var sink export.Sink
	var target string
	if toS3 {
		if cfg.Export.S3 == nil {
			return fmt.Errorf("export.s3 is not configured")
		}
		s3Sink, err := export.NewS3Sink(ctx, *cfg.Export.S3)
		if err != nil {
			return err
		}
		sink = s3Sink
		target = fmt.Sprintf("s3://%s/%s", cfg.Export.S3.Bucket, cfg.Export.S3.Prefix)
	} else {
		if outDir == "" {
			outDir = cfg.Export.Dir
		}
		if outDir == "" {
			return fmt.Errorf("--out or export.dir is required")
		}
		sink = export.DirSink{Dir: outDir}
		target = outDir
	}

	v, db, err := openView(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := export.Run(ctx, v, sink, export.Options{Split: split, Logger: logger})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Exported %d objects to %s:\n", result.Objects, target)
	for _, name := range result.Files {
		fmt.Fprintf(os.Stdout, "  - %s\n", name)
	}
	return nil
}
