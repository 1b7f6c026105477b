package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kinview/internal/model"
	"kinview/internal/store"
)

func queryBacklinksCmd() *cobra.Command {
	var kindName string
	var include []string
	cmd := &cobra.Command{
		Use:   "backlinks <gramps-id>",
		Short: "List the visible objects that reference an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryBacklinks(args[0], kindName, include)
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "Person", "Kind of the referenced object")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Only report referrers of these kinds")
	return cmd
}

func runQueryBacklinks(id, kindName string, include []string) error {
	ctx := context.Background()

	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}
	kinds := make([]model.Kind, 0, len(include))
	for _, name := range include {
		k, err := parseKind(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, k)
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

	target, err := store.GetByGrampsID(v, kind, id)
	if err != nil {
		return err
	}
	links, err := v.FindBacklinkHandles(target.ObjectHandle(), kinds...)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		fmt.Fprintln(os.Stdout, "No backlinks found.")
		return nil
	}
	for _, link := range links {
		obj, err := store.Get(v, link.Kind, link.Handle)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s %s (%s)\n", link.Kind, store.GrampsID(obj), obj.SortKey())
	}
	return nil
}
