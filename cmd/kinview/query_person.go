package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kinview/internal/model"
	"kinview/internal/store"
)

func queryPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person <gramps-id>",
		Short: "Display one person as the view shows them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryPerson(args[0])
		},
	}
	return cmd
}

func runQueryPerson(id string) error {
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

	p, err := v.PersonFromGrampsID(id)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(os.Stdout, "No person found for %q.\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "ID: %s\n", p.GrampsID)
	fmt.Fprintf(os.Stdout, "Handle: %s\n", p.Handle)
	fmt.Fprintf(os.Stdout, "Name: %s\n", displayName(p.PrimaryName))
	fmt.Fprintf(os.Stdout, "Gender: %s\n", p.Gender)
	if ref, ok := p.BirthEventRef(); ok {
		printEvent(v, "Birth", ref.Ref)
	}
	if ref, ok := p.DeathEventRef(); ok {
		printEvent(v, "Death", ref.Ref)
	}
	for _, h := range p.ParentFamilies {
		fmt.Fprintf(os.Stdout, "Parents: %s\n", familyLabel(v, h))
	}
	for _, h := range p.Families {
		fmt.Fprintf(os.Stdout, "Family: %s\n", familyLabel(v, h))
	}
	if len(p.EventRefs) > 0 {
		fmt.Fprintf(os.Stdout, "Events: %d\n", len(p.EventRefs))
	}
	if len(p.Notes) > 0 {
		fmt.Fprintf(os.Stdout, "Notes: %d\n", len(p.Notes))
	}
	return nil
}

func displayName(n model.Name) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{n.Title, n.FirstName, n.PrimarySurname().Surname, n.Suffix} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func printEvent(r store.Reader, label string, h model.Handle) {
	e, err := r.EventFromHandle(h)
	if err != nil {
		return
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", label, formatDate(e.Date))
}

func formatDate(d model.Date) string {
	switch {
	case d.Text != "":
		return d.Text
	case d.Year == 0:
		return "unknown"
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func familyLabel(r store.Reader, h model.Handle) string {
	f, err := r.FamilyFromHandle(h)
	if err != nil {
		return string(h)
	}
	var names []string
	for _, parent := range []model.Handle{f.Father, f.Mother} {
		if parent == "" {
			continue
		}
		if p, err := r.PersonFromHandle(parent); err == nil {
			names = append(names, displayName(p.PrimaryName))
		}
	}
	if len(names) == 0 {
		return f.GrampsID
	}
	return fmt.Sprintf("%s (%s)", f.GrampsID, strings.Join(names, " & "))
}
