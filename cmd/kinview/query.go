package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kinview/internal/model"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the filtered tree from the CLI",
	}
	cmd.AddCommand(queryPersonCmd())
	cmd.AddCommand(queryListCmd())
	cmd.AddCommand(queryBacklinksCmd())
	cmd.AddCommand(queryCountCmd())
	cmd.AddCommand(querySearchCmd())
	return cmd
}

func parseKind(name string) (model.Kind, error) {
	kind, ok := model.ParseKind(name)
	if !ok {
		return "", fmt.Errorf("unknown object kind %q", name)
	}
	return kind, nil
}
