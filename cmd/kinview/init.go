package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/store/memory"
)

func initCmd() *cobra.Command {
	var projectName string
	var person string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new kinview project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(cmd, projectName, person)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&person, "person", "", "Home person of the starter tree, as \"Given Surname\"")
	return cmd
}

func runInit(cmd *cobra.Command, projectName, person string) error {
	treePath := filepath.Join("tree", "tree.json")
	for _, path := range []string{configPath, treePath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	configContents := fmt.Sprintf(`project: %s
version: 1

sources:
  - ./tree/
exclude:
  - ./tree/drafts/

database:
  driver: sqlite
  dsn: sqlite://%s.db

log:
  level: info
  format: text

view:
  private: true
  living:
    mode: last-name-only
  referenced: all
`, projectName, projectName)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	snap := starterTree(person)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding starter tree: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(treePath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(treePath), err)
	}
	if err := os.WriteFile(treePath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", treePath, err)
	}

	cmd.Printf("Created %s and %s.\n", configPath, treePath)
	return nil
}

func starterTree(person string) *store.Snapshot {
	snap := &store.Snapshot{}
	fields := strings.Fields(person)
	if len(fields) == 0 {
		return snap
	}

	name := model.Name{Type: "Birth Name", FirstName: strings.Join(fields[:len(fields)-1], " ")}
	surname := fields[len(fields)-1]
	if len(fields) == 1 {
		name.FirstName = surname
		surname = ""
	}
	if surname != "" {
		name.Surnames = []model.Surname{{Surname: surname, Primary: true}}
	}

	home := &model.Person{
		Base:        model.Base{Handle: memory.NewHandle(), GrampsID: "I0001"},
		PrimaryName: name,
	}
	snap.People = append(snap.People, home)
	snap.DefaultPerson = home.Handle
	snap.Bookmarks = []model.Handle{home.Handle}
	return snap
}
