package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/bookmodal/internal/config"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Short:   "Manage the treatments and time slots offered in the form",
	GroupID: "system",
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cat := cfg.CatalogOrDefault()

		out := cmd.OutOrStdout()
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(cat)
		}
		fmt.Fprintln(out, output.Tree(output.CatalogBranches(cat), output.TreeOptions{ShowIDs: true}))
		return nil
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <treatment|time> [id] [label]",
	Short: "Add or relabel a catalog entry (prompts for missing values)",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := parseSelectionField(args[0])
		if err != nil {
			return err
		}

		var id, label string
		if len(args) > 1 {
			id = args[1]
		}
		if len(args) > 2 {
			label = args[2]
		}

		if id == "" {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("id is required when not running in a terminal")
			}
			if err := promptOption(field, &id, &label); err != nil {
				return err
			}
		}

		if err := config.AddOption(getBaseDir(), field, models.Option{ID: id, Label: label}); err != nil {
			return fmt.Errorf("add %s: %w", field, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", field, strings.TrimSpace(id))
		return nil
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:     "remove <treatment|time> <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a catalog entry",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := parseSelectionField(args[0])
		if err != nil {
			return err
		}
		removed, err := config.RemoveOption(getBaseDir(), field, args[1])
		if err != nil {
			return fmt.Errorf("remove %s: %w", field, err)
		}
		if !removed {
			output.Warning("no %s with id %q", field, args[1])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", field, args[1])
		return nil
	},
}

// parseSelectionField accepts the user-facing names of the catalog lists.
func parseSelectionField(s string) (models.Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "treatment", "treatments":
		return models.FieldTreatment, nil
	case "time", "times", "slot", "slots":
		return models.FieldTime, nil
	}
	return "", fmt.Errorf("unknown catalog %q (want treatment or time)", s)
}

func promptOption(field models.Field, id, label *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(field.Label()+" id").
			Description("Stable identifier stored with each booking").
			Value(id).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("id is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Label").
			Description("Shown in the form; defaults to the id").
			Value(label),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func init() {
	catalogListCmd.Flags().Bool("json", false, "Output as JSON")
	catalogCmd.AddCommand(catalogListCmd, catalogAddCmd, catalogRemoveCmd)
	rootCmd.AddCommand(catalogCmd)
}
