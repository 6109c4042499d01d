package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) validateCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a diagram declaration without rendering it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDiagram(from, "")
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				return err
			}

			printSuccess(c.Stdout, "%s is valid", d.Title())
			printStats(c.Stdout, d.NodeCount(), d.EdgeCount(), d.ClusterCount())

			cats := make([]string, 0, len(d.Categories()))
			for _, cat := range d.Categories() {
				cats = append(cats, string(cat))
			}
			printKeyValue(c.Stdout, "categories", strings.Join(cats, ", "))
			printKeyValue(c.Stdout, "output", d.OutputPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "declaration file (.json, .yaml, .toml) instead of the built-in diagram")
	return cmd
}
