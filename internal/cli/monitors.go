package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/monitor"
)

// Output formats of the monitors command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// monitorsCommand creates the "monitors" command.
func (c *CLI) monitorsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List attached monitors and their indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, json or yaml)", format)
			}

			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			records, err := c.probe(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return c.printMonitors(records, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{formatText, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) printMonitors(records []monitor.Record, format string) error {
	if records == nil {
		records = []monitor.Record{}
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, string(data))
	case formatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return err
		}
		fmt.Fprint(c.out, string(data))
	default:
		if len(records) == 0 {
			printInfo(c.out, "No monitors connected")
			return nil
		}
		fmt.Fprintln(c.out, monitorTable(records))
	}
	return nil
}
