package commands

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultJSONIndent = "  "

// render writes value in the selected output format. For the table format,
// fill adds the header and rows.
func render(cmd *cobra.Command, v *viper.Viper, value interface{}, fill func(table *tablewriter.Table)) error {
	out := cmd.OutOrStdout()

	switch v.GetString(keyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	default:
		table := tablewriter.NewWriter(out)
		fill(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func valueOr(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
