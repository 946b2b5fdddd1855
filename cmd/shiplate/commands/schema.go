package commands

import (
	"encoding/json"
	"fmt"

	"shiplate/internal/visuals"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the report document",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := visuals.ReportSchema()
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}
