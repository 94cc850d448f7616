package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sluice-scada/internal/domain"
	"sluice-scada/internal/repository"

	"github.com/spf13/cobra"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Inspect gates",
}

var gateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gates with their last commanded state",
	RunE: func(cmd *cobra.Command, args []string) error {
		gates, err := repository.NewPostgresGatesRepository(db).ListGates(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			out := make([]map[string]any, 0, len(gates))
			for i := range gates {
				out = append(out, gates[i].ToJSON())
			}
			return printJSON(cmd.OutOrStdout(), out)
		}
		printGateTable(cmd.OutOrStdout(), gates)
		return nil
	},
}

func printGateTable(w io.Writer, gates []domain.Gate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tSTATUS\tLAST UPDATED")
	for _, g := range gates {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", g.ID, g.Name, g.Position, g.Status, g.LastUpdated.Format(domain.TimestampLayout))
	}
	_ = tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	gateCmd.AddCommand(gateListCmd)
}
