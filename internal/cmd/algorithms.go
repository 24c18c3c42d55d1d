package cmd

import (
	"fmt"
	"strconv"

	"github.com/dendrascience/cachebust/util"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// NewAlgorithmsCmd creates and returns the algorithms subcommand.
func NewAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported hash algorithms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), renderAlgorithms())
		},
	}
}

func renderAlgorithms() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Algorithm", "Hex Length", "Pattern", "Default"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	for _, name := range util.Algorithms() {
		a, _ := util.LookupAlgorithm(name)
		length := "variable"
		pattern := "no"
		if a.Length > 0 {
			length = strconv.Itoa(a.Length)
			pattern = "yes"
		}
		def := ""
		if name == util.DefaultAlgorithm {
			def = "*"
		}
		tw.AppendRow(table.Row{name, length, pattern, def})
	}
	return tw.Render()
}
