package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/levels"
)

var dumpQuery string

var dumpCmd = &cobra.Command{
	Use:   "dump <level.kdl>",
	Short: "Print the bound level as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		loader, err := e.loader()
		if err != nil {
			return err
		}
		lvl, err := loader.Load(cmd.Context(), args[0])
		if diag.IsFailure(err) {
			e.render(err)
			return fmt.Errorf("level %s failed to bind", args[0])
		}
		out, err := levels.Dump(lvl, dumpQuery)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, out)
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpQuery, "query", "q", "", "JSONPath expression selecting part of the level")
	rootCmd.AddCommand(dumpCmd)
}
