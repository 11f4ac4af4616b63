package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "List the levels in the level index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		idx, err := e.index()
		if err != nil {
			return err
		}
		for _, entry := range idx.Entries() {
			fmt.Fprintf(e.out, "%-16s %-24s %s\n", entry.Name, entry.Display, entry.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
