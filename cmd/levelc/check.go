package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check [level.kdl...]",
	Short: "Bind level documents and report every diagnostic",
	Long:  "Bind each level (relative to the asset root) and print its diagnostics. With no arguments every level in the index is checked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		paths, err := e.levelPaths(args)
		if err != nil {
			return err
		}
		loader, err := e.loader()
		if err != nil {
			return err
		}
		failed := checkLevels(cmd.Context(), e, loader, paths)
		if failed > 0 {
			return fmt.Errorf("%d of %d levels failed", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkLevels(ctx context.Context, e *env, loader *levels.Loader, paths []string) int {
	failed := 0
	for _, p := range paths {
		lvl, err := loader.Load(ctx, p)
		if err != nil {
			e.render(err)
		}
		if diag.IsFailure(err) {
			failed++
			fmt.Fprintf(e.out, "FAIL %s\n", p)
			continue
		}
		fmt.Fprintf(e.out, "ok   %s (%d planes, %d cuboids, %d texts, %d buttons, %d doors, %d dynamic)\n",
			p, len(lvl.Planes), len(lvl.Cuboids), len(lvl.Texts), len(lvl.Buttons), len(lvl.ButtonDoors), len(lvl.DynamicObjects))
	}
	return failed
}
