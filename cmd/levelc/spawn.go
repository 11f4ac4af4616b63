package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/milk9111/levelkit/scene"
	"github.com/milk9111/levelkit/session"
)

var (
	respawn    bool
	checkpoint bool
)

var spawnCmd = &cobra.Command{
	Use:   "spawn <level-name>",
	Short: "Load a level from the index into a scene and print a component census",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		idx, err := e.index()
		if err != nil {
			return err
		}
		loader, err := e.loader()
		if err != nil {
			return err
		}

		world := scene.NewWorld()
		scene.LevelSpawned.Subscribe(world.World, func(_ donburi.World, ev scene.LevelSpawnedEvent) {
			e.logger.Info("level spawned", "level", ev.Level, "entities", ev.Entities)
		})
		s := session.New(loader, idx, world, session.Options{
			Preloads: loader.Preloads(),
			Fonts:    loader.Fonts(),
			Logger:   e.logger,
		})

		if err := s.Select(args[0]); err != nil {
			return err
		}
		if err := s.Load(cmd.Context()); err != nil {
			e.render(err)
			return fmt.Errorf("level %s: %s", args[0], s.State())
		}
		world.ProcessEvents()
		printCensus(e, world)

		if respawn {
			if err := s.Restart(checkpoint); err != nil {
				return err
			}
			world.ProcessEvents()
			fmt.Fprintln(e.out, "after restart:")
			printCensus(e, world)
		}
		s.ReturnToLevelList()
		return nil
	},
}

func init() {
	spawnCmd.Flags().BoolVar(&respawn, "respawn", false, "Restart the level after spawning it")
	spawnCmd.Flags().BoolVar(&checkpoint, "checkpoint", false, "Restart from a checkpoint, keeping dynamic objects")
	rootCmd.AddCommand(spawnCmd)
}

func printCensus(e *env, world *scene.World) {
	census := scene.Census(world.World)
	names := make([]string, 0, len(census))
	for name := range census {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if census[name] > 0 {
			fmt.Fprintf(e.out, "%-18s %d\n", name, census[name])
		}
	}
}
