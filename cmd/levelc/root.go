package main

import (
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/assets/audioprobe"
	"github.com/milk9111/levelkit/config"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/levels"
)

var (
	configPath string
	assetsRoot string
	logLevel   string
	useDemo    bool
	brief      bool
)

var rootCmd = &cobra.Command{
	Use:          "levelc",
	Short:        "Check, inspect and spawn level documents",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Path to the levelkit configuration")
	rootCmd.PersistentFlags().StringVarP(&assetsRoot, "assets", "a", "", "Asset root directory (overrides assets_root)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&useDemo, "demo", false, "Use the bundled demo assets instead of the asset root")
	rootCmd.PersistentFlags().BoolVar(&brief, "brief", false, "Print one line per diagnostic instead of source snippets")
}

// env is everything a command needs once flags and config are resolved.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	fs     billy.Filesystem
	out    io.Writer
	brief  bool
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(osfs.New("."), configPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if assetsRoot != "" {
		cfg.AssetsRoot = assetsRoot
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var fsys billy.Filesystem
	if useDemo {
		if fsys, err = levels.DemoFS(); err != nil {
			return nil, err
		}
	} else {
		fsys = osfs.New(cfg.AssetsRoot)
	}
	return &env{cfg: cfg, logger: logger, fs: fsys, out: cmd.OutOrStdout(), brief: brief}, nil
}

// loader builds a fresh loader with the preload index loaded. Each call
// starts from empty registries so changed assets are read again.
func (e *env) loader() (*levels.Loader, error) {
	fonts := assets.NewFontNames(e.logger)
	deps := assets.NewDependencyLoader(e.fs, fonts,
		assets.WithAudioProber(audioprobe.New()),
		assets.WithLogger(e.logger),
	)
	l := levels.NewLoader(e.fs, levels.LoaderConfig{Fonts: fonts, Deps: deps, Logger: e.logger})
	if err := l.Init(e.cfg.PreloadIndex); err != nil {
		return nil, fmt.Errorf("load preloads: %w", err)
	}
	return l, nil
}

func (e *env) index() (*levels.Index, error) {
	return levels.LoadIndex(e.fs, e.cfg.LevelIndex)
}

func (e *env) render(err error) {
	if de, ok := diag.As(err); ok && e.brief {
		fmt.Fprintln(e.out, de.Detailed())
		return
	}
	_ = diag.Render(e.out, err, diag.RenderOptions{Width: e.cfg.Render.Width, Color: e.cfg.Render.Color})
}

// levelPaths turns arguments into asset paths. With no arguments every
// level in the index is used.
func (e *env) levelPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		out := make([]string, len(args))
		for i, a := range args {
			out[i] = path.Clean(a)
		}
		return out, nil
	}
	idx, err := e.index()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range idx.Entries() {
		out = append(out, entry.Path)
	}
	return out, nil
}
