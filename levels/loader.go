package levels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

var ErrNotLevelFile = errors.New("not a " + LevelExt + " file")

// LoaderConfig holds the registries a Loader shares with the rest of the
// program. Nil fields are created by NewLoader.
type LoaderConfig struct {
	Builtins *assets.Builtins
	Preloads *assets.Preloads
	Fonts    *assets.FontNames
	Deps     *assets.DependencyLoader
	Logger   *slog.Logger
}

// Loader reads level documents from an asset filesystem, binds them and
// loads the file assets they reference.
type Loader struct {
	fs       billy.Filesystem
	builtins *assets.Builtins
	preloads *assets.Preloads
	fonts    *assets.FontNames
	deps     *assets.DependencyLoader
	logger   *slog.Logger
}

func NewLoader(fsys billy.Filesystem, cfg LoaderConfig) *Loader {
	l := &Loader{
		fs:       fsys,
		builtins: cfg.Builtins,
		preloads: cfg.Preloads,
		fonts:    cfg.Fonts,
		deps:     cfg.Deps,
		logger:   cfg.Logger,
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.builtins == nil {
		l.builtins = assets.MustBuiltins()
	}
	if l.preloads == nil {
		l.preloads = assets.NewPreloads()
	}
	if l.fonts == nil {
		l.fonts = assets.NewFontNames(l.logger)
	}
	if l.deps == nil {
		l.deps = assets.NewDependencyLoader(fsys, l.fonts, assets.WithLogger(l.logger))
	}
	return l
}

func (l *Loader) Builtins() *assets.Builtins     { return l.builtins }
func (l *Loader) Preloads() *assets.Preloads     { return l.preloads }
func (l *Loader) Fonts() *assets.FontNames       { return l.fonts }
func (l *Loader) Deps() *assets.DependencyLoader { return l.deps }
func (l *Loader) Filesystem() billy.Filesystem   { return l.fs }

// Init registers the builtin font families and loads the preload index.
// It must run before the first level is loaded.
func (l *Loader) Init(preloadIndex string) error {
	if err := l.builtins.RegisterFonts(l.fonts); err != nil {
		return err
	}
	if err := assets.LoadPreloads(l.fs, preloadIndex, l.preloads, l.deps); err != nil {
		return err
	}
	l.logger.Info("preloads ready", "count", len(l.preloads.Names()))
	return nil
}

// Parse reads and parses the document at path without binding it.
func (l *Loader) Parse(path string) (*kdl.Document, *diag.Source, error) {
	if !IsLevelFile(path) {
		return nil, nil, fmt.Errorf("levels: load %s: %w", path, ErrNotLevelFile)
	}
	data, err := util.ReadFile(l.fs, path)
	if err != nil {
		return nil, nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	src := diag.NewSource(path, string(data))
	doc, err := kdl.Parse(src.Text)
	if err != nil {
		var pe *kdl.ParseError
		if errors.As(err, &pe) {
			return nil, src, src.Syntax(pe)
		}
		return nil, src, err
	}
	return doc, src, nil
}

// Load parses and binds the level at path, then loads its file
// dependencies. A warnings-only *diag.Error is returned alongside a level;
// any failure returns a nil level. Cancelling ctx drops the result.
func (l *Loader) Load(ctx context.Context, path string) (*Level, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, src, err := l.Parse(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolver := assets.NewResolver(l.builtins, l.preloads, path)
	lvl, bindErr := Bind(doc, NewBindContext(src, resolver))
	if diag.IsFailure(bindErr) {
		return nil, bindErr
	}
	if de, ok := diag.As(bindErr); ok {
		for _, d := range de.Filter(diag.SeverityWarning) {
			l.logger.Warn(d.Message, "level", path)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := l.deps.LoadAll(resolver.Dependencies()); err != nil {
		return nil, fmt.Errorf("levels: load dependencies of %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.logger.Debug("loaded level", "level", lvl.Name, "path", path, "dependencies", len(resolver.Dependencies()))
	return lvl, bindErr
}
