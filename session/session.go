// Package session drives the level lifecycle: choosing a level from the
// index, loading and spawning it, restarting it and returning to the list.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/levels"
	"github.com/milk9111/levelkit/scene"
)

type State int

const (
	StateMainMenu State = iota
	StateLoadingLevel
	StateGame
	StateLevelLoadingError
)

func (s State) String() string {
	switch s {
	case StateLoadingLevel:
		return "loading-level"
	case StateGame:
		return "game"
	case StateLevelLoadingError:
		return "level-loading-error"
	default:
		return "main-menu"
	}
}

var (
	ErrWrongState = errors.New("session: operation not allowed in current state")
	ErrStaleLoad  = errors.New("session: level load was superseded")
)

// LevelLoader loads a bound level from a document path. *levels.Loader
// implements it.
type LevelLoader interface {
	Load(ctx context.Context, path string) (*levels.Level, error)
}

type Options struct {
	Preloads *assets.Preloads
	Fonts    *assets.FontNames
	Logger   *slog.Logger
	Render   diag.RenderOptions
}

type Session struct {
	mu     sync.Mutex
	loader LevelLoader
	index  *levels.Index
	world  *scene.World
	opts   Options

	state    State
	selected string
	level    *levels.Level
	lastErr  error

	// loading is bumped whenever an in-flight load must be discarded.
	loading uint64
}

func New(loader LevelLoader, index *levels.Index, world *scene.World, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{
		loader: loader,
		index:  index,
		world:  world,
		opts:   opts,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Level returns the level currently spawned, if any.
func (s *Session) Level() *levels.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// LastError returns the error of the last load. After a successful load
// it holds the warnings, if there were any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Select picks a level from the index and moves to the loading state. An
// unknown name sends the session back to the main menu.
func (s *Session) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.index.Lookup(name); err != nil {
		s.opts.Logger.Error("attempted to load invalid level", "level", name)
		s.state = StateMainMenu
		s.selected = ""
		return err
	}
	s.opts.Logger.Info("loading level", "level", name)
	s.selected = name
	s.state = StateLoadingLevel
	s.lastErr = nil
	s.loading++
	return nil
}

// Load loads the selected level and spawns it into the world. A load that
// was superseded while it ran, by ReturnToLevelList or another Select,
// spawns nothing and returns ErrStaleLoad.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoadingLevel {
		s.mu.Unlock()
		return fmt.Errorf("%w: load in %s", ErrWrongState, s.state)
	}
	entry, err := s.index.Lookup(s.selected)
	if err != nil {
		s.state = StateMainMenu
		s.mu.Unlock()
		return err
	}
	token := s.loading
	s.mu.Unlock()

	lvl, err := s.loader.Load(ctx, entry.Path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.loading || s.state != StateLoadingLevel {
		return ErrStaleLoad
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if diag.IsFailure(err) {
		s.state = StateLevelLoadingError
		s.lastErr = err
		s.opts.Logger.Error("level failed to load", "level", entry.Name, "diagnostics", s.render(err))
		return err
	}

	removed := scene.DespawnLevel(s.world)
	n := lvl.Spawn(s.spawnArgs(true))
	s.level = lvl
	s.lastErr = err
	s.state = StateGame
	s.opts.Logger.Info("level ready", "level", entry.Name, "despawned", removed, "spawned", n)
	return nil
}

// Restart respawns the current level. A checkpoint restart keeps the
// dynamic objects already in the world; a full restart replaces them too.
func (s *Session) Restart(fromCheckpoint bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateGame || s.level == nil {
		return fmt.Errorf("%w: restart in %s", ErrWrongState, s.state)
	}
	if fromCheckpoint {
		scene.DespawnLevelKeeping(s.world, scene.ButtonPresser)
	} else {
		scene.DespawnLevel(s.world)
	}
	s.level.Spawn(s.spawnArgs(!fromCheckpoint))
	s.opts.Logger.Debug("level restarted", "level", s.selected, "checkpoint", fromCheckpoint)
	return nil
}

// ReturnToLevelList despawns the level and clears the selection. It is
// allowed from every state and discards any load in flight.
func (s *Session) ReturnToLevelList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	scene.DespawnLevel(s.world)
	s.selected = ""
	s.level = nil
	s.state = StateMainMenu
	s.loading++
}

func (s *Session) spawnArgs(dynamic bool) levels.SpawnArgs {
	return levels.SpawnArgs{
		Commands:     s.world,
		Preloads:     s.opts.Preloads,
		Fonts:        s.opts.Fonts,
		SpawnDynamic: dynamic,
		Logger:       s.opts.Logger,
	}
}

func (s *Session) render(err error) string {
	var b strings.Builder
	if rerr := diag.Render(&b, err, s.opts.Render); rerr != nil {
		return err.Error()
	}
	return b.String()
}
