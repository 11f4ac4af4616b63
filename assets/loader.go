package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// AudioInfo describes a decoded audio stream.
type AudioInfo struct {
	Format     string
	SampleRate int
	Length     int64
}

// AudioProber inspects encoded audio. Implementations live outside this
// package so that the binder does not link an audio backend.
type AudioProber interface {
	Probe(name string, data []byte) (AudioInfo, error)
}

// DependencyLoader loads file assets referenced by documents from a billy
// filesystem rooted at the asset directory.
type DependencyLoader struct {
	fs     billy.Filesystem
	fonts  *FontNames
	audio  AudioProber
	logger *slog.Logger

	mu        sync.Mutex
	loaded    map[Handle]bool
	materials map[Handle]Material
	images    map[Handle]image.Config
	sounds    map[Handle]AudioInfo
}

type LoaderOption func(*DependencyLoader)

func WithAudioProber(p AudioProber) LoaderOption {
	return func(d *DependencyLoader) { d.audio = p }
}

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(d *DependencyLoader) { d.logger = logger }
}

func NewDependencyLoader(fsys billy.Filesystem, fonts *FontNames, opts ...LoaderOption) *DependencyLoader {
	d := &DependencyLoader{
		fs:        fsys,
		fonts:     fonts,
		logger:    slog.Default(),
		loaded:    make(map[Handle]bool),
		materials: make(map[Handle]Material),
		images:    make(map[Handle]image.Config),
		sounds:    make(map[Handle]AudioInfo),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load reads one file asset. Builtin and preload handles are ignored; they
// are loaded elsewhere. Loading the same handle twice is a no-op.
func (d *DependencyLoader) Load(h Handle) error {
	if h.Origin != OriginPath {
		return nil
	}
	d.mu.Lock()
	done := d.loaded[h]
	d.mu.Unlock()
	if done {
		return nil
	}

	if h.Kind == KindScene {
		if _, err := d.fs.Stat(h.Path); err != nil {
			return fmt.Errorf("assets: scene %s: %w", h.Path, err)
		}
		d.markLoaded(h)
		return nil
	}

	data, err := util.ReadFile(d.fs, h.Path)
	if err != nil {
		return fmt.Errorf("assets: read %s %s: %w", h.Kind, h.Path, err)
	}

	switch h.Kind {
	case KindFont:
		if d.fonts != nil {
			if _, err := d.fonts.Register(h, data); err != nil {
				return err
			}
		}
	case KindMaterial:
		m, err := ParseMaterial(data)
		if err != nil {
			return fmt.Errorf("assets: material %s: %w", h.Path, err)
		}
		d.mu.Lock()
		d.materials[h] = m
		d.mu.Unlock()
		d.logger.Debug("material", "path", h.Path, "base_color", m.BaseColor.Hex(), "roughness", m.Roughness)
	case KindImage:
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("assets: image %s: %w", h.Path, err)
		}
		d.mu.Lock()
		d.images[h] = cfg
		d.mu.Unlock()
	case KindAudio:
		if d.audio != nil {
			info, err := d.audio.Probe(h.Path, data)
			if err != nil {
				return fmt.Errorf("assets: audio %s: %w", h.Path, err)
			}
			d.mu.Lock()
			d.sounds[h] = info
			d.mu.Unlock()
		}
	}

	d.markLoaded(h)
	d.logger.Debug("loaded asset", "kind", h.Kind.String(), "path", h.Path)
	return nil
}

// LoadAll loads every handle and reports all failures together.
func (d *DependencyLoader) LoadAll(handles []Handle) error {
	var errs []error
	for _, h := range handles {
		if err := d.Load(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *DependencyLoader) markLoaded(h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded[h] = true
}

func (d *DependencyLoader) Loaded(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded[h]
}

func (d *DependencyLoader) Material(h Handle) (Material, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.materials[h]
	return m, ok
}

func (d *DependencyLoader) Image(h Handle) (image.Config, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cfg, ok := d.images[h]
	return cfg, ok
}

func (d *DependencyLoader) Audio(h Handle) (AudioInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, ok := d.sounds[h]
	return info, ok
}
