package assets

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// FontNames maps loaded font handles to their family names. Identical font
// data loaded through different handles is parsed once.
type FontNames struct {
	mu     sync.Mutex
	names  map[Handle]string
	loaded map[[sha256.Size]byte]string
	logger *slog.Logger
}

func NewFontNames(logger *slog.Logger) *FontNames {
	if logger == nil {
		logger = slog.Default()
	}
	return &FontNames{
		names:  make(map[Handle]string),
		loaded: make(map[[sha256.Size]byte]string),
		logger: logger,
	}
}

// Register parses data and associates its family name with h.
func (f *FontNames) Register(h Handle, data []byte) (string, error) {
	digest := sha256.Sum256(data)

	f.mu.Lock()
	defer f.mu.Unlock()

	if name, ok := f.loaded[digest]; ok {
		f.logger.Debug("font already loaded", "family", name, "handle", h.String())
		f.names[h] = name
		return name, nil
	}

	font, err := sfnt.Parse(data)
	if err != nil {
		return "", fmt.Errorf("assets: parse font %s: %w", h, err)
	}
	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return "", fmt.Errorf("assets: font %s family name: %w", h, err)
	}

	f.loaded[digest] = name
	f.names[h] = name
	f.logger.Debug("registered font", "family", name, "handle", h.String())
	return name, nil
}

func (f *FontNames) Name(h Handle) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.names[h]
	return name, ok
}

func (f *FontNames) Remove(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.names, h)
}

func (f *FontNames) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.names)
}
