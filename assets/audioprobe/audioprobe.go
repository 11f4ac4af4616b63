// Package audioprobe decodes audio headers with ebiten's decoders so that
// level music references are checked when a level loads.
package audioprobe

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/milk9111/levelkit/assets"
)

type Prober struct{}

func New() Prober { return Prober{} }

func (Prober) Probe(name string, data []byte) (assets.AudioInfo, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return assets.AudioInfo{}, fmt.Errorf("decode wav %q: %w", name, err)
		}
		return assets.AudioInfo{Format: "wav", SampleRate: stream.SampleRate(), Length: stream.Length()}, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return assets.AudioInfo{}, fmt.Errorf("decode ogg %q: %w", name, err)
		}
		return assets.AudioInfo{Format: "ogg", SampleRate: stream.SampleRate(), Length: stream.Length()}, nil
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return assets.AudioInfo{}, fmt.Errorf("decode mp3 %q: %w", name, err)
		}
		return assets.AudioInfo{Format: "mp3", SampleRate: stream.SampleRate(), Length: stream.Length()}, nil
	default:
		return assets.AudioInfo{}, fmt.Errorf("unsupported audio format %q", ext)
	}
}
