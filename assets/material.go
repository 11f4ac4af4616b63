package assets

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Material is the surface description read from *.mat.yaml files.
type Material struct {
	Name      string    `yaml:"name"`
	BaseColor YAMLColor `yaml:"base_color"`
	Emissive  YAMLColor `yaml:"emissive"`
	Unlit     bool      `yaml:"unlit"`
	Roughness float64   `yaml:"roughness"`
	Metallic  float64   `yaml:"metallic"`
}

func ParseMaterial(data []byte) (Material, error) {
	m := Material{
		BaseColor: YAMLColor{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		Roughness: 0.5,
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Material{}, fmt.Errorf("assets: unmarshal material: %w", err)
	}
	if m.Roughness < 0 || m.Roughness > 1 {
		return Material{}, fmt.Errorf("assets: material %q: roughness %v out of range [0, 1]", m.Name, m.Roughness)
	}
	return m, nil
}

type YAMLColor struct {
	Color color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		channels[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
	return nil
}

func (c YAMLColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B, c.Color.A)
}
