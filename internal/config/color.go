package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/toroids/pkg/math"
)

// HexColor is a 0xRRGGBB colour as written in config files.
type HexColor uint32

// RGB converts the colour to linear float components.
func (c HexColor) RGB() math.Color {
	return math.ColorFromHex(uint32(c))
}

// MarshalYAML writes the colour as a hex integer literal.
func (c HexColor) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: fmt.Sprintf("0x%06x", uint32(c)),
	}, nil
}
