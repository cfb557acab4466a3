// Package scenes maps scene names to constructors using each scene's default
// configuration.
package scenes

import (
	"errors"
	"fmt"
	"sort"

	"tftscenes/engine"
	"tftscenes/scenes/airliner"
	"tftscenes/scenes/galaxy"
	"tftscenes/scenes/neuralmesh"
	"tftscenes/scenes/orbit"
	"tftscenes/scenes/torus"
)

var ErrUnknownScene = errors.New("unknown scene")

// Default is used when no scene is named.
const Default = airliner.Name

var registry = map[string]func() engine.Scene{
	airliner.Name:   func() engine.Scene { return airliner.New(airliner.DefaultConfig()) },
	torus.Name:      func() engine.Scene { return torus.New(torus.DefaultConfig()) },
	galaxy.Name:     func() engine.Scene { return galaxy.New(galaxy.DefaultConfig()) },
	neuralmesh.Name: func() engine.Scene { return neuralmesh.New(neuralmesh.DefaultConfig()) },
	orbit.Name:      func() engine.Scene { return orbit.New(orbit.DefaultConfig()) },
}

// Names returns the registered scene names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New returns an unbuilt scene. An empty name selects Default.
func New(name string) (engine.Scene, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("scenes: %w %q", ErrUnknownScene, name)
	}
	return ctor(), nil
}
