// Package formats provides the on-disk YAML formats for worlds and levels.
package formats

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	TimeLimit   float64         `yaml:"time_limit"`
	Layout      []string        `yaml:"layout"`
	Entities    []YAMLEntity    `yaml:"entities,omitempty"`
	Checkpoints []YAMLPoint     `yaml:"checkpoints,omitempty"`
	Objectives  []YAMLObjective `yaml:"objectives,omitempty"`
}

// YAMLPoint is a position or velocity.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLEntity is an entity placement. Velocity is optional.
type YAMLEntity struct {
	Type     string            `yaml:"type"`
	X        float64           `yaml:"x"`
	Y        float64           `yaml:"y"`
	Velocity *YAMLPoint        `yaml:"velocity,omitempty"`
	Props    map[string]string `yaml:"props,omitempty"`
}

// YAMLObjective is an objective definition.
type YAMLObjective struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	Target float64 `yaml:"target"`
}

// YAMLWorld represents the YAML structure of a world manifest.
type YAMLWorld struct {
	ID     string         `yaml:"id"`
	Number int            `yaml:"number"`
	Name   string         `yaml:"name"`
	Theme  YAMLTheme      `yaml:"theme"`
	Levels []YAMLLevelRef `yaml:"levels"`
}

// YAMLTheme holds presentation identifiers for a world.
type YAMLTheme struct {
	ID            string   `yaml:"id"`
	Background    string   `yaml:"background"`
	Music         string   `yaml:"music"`
	AmbientSounds []string `yaml:"ambient_sounds,omitempty"`
}

// YAMLLevelRef points at a level file and carries its progression settings.
type YAMLLevelRef struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	File         string           `yaml:"file"`
	Difficulty   string           `yaml:"difficulty,omitempty"`
	Requirements YAMLRequirements `yaml:"requirements"`
}

// YAMLRequirements gates a level behind its predecessor.
type YAMLRequirements struct {
	Stars         int    `yaml:"stars"`
	PreviousLevel string `yaml:"previous_level,omitempty"`
}

// ParseLevel parses a YAML level file. Unknown fields are rejected.
func ParseLevel(data []byte) (YAMLLevel, error) {
	var yl YAMLLevel
	if err := decodeStrict(data, &yl); err != nil {
		return YAMLLevel{}, err
	}
	return yl, nil
}

// ParseWorld parses a YAML world manifest. Unknown fields are rejected.
func ParseWorld(data []byte) (YAMLWorld, error) {
	var yw YAMLWorld
	if err := decodeStrict(data, &yw); err != nil {
		return YAMLWorld{}, err
	}
	return yw, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// ManifestName is the file name of a world manifest inside a world directory.
const ManifestName = "world.yaml"

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}
