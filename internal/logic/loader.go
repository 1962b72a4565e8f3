package logic

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

// LoadWorld reads and indexes a YAML world file
func LoadWorld(path string) (*Database, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read world file %s", path)
	}
	return ParseWorld(data)
}

// ParseWorld decodes a YAML world definition. Unknown keys are rejected.
func ParseWorld(data []byte) (*Database, error) {
	var def rando.WorldDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode world")
	}
	return NewDatabase(&def)
}

type settingsFile struct {
	Players []rando.Settings `yaml:"players"`
}

// LoadSettings reads a YAML settings file holding either one settings
// block or a players list for multiworld
func LoadSettings(path string) ([]rando.Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read settings file %s", path)
	}
	return ParseSettings(data)
}

// ParseSettings decodes settings YAML
func ParseSettings(data []byte) ([]rando.Settings, error) {
	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode settings")
	}
	if len(file.Players) > 0 {
		return file.Players, nil
	}

	var single rando.Settings
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode settings")
	}
	return []rando.Settings{single}, nil
}
