package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Profile selects the generated module's host-import surface (spec §6).
type Profile string

const (
	ProfileWASI Profile = "wasi"
	ProfileWeb  Profile = "web"
)

// Project is an optional `rlc.yaml` alongside a source tree, letting a
// driver invocation pick a target profile and output path without CLI
// flags for every build.
type Project struct {
	Profile Profile `yaml:"profile"`
	Out     string  `yaml:"out"`
}

// LoadProject reads and parses an `rlc.yaml` project file. A missing file
// is not an error: the driver falls back to ProfileWASI and a source-derived
// output path.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Project{Profile: ProfileWASI}, nil
	}
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Profile == "" {
		p.Profile = ProfileWASI
	}
	return &p, nil
}
