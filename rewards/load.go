package rewards

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSpinDuration is used when a wheel file leaves spin_duration unset.
const DefaultSpinDuration = 3 * time.Second

//go:embed default.yaml
var defaultWheel []byte

// File is the wheel file: everything a game session is constructed from.
type File struct {
	FreeSpins    int             `yaml:"free_spins" json:"freeSpins"`
	BonusTrigger Token           `yaml:"bonus_trigger" json:"bonusTrigger"`
	SpinDuration time.Duration   `yaml:"spin_duration" json:"spinDuration"`
	Sectors      []Token         `yaml:"sectors" json:"sectors"`
	Pools        map[string]Pool `yaml:"pools" json:"pools"`
	Templates    Templates       `yaml:"templates" json:"templates"`
}

// Templates holds the bucket template of each stream.
type Templates struct {
	Main  []string `yaml:"main" json:"main"`
	Bonus []string `yaml:"bonus" json:"bonus"`
}

// Default returns the built-in wheel.
func Default() (*File, error) {
	f, err := Parse(defaultWheel)
	if err != nil {
		return nil, fmt.Errorf("embedded wheel: %w", err)
	}
	return f, nil
}

// Load reads a wheel file from disk. An empty path means the built-in wheel.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel file: %w", err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a YAML wheel file.
func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, &ConfigError{Problems: []string{"decode: " + err.Error()}}
	}
	if f.SpinDuration == 0 {
		f.SpinDuration = DefaultSpinDuration
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the fields NewRegistry does not see.
func (f *File) Validate() error {
	var errs problems
	if f.FreeSpins < 0 {
		errs.add("free_spins must be >= 0")
	}
	if f.FreeSpins > 0 && f.BonusTrigger == "" {
		errs.add("bonus_trigger is required when free_spins > 0")
	}
	if f.SpinDuration < 0 {
		errs.add("spin_duration must be >= 0")
	}
	if len(f.Sectors) == 0 {
		errs.add("sectors must not be empty")
	}
	for i, s := range f.Sectors {
		if s == "" {
			errs.add("sector %d has an empty reward", i)
		}
	}
	return errs.err()
}

// Registry builds the pool registry described by the file.
func (f *File) Registry() (*Registry, error) {
	return NewRegistry(f.Pools, map[Stream][]string{
		Main:  f.Templates.Main,
		Bonus: f.Templates.Bonus,
	})
}
