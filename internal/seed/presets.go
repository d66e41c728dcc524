package seed

import (
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yml
var builtinPresets []byte

// Options sizes a seeding run.
type Options struct {
	Users          int `yaml:"users"`
	Films          int `yaml:"films"`
	Directors      int `yaml:"directors"`
	FriendsPerUser int `yaml:"friends_per_user"`
	LikesPerUser   int `yaml:"likes_per_user"`
	Reviews        int `yaml:"reviews"`
	VotesPerReview int `yaml:"votes_per_review"`
}

// Validate rejects negative counts and a run with nothing to seed.
func (o Options) Validate() error {
	for name, v := range map[string]int{
		"users": o.Users, "films": o.Films, "directors": o.Directors,
		"friends_per_user": o.FriendsPerUser, "likes_per_user": o.LikesPerUser,
		"reviews": o.Reviews, "votes_per_review": o.VotesPerReview,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if o.Users == 0 && o.Films == 0 && o.Directors == 0 {
		return fmt.Errorf("nothing to seed")
	}
	return nil
}

type presetFile struct {
	Presets map[string]Options `yaml:"presets"`
}

// LoadPresets parses a presets document.
func LoadPresets(r io.Reader) (map[string]Options, error) {
	var file presetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	for name, opts := range file.Presets {
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return file.Presets, nil
}

// BuiltinPresets returns the presets shipped with the binary.
func BuiltinPresets() (map[string]Options, error) {
	var file presetFile
	if err := yaml.Unmarshal(builtinPresets, &file); err != nil {
		return nil, fmt.Errorf("decode built-in presets: %w", err)
	}
	return file.Presets, nil
}

// Preset looks up a built-in preset by name.
func Preset(name string) (Options, error) {
	presets, err := BuiltinPresets()
	if err != nil {
		return Options{}, err
	}
	opts, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for n := range presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return Options{}, fmt.Errorf("unknown preset %q (available: %v)", name, names)
	}
	return opts, nil
}
