package config

import "sort"

var Presets = map[string]map[string]*Config{
	"suffix-array": {
		"dna": {
			Algorithm: "suffix-array", Input: DefaultInput,
		},
		"banana": {
			Algorithm: "suffix-array", Input: "banana",
		},
		"mississippi": {
			Algorithm: "suffix-array", Input: "mississippi", Delay: 0.5,
		},
	},
	"bwt": {
		"dna": {
			Algorithm: "bwt", Input: DefaultInput, Query: DefaultQuery,
		},
		"banana": {
			Algorithm: "bwt", Input: "banana", Query: "ana",
		},
		"abracadabra": {
			Algorithm: "bwt", Input: "abracadabra", Query: "abra", Delay: 0.5,
		},
		"miss": {
			Algorithm: "bwt", Input: "mississippi", Query: "xyz",
		},
	},
	// Names differ from the bwt ones so FindPreset stays unambiguous.
	"bibwt": {
		"genome": {
			Algorithm: "bibwt", Input: DefaultInput, Query: "CATGTC",
		},
		"cadabra": {
			Algorithm: "bibwt", Input: "abracadabra", Query: "acadab", Delay: 0.5,
		},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// FindPreset looks a preset up by name across all algorithms, in
// algorithm order.
func FindPreset(preset string) *Config {
	for _, name := range Algorithms() {
		if cfg := GetPreset(name, preset); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Algorithms lists the algorithms having presets.
func Algorithms() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
