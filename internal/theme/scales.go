package theme

import (
	"fmt"
	"sort"
	"strings"
)

var scales = map[string][]int{
	"major-pentatonic": {0, 2, 4, 7, 9},
	"minor-pentatonic": {0, 3, 5, 7, 10},
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"whole-tone":       {0, 2, 4, 6, 8, 10},
	"hirajoshi":        {0, 2, 3, 7, 8},
	"blues":            {0, 3, 5, 6, 7, 10},
}

func MajorPentatonic() []int { return []int{0, 2, 4, 7, 9} }

// ScaleByName returns a fresh copy of a named scale.
func ScaleByName(name string) ([]int, error) {
	s, ok := scales[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return append([]int(nil), s...), nil
}

func ScaleNames() []string {
	names := make([]string, 0, len(scales))
	for n := range scales {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
