package listview

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FilterMode selects how the filter text is matched against labels.
type FilterMode string

const (
	FilterSubstring FilterMode = "substring"
	FilterFuzzy     FilterMode = "fuzzy"
)

func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterSubstring:
		return FilterSubstring, nil
	case FilterFuzzy:
		return FilterFuzzy, nil
	default:
		return "", fmt.Errorf("unknown filter mode: %s (want substring|fuzzy)", s)
	}
}

// match returns, for each label, whether it is shown under filter.
// An empty filter shows everything.
func match(mode FilterMode, filter string, labels []string) []bool {
	shown := make([]bool, len(labels))
	if filter == "" {
		for i := range shown {
			shown[i] = true
		}
		return shown
	}
	if mode == FilterFuzzy {
		for _, m := range fuzzy.Find(filter, labels) {
			shown[m.Index] = true
		}
		return shown
	}
	needle := strings.ToLower(filter)
	for i, l := range labels {
		shown[i] = strings.Contains(strings.ToLower(l), needle)
	}
	return shown
}
