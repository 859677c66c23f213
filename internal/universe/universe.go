// Package universe loads and normalizes the list of tickers to evaluate.
package universe

import (
	"fmt"
	"os"
	"strings"
)

// Load reads one ticker symbol per line from path and normalizes the result.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	return Normalize(strings.Split(string(data), "\n")), nil
}

// Normalize trims and upper-cases raw ticker entries, dropping blanks,
// '#' comments and duplicates. First occurrence keeps its position, so
// evaluation and report order follow the source list.
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		sym := strings.ToUpper(strings.TrimSpace(line))
		if sym == "" || strings.HasPrefix(sym, "#") {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
