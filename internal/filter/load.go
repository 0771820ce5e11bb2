package filter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
)

// LoadPatterns reads a JSONC array of glob patterns from path.
// Blank entries are skipped; malformed patterns are reported with their index.
func LoadPatterns(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading patterns file %q: %w", path, err)
	}

	var entries []string
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &entries); err != nil {
		return nil, fmt.Errorf("parsing patterns file %q: %w", path, err)
	}

	patterns := make([]string, 0, len(entries))

	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !doublestar.ValidatePattern(entry) {
			return nil, fmt.Errorf("patterns file %q, entry %d: %q: %w", path, i, entry, doublestar.ErrBadPattern)
		}

		patterns = append(patterns, entry)
	}

	return patterns, nil
}
