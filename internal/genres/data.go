package genres

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Whitelist is the set of genre names considered valid output.
type Whitelist struct {
	entries map[string]bool
}

// LoadWhitelist reads a whitelist file with one lowercase genre per line.
// Blank lines and # comments are skipped.
func LoadWhitelist(path string) (*Whitelist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genre whitelist: %w", err)
	}
	defer file.Close()

	entries := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries[strings.ToLower(line)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read genre whitelist: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("genre whitelist %s is empty", path)
	}
	return &Whitelist{entries: entries}, nil
}

// Contains reports whether the genre (case-insensitive) is whitelisted.
func (w *Whitelist) Contains(genre string) bool {
	return w.entries[strings.ToLower(strings.TrimSpace(genre))]
}

// Size reports the number of whitelisted genres.
func (w *Whitelist) Size() int { return len(w.entries) }

// Canonical renders a whitelisted genre in its display form, e.g.
// "hip hop" becomes "Hip Hop".
func Canonical(genre string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(genre)))
}
