// Package alias maps raw PokerNow table identifiers ("Name @ id") to stable
// display names. Each session log gets its own JSON mapping file so the same
// table name can resolve differently across sessions.
package alias

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/lox/pokernow/internal/fileutil"
	"github.com/lox/pokernow/internal/ingest"
)

// Resolver rewrites a raw identifier to a display identifier. Unmapped names
// resolve to themselves.
type Resolver func(raw string) string

// Store is a per-log name mapping persisted as a JSON object.
type Store struct {
	path    string
	mapping map[string]string
}

// Open loads (or initializes) the mapping store for the given log file. The
// mapping file name is derived from the log's base name so each session has
// its own mapping under dir.
func Open(dir, logPath string) (*Store, error) {
	name := strings.TrimSuffix(filepath.Base(logPath), filepath.Ext(logPath))
	if name == "" {
		name = "default"
	}
	s := &Store{
		path:    filepath.Join(dir, name+"_mapping.json"),
		mapping: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("alias: read mapping: %w", err)
	}
	if err := json.Unmarshal(data, &s.mapping); err != nil {
		return nil, fmt.Errorf("alias: parse %s: %w", s.path, err)
	}
	return s, nil
}

// Path returns the mapping file location.
func (s *Store) Path() string {
	return s.path
}

// Resolve returns the display name for a raw identifier, or the identifier
// itself when no mapping exists.
func (s *Store) Resolve(raw string) string {
	if display, ok := s.mapping[raw]; ok && display != "" {
		return display
	}
	return raw
}

// Set records a mapping. Empty display names are ignored.
func (s *Store) Set(raw, display string) {
	display = strings.TrimSpace(display)
	if raw == "" || display == "" {
		return
	}
	s.mapping[raw] = display
}

// Mapped returns a copy of the current mapping.
func (s *Store) Mapped() map[string]string {
	out := make(map[string]string, len(s.mapping))
	for k, v := range s.mapping {
		out[k] = v
	}
	return out
}

// Unmapped filters names down to those without a mapping, preserving order.
func (s *Store) Unmapped(names []string) []string {
	var out []string
	for _, name := range names {
		if _, ok := s.mapping[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Save persists the mapping atomically, creating the directory if needed.
func (s *Store) Save() error {
	if err := fileutil.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("alias: %w", err)
	}
	data, err := json.MarshalIndent(s.mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("alias: encode mapping: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("alias: save mapping: %w", err)
	}
	return nil
}

// namePatterns extract raw player identifiers from log entries for the
// collection pass that runs before mapping.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)" folds`),
	regexp.MustCompile(`"([^"]+)" calls`),
	regexp.MustCompile(`"([^"]+)" bets`),
	regexp.MustCompile(`"([^"]+)" raises`),
	regexp.MustCompile(`"([^"]+)" checks`),
	regexp.MustCompile(`"([^"]+)" posts`),
	regexp.MustCompile(`"([^"]+)" collected`),
	regexp.MustCompile(`"([^"]+)" shows`),
	regexp.MustCompile(`dealer: "([^"]+)"`),
	regexp.MustCompile(`"([^"]+)"\s*\(\d+\)`),
}

// CollectNames scans a log's records and returns every raw player identifier
// seen, sorted for stable presentation.
func CollectNames(records []ingest.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, re := range namePatterns {
			for _, m := range re.FindAllStringSubmatch(rec.Entry, -1) {
				seen[m[1]] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
