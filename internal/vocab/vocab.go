// Package vocab maintains the flat-file hint phrase list handed to the
// recognizer as recognition context.
package vocab

import (
	"fmt"
	"os"
	"strings"
)

// Store reads and writes one phrase per line at a fixed path. A missing
// file is an empty vocabulary, since hints are optional.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the phrases in file order, skipping blank lines.
func (s *Store) Load() ([]string, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	var phrases []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			phrases = append(phrases, line)
		}
	}
	return phrases, nil
}

// Merge appends hints not already present and persists the list only when
// it changed. Repeated runs with the same hints leave the file untouched.
func (s *Store) Merge(hints []string) ([]string, error) {
	phrases, err := s.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		seen[p] = struct{}{}
	}
	changed := false
	for _, h := range hints {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		phrases = append(phrases, h)
		changed = true
	}
	if !changed {
		return phrases, nil
	}
	if err := s.save(phrases); err != nil {
		return nil, err
	}
	return phrases, nil
}

func (s *Store) save(phrases []string) error {
	var b strings.Builder
	for _, p := range phrases {
		b.WriteString(p)
		b.WriteString("\n")
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write vocabulary file: %w", err)
	}
	return nil
}
