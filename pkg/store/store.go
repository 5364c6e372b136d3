// Package store persists named objects as a single yaml file: a
// trivial mapping from name to a kind-tagged serialized value.
// Expressions are stored as their source strings and bignums as their
// canonical renders; the caller re-parses on retrieval.
package store

import (
	"errors"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrNotFound reports a name with no stored object.
var ErrNotFound = errors.New("store: no object with that name")

// Entry is one stored object.
type Entry struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// Store is a file-backed name-to-object mapping. Writes go straight to
// disk; the last write wins.
type Store struct {
	path    string
	entries map[string]Entry
}

// Open loads the store at path, starting empty when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &s.entries); err != nil {
		return nil, err
	}
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	return s, nil
}

func (s *Store) save() error {
	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Put stores an entry under name, overwriting any previous one.
func (s *Store) Put(name string, e Entry) error {
	s.entries[name] = e
	return s.save()
}

// Get returns the entry stored under name.
func (s *Store) Get(name string) (Entry, error) {
	e, ok := s.entries[name]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Delete removes the entry stored under name.
func (s *Store) Delete(name string) error {
	if _, ok := s.entries[name]; !ok {
		return ErrNotFound
	}
	delete(s.entries, name)
	return s.save()
}

// Names returns the stored names in increasing order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
