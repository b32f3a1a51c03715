// Package flags tracks boolean story flags and recorded dialogue choices.
package flags

// Store holds the flag set and choice history for one playthrough.
// It is injected into the systems that read or write flags; nothing in
// the game reaches for a global.
type Store struct {
	set     map[string]bool
	choices []string
}

// NewStore returns an empty flag store.
func NewStore() *Store {
	return &Store{set: make(map[string]bool)}
}

// Set marks a flag. Setting an already-set flag is a no-op.
func (s *Store) Set(id string) {
	s.set[id] = true
}

// Clear removes a flag. Clearing an unset flag is a no-op.
func (s *Store) Clear(id string) {
	delete(s.set, id)
}

// Has reports whether the flag is set.
func (s *Store) Has(id string) bool {
	return s.set[id]
}

// RecordChoice appends a dialogue choice id to the history.
func (s *Store) RecordChoice(choiceID string) {
	s.choices = append(s.choices, choiceID)
}

// Choices returns the recorded choice history in order.
func (s *Store) Choices() []string {
	out := make([]string, len(s.choices))
	copy(out, s.choices)
	return out
}

// All returns the set flags as a slice, for snapshots.
func (s *Store) All() []string {
	out := make([]string, 0, len(s.set))
	for id := range s.set {
		out = append(out, id)
	}
	return out
}

// Restore replaces the store contents from snapshot data.
func (s *Store) Restore(set []string, choices []string) {
	s.set = make(map[string]bool, len(set))
	for _, id := range set {
		s.set[id] = true
	}
	s.choices = make([]string, len(choices))
	copy(s.choices, choices)
}
