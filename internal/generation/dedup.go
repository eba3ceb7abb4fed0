package generation

import "github.com/aadhamashraf/intentgen/internal/domain"

// DedupStore tracks the ids and normalized descriptions already handed out in
// one batch. It is owned by the caller of GenerateBatch and is not safe for
// concurrent use.
type DedupStore struct {
	ids          map[string]struct{}
	descriptions map[string]struct{}
	instances    int
}

func NewDedupStore() *DedupStore {
	return &DedupStore{
		ids:          make(map[string]struct{}),
		descriptions: make(map[string]struct{}),
	}
}

func (s *DedupStore) HasID(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// HasDescription compares after whitespace collapsing and case folding.
func (s *DedupStore) HasDescription(desc string) bool {
	_, ok := s.descriptions[domain.NormalizeDescription(desc)]
	return ok
}

// Add records both halves of a finished record.
func (s *DedupStore) Add(id, desc string) {
	s.ids[id] = struct{}{}
	s.descriptions[domain.NormalizeDescription(desc)] = struct{}{}
}

// Len returns the number of records added.
func (s *DedupStore) Len() int {
	return len(s.ids)
}

// nextInstance returns a store-wide counter used to force unique descriptions.
func (s *DedupStore) nextInstance() int {
	s.instances++
	return s.instances
}
