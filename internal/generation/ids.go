package generation

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	IDPrefix      = "IBN"
	MaxIDAttempts = 10
)

// IDSource draws record ids of the form IBN_<unix ms>_<12 hex>. The random
// part comes from a UUID read off the supplied stream, so a seeded stream and
// a fixed clock replay the same ids.
type IDSource struct {
	random  io.Reader
	now     func() time.Time
	counter int
}

func NewIDSource(random io.Reader, now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{random: random, now: now}
}

func (s *IDSource) draw() (string, error) {
	u, err := uuid.NewRandomFromReader(s.random)
	if err != nil {
		return "", fmt.Errorf("drawing id: %w", err)
	}
	hex := strings.ReplaceAll(u.String(), "-", "")
	return fmt.Sprintf("%s_%d_%s", IDPrefix, s.now().UnixMilli(), hex[:12]), nil
}

// Next returns an id not yet in store. After MaxIDAttempts collisions it
// falls back to <base>_<counter>_<unix nano>.
func (s *IDSource) Next(store *DedupStore) string {
	base := ""
	for range MaxIDAttempts {
		id, err := s.draw()
		if err != nil {
			break
		}
		if base == "" {
			base = id
		}
		if !store.HasID(id) {
			return id
		}
	}
	if base == "" {
		base = fmt.Sprintf("%s_%d", IDPrefix, s.now().UnixMilli())
	}
	for {
		s.counter++
		id := fmt.Sprintf("%s_%d_%d", base, s.counter, s.now().UnixNano())
		if !store.HasID(id) {
			return id
		}
	}
}
