package record

import (
	"fmt"

	"github.com/kailas-cloud/guide/internal/domain"
)

// Corpus is an ordered, immutable set of records.
// Order carries no meaning but is the tie-break for equal scores.
type Corpus struct {
	records []Record
	byID    map[string]int
}

// NewCorpus validates id uniqueness and keeps the given order.
func NewCorpus(records ...Record) (Corpus, error) {
	byID := make(map[string]int, len(records))
	for i := range records {
		id := records[i].ID()
		if _, dup := byID[id]; dup {
			return Corpus{}, fmt.Errorf("%w: duplicate record ID %q", domain.ErrInvalidRecord, id)
		}
		byID[id] = i
	}
	return Corpus{records: append([]Record(nil), records...), byID: byID}, nil
}

// Records returns the records in corpus order. Callers must not modify the slice.
func (c *Corpus) Records() []Record { return c.records }

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// Get looks a record up by ID.
func (c *Corpus) Get(id string) (Record, error) {
	i, ok := c.byID[id]
	if !ok {
		return Record{}, fmt.Errorf("record %q: %w", id, domain.ErrNotFound)
	}
	return c.records[i], nil
}
