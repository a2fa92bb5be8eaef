package residuehist

import (
	"fmt"

	"github.com/viniciusth/rmq"
)

// RangeQuery answers least/most frequent residue queries over inclusive
// residue ranges of an OccurrenceTable.
type RangeQuery struct {
	table  OccurrenceTable
	minRMQ *rmq.RMQHybridNaive[int]
	// maxRMQ runs over the negated counts.
	maxRMQ *rmq.RMQHybridNaive[int]
}

func NewRangeQuery(table OccurrenceTable) *RangeQuery {
	counts := make([]int, len(table))
	negated := make([]int, len(table))
	for i, c := range table {
		counts[i] = c
		negated[i] = -c
	}
	return &RangeQuery{
		table:  table,
		minRMQ: rmq.NewRMQHybridNaive(counts),
		maxRMQ: rmq.NewRMQHybridNaive(negated),
	}
}

// LeastFrequent returns a residue in [lo, hi] with the smallest occurrence count.
func (q *RangeQuery) LeastFrequent(lo, hi int) (residue, count int, err error) {
	if err := q.check(lo, hi); err != nil {
		return 0, 0, err
	}
	residue = q.minRMQ.Query(lo, hi)
	return residue, q.table[residue], nil
}

// MostFrequent returns a residue in [lo, hi] with the largest occurrence count.
func (q *RangeQuery) MostFrequent(lo, hi int) (residue, count int, err error) {
	if err := q.check(lo, hi); err != nil {
		return 0, 0, err
	}
	residue = q.maxRMQ.Query(lo, hi)
	return residue, q.table[residue], nil
}

func (q *RangeQuery) check(lo, hi int) error {
	if lo < 0 || hi >= len(q.table) || lo > hi {
		return fmt.Errorf("%w: [%d, %d] over %d residues", ErrInvalidRange, lo, hi, len(q.table))
	}
	return nil
}
