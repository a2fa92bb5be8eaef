package residuehist

import (
	"fmt"
	"iter"
	"strings"
)

// OccurrenceTable[r] is the number of times residue r was generated.
type OccurrenceTable []int

func (t OccurrenceTable) Total() int {
	total := 0
	for _, c := range t {
		total += c
	}
	return total
}

// Tabulate consumes the whole sequence and counts every residue.
func Tabulate(residues iter.Seq[int], modulus int) (OccurrenceTable, error) {
	if modulus <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModulus, modulus)
	}
	table := make(OccurrenceTable, modulus)
	pos := 0
	for r := range residues {
		if r < 0 || r >= modulus {
			return nil, fmt.Errorf("%w: %d at position %d (modulus %d)", ErrResidueOutOfRange, r, pos, modulus)
		}
		table[r]++
		pos++
	}
	return table, nil
}

type OverflowPolicy int

const (
	// OverflowCount keeps residues hit K or more times out of Counts and counts them in Overflow.
	OverflowCount OverflowPolicy = iota
	// OverflowClamp adds them to the last bucket.
	OverflowClamp
	// OverflowGrow extends Counts until every occurrence count has its own bucket.
	OverflowGrow
	// OverflowAbort fails with ErrHistogramCapacityExceeded.
	OverflowAbort
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowCount:
		return "count"
	case OverflowClamp:
		return "clamp"
	case OverflowGrow:
		return "grow"
	case OverflowAbort:
		return "abort"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

func (p OverflowPolicy) valid() bool {
	return p >= OverflowCount && p <= OverflowAbort
}

func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "count", "":
		return OverflowCount, nil
	case "clamp":
		return OverflowClamp, nil
	case "grow":
		return OverflowGrow, nil
	case "abort":
		return OverflowAbort, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// DuplicateHistogram.Counts[k] is the number of residues that occurred exactly k times.
// Counts has the requested capacity unless the grow policy extended it.
type DuplicateHistogram struct {
	Counts []int
	// Residues whose count did not fit in Counts (OverflowCount only).
	Overflow int
	// Residues folded into the last bucket (OverflowClamp only).
	Clamped int
	Policy  OverflowPolicy
}

// Total is the number of residues accounted for, which equals the modulus.
func (h *DuplicateHistogram) Total() int {
	total := h.Overflow
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Capacity returns the number of buckets.
func (h *DuplicateHistogram) Capacity() int {
	return len(h.Counts)
}

func BuildHistogram(table OccurrenceTable, capacity int, policy OverflowPolicy) (*DuplicateHistogram, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if !policy.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
	}

	h := &DuplicateHistogram{Counts: make([]int, capacity), Policy: policy}
	for r, k := range table {
		if k < len(h.Counts) {
			h.Counts[k]++
			continue
		}
		switch policy {
		case OverflowCount:
			h.Overflow++
		case OverflowClamp:
			h.Counts[len(h.Counts)-1]++
			h.Clamped++
		case OverflowGrow:
			h.Counts = append(h.Counts, make([]int, k+1-len(h.Counts))...)
			h.Counts[k]++
		case OverflowAbort:
			return nil, fmt.Errorf("%w: residue %d occurred %d times, capacity %d", ErrHistogramCapacityExceeded, r, k, capacity)
		}
	}
	return h, nil
}
