package residuehist

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidModulus            = errors.New("residuehist: modulus must be positive")
	ErrInvalidLength             = errors.New("residuehist: sequence length must not be negative")
	ErrInvalidBase               = errors.New("residuehist: base must be positive")
	ErrInvalidCapacity           = errors.New("residuehist: histogram capacity must be positive")
	ErrResidueOutOfRange         = errors.New("residuehist: residue out of range")
	ErrHistogramCapacityExceeded = errors.New("residuehist: histogram capacity exceeded")
	ErrStageOrder                = errors.New("residuehist: pipeline stage out of order")
	ErrNilRenderer               = errors.New("residuehist: nil report renderer")
	ErrInvalidRange              = errors.New("residuehist: invalid residue range")
	ErrUnknownMode               = errors.New("residuehist: unknown generator mode")
	ErrUnknownPolicy             = errors.New("residuehist: unknown overflow policy")
)

const (
	DefaultCapacity = 20
	DefaultBase     = 2
)

type Builder struct {
	modulus      int
	mode         Mode
	base         int64
	length       int
	lengthSet    bool
	capacity     int
	policy       OverflowPolicy
	keepSequence bool
}

// NewBuilder configures a square-mode pipeline of length modulus with the default
// capacity and the OverflowCount policy.
func NewBuilder(modulus int) *Builder {
	return &Builder{
		modulus:  modulus,
		mode:     ModeSquare,
		base:     DefaultBase,
		capacity: DefaultCapacity,
		policy:   OverflowCount,
	}
}

func (b *Builder) Square() *Builder {
	b.mode = ModeSquare
	return b
}

func (b *Builder) Multiplicative(base int64) *Builder {
	b.mode = ModeMultiplicative
	b.base = base
	return b
}

func (b *Builder) Mode(mode Mode) *Builder {
	b.mode = mode
	return b
}

// Length overrides the sequence length, which otherwise equals the modulus.
func (b *Builder) Length(length int) *Builder {
	b.length = length
	b.lengthSet = true
	return b
}

func (b *Builder) Capacity(capacity int) *Builder {
	b.capacity = capacity
	return b
}

func (b *Builder) Overflow(policy OverflowPolicy) *Builder {
	b.policy = policy
	return b
}

// Keeps the generated sequence in the Result, at the cost of O(L) extra memory.
func (b *Builder) KeepSequence() *Builder {
	b.keepSequence = true
	return b
}

func (b *Builder) Build() (*Pipeline, error) {
	length := b.modulus
	if b.lengthSet {
		length = b.length
	}
	gen, err := NewGenerator(b.mode, b.modulus, length, b.base)
	if err != nil {
		return nil, err
	}
	if b.capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, b.capacity)
	}
	if !b.policy.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, b.policy)
	}
	return &Pipeline{
		gen:          gen,
		capacity:     b.capacity,
		policy:       b.policy,
		keepSequence: b.keepSequence,
		stage:        StageUninitialized,
	}, nil
}

type Stage int

const (
	StageUninitialized Stage = iota
	StageGenerating
	StageTabulated
	StageHistogramBuilt
	StageReported
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageGenerating:
		return "generating"
	case StageTabulated:
		return "tabulated"
	case StageHistogramBuilt:
		return "histogram-built"
	case StageReported:
		return "reported"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

type Result struct {
	Mode    Mode
	Modulus int
	Length  int

	// Base is zero unless Mode is ModeMultiplicative.
	Base int64

	// Sequence is nil unless the pipeline was built with KeepSequence.
	Sequence  []int
	Table     OccurrenceTable
	Histogram *DuplicateHistogram
}

// Pipeline runs generation, tabulation and histogram construction exactly once.
// A failed phase leaves it in StageFailed and publishes nothing.
type Pipeline struct {
	gen          *Generator
	capacity     int
	policy       OverflowPolicy
	keepSequence bool

	stage  Stage
	result *Result
	err    error
}

func (p *Pipeline) Stage() Stage { return p.stage }

// Err returns the error that moved the pipeline to StageFailed.
func (p *Pipeline) Err() error { return p.err }

func (p *Pipeline) Run() (*Result, error) {
	if p.stage != StageUninitialized {
		return nil, fmt.Errorf("%w: run in stage %v", ErrStageOrder, p.stage)
	}

	p.stage = StageGenerating
	res := &Result{
		Mode:    p.gen.Mode(),
		Modulus: p.gen.Modulus(),
		Length:  p.gen.Len(),
	}
	if p.gen.Mode() == ModeMultiplicative {
		res.Base = p.gen.base
	}
	residues := p.gen.Residues()
	if p.keepSequence {
		res.Sequence = p.gen.Collect()
		residues = slices.Values(res.Sequence)
	}
	table, err := Tabulate(residues, p.gen.Modulus())
	if err != nil {
		return nil, p.fail(err)
	}
	res.Table = table
	p.stage = StageTabulated

	hist, err := BuildHistogram(table, p.capacity, p.policy)
	if err != nil {
		return nil, p.fail(err)
	}
	res.Histogram = hist
	p.stage = StageHistogramBuilt
	p.result = res
	return res, nil
}

// Report hands the result to render and marks the pipeline reported.
// A nil render is rejected without changing the stage.
func (p *Pipeline) Report(render func(*Result) error) error {
	if p.stage != StageHistogramBuilt {
		return fmt.Errorf("%w: report in stage %v", ErrStageOrder, p.stage)
	}
	if render == nil {
		return ErrNilRenderer
	}
	if err := render(p.result); err != nil {
		return p.fail(err)
	}
	p.stage = StageReported
	return nil
}

func (p *Pipeline) fail(err error) error {
	p.stage = StageFailed
	p.err = err
	p.result = nil
	return err
}
