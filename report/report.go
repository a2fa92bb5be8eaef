// Package report formats a residuehist.Result as fixed-width text.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/viniciusth/residuehist"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultWidth = 10

type Renderer struct {
	width   int
	dump    bool
	printer *message.Printer
}

// New returns a renderer laying out width values per row. Counts in the
// duplicate lines and the summary are formatted for tag.
func New(width int, tag language.Tag) *Renderer {
	if width < 1 {
		width = DefaultWidth
	}
	return &Renderer{
		width:   width,
		dump:    true,
		printer: message.NewPrinter(tag),
	}
}

// SkipDump leaves the sequence and table grids out of the report.
func (r *Renderer) SkipDump() *Renderer {
	r.dump = false
	return r
}

// Render writes the whole report to w, or nothing if the report could not be built.
func (r *Renderer) Render(w io.Writer, res *residuehist.Result) error {
	buf := new(bytes.Buffer)
	if r.dump {
		if res.Sequence != nil {
			r.grid(buf, "Residues", res.Sequence)
		}
		r.grid(buf, "Occurrences", res.Table)
	}
	r.duplicates(buf, res.Histogram)
	if err := r.summary(buf, res); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// grid writes values width per row, each row labeled with the index of its first value.
func (r *Renderer) grid(w io.Writer, title string, values []int) {
	maxValue := r.width - 1
	for _, v := range values {
		maxValue = max(maxValue, v)
	}
	col := len(strconv.Itoa(maxValue)) + 2
	label := len(strconv.Itoa(max(len(values)-1, 0)))

	fmt.Fprintf(w, "%s\n%*s", title, label, "")
	for c := 0; c < r.width; c++ {
		fmt.Fprintf(w, "%*d", col, c)
	}
	for i, v := range values {
		if i%r.width == 0 {
			fmt.Fprintf(w, "\n%*d", label, i)
		}
		fmt.Fprintf(w, "%*d", col, v)
	}
	fmt.Fprint(w, "\n\n")
}

func (r *Renderer) duplicates(w io.Writer, h *residuehist.DuplicateHistogram) {
	for k, c := range h.Counts {
		r.printer.Fprintf(w, "How many numbers duplicate %d times: %d\n", k, c)
	}
	if h.Overflow > 0 {
		r.printer.Fprintf(w, "How many numbers duplicate %d or more times: %d\n", len(h.Counts), h.Overflow)
	}
	if h.Clamped > 0 {
		r.printer.Fprintf(w, "Folded into the last bucket: %d\n", h.Clamped)
	}
}

func (r *Renderer) summary(w io.Writer, res *residuehist.Result) error {
	r.printer.Fprintf(w, "\nModulus: %d, length: %d, mode: %v\n", res.Modulus, res.Length, res.Mode)

	q := residuehist.NewRangeQuery(res.Table)
	least, leastCount, err := q.LeastFrequent(0, len(res.Table)-1)
	if err != nil {
		return err
	}
	most, mostCount, err := q.MostFrequent(0, len(res.Table)-1)
	if err != nil {
		return err
	}
	r.printer.Fprintf(w, "Least frequent residue: %d (%d times)\n", least, leastCount)
	r.printer.Fprintf(w, "Most frequent residue: %d (%d times)\n", most, mostCount)

	if res.Mode == residuehist.ModeMultiplicative {
		cycle, err := residuehist.MultiplicativeCycle(res.Modulus, res.Base)
		if err != nil {
			return err
		}
		r.printer.Fprintf(w, "Base %d: tail %d, period %d\n", res.Base, cycle.Tail, cycle.Period)
	}
	return nil
}

const termsPerLine = 8

// Expansion writes n as a polynomial in x = base, highest power first,
// termsPerLine terms per line, followed by the evaluated value.
func (r *Renderer) Expansion(w io.Writer, n *big.Int, base int64, coeffs []int64) error {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "n = %s in base %d\n", n.String(), base)
	for i := len(coeffs) - 1; i >= 0; i-- {
		fmt.Fprintf(buf, "%5d", coeffs[i])
		switch {
		case i > 1:
			fmt.Fprintf(buf, " x^%d + ", i)
		case i == 1:
			fmt.Fprint(buf, " x + ")
		}
		if i%termsPerLine == 0 {
			fmt.Fprint(buf, "\n")
		}
	}
	y := residuehist.EvalExpansion(coeffs, base)
	fmt.Fprintf(buf, "y = %s\n", y.String())
	if y.Cmp(n) == 0 {
		fmt.Fprint(buf, "Expansion verified\n")
	}
	_, err := buf.WriteTo(w)
	return err
}
