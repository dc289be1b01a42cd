// Package textgen builds synthetic text over a layout's alphabet.
package textgen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/keystrain/internal/layout"
)

// Options controls the shape of generated text.
type Options struct {
	MinLen    int
	MaxLen    int
	CapsPct   float64
	PunctPct  float64
	PunctSet  []rune
	LineWords int
}

// DefaultOptions mirror ordinary prose.
func DefaultOptions() Options {
	return Options{
		MinLen:    2,
		MaxLen:    9,
		CapsPct:   0.1,
		PunctPct:  0.15,
		PunctSet:  []rune(".,!?:;"),
		LineWords: 12,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.MinLen <= 0 || o.MaxLen < o.MinLen {
		return fmt.Errorf("word length range must satisfy 0 < min <= max")
	}
	if o.CapsPct < 0 || o.CapsPct > 1 {
		return fmt.Errorf("caps must be between 0 and 1")
	}
	if o.PunctPct < 0 || o.PunctPct > 1 {
		return fmt.Errorf("punct must be between 0 and 1")
	}
	if o.LineWords < 0 {
		return fmt.Errorf("line words must be >= 0")
	}
	return nil
}

// Generator produces randomized text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Letters returns the letters of t's base layer.
func Letters(t *layout.Table) []rune {
	var out []rune
	for _, r := range t.Alphabet() {
		if unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return out
}

// Word builds one random word from letters with caps/punctuation applied.
func (g *Generator) Word(letters []rune, opts Options) string {
	n := opts.MinLen
	if opts.MaxLen > opts.MinLen {
		n += g.rnd.Intn(opts.MaxLen - opts.MinLen + 1)
	}
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = letters[g.rnd.Intn(len(letters))]
	}
	word := applyCaps(g.rnd, string(runes), opts.CapsPct)
	return applyPunct(g.rnd, word, opts.PunctPct, opts.PunctSet)
}

// Text returns count words separated by spaces, broken into lines of
// LineWords words.
func (g *Generator) Text(letters []rune, count int, opts Options) string {
	if len(letters) == 0 {
		return ""
	}
	var b strings.Builder
	w := bufio.NewWriter(&b)
	for i := 0; i < count; i++ {
		// Writes to a strings.Builder do not fail.
		_, _ = g.writeWord(w, letters, i, opts)
	}
	_ = w.Flush()
	return b.String()
}

// WriteSize writes words to w until at least size bytes were written and
// returns the byte count.
func (g *Generator) WriteSize(w io.Writer, letters []rune, size int64, opts Options) (int64, error) {
	if len(letters) == 0 {
		return 0, fmt.Errorf("alphabet has no letters")
	}
	counter := &countingWriter{w: w}
	bw := bufio.NewWriter(counter)
	var written int64
	for i := 0; written < size; i++ {
		n, err := g.writeWord(bw, letters, i, opts)
		if err != nil {
			return counter.n, err
		}
		written += int64(n)
	}
	if err := bw.Flush(); err != nil {
		return counter.n, err
	}
	return counter.n, nil
}

func (g *Generator) writeWord(w *bufio.Writer, letters []rune, index int, opts Options) (int, error) {
	total := 0
	if index > 0 {
		sep := " "
		if opts.LineWords > 0 && index%opts.LineWords == 0 {
			sep = "\n"
		}
		n, err := w.WriteString(sep)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := w.WriteString(g.Word(letters, opts))
	return total + n, err
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
