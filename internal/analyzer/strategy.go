package analyzer

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/verte-zerg/keystrain/internal/layout"
	"github.com/verte-zerg/keystrain/internal/penalty"
)

// strategy turns a UTF-8 stream into a merged result.
type strategy interface {
	process(r io.Reader, t *layout.Table) (penalty.Result, error)
}

// wholeStrategy reads the entire stream and runs one pass.
type wholeStrategy struct {
	engine []penalty.Option
}

func (s wholeStrategy) process(r io.Reader, t *layout.Table) (penalty.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return penalty.Result{}, err
	}
	if idx := invalidUTF8At(data); idx >= 0 {
		return penalty.Result{}, fmt.Errorf("invalid UTF-8 at byte %d", idx)
	}
	return penalty.Analyze(string(data), t, s.engine...), nil
}

// chunkedStrategy reads fixed-size chunks. Unless carry is set every chunk
// starts from a fresh engine, so movement and alternation across a chunk
// boundary are not charged.
type chunkedStrategy struct {
	size   int
	carry  bool
	engine []penalty.Option
}

func (s chunkedStrategy) process(r io.Reader, t *layout.Table) (penalty.Result, error) {
	size := s.size
	if size <= 0 {
		size = DefaultChunkSize
	}
	// Room for an incomplete rune held over from the previous chunk.
	buf := make([]byte, size+utf8.UTFMax)
	pending := 0
	var offset int64

	var shared *penalty.Engine
	if s.carry {
		shared = penalty.NewEngine(t, s.engine...)
	}
	total := penalty.NewResult()

	for {
		n, err := io.ReadFull(r, buf[pending:pending+size])
		eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !eof {
			return penalty.Result{}, err
		}
		data := buf[:pending+n]
		if len(data) == 0 {
			break
		}
		cut := len(data)
		if !eof {
			cut = completePrefix(data)
		}
		chunk := data[:cut]
		if idx := invalidUTF8At(chunk); idx >= 0 {
			return penalty.Result{}, fmt.Errorf("invalid UTF-8 at byte %d", offset+int64(idx))
		}
		if shared != nil {
			shared.FeedString(string(chunk))
		} else {
			total = total.Merge(penalty.Analyze(string(chunk), t, s.engine...))
		}
		offset += int64(cut)
		pending = copy(buf, data[cut:])
		if eof {
			break
		}
	}

	if shared != nil {
		return shared.Result(), nil
	}
	return total, nil
}

// completePrefix returns the length of data without a trailing incomplete
// UTF-8 sequence.
func completePrefix(data []byte) int {
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if utf8.FullRune(data[i:]) {
			return len(data)
		}
		return i
	}
	return len(data)
}

// invalidUTF8At returns the offset of the first malformed sequence, or -1.
func invalidUTF8At(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, n := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return -1
}
