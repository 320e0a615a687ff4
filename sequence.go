package fiesta

import (
	"iter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/fiesta/internal/common"
)

// Sequence is a growable array of Text. It owns every element it holds:
// Append takes ownership, Remove hands it back, Release frees them all.
// The zero value is ready to use.
//
// Join consumes the Sequence; any later mutation returns ErrConsumed.
type Sequence struct {
	h        common.Header[Text]
	consumed bool
}

func NewSequence() *Sequence {
	return &Sequence{h: common.Header[Text]{Data: make([]Text, common.BaseSize)}}
}

// SequenceOf builds a Sequence that takes ownership of texts.
func SequenceOf(texts ...Text) (*Sequence, error) {
	capacity := max(int(float64(len(texts))*common.GrowthRate), common.BaseSize)
	h, err := common.New[Text](capacity)
	if err != nil {
		return nil, err
	}
	copy(h.Data, texts)
	h.Len = len(texts)
	return &Sequence{h: h}, nil
}

func (s *Sequence) ready() error {
	if s.consumed {
		return ErrConsumed
	}
	if s.h.Data == nil {
		s.h.Data = make([]Text, common.BaseSize)
	}
	return nil
}

// Append adds t to the end of s. s owns t afterwards.
func (s *Sequence) Append(t Text) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := common.Resize(&s.h, 1); err != nil {
		return err
	}
	s.h.Data[s.h.Len] = t
	s.h.Len++
	return nil
}

func (s *Sequence) appendBuffer(b *Buffer) error {
	t, err := b.Text()
	if err != nil {
		return err
	}
	return s.Append(t)
}

// Get returns the element at i. The Text still belongs to s and must not be
// released by the caller.
func (s *Sequence) Get(i int) (Text, error) {
	if s.consumed {
		return Text{}, ErrConsumed
	}
	if i < 0 || i >= s.h.Len {
		return Text{}, errors.Wrapf(ErrOutOfRange, "get %d from length %d", i, s.h.Len)
	}
	return s.h.Data[i], nil
}

// Remove takes the element at i out of s and returns it; the caller owns it.
func (s *Sequence) Remove(i int) (Text, error) {
	if s.consumed {
		return Text{}, ErrConsumed
	}
	if i < 0 || i >= s.h.Len {
		return Text{}, errors.Wrapf(ErrOutOfRange, "remove %d from length %d", i, s.h.Len)
	}
	removed := s.h.Data[i]
	copy(s.h.Data[i:], s.h.Data[i+1:s.h.Len])
	if err := common.Resize(&s.h, -1); err != nil {
		// shrinking never asks for more memory; drop the stale tail in place
		s.h.Len--
		s.h.Data[s.h.Len] = Text{}
	}
	return removed, nil
}

// Join concatenates the elements with sep between each pair.
//
// Join consumes s: on success every element and the array itself are
// released and s must not be used again. On error s is left intact.
func (s *Sequence) Join(sep string) (Text, error) {
	if s.consumed {
		return Text{}, ErrConsumed
	}
	joined := NewBuffer()
	for i, t := range s.h.Data[:s.h.Len] {
		if i > 0 {
			if err := joined.Append(sep); err != nil {
				return Text{}, err
			}
		}
		if err := joined.AppendText(t); err != nil {
			return Text{}, err
		}
	}
	s.Release()
	return joined.Text()
}

// Release frees every element and the array.
func (s *Sequence) Release() {
	for i := range s.h.Data[:s.h.Len] {
		s.h.Data[i].Release()
	}
	s.h = common.Header[Text]{}
	s.consumed = true
}

func (s *Sequence) Len() int { return s.h.Len }
func (s *Sequence) Cap() int { return s.h.Cap() }

// All yields each index and element in order. Elements stay owned by s.
func (s *Sequence) All() iter.Seq2[int, Text] {
	return func(yield func(int, Text) bool) {
		for i := 0; i < s.h.Len; i++ {
			if !yield(i, s.h.Data[i]) {
				return
			}
		}
	}
}

// Strings copies every element out as a string.
func (s *Sequence) Strings() []string {
	out := make([]string, 0, s.h.Len)
	for _, t := range s.All() {
		out = append(out, t.String())
	}
	return out
}

// String renders s as ["a", "b", ""] for diagnostics.
func (s *Sequence) String() string {
	var b Buffer
	_ = b.AppendByte('[')
	for i, t := range s.All() {
		if i > 0 {
			_ = b.Append(", ")
		}
		_ = b.AppendByte('"')
		_ = b.AppendText(t)
		_ = b.AppendByte('"')
	}
	_ = b.AppendByte(']')
	return b.String()
}

func (s *Sequence) MarshalYAML() (any, error) {
	if s.consumed {
		return nil, ErrConsumed
	}
	return s.Strings(), nil
}

// UnmarshalYAML replaces the content of s with a YAML list of strings.
func (s *Sequence) UnmarshalYAML(value *yaml.Node) error {
	var items []string
	if err := value.Decode(&items); err != nil {
		return errors.Wrap(err, "decode text sequence")
	}
	if !s.consumed {
		s.Release()
	}
	*s = Sequence{}
	for _, item := range items {
		if err := s.Append(TextFrom(item)); err != nil {
			return err
		}
	}
	return nil
}
