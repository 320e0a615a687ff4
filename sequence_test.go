package fiesta

import (
	"fmt"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/fiesta/internal/common"
)

func sequenceOfStrings(t *testing.T, items ...string) *Sequence {
	t.Helper()
	seq := NewSequence()
	for _, item := range items {
		require.NoError(t, seq.Append(TextFrom(item)))
	}
	return seq
}

func TestSequenceAppendGet(t *testing.T) {
	seq := NewSequence()
	for i := 0; i < 30; i++ {
		require.NoError(t, seq.Append(TextFrom(fmt.Sprintf("item-%d", i))))
	}
	require.Equal(t, 30, seq.Len())
	require.Greater(t, seq.Cap(), seq.Len())
	for i := 0; i < 30; i++ {
		got, err := seq.Get(i)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("item-%d", i), got.String())
	}
}

func TestSequenceZeroValue(t *testing.T) {
	var seq Sequence
	require.NoError(t, seq.Append(TextFrom("a")))
	assert.Equal(t, []string{"a"}, seq.Strings())
	assert.Equal(t, common.BaseSize, seq.Cap())
}

func TestSequenceGetOutOfRange(t *testing.T) {
	seq := sequenceOfStrings(t, "", "x")
	empty, err := seq.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = seq.Get(2)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = seq.Get(-1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSequenceRemove(t *testing.T) {
	seq := sequenceOfStrings(t, "a", "b", "c", "d")
	capBefore := seq.Cap()

	got, err := seq.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", got.String())
	assert.Equal(t, []string{"a", "c", "d"}, seq.Strings())
	assert.Equal(t, capBefore-1, seq.Cap())
	for _, tail := range seq.h.Data[seq.Len():] {
		assert.True(t, tail.Released())
	}

	got, err = seq.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, "d", got.String())
	assert.Equal(t, []string{"a", "c"}, seq.Strings())

	got, err = seq.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.String())
	assert.Equal(t, []string{"c"}, seq.Strings())

	got, err = seq.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, "c", got.String())
	assert.Equal(t, 0, seq.Len())
	assert.Equal(t, common.BaseSize, seq.Cap())

	_, err = seq.Remove(0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSequenceRemoveLeavesSurvivorIntact(t *testing.T) {
	seq := sequenceOfStrings(t, "keep", "drop")
	got, err := seq.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "drop", got.String())
	kept, err := seq.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "keep", kept.String())
}

func TestSequenceRemoveProperty(t *testing.T) {
	condition := func(items []string, at uint8) bool {
		if len(items) == 0 {
			return true
		}
		i := int(at) % len(items)
		seq := sequenceOfStrings(t, items...)
		got, err := seq.Remove(i)
		require.NoError(t, err)
		if got.String() != items[i] || seq.Len() != len(items)-1 {
			return false
		}
		for j, s := range seq.Strings() {
			want := items[j]
			if j >= i {
				want = items[j+1]
			}
			if s != want {
				return false
			}
		}
		return true
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestSequenceJoin(t *testing.T) {
	seq := sequenceOfStrings(t, "a", "b", "c")
	joined, err := seq.Join(", ")
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", joined.String())

	_, err = seq.Join(",")
	require.ErrorIs(t, err, ErrConsumed)
	require.ErrorIs(t, seq.Append(TextFrom("x")), ErrConsumed)
	_, err = seq.Get(0)
	require.ErrorIs(t, err, ErrConsumed)
	_, err = seq.Remove(0)
	require.ErrorIs(t, err, ErrConsumed)
	assert.Equal(t, 0, seq.Len())

	one := sequenceOfStrings(t, "solo")
	joined, err = one.Join("-")
	require.NoError(t, err)
	assert.Equal(t, "solo", joined.String())

	empty, err := NewSequence().Join("-")
	require.NoError(t, err)
	assert.Equal(t, "", empty.String())
}

func TestSequenceJoinReleasesElements(t *testing.T) {
	elems := []Text{TextFrom("x"), TextFrom("y")}
	seq, err := SequenceOf(elems...)
	require.NoError(t, err)
	data := seq.h.Data
	_, err = seq.Join("")
	require.NoError(t, err)
	assert.True(t, data[0].Released())
	assert.True(t, data[1].Released())
}

func TestSequenceOf(t *testing.T) {
	seq, err := SequenceOf(TextFrom("a"), TextFrom("b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seq.Strings())
	assert.Equal(t, common.BaseSize, seq.Cap())

	many := make([]Text, 20)
	for i := range many {
		many[i] = Char(byte('a' + i))
	}
	seq, err = SequenceOf(many...)
	require.NoError(t, err)
	assert.Equal(t, 20, seq.Len())
	assert.Equal(t, 30, seq.Cap())
}

func TestSequenceString(t *testing.T) {
	seq, err := Split(TextFrom("Hello, Fiesta!"), ' ')
	require.NoError(t, err)
	assert.Equal(t, `["Hello,", "Fiesta!"]`, seq.String())

	trailing, err := Split(TextFrom("a,b,"), ',')
	require.NoError(t, err)
	assert.Equal(t, `["a", "b", ""]`, trailing.String())
	assert.Equal(t, "[]", NewSequence().String())
}

func TestSequenceAllStopsEarly(t *testing.T) {
	seq := sequenceOfStrings(t, "a", "b", "c")
	var seen []string
	for i, txt := range seq.All() {
		seen = append(seen, txt.String())
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestSequenceYAML(t *testing.T) {
	type fixture struct {
		Words *Sequence `yaml:"words"`
	}
	in := fixture{Words: sequenceOfStrings(t, "alpha", "", "gamma")}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, "words:\n    - alpha\n    - \"\"\n    - gamma\n", string(data))

	var out fixture
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.NotNil(t, out.Words)
	assert.Equal(t, []string{"alpha", "", "gamma"}, out.Words.Strings())

	err = yaml.Unmarshal([]byte("words: {a: b}"), &out)
	require.Error(t, err)
}

func BenchmarkSequenceAppendRemove(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seq := NewSequence()
		for j := 0; j < 64; j++ {
			_ = seq.Append(Char('x'))
		}
		for seq.Len() > 0 {
			_, _ = seq.Remove(0)
		}
	}
}
