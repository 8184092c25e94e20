package romanize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEmptyInput(t *testing.T) {
	local := fakeLocal()
	out, err := local.Romanize("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestLocalTimestampOnlyLine(t *testing.T) {
	local := fakeLocal()
	out, err := local.Romanize("[00:05.00]")
	require.NoError(t, err)
	assert.Equal(t, "[00:05.00]", out)
}

func TestLocalTimestampLineNoSpaceAfterBracket(t *testing.T) {
	local := fakeLocal(Morpheme{Surface: "空", Reading: "sora", POS: POSNoun})
	out, err := local.Romanize("[01:23.45]空")
	require.NoError(t, err)
	assert.Equal(t, "[01:23.45]Sora", out)
}

func TestLocalSkipsEmptyMorphemes(t *testing.T) {
	local := fakeLocal(
		Morpheme{Surface: "", Reading: "", POS: POSOther},
		Morpheme{Surface: "空", Reading: "sora", POS: POSNoun},
	)
	out, err := local.Romanize("空")
	require.NoError(t, err)
	assert.Equal(t, "Sora", out)
}

func TestLocalFallsBackToSurface(t *testing.T) {
	// Latin runs come back from the tokenizer with no reading; the
	// surface is transliterated as-is.
	local := fakeLocal(Morpheme{Surface: "hello", Reading: "", POS: POSOther})
	out, err := local.Romanize("hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestLocalMultiLinePreservesStructure(t *testing.T) {
	local := fakeLocal(Morpheme{Surface: "空", Reading: "sora", POS: POSNoun})
	in := "[ar:誰か]\n\n[00:01.00]空"
	out, err := local.Romanize(in)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[ar:誰か]", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "[00:01.00]Sora", lines[2])
}

func newKagomeLocal(t *testing.T) *Local {
	t.Helper()
	local, err := NewLocal()
	require.NoError(t, err)
	return local
}

func TestLocalKagomeGreeting(t *testing.T) {
	local := newKagomeLocal(t)

	out, err := local.Romanize("こんにちは世界")
	require.NoError(t, err)

	lower := strings.ToLower(out)
	assert.Contains(t, lower, "konnichiwa")
	assert.Contains(t, lower, "sekai")
	assert.NotContains(t, out, "\n")
}

func TestLocalKagomeLrcLines(t *testing.T) {
	local := newKagomeLocal(t)

	in := strings.Join([]string{
		"[00:12.00]君の声が聞こえる",
		"[00:15.50]夜空に響く",
		"[00:19.00]星の歌",
	}, "\n")
	out, err := local.Romanize(in)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[00:12.00]"))
	assert.True(t, strings.HasPrefix(lines[1], "[00:15.50]"))
	assert.True(t, strings.HasPrefix(lines[2], "[00:19.00]"))
	for _, line := range lines {
		// No space between the timestamp and the lyric text.
		rest := line[strings.Index(line, "]")+1:]
		assert.NotEmpty(t, rest)
		assert.False(t, strings.HasPrefix(rest, " "), "line %q", line)
	}
}

func TestLocalKagomeParticles(t *testing.T) {
	local := newKagomeLocal(t)

	out, err := local.Romanize("私は歌を歌う")
	require.NoError(t, err)

	lower := strings.ToLower(out)
	assert.Contains(t, lower, "wa")
	assert.NotContains(t, lower, " ha ")
	assert.NotContains(t, lower, " wo ")
}

func TestLocalKagomeOutputIsLatin(t *testing.T) {
	local := newKagomeLocal(t)

	out, err := local.Romanize("桜が咲く")
	require.NoError(t, err)
	for _, r := range out {
		assert.Less(t, int(r), 0x3000, "unexpected CJK rune %q in %q", r, out)
	}
}
