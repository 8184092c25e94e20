package audiotag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.flac", true},
		{"song.m4a", true},
		{"song.opus", true},
		{"song.ogg", true},
		{"song.wav", false},
		{"song.lrc", false},
		{"song", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAudioFile(tt.path), "path %q", tt.path)
	}
}

func TestFindLRCExactMatch(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")
	lrc := filepath.Join(dir, "track.lrc")
	require.NoError(t, os.WriteFile(lrc, []byte("[00:01.00]line\n"), 0o644))

	got, ok := FindLRC(audio)
	require.True(t, ok)
	assert.Equal(t, lrc, got)
}

func TestFindLRCCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "My Track.mp3")
	lrc := filepath.Join(dir, "my track.LRC")
	require.NoError(t, os.WriteFile(lrc, []byte("[00:01.00]line\n"), 0o644))

	got, ok := FindLRC(audio)
	require.True(t, ok)
	assert.Equal(t, lrc, got)
}

func TestFindLRCMissing(t *testing.T) {
	dir := t.TempDir()
	_, ok := FindLRC(filepath.Join(dir, "track.mp3"))
	assert.False(t, ok)
}

func TestRomajiPath(t *testing.T) {
	assert.Equal(t, "/music/track_romaji.lrc", RomajiPath("/music/track.mp3"))
	assert.Equal(t, "song_romaji.lrc", RomajiPath("song.flac"))
}

func TestWriteRomajiLRC(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")

	out, err := WriteRomajiLRC(audio, "[00:01.00]Yume")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "track_romaji.lrc"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00]Yume\n", string(data))
}

func TestReadMetadataUntaggedFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "Untitled Song.mp3")
	// Raw MPEG audio data with no ID3 header or trailer.
	frames := make([]byte, 512)
	for i := range frames {
		frames[i] = 0xFF
	}
	require.NoError(t, os.WriteFile(audio, frames, 0o644))

	meta, err := ReadMetadata(audio)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Song", meta.Title)
	assert.Empty(t, meta.Artist)
}
