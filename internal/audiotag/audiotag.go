// Package audiotag reads track metadata from audio files and manages
// the .lrc sidecar files that sit next to them.
package audiotag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

var ErrNoMetadata = errors.New("no readable metadata")

// Metadata is the subset of tags needed for a lyrics lookup.
type Metadata struct {
	Artist string
	Title  string
	Album  string
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
}

// IsAudioFile reports whether the path has a supported audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReadMetadata extracts artist/title/album tags from an audio file.
// Files with no tags fall back to the filename as the title.
func ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return Metadata{Title: stemOf(path)}, nil
		}
		return Metadata{}, fmt.Errorf("reading tags: %w", err)
	}

	meta := Metadata{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
	}
	if meta.Title == "" {
		meta.Title = stemOf(path)
	}
	return meta, nil
}

// FindLRC locates an existing .lrc sidecar for an audio file: first an
// exact stem match, then a case-insensitive scan of the directory.
func FindLRC(audioPath string) (string, bool) {
	exact := stemPath(audioPath) + ".lrc"
	if _, err := os.Stat(exact); err == nil {
		return exact, true
	}

	dir := filepath.Dir(audioPath)
	want := strings.ToLower(stemOf(audioPath) + ".lrc")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.ToLower(e.Name()) == want {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

// RomajiPath is where the romanized sidecar for an audio file goes.
func RomajiPath(audioPath string) string {
	return stemPath(audioPath) + "_romaji.lrc"
}

// WriteRomajiLRC writes the romanized lyrics next to the audio file.
func WriteRomajiLRC(audioPath, lyrics string) (string, error) {
	out := RomajiPath(audioPath)
	if !strings.HasSuffix(lyrics, "\n") {
		lyrics += "\n"
	}
	if err := os.WriteFile(out, []byte(lyrics), 0o644); err != nil {
		return "", fmt.Errorf("writing sidecar: %w", err)
	}
	return out, nil
}

func stemPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func stemOf(path string) string {
	return stemPath(filepath.Base(path))
}
