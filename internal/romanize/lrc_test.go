package romanize

import (
	"strings"
	"testing"
)

func TestParseLrcLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantTimestamp string
		wantPayload   string
	}{
		{"dot separator", "[00:12.34]hello", "[00:12.34]", "hello"},
		{"comma separator", "[00:12,34]hello", "[00:12,34]", "hello"},
		{"three digit fraction", "[01:02.345]text", "[01:02.345]", "text"},
		{"bare timestamp", "[00:05.00]", "[00:05.00]", ""},
		{"plain line", "hello world", "", "hello world"},
		{"metadata tag", "[ar:Artist]", "", "[ar:Artist]"},
		{"single digit minutes not lrc", "[0:12.34]text", "", "[0:12.34]text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLrcLine(tt.input)
			if got.Timestamp != tt.wantTimestamp || got.Payload != tt.wantPayload {
				t.Errorf("ParseLrcLine(%q) = %+v, want timestamp %q payload %q",
					tt.input, got, tt.wantTimestamp, tt.wantPayload)
			}
		})
	}
}

func TestIsMetaLine(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"[ar:Artist Name]", true},
		{"[ti:Song Title]", true},
		{"[offset:500]", true},
		{"[00:12.34]lyric", false},
		{"[00:12.34]", false},
		{"plain text", false},
	}
	for _, tt := range tests {
		if got := isMetaLine(tt.input); got != tt.want {
			t.Errorf("isMetaLine(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCleanTimestamps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces inside brackets", "[ 00 : 01 . 61 ]", "[00:01.61]"},
		{"spaces inside and after", "[ 00 : 12 . 34 ]   text", "[00:12.34]text"},
		{"space after bracket", "[00:01.61]   text", "[00:01.61]text"},
		{"tab after bracket", "[00:01.61]\ttext", "[00:01.61]text"},
		{"comma separator preserved", "[ 00 : 01 , 61 ] text", "[00:01,61]text"},
		{"clean input untouched", "[00:01.61]text", "[00:01.61]text"},
		{"no timestamp", "plain line", "plain line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTimestamps(tt.input); got != tt.want {
				t.Errorf("CleanTimestamps(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanTimestampsPreservesNewlines(t *testing.T) {
	input := "[00:01.61]  line one\n[00:02.00]\n\n[00:03.00] line two"
	got := CleanTimestamps(input)
	if strings.Count(got, "\n") != strings.Count(input, "\n") {
		t.Fatalf("newline count changed: %q", got)
	}
	want := "[00:01.61]line one\n[00:02.00]\n\n[00:03.00]line two"
	if got != want {
		t.Errorf("CleanTimestamps = %q, want %q", got, want)
	}
}

func TestCleanTimestampsFixedPoint(t *testing.T) {
	inputs := []string{
		"[00:12.34]text\n[00:15.50]more",
		"[ 00 : 12 . 34 ]   text",
		"no timestamps at all",
	}
	for _, in := range inputs {
		once := CleanTimestamps(in)
		if twice := CleanTimestamps(once); twice != once {
			t.Errorf("CleanTimestamps not a fixed point for %q: %q vs %q", in, once, twice)
		}
	}
}
