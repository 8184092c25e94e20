package romanize

import "regexp"

// LrcLine is one parsed line of LRC text. Timestamp is empty for
// plain/metadata lines.
type LrcLine struct {
	Timestamp string
	Payload   string
}

var (
	lrcLineRe = regexp.MustCompile(`^(\[\d{2}:\d{2}[.,]\d{2,3}\])(.*)$`)
	lrcMetaRe = regexp.MustCompile(`^\[[A-Za-z#][^\]]*\]\s*$`)

	bracketSpaceRe = regexp.MustCompile(`\[\s*(\d+)\s*:\s*(\d+)\s*([.,])\s*(\d+)\s*\]`)
	afterBracketRe = regexp.MustCompile(`(\[\d+:\d+[.,]\d+\])[ \t]+`)
)

// ParseLrcLine splits a timestamp-prefixed line into its bracket and
// payload. Lines without a leading timestamp come back with an empty
// Timestamp and the whole line as payload.
func ParseLrcLine(line string) LrcLine {
	if m := lrcLineRe.FindStringSubmatch(line); m != nil {
		return LrcLine{Timestamp: m[1], Payload: m[2]}
	}
	return LrcLine{Payload: line}
}

// isMetaLine reports whether a line is an LRC ID tag such as
// [ar:Artist] or [ti:Title]. Those pass through romanization untouched.
func isMetaLine(line string) bool {
	return lrcMetaRe.MatchString(line) && !lrcLineRe.MatchString(line)
}

// CleanTimestamps normalizes timestamp spacing in a block of text:
// first whitespace inside brackets ("[ 00 : 01 . 61 ]" becomes
// "[00:01.61]"), then horizontal whitespace directly after a bracket.
// Newlines are never consumed, and the pass is a no-op on already
// clean text.
func CleanTimestamps(text string) string {
	text = bracketSpaceRe.ReplaceAllString(text, "[$1:$2$3$4]")
	return afterBracketRe.ReplaceAllString(text, "$1")
}
