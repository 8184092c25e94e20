package romanize

import "strings"

// joinTokens assembles one raw romaji line from corrected tokens,
// deciding per adjacent pair whether the boundary is a word break
// (single space) or an attachment (direct join). Fine particle spacing
// is the normalizer's job, not decided here.
func joinTokens(morphemes []Morpheme, tokens []RomanizedToken) string {
	var b strings.Builder
	last := -1
	for i, tok := range tokens {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		if last >= 0 && !joinsToPrevious(morphemes, tokens[last], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
		last = i
	}
	return b.String()
}

// joinsToPrevious reports whether cur attaches directly to prev with no
// space. This reconstructs inflected forms the tokenizer splits apart:
// te-form plus auxiliary, verb plus suffix, adjective-noun compounds.
func joinsToPrevious(morphemes []Morpheme, prev, cur RomanizedToken) bool {
	cm := morphemes[cur.MorphemeIndex]
	pm := morphemes[prev.MorphemeIndex]
	switch cm.POS {
	case POSAuxiliary:
		// Covers verb+auxiliary and adjective+auxiliary pairs.
		return true
	case POSAdjective:
		return pm.POS == POSNoun
	case POSNoun:
		return pm.POS == POSAdjective
	}
	// Particles and independent content words stand alone.
	return false
}
