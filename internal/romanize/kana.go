package romanize

import (
	"regexp"
	"strings"

	"github.com/gojp/kana"
)

// Transliterator converts a kana string to its base Latin (Hepburn)
// form. Phonetic correction is layered on top, not the transliterator's
// job.
type Transliterator interface {
	ToRomaji(kana string) string
}

// KanaTransliterator wraps gojp/kana. The dictionary's pronunciation
// field writes long vowels with the chōonpu (ー), which the base
// converter does not fold into the preceding vowel, so that glue lives
// here, along with a Hepburn fix for the moraic n.
type KanaTransliterator struct{}

func (KanaTransliterator) ToRomaji(s string) string {
	return collapseMoraicN(lengthenChoonpu(kana.KanaToRomaji(s)))
}

var choonpu = strings.NewReplacer(
	"aー", "ā", "iー", "ī", "uー", "ū", "eー", "ē", "oー", "ō",
	"a-", "ā", "i-", "ī", "u-", "ū", "e-", "ē", "o-", "ō",
)

func lengthenChoonpu(s string) string {
	s = choonpu.Replace(s)
	// A chōonpu with no vowel to attach to carries no information.
	return strings.ReplaceAll(s, "ー", "")
}

var tripleN = regexp.MustCompile(`nnn+`)

// collapseMoraicN fixes the converter's rendering of ん before n-row
// kana: こんにちは comes back as "konnnichiwa" and みんな as "minnna".
// Hepburn writes the pair as a double n, never a triple.
func collapseMoraicN(s string) string {
	return tripleN.ReplaceAllString(s, "nn")
}
