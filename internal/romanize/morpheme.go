package romanize

// PartOfSpeech is the closed category set the joining policy
// dispatches on. Downstream rules are keyed to these exact categories.
type PartOfSpeech int

const (
	POSOther PartOfSpeech = iota
	POSParticle
	POSAuxiliary // auxiliary verb or attaching suffix
	POSVerb
	POSAdjective // adjective stem
	POSNoun
)

func (p PartOfSpeech) String() string {
	switch p {
	case POSParticle:
		return "particle"
	case POSAuxiliary:
		return "auxiliary"
	case POSVerb:
		return "verb"
	case POSAdjective:
		return "adjective"
	case POSNoun:
		return "noun"
	}
	return "other"
}

// Morpheme is one tokenizer-produced unit of text: the surface form as
// written, its phonetic reading in kana (empty for symbols the
// dictionary does not annotate), and its part-of-speech classification.
type Morpheme struct {
	Surface   string
	Reading   string
	POS       PartOfSpeech
	POSDetail string
}

// RomanizedToken is the corrected romaji for one morpheme, carrying the
// index of the morpheme that produced it so the joining policy can
// consult part-of-speech context.
type RomanizedToken struct {
	Text          string
	MorphemeIndex int
}
