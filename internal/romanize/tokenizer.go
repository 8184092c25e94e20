package romanize

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Tokenizer segments text into an ordered morpheme sequence.
type Tokenizer interface {
	Tokenize(text string) ([]Morpheme, error)
}

// KagomeTokenizer adapts the kagome morphological analyzer with the IPA
// dictionary to the Morpheme model. Safe for concurrent use: kagome
// holds no per-call state.
type KagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

func NewKagomeTokenizer() (*KagomeTokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenizerUnavailable, err)
	}
	return &KagomeTokenizer{t: t}, nil
}

// IPA dictionary feature layout: 0 POS, 1-3 sub-POS, 4-5 conjugation,
// 6 base form, 7 reading, 8 pronunciation.
const (
	featPOS           = 0
	featPOSDetail     = 1
	featReading       = 7
	featPronunciation = 8
)

func (k *KagomeTokenizer) Tokenize(text string) ([]Morpheme, error) {
	tokens := k.t.Tokenize(text)
	morphemes := make([]Morpheme, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		features := tok.Features()
		m := Morpheme{Surface: tok.Surface, POS: classifyPOS(features)}
		if len(features) > featPOSDetail {
			m.POSDetail = features[featPOSDetail]
		}
		// The pronunciation feature reflects how the word is said
		// (トーキョー, not トウキョウ); fall back to the literal reading
		// for entries that lack one.
		if len(features) > featPronunciation && features[featPronunciation] != "*" {
			m.Reading = features[featPronunciation]
		} else if len(features) > featReading && features[featReading] != "*" {
			m.Reading = features[featReading]
		}
		morphemes = append(morphemes, m)
	}
	return morphemes, nil
}

func classifyPOS(features []string) PartOfSpeech {
	if len(features) <= featPOS {
		return POSOther
	}
	detail := ""
	if len(features) > featPOSDetail {
		detail = features[featPOSDetail]
	}
	switch features[featPOS] {
	case "助詞":
		return POSParticle
	case "助動詞":
		return POSAuxiliary
	case "動詞":
		if detail == "接尾" {
			return POSAuxiliary
		}
		return POSVerb
	case "形容詞":
		return POSAdjective
	case "名詞":
		if detail == "接尾" {
			return POSAuxiliary
		}
		return POSNoun
	}
	return POSOther
}
