package romanize

import "strings"

// Local is the tokenizer-driven romanization pipeline: morpheme
// transliteration, phonetic correction, part-of-speech joining, and
// spacing normalization, with LRC timestamps carried through intact.
//
// A Local instance holds only the reusable tokenizer and
// transliterator; calls are independent and safe to run concurrently.
type Local struct {
	tokenizer      Tokenizer
	transliterator Transliterator
}

// NewLocal builds the pipeline over kagome and the kana transliterator.
func NewLocal() (*Local, error) {
	t, err := NewKagomeTokenizer()
	if err != nil {
		return nil, err
	}
	return &Local{tokenizer: t, transliterator: KanaTransliterator{}}, nil
}

// NewLocalWith builds a pipeline over explicit implementations.
func NewLocalWith(t Tokenizer, tr Transliterator) *Local {
	return &Local{tokenizer: t, transliterator: tr}
}

// Romanize converts Japanese text to Hepburn romaji. Multi-line input
// is processed line by line, preserving line order and blank lines;
// LRC ID-tag lines pass through unchanged.
func (l *Local) Romanize(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if !strings.Contains(text, "\n") {
		return l.romanizeLine(text)
	}

	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || isMetaLine(strings.TrimSpace(line)) {
			out[i] = line
			continue
		}
		s, err := l.romanizeLine(line)
		if err != nil {
			return "", err
		}
		out[i] = s
	}
	return CleanTimestamps(strings.Join(out, "\n")), nil
}

func (l *Local) romanizeLine(line string) (string, error) {
	parsed := ParseLrcLine(strings.TrimSpace(line))
	if parsed.Timestamp == "" {
		return l.romanizeText(parsed.Payload)
	}
	payload := strings.TrimSpace(parsed.Payload)
	if payload == "" {
		return parsed.Timestamp, nil
	}
	romanized, err := l.romanizeText(payload)
	if err != nil {
		return "", err
	}
	return CleanTimestamps(parsed.Timestamp + " " + romanized), nil
}

// romanizeText runs the per-morpheme pipeline over one payload.
func (l *Local) romanizeText(text string) (string, error) {
	morphemes, err := l.tokenizer.Tokenize(text)
	if err != nil {
		return "", err
	}

	tokens := make([]RomanizedToken, 0, len(morphemes))
	for i, m := range morphemes {
		reading := m.Reading
		if reading == "" {
			// Symbols and unannotated runs transliterate from the
			// surface directly.
			reading = m.Surface
		}
		if reading == "" {
			continue
		}
		romaji := correctPhonetics(l.transliterator.ToRomaji(reading))
		if strings.TrimSpace(romaji) == "" {
			continue
		}
		tokens = append(tokens, RomanizedToken{Text: romaji, MorphemeIndex: i})
	}

	return normalizeLine(joinTokens(morphemes, tokens)), nil
}
