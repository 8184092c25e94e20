package romanize

import "strings"

// correctionRule is one plain substring rewrite. Rules live in ordered
// slices because later passes depend on substitutions made by earlier
// ones.
type correctionRule struct {
	from, to string
}

// Long vowels first: kana transliteration yields sequential vowel
// letters, Hepburn wants macrons.
var longVowelRules = []correctionRule{
	{"oo", "ō"},
	{"ou", "ō"},
	{"uu", "ū"},
	{"ei", "ē"},
}

// Common words that conventionally keep the spelled-out vowels.
// Applied after the macron pass so the macron forms introduced there
// are what we match against.
var noMacronExceptions = []correctionRule{
	{"unmē", "unmei"},
	{"sē", "sei"},
	{"ēen", "eien"},
	{"mē", "mei"},
	{"kē", "kei"},
	{"rē", "rei"},
	{"tē", "tei"},
}

// Known mistranscriptions observed in tokenizer output. Grown
// empirically against real lyrics; extend the table rather than
// deriving rules from grammar.
var pronunciationFixes = []correctionRule{
	{"mabataki", "matataki"},
	{"bai o", "hai o"},
	{"deha ", "dewa "},
	{"niha ", "niwa "},
	{"he ", "e "},
	{"wa kanai", "hakanai"},
	{"maru de wa kanai", "marude hakanai"},
	{"wa takushi", "watakushi"},
	{"hi ka re", "hikare"},
	{"su ga ta", "sugata"},
	{"shizu ka", "shizuka"},
}

// correctPhonetics rewrites one morpheme's raw romaji into corrected
// Hepburn form. The output stays ASCII except for macron vowels.
func correctPhonetics(s string) string {
	for _, r := range longVowelRules {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	for _, r := range noMacronExceptions {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	for _, r := range pronunciationFixes {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}
