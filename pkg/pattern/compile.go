package pattern

import (
	"strings"
	"unicode"

	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

// singleConsonantLetters are the one-letter ARPABET consonant symbols.
// Used to read an unseparated run like [STR] as S, T, R.
const singleConsonantLetters = "BDFGKLMNPRSTVWYZ"

// Compile parses a pattern string into its element sequence. Errors
// are always *SyntaxError and leave no partial result.
func Compile(text string) (*Pattern, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(tokens))
	for _, token := range tokens {
		switch token {
		case "*":
			elements = append(elements, Element{Kind: ElementWildcardSyllable})
		case "**":
			elements = append(elements, Element{Kind: ElementWildcardSequence})
		default:
			sp, err := parseSyllableToken(token)
			if err != nil {
				return nil, err
			}
			elements = append(elements, Element{Kind: ElementSyllable, Syllable: sp})
		}
	}
	return &Pattern{Elements: elements, Source: text}, nil
}

// tokenize splits the pattern on whitespace outside brackets.
func tokenize(text string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	depth := 0
	for _, r := range strings.TrimSpace(text) {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth == 0 {
				return nil, &SyntaxError{Kind: ErrUnmatchedBracket, Token: text}
			}
			depth--
		}
		if unicode.IsSpace(r) && depth == 0 {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	if depth != 0 {
		return nil, &SyntaxError{Kind: ErrUnmatchedBracket, Token: text}
	}
	return tokens, nil
}

func parseSyllableToken(token string) (SyllablePattern, error) {
	core := strings.TrimSpace(token)
	if core == "" {
		return SyllablePattern{}, &SyntaxError{Kind: ErrEmptySegment, Token: token}
	}
	dash := indexOutsideBrackets(core, '-')
	if dash < 0 {
		return SyllablePattern{}, &SyntaxError{Kind: ErrMissingDash, Token: token}
	}
	rest := core[dash+1:]
	vowelText := rest
	codaText := ""
	hasCoda := false
	if slash := indexOutsideBrackets(rest, '/'); slash >= 0 {
		vowelText = rest[:slash]
		codaText = rest[slash+1:]
		hasCoda = true
	}

	onset, err := parseComponent(core[:dash], token)
	if err != nil {
		return SyllablePattern{}, err
	}
	coda := ComponentPattern{Kind: ComponentAny}
	if hasCoda {
		if coda, err = parseComponent(codaText, token); err != nil {
			return SyllablePattern{}, err
		}
	}
	vowel, stress, err := parseVowelPattern(vowelText, token)
	if err != nil {
		return SyllablePattern{}, err
	}
	return SyllablePattern{Onset: onset, Vowel: vowel, Coda: coda, Stress: stress}, nil
}

// indexOutsideBrackets returns the first index of sep at bracket depth
// zero, or -1.
func indexOutsideBrackets(text string, sep byte) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseComponent compiles onset/coda text. Empty text and the markers
// Ø, 0, none and null require the cluster to be empty.
func parseComponent(text, token string) (ComponentPattern, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return ComponentPattern{Kind: ComponentEmpty}, nil
	}
	normalized := normalizeComponentText(stripOuterBrackets(raw))
	switch strings.ToUpper(normalized) {
	case "", "Ø", "0", "NONE", "NULL":
		return ComponentPattern{Kind: ComponentEmpty}, nil
	}
	parts, err := splitComponentTokens(normalized, token)
	if err != nil {
		return ComponentPattern{}, err
	}
	compiled := make([]TokenPattern, 0, len(parts))
	for _, part := range parts {
		switch {
		case part == "*":
			compiled = append(compiled, TokenPattern{Kind: TokenStar})
		case part == "?":
			compiled = append(compiled, TokenPattern{Kind: TokenAny})
		case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]"):
			alts, err := parseChoiceBlock(part, token)
			if err != nil {
				return ComponentPattern{}, err
			}
			compiled = append(compiled, TokenPattern{Kind: TokenSet, Alts: alts})
		default:
			compiled = append(compiled, TokenPattern{Kind: TokenLiteral, Literal: phonetic.Phoneme(part)})
		}
	}
	return ComponentPattern{Kind: ComponentTokens, Tokens: compiled}, nil
}

// stripOuterBrackets removes one [..] or (..) pair wrapping the whole
// text.
func stripOuterBrackets(text string) string {
	s := strings.TrimSpace(text)
	if len(s) >= 2 {
		if (s[0] == '[' && s[len(s)-1] == ']') || (s[0] == '(' && s[len(s)-1] == ')') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// normalizeComponentText maps the alternate separators to spaces and
// collapses runs.
func normalizeComponentText(text string) string {
	cleaned := strings.NewReplacer("_", " ", ".", " ", "+", " ").Replace(text)
	return strings.Join(strings.Fields(cleaned), " ")
}

// splitComponentTokens splits on whitespace outside [..] blocks.
func splitComponentTokens(text, token string) ([]string, error) {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return nil, &SyntaxError{Kind: ErrUnmatchedBracket, Token: token}
			}
			depth--
		}
		if unicode.IsSpace(r) && depth == 0 {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if depth != 0 {
		return nil, &SyntaxError{Kind: ErrUnmatchedBracket, Token: token}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts, nil
}

// parseChoiceBlock reads a [..] alternative set. Inner text splits on
// the usual separators; an unseparated uppercase run splits per letter
// when every letter is a single-consonant symbol, so [STR] means S, T,
// R while [ABC] stays one literal.
func parseChoiceBlock(block, token string) ([]phonetic.Phoneme, error) {
	inner := strings.TrimSpace(block[1 : len(block)-1])
	if inner == "" {
		return nil, &SyntaxError{Kind: ErrEmptyAlternatives, Token: token}
	}
	var pieces []string
	var current strings.Builder
	for _, r := range inner {
		if r == ',' || r == '|' || r == '_' || r == '.' || r == '+' || unicode.IsSpace(r) {
			if current.Len() > 0 {
				pieces = append(pieces, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}
	if len(pieces) > 0 {
		if len(pieces) == 1 && pieces[0] == inner {
			if letters, ok := splitConsonantRun(inner); ok {
				return letters, nil
			}
		}
		return toPhonemes(pieces), nil
	}
	if letters, ok := splitConsonantRun(inner); ok {
		return letters, nil
	}
	return []phonetic.Phoneme{phonetic.Phoneme(inner)}, nil
}

// splitConsonantRun splits text into per-letter phonemes when every
// letter is a single-consonant symbol.
func splitConsonantRun(text string) ([]phonetic.Phoneme, bool) {
	letters := make([]phonetic.Phoneme, 0, len(text))
	for _, r := range text {
		if !unicode.IsLetter(r) || !unicode.IsUpper(r) {
			return nil, false
		}
		if !strings.ContainsRune(singleConsonantLetters, r) {
			return nil, false
		}
		letters = append(letters, phonetic.Phoneme(string(r)))
	}
	return letters, len(letters) > 0
}

func toPhonemes(parts []string) []phonetic.Phoneme {
	out := make([]phonetic.Phoneme, len(parts))
	for i, p := range parts {
		out[i] = phonetic.Phoneme(p)
	}
	return out
}

// parseVowelPattern reads the vowel alternatives and an optional
// trailing stress block. A trailing {..} is always a stress filter; a
// trailing [..] is one only when its contents are purely stress
// symbols, otherwise it stays part of the vowel alternation.
func parseVowelPattern(text, token string) (VowelPattern, string, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, "", &SyntaxError{Kind: ErrEmptyVowel, Token: token}
	}
	core, stress, err := extractStress(raw, token)
	if err != nil {
		return nil, "", err
	}
	core = strings.TrimSpace(core)
	if core == "" {
		return nil, "", &SyntaxError{Kind: ErrEmptyVowel, Token: token}
	}
	alts := splitVowelAlternatives(stripOuterBrackets(core))
	if len(alts) == 0 {
		return nil, "", &SyntaxError{Kind: ErrEmptyVowel, Token: token}
	}
	vowel := make(VowelPattern, len(alts))
	for i, alt := range alts {
		alt = strings.ToUpper(alt)
		if !strings.ContainsAny(alt, "*?0123456789") {
			// plain symbols match any stress digit
			alt += "?"
		}
		vowel[i] = alt
	}
	return vowel, stress, nil
}

func splitVowelAlternatives(text string) []string {
	var alts []string
	var current strings.Builder
	for _, r := range text {
		if r == ',' || r == '|' || r == '_' || r == '.' || r == '+' || unicode.IsSpace(r) {
			if current.Len() > 0 {
				alts = append(alts, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		alts = append(alts, current.String())
	}
	return alts
}

// extractStress strips a trailing stress block from the vowel text and
// returns the accepted digits. Digits map directly; P, S and U mean
// primary, secondary and unstressed. An empty block or `{*}` leaves
// stress unconstrained.
func extractStress(text, token string) (core string, stress string, err error) {
	last := len(text) - 1
	var opener byte
	braces := false
	switch text[last] {
	case '}':
		opener, braces = '{', true
	case ']':
		opener = '['
	default:
		return text, "", nil
	}
	start := strings.LastIndexByte(text[:last], opener)
	if start < 0 {
		if braces {
			return "", "", &SyntaxError{Kind: ErrUnmatchedBracket, Token: token}
		}
		return text, "", nil
	}
	digits, ok := stressDigits(text[start+1 : last])
	if !ok {
		if braces {
			// braces are stress syntax only, so a bad symbol is an error
			return "", "", &SyntaxError{Kind: ErrBadStressSymbol, Token: token}
		}
		return text, "", nil
	}
	return text[:start], digits, nil
}

// stressDigits maps a stress block body to its digit set, reporting
// false when any symbol is not stress syntax.
func stressDigits(contents string) (string, bool) {
	trimmed := strings.TrimSpace(contents)
	if trimmed == "" || trimmed == "*" {
		return "", true
	}
	var digits []byte
	add := func(d byte) {
		for _, have := range digits {
			if have == d {
				return
			}
		}
		digits = append(digits, d)
	}
	for _, r := range trimmed {
		switch r {
		case '0', '1', '2':
			add(byte(r))
		case 'P', 'p':
			add('1')
		case 'S', 's':
			add('2')
		case 'U', 'u':
			add('0')
		case '|', ',':
		default:
			if unicode.IsSpace(r) {
				continue
			}
			return "", false
		}
	}
	return string(digits), true
}
