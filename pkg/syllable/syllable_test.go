package syllable

import (
	"slices"
	"testing"

	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

func render(syllables []Syllable) [][]string {
	out := make([][]string, len(syllables))
	for i, s := range syllables {
		out[i] = []string{phonetic.Join(s.Onset), string(s.Nucleus), phonetic.Join(s.Coda)}
	}
	return out
}

func TestSplit(t *testing.T) {
	cases := []struct {
		name string
		text string
		want [][]string
	}{
		{
			"cat", "K AE1 T",
			[][]string{{"K", "AE1", "T"}},
		},
		{
			"spider", "S P AY1 D ER0",
			[][]string{{"S P", "AY1", ""}, {"D", "ER0", ""}},
		},
		{
			"about", "AH0 B AW1 T",
			[][]string{{"", "AH0", ""}, {"B", "AW1", "T"}},
		},
		{
			"battle", "B AE1 T AH0 L",
			[][]string{{"B", "AE1", ""}, {"T", "AH0", "L"}},
		},
		{
			"amazing", "AH0 M EY1 Z IH0 NG",
			[][]string{{"", "AH0", ""}, {"M", "EY1", ""}, {"Z", "IH0", "NG"}},
		},
		{
			// K S T R between vowels: S T R is the longest legal onset,
			// K stays in the coda.
			"extra", "EH1 K S T R AH0",
			[][]string{{"", "EH1", "K"}, {"S T R", "AH0", ""}},
		},
		{
			// N G is not a legal cluster, only G moves forward.
			"finger", "F IH1 NG G ER0",
			[][]string{{"F", "IH1", "NG"}, {"G", "ER0", ""}},
		},
		{
			"empty", "",
			nil,
		},
		{
			"no vowels", "K T S",
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := render(Split(phonetic.Tokens(tc.text)))
			if len(got) != len(tc.want) {
				t.Fatalf("Split(%q) = %v, want %v", tc.text, got, tc.want)
			}
			for i := range got {
				if !slices.Equal(got[i], tc.want[i]) {
					t.Errorf("syllable %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSplitLossless(t *testing.T) {
	words := []string{
		"K AE1 T",
		"S P AY1 D ER0",
		"AH0 B AW1 T",
		"B AE1 T AH0 L",
		"AH0 M EY1 Z IH0 NG",
		"EH1 K S T R AH0",
		"S T R EH1 NG TH S",
		"K AA2 N S T AH0 T UW1 SH AH0 N",
	}
	for _, text := range words {
		phonemes := phonetic.Tokens(text)
		var joined []phonetic.Phoneme
		for _, s := range Split(phonemes) {
			joined = append(joined, s.Phonemes()...)
		}
		if !slices.Equal(joined, phonemes) {
			t.Errorf("lossless violated for %q: got %v", text, joined)
		}
	}
}

func TestSyllableStress(t *testing.T) {
	syllables := Split(phonetic.Tokens("S P AY1 D ER0"))
	if len(syllables) != 2 {
		t.Fatalf("expected 2 syllables, got %d", len(syllables))
	}
	if syllables[0].Stress() != '1' {
		t.Errorf("first stress = %c, want 1", syllables[0].Stress())
	}
	if syllables[1].Stress() != '0' {
		t.Errorf("second stress = %c, want 0", syllables[1].Stress())
	}
}

func TestSyllabifierCache(t *testing.T) {
	sf := New(16)
	pron := phonetic.FromText("S P AY1 D ER0")
	first := sf.Syllabify(pron)
	second := sf.Syllabify(pron)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("unexpected syllable counts: %d, %d", len(first), len(second))
	}
	if sf.Len() != 1 {
		t.Errorf("cache Len = %d, want 1", sf.Len())
	}
	sf.SyllabifyText("K AE1 T")
	if sf.Len() != 2 {
		t.Errorf("cache Len = %d, want 2", sf.Len())
	}
}

func TestSyllabifierDefaultSize(t *testing.T) {
	sf := New(0)
	if got := sf.SyllabifyText("K AE1 T"); len(got) != 1 {
		t.Fatalf("SyllabifyText = %d syllables, want 1", len(got))
	}
}

func BenchmarkSyllabify(b *testing.B) {
	sf := New(DefaultCacheSize)
	pron := phonetic.FromText("K AA2 N S T AH0 T UW1 SH AH0 N AH0 L IH0 T IY0")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sf.Syllabify(pron)
	}
}

func BenchmarkSplit(b *testing.B) {
	phonemes := phonetic.Tokens("K AA2 N S T AH0 T UW1 SH AH0 N AH0 L IH0 T IY0")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Split(phonemes)
	}
}
