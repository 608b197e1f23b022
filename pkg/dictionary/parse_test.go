package dictionary

import (
	"slices"
	"strings"
	"testing"
)

const sampleCMU = `;;; cmudict test fixture
CAT  K AE1 T
ABOUT  AH0 B AW1 T
ABOUT(2)  AH0 B AW2 T
SPIDER  S P AY1 D ER0
not a dictionary line`

func TestParseCMU(t *testing.T) {
	records, stats, err := ParseCMU(strings.NewReader(sampleCMU))
	if err != nil {
		t.Fatalf("ParseCMU: %v", err)
	}
	if stats.Lines != 6 || stats.Parsed != 4 || stats.Skipped != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if records[0].Word != "cat" {
		t.Errorf("first word = %q, want lowercased cat", records[0].Word)
	}
	// pronunciation variants share the word id but not the record id
	if records[1].WordID != records[2].WordID {
		t.Errorf("variant word ids differ: %d vs %d", records[1].WordID, records[2].WordID)
	}
	if records[1].ID == records[2].ID {
		t.Errorf("variant record ids collide: %d", records[1].ID)
	}
	if got := records[3].PronunciationText(); got != "S P AY1 D ER0" {
		t.Errorf("pronunciation = %q", got)
	}
	if records[0].SyllableCount != 1 || records[0].RhymeKeys[0] != "AE1 T" {
		t.Errorf("features not derived: %+v", records[0])
	}
}

func TestParseDefinitions(t *testing.T) {
	sample := "# fixture\n" +
		"cat\tnoun\ta small feline\tthe cat sat\ttrue_cat,Felis\n" +
		"bat\tnoun\tflying mammal\n" +
		"\n" +
		"short\tline\n"
	defs, err := ParseDefinitions(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseDefinitions: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d words, want 2", len(defs))
	}
	cat := defs["cat"]
	if len(cat) != 1 {
		t.Fatalf("cat has %d definitions", len(cat))
	}
	if cat[0].PartOfSpeech != "noun" || cat[0].Text != "a small feline" {
		t.Errorf("cat definition = %+v", cat[0])
	}
	if cat[0].Example != "the cat sat" {
		t.Errorf("example = %q", cat[0].Example)
	}
	if !slices.Equal(cat[0].Synonyms, []string{"true cat", "felis"}) {
		t.Errorf("synonyms = %v", cat[0].Synonyms)
	}
	if cat[0].Source != "wordnet" {
		t.Errorf("source = %q", cat[0].Source)
	}
	bat := defs["bat"]
	if len(bat) != 1 || bat[0].Example != "" || bat[0].Synonyms != nil {
		t.Errorf("bat definition = %+v", bat)
	}
}
