package dictionary

import (
	"bufio"
	"io"
	"strings"
)

// ParseDefinitions reads tab separated definitions, one sense per
// line:
//
//	word<TAB>part-of-speech<TAB>definition[<TAB>example[<TAB>syn1,syn2…]]
//
// Lines starting with # are comments. Words and synonyms are lowered;
// underscores in synonyms become spaces.
func ParseDefinitions(r io.Reader) (map[string][]Definition, error) {
	defs := make(map[string][]Definition)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(fields[0]))
		if word == "" {
			continue
		}
		def := Definition{
			PartOfSpeech: strings.TrimSpace(fields[1]),
			Text:         strings.TrimSpace(fields[2]),
			Source:       "wordnet",
		}
		if len(fields) > 3 {
			def.Example = strings.TrimSpace(fields[3])
		}
		if len(fields) > 4 {
			for _, syn := range strings.Split(fields[4], ",") {
				syn = strings.ToLower(strings.TrimSpace(syn))
				syn = strings.ReplaceAll(syn, "_", " ")
				if syn != "" && syn != word {
					def.Synonyms = append(def.Synonyms, syn)
				}
			}
		}
		defs[word] = append(defs[word], def)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}
