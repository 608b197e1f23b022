package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bastiangx/rhymeserve/pkg/search"
	"github.com/cheynewallace/tabby"
)

// PrintResults renders matches as an aligned table: word, pronunciation,
// stress pattern, similarity score and the first definition if any.
// Similarity stays blank for filter-only searches that never computed one.
func PrintResults(w io.Writer, results []search.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	t := tabby.NewCustom(tw)
	t.AddHeader("WORD", "PRONUNCIATION", "STRESS", "SIMILARITY", "DEFINITION")
	for _, r := range results {
		sim := ""
		if r.Similarity != nil {
			sim = fmt.Sprintf("%.2f", *r.Similarity)
		}
		def := ""
		if len(r.Definitions) > 0 {
			def = r.Definitions[0].Text
		}
		t.AddLine(r.Word, r.Pronunciation, r.StressPattern, sim, def)
	}
	t.Print()
}
