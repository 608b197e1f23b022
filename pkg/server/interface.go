/*
Package server implements msgpack IPC for phonetic search services.

The server provides a minimal interface for pattern searches, word
lookups and rhyme suggestions using msgpack serialization over
stdin/stdout.

Each request carries an ID, an op selector and the fields that op
needs. Messages are processed synchronously, one request at a time,
with timing info included in responses.

A search request mirrors the engine's SearchOptions:

	{"id": "req_001", "op": "search", "q": "AE1 T", "type": "rhyme", "l": 10}

The server responds with ranked matches:

	{"id": "req_001", "m": [{"w": "bat", ...}, {"w": "cat", ...}], "c": 2, "t": 145}

Word lookups return every pronunciation variant plus definitions:

	{"id": "w_001", "op": "word", "q": "lead"}

Rhyme suggestions run the assistant over the final word of a line:

	{"id": "r_001", "op": "rhymes", "q": "the cat sat on the mat", "maxsyl": 2}

"ping" answers with a status frame and is meant for editor healthchecks.

Malformed frames are logged and terminate the session; clients restart
the process to recover.
*/
package server

// Request is an incoming frame. Op selects the operation: "search",
// "word", "rhymes" or "ping". Fields beyond ID, Op and Query apply to
// search and rhymes requests only.
type Request struct {
	ID            string   `msgpack:"id"`
	Op            string   `msgpack:"op"`
	Query         string   `msgpack:"q,omitempty"`
	Type          string   `msgpack:"type,omitempty"`
	Syllables     int      `msgpack:"syl,omitempty"`
	Regex         bool     `msgpack:"re,omitempty"`
	Contains      bool     `msgpack:"in,omitempty"`
	MaxDistance   *int     `msgpack:"dist,omitempty"`
	MinSimilarity *float64 `msgpack:"sim,omitempty"`
	Stress        string   `msgpack:"stress,omitempty"`
	IgnoreStress  bool     `msgpack:"nostress,omitempty"`
	PartOfSpeech  string   `msgpack:"pos,omitempty"`
	Definition    string   `msgpack:"def,omitempty"`
	Synonym       string   `msgpack:"syn,omitempty"`
	Limit         int      `msgpack:"l,omitempty"`
	MaxSyllables  int      `msgpack:"maxsyl,omitempty"`
}

// Match is one result row on the wire.
type Match struct {
	Word          string   `msgpack:"w"`
	Pronunciation string   `msgpack:"ph"`
	Syllables     int      `msgpack:"sc"`
	Stress        string   `msgpack:"st"`
	Similarity    *float64 `msgpack:"sim,omitempty"`
	RhymeKey      string   `msgpack:"rk,omitempty"`
}

// SearchResponse answers op=search. TimeTaken is in microseconds.
type SearchResponse struct {
	ID        string  `msgpack:"id"`
	Matches   []Match `msgpack:"m"`
	Count     int     `msgpack:"c"`
	TimeTaken int64   `msgpack:"t"`
}

// WordDefinition is a definition row on the wire.
type WordDefinition struct {
	PartOfSpeech string   `msgpack:"pos,omitempty"`
	Text         string   `msgpack:"d"`
	Synonyms     []string `msgpack:"syn,omitempty"`
}

// WordVariant is one pronunciation of a word.
type WordVariant struct {
	Pronunciation string `msgpack:"ph"`
	Syllables     int    `msgpack:"sc"`
	Stress        string `msgpack:"st"`
}

// WordResponse answers op=word. Definitions belong to the word, not to
// a particular variant.
type WordResponse struct {
	ID          string           `msgpack:"id"`
	Word        string           `msgpack:"w"`
	Variants    []WordVariant    `msgpack:"v"`
	Definitions []WordDefinition `msgpack:"defs,omitempty"`
}

// RhymeBucket groups matches for one syllable depth.
type RhymeBucket struct {
	Syllables int     `msgpack:"syl"`
	Matches   []Match `msgpack:"m"`
}

// RhymesResponse answers op=rhymes, deepest bucket first.
type RhymesResponse struct {
	ID        string        `msgpack:"id"`
	Buckets   []RhymeBucket `msgpack:"b"`
	TimeTaken int64         `msgpack:"t"`
}

// StatusResponse answers op=ping and announces session readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// RequestError holds basic error information for failed requests
type RequestError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
