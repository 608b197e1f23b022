package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/phonetic"
	"github.com/bastiangx/rhymeserve/pkg/rhyme"
	"github.com/bastiangx/rhymeserve/pkg/search"
	"github.com/vmihailenco/msgpack/v5"
)

func serverOver(t *testing.T, in *bytes.Buffer) (*Server, *bytes.Buffer) {
	t.Helper()
	s := dictionary.NewStore()
	add := func(id, wordID int64, word, pron string) {
		s.Add(dictionary.NewRecord(id, wordID, word, phonetic.Tokens(pron)))
	}
	add(1, 1, "cat", "K AE1 T")
	add(2, 2, "bat", "B AE1 T")
	add(3, 3, "hat", "HH AE1 T")
	add(4, 4, "battle", "B AE1 T AH0 L")
	s.SetDefinitions(1, []dictionary.Definition{
		{PartOfSpeech: "noun", Text: "a small domesticated feline", Synonyms: []string{"true cat"}},
	})

	engine := search.NewEngine(s, search.Config{})
	assistant := rhyme.New(s, engine)
	out := &bytes.Buffer{}
	return NewServer(s, engine, assistant, in, out), out
}

func encodeRequests(t *testing.T, reqs ...Request) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	enc := msgpack.NewEncoder(buf)
	for _, req := range reqs {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	return buf
}

func decodeInto(t *testing.T, dec *msgpack.Decoder, v any) {
	t.Helper()
	if err := dec.Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestServerSession(t *testing.T) {
	in := encodeRequests(t,
		Request{ID: "p1", Op: "ping"},
		Request{ID: "s1", Op: "search", Query: "AE1 T", Limit: 2},
		Request{ID: "w1", Op: "word", Query: "CAT"},
		Request{ID: "r1", Op: "rhymes", Query: "the cat"},
		Request{ID: "x1", Op: "teleport"},
		Request{ID: "e1", Op: "search", Query: "(", Type: "phonemes", Regex: true},
		Request{ID: "t1", Op: "search", Query: "AE1 T", Type: "soundex"},
		Request{ID: "w2", Op: "word", Query: "zzznope"},
	)
	srv, out := serverOver(t, in)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(out)

	var ready StatusResponse
	decodeInto(t, dec, &ready)
	if ready.Status != "ready" {
		t.Fatalf("ready frame = %+v", ready)
	}

	var pong StatusResponse
	decodeInto(t, dec, &pong)
	if pong.ID != "p1" || pong.Status != "ok" {
		t.Errorf("pong = %+v", pong)
	}

	var sr SearchResponse
	decodeInto(t, dec, &sr)
	if sr.ID != "s1" || sr.Count != 2 {
		t.Fatalf("search response = %+v", sr)
	}
	if sr.Matches[0].Word != "bat" || sr.Matches[1].Word != "cat" {
		t.Errorf("matches = %+v", sr.Matches)
	}
	if sr.Matches[0].Pronunciation != "B AE1 T" || sr.Matches[0].RhymeKey != "AE1 T" {
		t.Errorf("match row = %+v", sr.Matches[0])
	}

	var wr WordResponse
	decodeInto(t, dec, &wr)
	if wr.ID != "w1" || wr.Word != "cat" || len(wr.Variants) != 1 {
		t.Fatalf("word response = %+v", wr)
	}
	if wr.Variants[0].Pronunciation != "K AE1 T" || wr.Variants[0].Stress != "1" {
		t.Errorf("variant = %+v", wr.Variants[0])
	}
	if len(wr.Definitions) != 1 || wr.Definitions[0].Text != "a small domesticated feline" {
		t.Errorf("definitions = %+v", wr.Definitions)
	}

	var rr RhymesResponse
	decodeInto(t, dec, &rr)
	if rr.ID != "r1" || len(rr.Buckets) != 1 || rr.Buckets[0].Syllables != 1 {
		t.Fatalf("rhymes response = %+v", rr)
	}
	if len(rr.Buckets[0].Matches) != 2 || rr.Buckets[0].Matches[0].Word != "bat" {
		t.Errorf("bucket matches = %+v", rr.Buckets[0].Matches)
	}

	var unknownOp RequestError
	decodeInto(t, dec, &unknownOp)
	if unknownOp.ID != "x1" || unknownOp.Code != 400 {
		t.Errorf("unknown op = %+v", unknownOp)
	}

	var badPattern RequestError
	decodeInto(t, dec, &badPattern)
	if badPattern.ID != "e1" || badPattern.Code != 400 {
		t.Errorf("bad pattern = %+v", badPattern)
	}

	var badType RequestError
	decodeInto(t, dec, &badType)
	if badType.ID != "t1" || badType.Code != 400 {
		t.Errorf("bad type = %+v", badType)
	}

	var missingWord RequestError
	decodeInto(t, dec, &missingWord)
	if missingWord.ID != "w2" || missingWord.Code != 404 {
		t.Errorf("missing word = %+v", missingWord)
	}
}

// A frame that fails to decode ends the session without an error so
// supervisors restart cleanly.
func TestServerMalformedFrame(t *testing.T) {
	in := encodeRequests(t, Request{ID: "p1", Op: "ping"})
	in.WriteByte(0xc1) // never a valid msgpack code
	srv, out := serverOver(t, in)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(out)
	var ready, pong StatusResponse
	decodeInto(t, dec, &ready)
	decodeInto(t, dec, &pong)
	if pong.ID != "p1" || pong.Status != "ok" {
		t.Errorf("pong = %+v", pong)
	}
}
