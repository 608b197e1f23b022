package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/rhyme"
	"github.com/bastiangx/rhymeserve/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC over a byte stream, usually stdin/stdout.
type Server struct {
	store     *dictionary.Store
	engine    *search.Engine
	assistant *rhyme.Assistant
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
}

// NewServer creates a search server over the given streams.
func NewServer(store *dictionary.Store, engine *search.Engine, assistant *rhyme.Assistant, r io.Reader, w io.Writer) *Server {
	return &Server{
		store:     store,
		engine:    engine,
		assistant: assistant,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. The session ends when the
// client closes its end; a frame that fails to decode is logged and
// also terminates the session, since the stream position is no longer
// trustworthy after a partial read.
func (s *Server) Start() error {
	log.Debug("Starting IPC session")
	ctx := context.Background()

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client closed the session")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return nil
		}
		s.handleRequest(ctx, req)
	}
}

// handleRequest dispatches one decoded frame based on op.
func (s *Server) handleRequest(ctx context.Context, req Request) {
	log.Debug("Processing request", "id", req.ID, "op", req.Op)
	switch req.Op {
	case "search":
		s.handleSearch(ctx, req)
	case "word":
		s.handleWord(req)
	case "rhymes":
		s.handleRhymes(ctx, req)
	case "ping":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op), 400)
	}
}

func (s *Server) handleSearch(ctx context.Context, req Request) {
	if !validSearchType(req.Type) {
		s.sendError(req.ID, fmt.Sprintf("unknown search type: %q", req.Type), 400)
		return
	}
	start := time.Now()
	results, err := s.engine.Search(ctx, search.Options{
		Pattern:         req.Query,
		Type:            search.PatternType(req.Type),
		Syllables:       req.Syllables,
		Regex:           req.Regex,
		Contains:        req.Contains,
		MaxDistance:     req.MaxDistance,
		MinSimilarity:   req.MinSimilarity,
		StressPattern:   req.Stress,
		IgnoreStress:    req.IgnoreStress,
		PartOfSpeech:    req.PartOfSpeech,
		DefinitionQuery: req.Definition,
		SynonymQuery:    req.Synonym,
		Limit:           req.Limit,
	})
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	s.send(SearchResponse{
		ID:        req.ID,
		Matches:   toMatches(results),
		Count:     len(results),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleWord(req Request) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	records := s.store.Lookup(req.Query)
	if len(records) == 0 {
		s.sendError(req.ID, fmt.Sprintf("no pronunciations for %q", req.Query), 404)
		return
	}

	variants := make([]WordVariant, len(records))
	for i, rec := range records {
		variants[i] = WordVariant{
			Pronunciation: rec.PronunciationText(),
			Syllables:     rec.SyllableCount,
			Stress:        rec.StressPattern,
		}
	}

	wordID := records[0].WordID
	var defs []WordDefinition
	for _, d := range s.store.DefinitionsFor([]int64{wordID})[wordID] {
		defs = append(defs, WordDefinition{
			PartOfSpeech: d.PartOfSpeech,
			Text:         d.Text,
			Synonyms:     d.Synonyms,
		})
	}

	s.send(WordResponse{
		ID:          req.ID,
		Word:        records[0].Word,
		Variants:    variants,
		Definitions: defs,
	})
}

func (s *Server) handleRhymes(ctx context.Context, req Request) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	start := time.Now()
	buckets, err := s.assistant.SuggestRhymes(ctx, req.Query, rhyme.SuggestOptions{
		MaxSyllables:  req.MaxSyllables,
		MaxResults:    req.Limit,
		MaxDistance:   req.MaxDistance,
		MinSimilarity: req.MinSimilarity,
		PartOfSpeech:  req.PartOfSpeech,
	})
	if err != nil {
		s.sendError(req.ID, err.Error(), 500)
		return
	}

	out := make([]RhymeBucket, len(buckets))
	for i, bucket := range buckets {
		out[i] = RhymeBucket{
			Syllables: bucket.Syllables,
			Matches:   toMatches(bucket.Matches),
		}
	}
	s.send(RhymesResponse{
		ID:        req.ID,
		Buckets:   out,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

// send encodes one response frame onto the stream.
func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	log.Debug("Request failed", "id", id, "code", code, "err", message)
	s.send(RequestError{ID: id, Error: message, Code: code})
}

// validSearchType accepts the engine's pattern types plus the empty
// string, which the engine reads as rhyme.
func validSearchType(t string) bool {
	switch search.PatternType(t) {
	case "", search.TypeRhyme, search.TypeVowel, search.TypeConsonant,
		search.TypeBoth, search.TypePhonemes, search.TypeSyllable:
		return true
	}
	return false
}

func toMatches(results []search.Result) []Match {
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Word:          r.Word,
			Pronunciation: r.Pronunciation,
			Syllables:     r.SyllableCount,
			Stress:        r.StressPattern,
			Similarity:    r.Similarity,
			RhymeKey:      r.RhymeKey,
		}
	}
	return matches
}
