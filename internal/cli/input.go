// Package cli handles cmd line input for running searches against a
// loaded dictionary and rendering result tables.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/rhymeserve/internal/logger"
	"github.com/bastiangx/rhymeserve/pkg/search"
	"github.com/charmbracelet/log"
)

// InputHandler processes query lines from stdin. Every line runs as a
// search pattern with the settings carried over from the command line
// flags, so switching between pattern types means restarting with
// different flags.
type InputHandler struct {
	engine *search.Engine
	opts   search.Options
	log    *log.Logger
}

// NewInputHandler handles initialization of the InputHandler
func NewInputHandler(engine *search.Engine, opts search.Options) *InputHandler {
	return &InputHandler{
		engine: engine,
		opts:   opts,
		log:    logger.New("cli"),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and runs
// the trimmed line as a search. Returns when stdin closes or errors.
func (h *InputHandler) Start() error {
	h.log.Print("RhymeServe CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a pattern and press Enter to search (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput runs a single query and prints the result table.
func (h *InputHandler) handleInput(query string) {
	opts := h.opts
	opts.Pattern = query

	start := time.Now()
	results, err := h.engine.Search(context.Background(), opts)
	elapsed := time.Since(start)
	if err != nil {
		h.log.Errorf("Search failed: %v", err)
		return
	}
	if len(results) == 0 {
		h.log.Warnf("No matches found for pattern: '%s'", query)
		return
	}

	h.log.Printf("Found %d matches for '%s' in %v:", len(results), query, elapsed.Round(time.Microsecond))
	PrintResults(os.Stdout, results)
}
