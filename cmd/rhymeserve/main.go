// Copyright 2025 The RhymeServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the rhymeserve pronunciation search server and CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

RhymeServe answers phonetic pattern queries over a pronunciation
dictionary: rhyme suffixes, vowel and consonant skeletons, glob and regex
phoneme searches, stress filters, and per-line rhyme suggestions. It can
operate as a MessagePack IPC server for integration with editors and
writing tools, or as a CLI application for testing and debugging.

The data directory holds chunked binary files named pron_0001.bin,
pron_0002.bin, etc. plus an optional defs.bin. These are generated by the
ingest command from a CMU pronouncing dictionary and a definitions file,
and load in parallel at startup.

# Usage

Ingest a dictionary, then start the server with default settings:

	rhymeserve ingest -dict cmudict.dict -defs definitions.tsv
	rhymeserve

Use a custom data directory and enable debug mode:

	rhymeserve -data /path/to/chunks -d

Run one-shot searches and lookups:

	rhymeserve search "AE1 T"
	rhymeserve search -type syllable -contains "*-AE[1]/*"
	rhymeserve search -type phonemes -regex "K (AE1|AA1) T"
	rhymeserve word lead
	rhymeserve rhymes "the cat sat on the mat"
	rhymeserve rhymes -perfect lead

Run in CLI mode for interactive testing:

	rhymeserve -c -type vowel -limit 10

# Commands

The first argument selects a command; with no command the process starts
in server mode:

	ingest  Parse source dictionaries into the chunked data directory
	search  Run a phonetic pattern query and print a result table
	word    Show pronunciations and definitions for one word
	rhymes  Suggest rhymes for the last known word of a line
	serve   Start the MessagePack session on stdin/stdout

Every command accepts -config, -data and -d in addition to its own
flags.

# Configuration

Runtime configuration is managed through a TOML file that supports
dictionary, cache, search and logging settings:

	[dictionary]
	data_dir = "data"
	chunk_size = 10000

	[search]
	default_limit = 50
	max_limit = 500

The file is looked up from the -config flag, then the RHYMESERVE_CONFIG
environment variable, then rhymeserve.toml in the working directory.
Every field is optional; missing ones keep their defaults.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing information included in
responses.

Send a search request:

	{"id": "req1", "op": "search", "q": "AE1 T", "type": "rhyme", "l": 20}

Receive matches with timing:

	{"id": "req1", "m": [{"w": "bat", "ph": "B AE1 T", "sc": 1, "st": "1"}], "c": 1, "t": 145}

The word and rhymes ops return pronunciation variants with definitions
and per-syllable-depth rhyme buckets respectively. See the server
package for the full frame catalog.

# CLI Mode

CLI mode provides an interactive prompt for testing and debugging
pattern matching. It reads one pattern per line and displays matches in
an aligned table with timing. The pattern type, rhyme depth and limit
are fixed at startup from the command line flags.

This mode is primarily intended for development; the server interface
accepts the full option set on every request.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/rhymeserve/internal/cli"
	"github.com/bastiangx/rhymeserve/internal/logger"
	"github.com/bastiangx/rhymeserve/internal/utils"
	"github.com/bastiangx/rhymeserve/pkg/config"
	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/rhyme"
	"github.com/bastiangx/rhymeserve/pkg/search"
	"github.com/bastiangx/rhymeserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "rhymeserve"
	gh      = "https://github.com/bastiangx/rhymeserve"
)

// cliDefaultLimit caps one-shot and interactive searches. The engine
// default is tuned for IPC clients and is too chatty for a terminal.
const cliDefaultLimit = 25

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath *string
	dataDir    *string
	debug      *bool
	verbose    *bool
	quiet      *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{
		configPath: fs.String("config", "", "Path to a rhymeserve.toml file"),
		dataDir:    fs.String("data", "", "Directory containing the binary chunk files"),
		debug:      fs.Bool("d", false, "Toggle debug mode"),
		verbose:    fs.Bool("verbose", false, "Log progress info without full debug output"),
		quiet:      fs.Bool("quiet", false, "Errors only"),
	}
	fs.BoolVar(cf.debug, "debug", false, "Toggle debug mode")
	return cf
}

// setup loads configuration and wires the logger. Flag values win over
// the config file; -d beats -quiet beats -verbose.
func setup(cf *commonFlags) *config.Config {
	cfg, path := config.LoadWithPriority(*cf.configPath)
	if *cf.dataDir != "" {
		cfg.Dictionary.DataDir = *cf.dataDir
	}
	logger.Setup(*cf.debug || cfg.Logging.Debug, cfg.Logging.ReportCaller)
	if !*cf.debug && !cfg.Logging.Debug {
		if *cf.quiet {
			log.SetLevel(log.ErrorLevel)
		} else if *cf.verbose {
			log.SetLevel(log.InfoLevel)
		}
	}
	if path != "" {
		log.Debugf("Using config file: (%s)", path)
	}
	return cfg
}

// main dispatches to the command handlers. main() does not implement
// logic for them and only manages the flow.
func main() {
	sigHandler()

	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") {
		switch os.Args[1] {
		case "ingest":
			runIngest(os.Args[2:])
		case "search":
			runSearch(os.Args[2:])
		case "word":
			runWord(os.Args[2:])
		case "rhymes":
			runRhymes(os.Args[2:])
		case "serve":
			runServe(os.Args[2:])
		default:
			log.Fatalf("Unknown command %q (commands: ingest, search, word, rhymes, serve)", os.Args[1])
		}
		return
	}

	// No command: flag-only interface for the server and the CLI prompt.
	showVersion := flag.Bool("version", false, "Show current version")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	flag.BoolVar(cliMode, "cli", false, "Run CLI -- useful for testing and debugging")
	patternType := flag.String("type", "rhyme", "CLI pattern type: rhyme, vowel, consonant, both, phonemes, syllable")
	syllables := flag.Int("syllables", 1, "CLI rhyme depth in syllables counted from the end")
	noStress := flag.Bool("nostress", false, "CLI: ignore stress digits when matching")
	limit := flag.Int("limit", cliDefaultLimit, "CLI: number of matches to return")
	cf := addCommonFlags(flag.CommandLine)
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := setup(cf)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		store := openStore(cfg)
		engine := newEngine(store, cfg)
		opts := search.Options{
			Type:         parseType(*patternType),
			Syllables:    *syllables,
			IgnoreStress: *noStress,
			Limit:        *limit,
		}
		log.Debug("Input info:",
			"type", opts.Type,
			"syllables", opts.Syllables,
			"limit", opts.Limit)

		handler := cli.NewInputHandler(engine, opts)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	serve(cfg)
}

func printVersion() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ RhymeServe ] Serves really fast rhyme and phoneme searches!")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// parseType validates a pattern type flag before it reaches the engine.
func parseType(s string) search.PatternType {
	t := search.PatternType(s)
	switch t {
	case search.TypeRhyme, search.TypeVowel, search.TypeConsonant,
		search.TypeBoth, search.TypePhonemes, search.TypeSyllable:
		return t
	}
	log.Fatalf("Unknown pattern type %q (types: rhyme, vowel, consonant, both, phonemes, syllable)", s)
	return ""
}

// openStore resolves the data directory and loads the full dictionary.
func openStore(cfg *config.Config) *dictionary.Store {
	dataDir := utils.ResolveDataDir(cfg.Dictionary.DataDir)
	log.Debugf("Using data dir at: %s", dataDir)
	return loadStore(dataDir)
}

func loadStore(dataDir string) *dictionary.Store {
	store, err := dictionary.NewLoader(dataDir).Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	return store
}

func newEngine(store *dictionary.Store, cfg *config.Config) *search.Engine {
	return search.NewEngine(store, search.Config{
		SyllableCacheSize: cfg.Cache.SyllableEntries,
		PatternCacheSize:  cfg.Cache.PatternEntries,
		DefaultLimit:      cfg.Search.DefaultLimit,
		MaxLimit:          cfg.Search.MaxLimit,
	})
}

func runIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	cf := addCommonFlags(fs)
	dictPath := fs.String("dict", "cmudict.dict", "CMU pronouncing dictionary file")
	defsPath := fs.String("defs", "", "Optional definitions TSV file")
	chunkSize := fs.Int("chunk", 0, "Pronunciations per chunk file (0 uses the config value)")
	fs.Parse(args)

	cfg := setup(cf)
	if *chunkSize <= 0 {
		*chunkSize = cfg.Dictionary.ChunkSize
	}
	// ingest summaries should be visible without -d, but -quiet wins
	if log.GetLevel() == log.WarnLevel {
		log.SetLevel(log.InfoLevel)
	}

	result, err := dictionary.Ingest(*dictPath, *defsPath, cfg.Dictionary.DataDir, *chunkSize)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}
	if result.Stats.Skipped > 0 {
		log.Warnf("Skipped %d malformed dictionary lines", result.Stats.Skipped)
	}
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	cf := addCommonFlags(fs)
	patternType := fs.String("type", "rhyme", "Pattern type: rhyme, vowel, consonant, both, phonemes, syllable")
	syllables := fs.Int("syllables", 1, "Rhyme depth in syllables counted from the end")
	regex := fs.Bool("regex", false, "Treat the pattern as a regular expression (phonemes type)")
	contains := fs.Bool("contains", false, "Match the pattern anywhere, not only anchored")
	maxDistance := fs.Int("max-distance", -1, "Maximum phoneme edit distance from the pattern (-1 disables)")
	minSimilarity := fs.Float64("min-similarity", -1, "Minimum similarity score in [0,1] (-1 disables)")
	stress := fs.String("stress", "", "Glob over stress digit strings, e.g. '1*0'")
	noStress := fs.Bool("nostress", false, "Ignore stress digits when matching syllable patterns")
	pos := fs.String("pos", "", "Keep only words with a definition for this part of speech")
	defQuery := fs.String("def", "", "Keep only words whose definition text contains this substring")
	synQuery := fs.String("syn", "", "Keep only words listing this synonym")
	limit := fs.Int("limit", cliDefaultLimit, "Maximum matches (negative for no limit)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		log.Fatal("search needs a pattern argument")
	}
	pattern := strings.Join(fs.Args(), " ")

	cfg := setup(cf)
	store := openStore(cfg)
	engine := newEngine(store, cfg)

	opts := search.Options{
		Pattern:         pattern,
		Type:            parseType(*patternType),
		Syllables:       *syllables,
		Regex:           *regex,
		Contains:        *contains,
		StressPattern:   *stress,
		IgnoreStress:    *noStress,
		PartOfSpeech:    *pos,
		DefinitionQuery: *defQuery,
		SynonymQuery:    *synQuery,
		Limit:           *limit,
	}
	if *maxDistance >= 0 {
		opts.MaxDistance = maxDistance
	}
	if *minSimilarity >= 0 {
		opts.MinSimilarity = minSimilarity
	}

	results, err := engine.Search(context.Background(), opts)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		fmt.Println("(no matches)")
		return
	}
	cli.PrintResults(os.Stdout, results)
}

func runWord(args []string) {
	fs := flag.NewFlagSet("word", flag.ExitOnError)
	cf := addCommonFlags(fs)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("word needs exactly one word argument")
	}
	word := strings.ToLower(fs.Arg(0))
	if !utils.IsWordLike(word) {
		log.Fatalf("%q is not a word (use search for phonetic patterns)", word)
	}

	cfg := setup(cf)
	store := openStore(cfg)

	records := store.Lookup(word)
	if len(records) == 0 {
		if near := cli.NearestWords(store, word, 3); len(near) > 0 {
			log.Fatalf("No pronunciations for %q. Did you mean: %s?", word, strings.Join(near, ", "))
		}
		log.Fatalf("No pronunciations for %q", word)
	}

	fmt.Printf("Pronunciations for %s:\n", word)
	for _, rec := range records {
		fmt.Printf("  - %s (syllables=%d, stress=%s)\n",
			rec.PronunciationText(), rec.SyllableCount, rec.StressPattern)
	}

	wordID := records[0].WordID
	defs := store.DefinitionsFor([]int64{wordID})[wordID]
	if len(defs) == 0 {
		return
	}
	fmt.Println("Definitions:")
	for _, d := range defs {
		var b strings.Builder
		b.WriteString("  - ")
		if d.PartOfSpeech != "" {
			fmt.Fprintf(&b, "(%s) ", d.PartOfSpeech)
		}
		b.WriteString(d.Text)
		if len(d.Synonyms) > 0 {
			fmt.Fprintf(&b, " | synonyms: %s", strings.Join(d.Synonyms, ", "))
		}
		if d.Example != "" {
			fmt.Fprintf(&b, " | example: %s", d.Example)
		}
		fmt.Println(b.String())
	}
}

func runRhymes(args []string) {
	fs := flag.NewFlagSet("rhymes", flag.ExitOnError)
	cf := addCommonFlags(fs)
	maxSyllables := fs.Int("max-syllables", rhyme.DefaultMaxSyllables, "Deepest rhyme suffix to try, in syllables")
	limit := fs.Int("limit", 15, "Maximum matches per bucket")
	pos := fs.String("pos", "", "Keep only words with a definition for this part of speech")
	perfect := fs.Bool("perfect", false, "Perfect rhymes only, grouped by pronunciation")
	fs.Parse(args)
	if fs.NArg() < 1 {
		log.Fatal("rhymes needs a line of text")
	}
	line := strings.Join(fs.Args(), " ")

	cfg := setup(cf)
	store := openStore(cfg)
	engine := newEngine(store, cfg)
	assistant := rhyme.New(store, engine)
	ctx := context.Background()

	if *perfect {
		if !utils.IsWordLike(line) {
			log.Fatalf("-perfect takes a single word, got %q", line)
		}
		groups, err := assistant.PerfectRhymes(ctx, line, rhyme.PerfectOptions{
			MaxResults:   *limit,
			PartOfSpeech: *pos,
		})
		if err != nil {
			log.Fatalf("Rhyme search failed: %v", err)
		}
		if len(groups) == 0 {
			if near := cli.NearestWords(store, line, 3); len(near) > 0 {
				log.Fatalf("No pronunciations for %q. Did you mean: %s?", line, strings.Join(near, ", "))
			}
			fmt.Println("(no matches)")
			return
		}
		for _, g := range groups {
			fmt.Printf("Perfect rhymes for /%s/:\n", g.Pronunciation)
			if len(g.Matches) == 0 {
				fmt.Println("  (no matches)")
				continue
			}
			cli.PrintResults(os.Stdout, g.Matches)
		}
		return
	}

	buckets, err := assistant.SuggestRhymes(ctx, line, rhyme.SuggestOptions{
		MaxSyllables: *maxSyllables,
		MaxResults:   *limit,
		PartOfSpeech: *pos,
	})
	if err != nil {
		log.Fatalf("Rhyme search failed: %v", err)
	}
	if len(buckets) == 0 {
		fmt.Println("(no matches)")
		return
	}
	for _, b := range buckets {
		fmt.Printf("Last %d syllable(s):\n", b.Syllables)
		for _, m := range b.Matches {
			fmt.Printf("  %s (%s)\n", m.Word, m.Pronunciation)
		}
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cf := addCommonFlags(fs)
	fs.Parse(args)
	serve(setup(cf))
}

func serve(cfg *config.Config) {
	dataDir := utils.ResolveDataDir(cfg.Dictionary.DataDir)
	log.Debugf("Using data dir at: %s", dataDir)

	store := loadStore(dataDir)
	engine := newEngine(store, cfg)
	assistant := rhyme.New(store, engine)
	srv := server.NewServer(store, engine, assistant, os.Stdin, os.Stdout)

	showStartupInfo(dataDir, store.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, records int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" RhymeServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("data dir: ( %s )", utils.GetAbsolutePath(dataDir))
	log.Infof("pronunciations: [ %d ]", records)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
