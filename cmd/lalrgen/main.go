/*
Lalrgen constructs an LALR(1) parsing table from a context-free grammar and
writes the serialized ACTION/GOTO table, ready for a table-driven
shift-reduce parser to consume.

Usage:

	lalrgen [flags] GRAMMAR_FILE

The flags are:

	-v, --version
		Give the current version of lalrgen and then exit.

	-c, --config FILE
		Load defaults from the given TOML config file. Defaults to
		"lalrgen.toml" in the current working directory if present.

	-o, --out FILE
		Write the REZI-encoded serialized table to FILE. Defaults to the
		grammar file's path with ".lalrc" appended.

	-t, --template FILE
		Splice the computed table into the given emitter template (see the
		emit package) and write the result to --emit-out.

	--emit-out FILE
		Destination for the rendered template. Required if --template is
		given.

	-d, --dump-table
		Print the synthesized ACTION/GOTO table to stdout before exiting.

	--serve ADDRESS
		Start an HTTP server at ADDRESS exposing the computed states and
		table as JSON for interactive inspection, instead of exiting.

	--try
		Start an interactive REPL: each line of input is tokenized by
		splitting on whitespace (fields are taken directly as terminal
		kinds) and parsed against the computed table, printing the
		resulting reduction trace or the syntax error encountered.
*/
package main

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/lalrgen/automaton"
	"github.com/dekarrin/lalrgen/emit"
	"github.com/dekarrin/lalrgen/internal/inspect"
	"github.com/dekarrin/lalrgen/internal/version"
	"github.com/dekarrin/lalrgen/lalr"
	"github.com/dekarrin/lalrgen/lex"
	"github.com/dekarrin/lalrgen/parse"
	"github.com/dekarrin/lalrgen/serialize"
	"github.com/dekarrin/lalrgen/source"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota
	// ExitUsageError indicates bad CLI usage (missing/extra arguments).
	ExitUsageError
	// ExitGrammarError indicates the grammar failed to parse or validate.
	ExitGrammarError
	// ExitTableError indicates table construction failed (a conflict).
	ExitTableError
	// ExitIOError indicates a problem reading or writing a file.
	ExitIOError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of lalrgen and then exit.")
	flagConfig  = pflag.StringP("config", "c", "lalrgen.toml", "Load defaults from the given TOML config file.")
	flagOut     = pflag.StringP("out", "o", "", "Write the REZI-encoded table to FILE.")
	flagTmpl    = pflag.StringP("template", "t", "", "Splice the table into the given emitter template.")
	flagEmitOut = pflag.String("emit-out", "", "Destination for the rendered template.")
	flagDump    = pflag.BoolP("dump-table", "d", false, "Print the ACTION/GOTO table to stdout.")
	flagServe   = pflag.String("serve", "", "Start an inspection HTTP server at ADDRESS instead of exiting.")
	flagTry     = pflag.Bool("try", false, "Start an interactive try-it REPL over the computed table.")
)

func main() {
	defer func() { os.Exit(returnCode) }()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("lalrgen %s\n", version.Current)
		return
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err)
		returnCode = ExitIOError
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lalrgen [flags] GRAMMAR_FILE\nDo -h for help.\n")
		returnCode = ExitUsageError
		return
	}
	grammarFile := args[0]

	text, err := ioutil.ReadFile(grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading grammar: %s\n", err)
		returnCode = ExitIOError
		return
	}

	ts, err := source.ParseText(string(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: parsing grammar: %s\n", err)
		returnCode = ExitGrammarError
		return
	}
	g, err := source.Build(ts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: building grammar: %s\n", err)
		returnCode = ExitGrammarError
		return
	}

	col, err := automaton.BuildLR1(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: building LR(1) automaton: %s\n", err)
		returnCode = ExitGrammarError
		return
	}
	merged := lalr.Merge(col)

	table, err := parse.Build(merged)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitTableError
		return
	}

	if *flagDump {
		fmt.Println(table.String())
	}

	out := *flagOut
	if out == "" {
		out = cfg.Out
	}
	if out == "" {
		out = grammarFile + ".lalrc"
	}

	art := serialize.Encode(table)
	encoded := serialize.Marshal(art)
	if err := ioutil.WriteFile(out, encoded, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: writing %s: %s\n", out, err)
		returnCode = ExitIOError
		return
	}
	fmt.Printf("wrote %s (%d bytes, %d states)\n", out, len(encoded), table.NStates)

	tmpl := *flagTmpl
	if tmpl == "" {
		tmpl = cfg.Template
	}
	if tmpl != "" {
		if err := renderTemplate(tmpl, cfg, grammarFile, art, encoded); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: rendering template: %s\n", err)
			returnCode = ExitIOError
			return
		}
	}

	if *flagServe != "" {
		srv := &inspect.Server{Collection: merged, Table: table}
		fmt.Printf("serving inspection endpoints on %s\n", *flagServe)
		if err := http.ListenAndServe(*flagServe, srv.Router()); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: serve: %s\n", err)
			returnCode = ExitIOError
		}
		return
	}

	if *flagTry {
		runTryRepl(table)
	}
}

func renderTemplate(tmplPath string, cfg fileConfig, grammarFile string, art *serialize.Artifact, encoded []byte) error {
	tmplBytes, err := ioutil.ReadFile(tmplPath)
	if err != nil {
		return err
	}

	emitOut := *flagEmitOut
	if emitOut == "" {
		emitOut = cfg.EmitOut
	}
	if emitOut == "" {
		return fmt.Errorf("--emit-out is required when --template is given")
	}

	vals := emit.Values{
		emit.SentinelParsingTable:  art.String(),
		emit.SentinelStates:        fmt.Sprint(art.States),
		emit.SentinelExpectedToken: fmt.Sprint(art.Expected),
		emit.SentinelPatterns:      "",
		emit.SentinelFilename:      grammarFile,
		emit.SentinelReserved:      "",
		emit.SentinelID:            emit.ContentID(encoded),
	}

	rendered, err := emit.Render(string(tmplBytes), vals)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(emitOut, []byte(rendered), 0644)
}

func runTryRepl(table *parse.Table) {
	rl, err := readline.New("lalrgen> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: starting readline: %s\n", err)
		returnCode = ExitIOError
		return
	}
	defer rl.Close()

	driver := parse.NewDriver(table, func(s string) { fmt.Println("  " + s) })

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		if line == "" {
			continue
		}
		stream := lex.NewWordStream(line, "<repl>")
		_, reductions, err := driver.Parse(stream, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf("accepted; reductions: %v\n", reductions)
	}
}
