// Command sign parses Sign source files and dumps their syntax tree.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/xiam/sign"
	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
	"github.com/xiam/sign/parser"
)

const appName = "sign"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	out     bool
	strict  bool
	tree    bool
	tokens  bool
	stats   bool
	symbols bool
	schema  string
	jobs    int
	verbose bool
}

// result is the outcome of parsing one file.
type result struct {
	name   string
	tokens []lexer.Token
	prog   *ast.Program
	err    error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "repl":
			return cmdRepl(args[1:], stdout, stderr)
		case "watch":
			return cmdWatch(args[1:], stdout, stderr)
		case "version":
			fmt.Fprintf(stdout, "%s (AST schema %s)\n", appName, ast.SchemaVersion)
			return exitOK
		case "help", "-h", "--help":
			usage(stdout)
			return exitOK
		}
	}
	return cmdParse(args, stdout, stderr)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s [flags] <file>...          Parse files and dump their AST as JSON.
  %[1]s watch [flags] <file>...    Parse files again each time they change.
  %[1]s repl                       Start the interactive parser.
  %[1]s version                    Print the AST schema version.

Flags:
`, appName)
	fs, _ := newFlagSet(appName, w)
	fs.PrintDefaults()
}

func newFlagSet(name string, output io.Writer) (*flag.FlagSet, *options) {
	opts := &options{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&opts.out, "out", false, "write <file>.json next to each input")
	fs.BoolVar(&opts.strict, "strict", false, "stop at the first syntax error")
	fs.BoolVar(&opts.tree, "tree", false, "print an indented tree instead of JSON")
	fs.BoolVar(&opts.tokens, "tokens", false, "print the token stream")
	fs.BoolVar(&opts.stats, "stats", false, "print node statistics")
	fs.BoolVar(&opts.symbols, "symbols", false, "print top-level symbols")
	fs.StringVar(&opts.schema, "schema", "", "fail unless the AST schema satisfies this semver constraint")
	fs.IntVar(&opts.jobs, "j", runtime.NumCPU(), "number of files parsed at once")
	fs.BoolVar(&opts.verbose, "v", false, "log parser diagnostics to stderr")

	return fs, opts
}

// parseArgs parses flags, returning the files to work on or an exit code.
func parseArgs(name string, args []string, stderr io.Writer) (*options, []string, int) {
	fs, opts := newFlagSet(name, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, exitOK
		}
		return nil, nil, exitUsage
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintf(stderr, "%s: no input files\n", name)
		usage(stderr)
		return nil, nil, exitUsage
	}

	if opts.jobs < 1 {
		opts.jobs = 1
	}

	if opts.schema != "" {
		if err := ast.CheckSchema(opts.schema); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return nil, nil, exitFailure
		}
	}

	return opts, files, -1
}

func cmdParse(args []string, stdout, stderr io.Writer) int {
	opts, files, code := parseArgs(appName, args, stderr)
	if code >= 0 {
		return code
	}

	logger := newLogger(opts, stderr)
	results := parseAll(context.Background(), files, opts, logger)

	code = exitOK
	for _, res := range results {
		if !report(res, opts, stdout, stderr) {
			code = exitFailure
		}
	}
	return code
}

func newLogger(opts *options, stderr io.Writer) *log.Logger {
	if !opts.verbose {
		return log.New(ioutil.Discard, "", 0)
	}
	return log.New(stderr, appName+": ", 0)
}

func parserOptions(opts *options, logger *log.Logger) []parser.Option {
	mode := parser.ModeRecovery
	if opts.strict {
		mode = parser.ModeStrict
	}
	return []parser.Option{
		parser.WithMode(mode),
		parser.WithLogger(logger),
	}
}

// parseAll parses files concurrently, at most opts.jobs at a time. Results
// keep the order of files.
func parseAll(ctx context.Context, files []string, opts *options, logger *log.Logger) []result {
	results := make([]result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = result{name: name, err: err}
				return nil
			}
			results[i] = parseFile(name, opts, logger)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func parseFile(name string, opts *options, logger *log.Logger) result {
	res := result{name: name}

	src, err := ioutil.ReadFile(name)
	if err != nil {
		res.err = err
		return res
	}

	res.tokens, err = lexer.Tokenize(src)
	if err != nil {
		res.err = sign.WrapError(err, name, src)
		return res
	}

	// a logger is shared by all the parsers, log.Logger serializes writes
	res.prog, err = parser.New(res.tokens, parserOptions(opts, logger)...).Parse()
	if err != nil {
		res.err = sign.WrapError(err, name, src)
	}
	return res
}

// report writes the outcome of a parse, it returns false if the file could
// not be parsed.
func report(res result, opts *options, stdout, stderr io.Writer) bool {
	if res.err != nil {
		fmt.Fprintln(stderr, colorize(stderr, strings.TrimRight(res.err.Error(), "\n")))
		return false
	}

	for _, e := range res.prog.Errors {
		fmt.Fprintln(stderr, colorize(stderr, fmt.Sprintf("%s:%s", res.name, e)))
	}
	if opts.verbose {
		for _, w := range res.prog.Warnings {
			fmt.Fprintf(stderr, "%s:%s (warning)\n", res.name, w)
		}
	}

	if opts.tokens {
		for _, tok := range res.tokens {
			line, col := tok.Pos()
			fmt.Fprintf(stdout, "%d:%d\t%s\t%q\n", line, col, tok.Type(), tok.Text())
		}
	}
	if opts.tree {
		ast.Fprint(stdout, res.prog)
	}
	if opts.stats {
		fmt.Fprintf(stdout, "%s: %s\n", res.name, ast.Stats(res.prog))
	}
	if opts.symbols {
		for _, sym := range sign.Symbols(res.prog).List() {
			fmt.Fprintf(stdout, "%s:%d:%d\t%s\t%s\n", res.name, sym.Line, sym.Column, sym.Kind, sym.Name)
		}
	}

	data, err := json.MarshalIndent(res.prog, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", res.name, err)
		return false
	}
	data = append(data, '\n')

	if opts.out {
		if err := ioutil.WriteFile(res.name+".json", data, 0644); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", appName, err)
			return false
		}
		return true
	}

	if !opts.tokens && !opts.tree && !opts.stats && !opts.symbols {
		_, _ = stdout.Write(data)
	}
	return true
}

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// colorize paints s red when w is a terminal.
func colorize(w io.Writer, s string) string {
	if f, ok := w.(*os.File); ok && isTerminal(f.Fd()) {
		return red(s)
	}
	return s
}
