package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/xiam/sign"
	"github.com/xiam/sign/ast"
	"github.com/xiam/sign/lexer"
)

const (
	historyFile = ".sign_history"
	promptMain  = "sign> "
	promptCont  = "  ... "
)

// lineReader is the part of liner.State used by the REPL.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stderr, "%s repl: unexpected arguments %v\n", appName, args)
		return exitUsage
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	fmt.Fprintf(stdout, "Sign %s, type :help for commands.\n", ast.SchemaVersion)

	s := &session{stdout: stdout, stderr: stderr, history: ln.AppendHistory}
	return s.loop(ln)
}

// session keeps the top-level statements entered so far.
type session struct {
	body    []ast.Node
	stdout  io.Writer
	stderr  io.Writer
	history func(string)
}

func (s *session) loop(lr lineReader) int {
	for {
		code, ok := readComplete(lr, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(s.stdout)
			return exitOK
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed) {
				return exitOK
			}
			continue
		}

		s.eval(code)
		if s.history != nil {
			s.history(strings.ReplaceAll(code, "\n", " "))
		}
	}
}

// command runs a ":" command, it returns true if the session must end.
func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":defs":
		st := sign.Symbols(&ast.Program{Body: s.body})
		if st.Len() == 0 {
			fmt.Fprintln(s.stdout, "no definitions")
			return false
		}
		for _, sym := range st.List() {
			fmt.Fprintf(s.stdout, "%s\t%s\n", sym.Kind, sym.Name)
		}
	case ":reset":
		s.body = nil
	case ":help":
		fmt.Fprintln(s.stdout, ":defs   list top-level names defined so far")
		fmt.Fprintln(s.stdout, ":reset  forget every definition")
		fmt.Fprintln(s.stdout, ":quit   leave")
	default:
		fmt.Fprintf(s.stdout, "unknown command %s, type :help\n", cmd)
	}
	return false
}

func (s *session) eval(code string) {
	prog, err := sign.Parse([]byte(code))
	if err != nil {
		fmt.Fprintln(s.stderr, colorize(s.stderr, strings.TrimRight(err.Error(), "\n")))
		return
	}

	for _, e := range prog.Errors {
		fmt.Fprintln(s.stderr, colorize(s.stderr, "error: "+e))
	}
	for _, w := range prog.Warnings {
		fmt.Fprintln(s.stderr, "warning: "+w)
	}
	for _, stmt := range prog.Body {
		fmt.Fprintln(s.stdout, string(ast.Encode(stmt)))
	}

	if len(prog.Errors) == 0 {
		s.body = append(s.body, prog.Body...)
	}
}

// readComplete reads lines until they make a complete input.
func readComplete(lr lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := lr.Prompt(p)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			// liner.ErrPromptAborted on ctrl-c drops the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !needsMore(src) {
			return src, true
		}
	}
}

// needsMore tells whether src stops in the middle of an expression: inside
// brackets, after ":", "?" or ",", or within an indented block that was not
// closed by a blank line.
func needsMore(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}

	tokens, err := lexer.Tokenize([]byte(src))
	if err != nil {
		return false
	}

	depth := 0
	last := lexer.TokenInvalid
	for _, tok := range tokens {
		tt := tok.Type()
		switch {
		case tt == lexer.TokenNewLine, tt == lexer.TokenIndent, tt == lexer.TokenDedent, tt == lexer.TokenEOF:
			continue
		case tt.IsOpening():
			depth++
		case tt.IsClosing():
			depth--
		}
		last = tt
	}

	if depth > 0 {
		return true
	}

	switch last {
	case lexer.TokenDefine, lexer.TokenLambda, lexer.TokenProduct:
		return true
	}

	lines := strings.Split(src, "\n")
	tail := lines[len(lines)-1]
	return len(lines) > 1 && strings.TrimSpace(tail) != "" && (tail[0] == ' ' || tail[0] == '\t')
}

var _ lineReader = (*liner.State)(nil)
