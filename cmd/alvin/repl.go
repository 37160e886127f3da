package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/config"
)

// lineReader reads one line of input after writing a prompt.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// newReader returns a line editor when f is a terminal and a plain line
// scanner otherwise. Piped input only gets prompts in interactive mode.
func newReader(f *os.File, out io.Writer, cfg *config.Config, interactive bool) lineReader {
	if !term.IsTerminal(int(f.Fd())) {
		return &scanReader{sc: bufio.NewScanner(f), out: out, prompts: interactive}
	}
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	r := &linerReader{State: ln}
	if cfg.REPL.History != "" {
		r.history = config.ExpandHome(cfg.REPL.History)
		if f, err := os.Open(r.history); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

type scanReader struct {
	sc      *bufio.Scanner
	out     io.Writer
	prompts bool
}

func (r *scanReader) Prompt(prompt string) (string, error) {
	if r.prompts {
		fmt.Fprint(r.out, prompt)
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *scanReader) Close() error {
	return nil
}

// linerReader is a line editor that saves its history on close.
type linerReader struct {
	*liner.State
	history string
}

func (r *linerReader) Close() error {
	if r.history != "" {
		if err := os.MkdirAll(filepath.Dir(r.history), 0o755); err == nil {
			if f, err := os.Create(r.history); err == nil {
				r.WriteHistory(f)
				f.Close()
			}
		}
	}
	return r.State.Close()
}

// repl is the read-eval-print loop.
type repl struct {
	in          *alvin.Interp
	cfg         *config.Config
	out         io.Writer
	interactive bool
	debug       bool
	flags       string

	// inputs counts evaluated top-level inputs for periodic collection.
	inputs int
	quit   bool
	once   sync.Once
}

// run reads and evaluates input until it ends or the user quits, returning
// the exit status.
func (r *repl) run(lr lineReader) int {
	defer lr.Close()
	if r.interactive {
		r.welcome()
	}
	for {
		src, err := r.read(lr)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			return 0
		case errors.As(err, new(*alvin.SyntaxError)):
			if code, stop := r.report(err); stop {
				return code
			}
			continue
		default:
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if h, ok := lr.(interface{ AppendHistory(string) }); ok && strings.TrimSpace(src) != "" {
			h.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}
		if code, stop := r.eval(src); stop {
			return code
		}
	}
}

// read accumulates lines until they form complete input. Input that ends
// partway through an expression is returned as it is so that evaluating it
// reports the imbalance.
func (r *repl) read(lr lineReader) (string, error) {
	var b strings.Builder
	prompt := r.cfg.REPL.Prompt
	for {
		line, err := lr.Prompt(prompt)
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		ok, err := alvin.Complete(b.String())
		if err != nil {
			return "", err
		}
		if ok {
			return b.String(), nil
		}
		prompt = r.cfg.REPL.Continue
	}
}

// eval handles one complete input. It returns the exit status and whether
// the loop should stop.
func (r *repl) eval(src string) (int, bool) {
	line := strings.TrimSpace(src)
	if line == "" {
		return 0, false
	}
	if r.command(line) {
		return 0, r.quit
	}
	if r.in.Keywords.IsKeyword(alvin.Symbol(line)) {
		fmt.Fprintf(r.out, "%s is an operator, built-in function or reserved word.\n", line)
		return 0, false
	}
	v, err := r.in.DoString(src)
	r.inputs++
	if n := r.cfg.CollectEvery; n > 0 && r.inputs%n == 0 {
		removed := r.in.Collect()
		r.in.Logger.Debug("periodic collection", "inputs", r.inputs, "removed", removed)
	}
	if err != nil {
		return r.report(err)
	}
	if v != nil {
		fmt.Fprintln(r.out, alvin.Print(v))
	}
	return 0, false
}

// report prints an error. It returns the exit status and whether the program
// should stop, which it should for exit requests and in debug mode.
func (r *repl) report(err error) (int, bool) {
	if code := exitCode(err); code >= 0 {
		return code, true
	}
	fmt.Fprintf(r.out, "%s: %v\n", alvin.ErrorName(err), err)
	if r.debug {
		return 1, true
	}
	return 0, false
}

// close reverts or keeps the extension store. It is safe to call more than
// once and from the signal handler.
func (r *repl) close() {
	r.once.Do(func() {
		if err := r.in.CloseExtensions(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", alvin.ErrorName(err), err)
		}
		if r.interactive {
			fmt.Fprintln(r.out, "Arrivederci!")
		}
	})
}

// command runs a REPL command and reports whether line was one.
func (r *repl) command(line string) bool {
	switch line {
	case "help":
		fmt.Fprint(r.out, helpText)
	case "keywords":
		r.keywords()
	case "flags":
		fmt.Fprint(r.out, r.flags)
	case "clear":
		fmt.Fprint(r.out, "\x1b[H\x1b[2J")
		r.welcome()
	case "quit", "exit":
		r.quit = true
	case "dev.info":
		fmt.Fprint(r.out, devText)
	case "dev.env":
		fmt.Fprint(r.out, r.in.Env)
	case "dev.closures":
		r.closures()
	case "dev.globals":
		r.globals()
	case "dev.imports":
		r.imports()
	case "dev.extensions":
		r.extensions()
	default:
		return false
	}
	return true
}

func (r *repl) welcome() {
	fmt.Fprintf(r.out, "Alvin %s\nEnter 'help' to show further information\n", alvin.Version)
}

const helpText = `Alvin is a small Lisp.

help      : show this message
keywords  : list all language keywords
flags     : list command-line flags
clear     : clear the terminal
exit/quit : exit the interpreter
dev.info  : development and debugging tools
`

const devText = `dev.env        : environment
dev.closures   : closure environments
dev.globals    : global variables
dev.imports    : imported modules
dev.extensions : registered extensions
`

var categoryOrder = []alvin.Category{
	alvin.Regular,
	alvin.Irregular,
	alvin.Boolean,
	alvin.Special,
	alvin.Accessor,
	alvin.Extension,
}

// keywords prints every keyword by category in three columns.
func (r *repl) keywords() {
	names := r.in.Keywords.Names()
	width := 0
	for _, s := range names {
		for _, k := range s {
			width = max(width, len(k))
		}
	}
	width += 2
	for i, c := range categoryOrder {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, strings.ToUpper(c.String()))
		for j, k := range names[c] {
			if j > 0 && j%3 == 0 {
				fmt.Fprintln(r.out)
			}
			fmt.Fprintf(r.out, "%-*s", width, k)
		}
		fmt.Fprintln(r.out)
	}
}

func (r *repl) closures() {
	table := r.in.ClosureTable()
	if len(table) == 0 {
		fmt.Fprintln(r.out, "No function environments found.")
		return
	}
	ids := make([]alvin.ClosureID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(r.out, "%d:\n%s", id, table[id])
	}
}

func (r *repl) globals() {
	if len(r.in.Globals) == 0 {
		fmt.Fprintln(r.out, "No global variables found.")
		return
	}
	fmt.Fprintln(r.out, "Global variables:")
	for _, k := range sortedNames(r.in.Globals) {
		fmt.Fprintf(r.out, "%s : %s\n", k, alvin.Print(r.in.Globals[k]))
	}
}

func (r *repl) imports() {
	imps := r.in.Imports()
	if len(imps) == 0 {
		fmt.Fprintln(r.out, "No imported modules found.")
		return
	}
	fmt.Fprintln(r.out, "Imported modules:")
	aliases := make([]alvin.Symbol, 0, len(imps))
	for k := range imps {
		aliases = append(aliases, k)
	}
	sort.Slice(aliases, func(i, j int) bool { return aliases[i] < aliases[j] })
	for _, a := range aliases {
		if m := imps[a]; m.Name != a {
			fmt.Fprintf(r.out, "%s alias %s\n", m.Name, a)
		} else {
			fmt.Fprintln(r.out, a)
		}
	}
}

func (r *repl) extensions() {
	exts := r.in.Extensions()
	if len(exts) == 0 {
		fmt.Fprintln(r.out, "No extensions registered.")
		return
	}
	for _, e := range exts {
		fmt.Fprintf(r.out, "%s from %s (%d lines)\n", e.Alias, e.Host, e.Lines)
	}
}

func sortedNames(m map[alvin.Symbol]alvin.Value) []alvin.Symbol {
	r := make([]alvin.Symbol, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}
