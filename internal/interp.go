package internal

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zephyrtronium/contains"
)

// Version is the interpreter version, reported by sys.version.
const Version = "1"

// DefaultRecursionLimit is the default maximum nesting of evaluations.
const DefaultRecursionLimit = 10000

// DefaultSourceExt is the default extension required of loaded files.
const DefaultSourceExt = ".alv"

// Interp is an Alvin interpreter. All evaluation state lives here; nothing is
// shared between interpreters. An Interp is not safe for concurrent use.
type Interp struct {
	// Env is the current environment.
	Env *Environment
	// Keywords are the interpreter's keyword tables.
	Keywords *Keywords
	// Globals are session globals set and read with the global keyword.
	Globals map[Symbol]Value

	// Stdin is the source for usrin.
	Stdin *bufio.Reader
	// Stdout receives output from show and prompts from usrin.
	Stdout io.Writer
	// Logger receives debug records about scopes, calls, and extensions.
	Logger *slog.Logger

	// RecursionLimit is the maximum nesting of evaluations.
	RecursionLimit int
	// SourceExt is the extension required of files passed to load.
	SourceExt string
	// Args are the arguments given to the program, for sys.args.
	Args []string
	// StartTime is the time at which interpreter initialization began.
	StartTime time.Time

	// closures is the closure registry.
	closures map[ClosureID]*Environment
	// marks is the set of reachable closures during collection.
	marks contains.Set
	// markStack is storage reused between collections.
	markStack []Value
	// pins are evaluated values not yet bound anywhere.
	pins []Value
	// active are the closures of in-flight calls.
	active []ClosureID
	// depth is the current evaluation nesting.
	depth int

	// modules are the host modules available to import.
	modules map[Symbol]*Module
	// imports maps aliases to imported modules.
	imports map[Symbol]*Module
	// ext is the extension registry.
	ext *extensions
}

// Option configures an interpreter.
type Option func(*Interp)

// WithRecursionLimit sets the maximum nesting of evaluations.
func WithRecursionLimit(n int) Option {
	return func(in *Interp) {
		if n > 0 {
			in.RecursionLimit = n
		}
	}
}

// WithStdio sets the interpreter's input and output.
func WithStdio(r io.Reader, w io.Writer) Option {
	return func(in *Interp) {
		if r != nil {
			in.Stdin = bufio.NewReader(r)
		}
		if w != nil {
			in.Stdout = w
		}
	}
}

// WithLogger sets the interpreter's logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interp) {
		if l != nil {
			in.Logger = l
		}
	}
}

// WithSourceExt sets the extension required of loaded files.
func WithSourceExt(ext string) Option {
	return func(in *Interp) {
		if ext != "" {
			in.SourceExt = ext
		}
	}
}

// WithArgs sets the program arguments.
func WithArgs(args ...string) Option {
	return func(in *Interp) {
		in.Args = args
	}
}

// NewInterp creates and initializes an interpreter. The extension registry
// starts on an empty in-memory store; use OpenExtensions to attach another.
func NewInterp(opts ...Option) *Interp {
	haveInterp = true

	in := &Interp{
		Env:     NewEnvironment(),
		Globals: make(map[Symbol]Value),

		Stdin:  bufio.NewReader(os.Stdin),
		Stdout: os.Stdout,
		Logger: slog.New(slog.DiscardHandler),

		RecursionLimit: DefaultRecursionLimit,
		SourceExt:      DefaultSourceExt,
		StartTime:      time.Now(),

		closures: make(map[ClosureID]*Environment),
		modules:  make(map[Symbol]*Module),
		imports:  make(map[Symbol]*Module),
	}
	for _, opt := range opts {
		opt(in)
	}

	// Keyword tables come first so that each category can install itself.
	// Extensions follow so that core extensions can register hosts and
	// modules.
	in.initKeywords()
	in.initRegular()
	in.initIrregular()
	in.initBoolean()
	in.initSpecial()
	in.initExtensions()

	for _, ext := range coreExt {
		ext(in)
	}
	return in
}

// Register registers a core extension. Each function is called on every new
// interpreter in the order it is registered. Register should be called from
// within init funcs. Panics if NewInterp has been called.
func Register(f func(*Interp)) {
	if haveInterp {
		panic("alvin/internal: Register must be called before any Interp is created")
	}
	coreExt = append(coreExt, f)
}

// coreExt is a list of core extensions that have been registered.
var coreExt = make([]func(*Interp), 0, 8)

// haveInterp is set once any interpreter exists.
var haveInterp bool

// DoString evaluates every form in src and returns the value of the last.
// Chunks delimited by @start and @end lines are extension blocks.
func (in *Interp) DoString(src string) (Value, error) {
	var result Value
	for _, c := range splitChunks(StripComments(src)) {
		if c.ext {
			if err := in.Extend(c.text); err != nil {
				return nil, err
			}
			result = nil
			continue
		}
		forms, err := in.ReadAll(c.text)
		if err != nil {
			return nil, err
		}
		for _, f := range forms {
			result, err = in.Evaluate(f)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// MustDoString evaluates src and panics on any error.
func (in *Interp) MustDoString(src string) Value {
	v, err := in.DoString(src)
	if err != nil {
		panic(fmt.Errorf("alvin: error evaluating %q: %w", src, err))
	}
	return v
}

// chunk is a run of source that is either expressions or one extension block.
type chunk struct {
	text string
	ext  bool
}

// splitChunks separates extension blocks from expressions.
func splitChunks(src string) []chunk {
	if !strings.Contains(src, extStart) {
		return []chunk{{text: src}}
	}
	var (
		r   []chunk
		cur strings.Builder
		ext bool
	)
	flush := func() {
		if cur.Len() > 0 {
			r = append(r, chunk{text: cur.String(), ext: ext})
			cur.Reset()
		}
	}
	for _, line := range strings.SplitAfter(src, "\n") {
		switch strings.TrimSpace(line) {
		case extStart:
			if !ext {
				flush()
				ext = true
			}
			cur.WriteString(line)
			continue
		case extEnd:
			if ext {
				cur.WriteString(line)
				flush()
				ext = false
				continue
			}
		}
		cur.WriteString(line)
	}
	flush()
	return r
}

// Lookup returns the innermost binding of name. Names of imported modules
// evaluate to the modules, and dotted names reach into modules, instances,
// and templates.
func (in *Interp) Lookup(name Symbol) (Value, error) {
	if v, ok := in.Env.Get(name); ok {
		return v, nil
	}
	if m, ok := in.imports[name]; ok {
		return m, nil
	}
	if prefix, member, ok := splitDotted(name); ok {
		if m, ok := in.imports[prefix]; ok {
			if v, ok := m.Members[member]; ok {
				return v, nil
			}
		}
		switch x := in.lookupQuiet(prefix).(type) {
		case *Instance, *Template:
			id, _ := closureOf(x)
			env, err := in.closure(id)
			if err != nil {
				return nil, err
			}
			if v, ok := env.Global()[member]; ok {
				return v, nil
			}
		}
	}
	return nil, &UndefinedVariable{Name: name}
}

// lookupQuiet returns the binding of name, or nil if there is none.
func (in *Interp) lookupQuiet(name Symbol) Value {
	v, _ := in.Env.Get(name)
	return v
}

// Set evaluates expr and binds the result to name in the given scope,
// counting from the innermost.
func (in *Interp) Set(name Symbol, expr Value, scope int) error {
	v, err := in.Evaluate(expr)
	if err != nil {
		return err
	}
	in.assign(name, v, scope)
	return nil
}

// Update evaluates expr and rebinds name in the innermost scope that already
// binds it.
func (in *Interp) Update(name Symbol, expr Value) error {
	if in.Env.FindScope(name) < 0 {
		return &UpdateBeforeDefinition{Name: name}
	}
	v, err := in.Evaluate(expr)
	if err != nil {
		return err
	}
	scope := in.Env.FindScope(name)
	if scope < 0 {
		return &UpdateBeforeDefinition{Name: name}
	}
	in.assign(name, v, scope)
	return nil
}

// Define creates a named function and binds it in the innermost scope.
func (in *Interp) Define(name Symbol, params, body Value) (*Function, error) {
	fn, err := in.NewFunction(name, params, body)
	if err != nil {
		return nil, err
	}
	in.assign(name, fn, 0)
	return fn, nil
}

// Delete removes the innermost binding of name.
func (in *Interp) Delete(name Symbol) error {
	scope := in.Env.FindScope(name)
	if scope < 0 {
		return &DeleteBeforeDefinition{Name: name}
	}
	f := in.Env.Frame(scope)
	old := f[name]
	delete(f, name)
	in.release(old)
	return nil
}

// assign binds v and releases the closure of the value it replaces, if that
// closure is no longer reachable.
func (in *Interp) assign(name Symbol, v Value, scope int) {
	f := in.Env.Frame(in.Env.clamp(scope))
	old, had := f[name]
	f[name] = v
	if had {
		in.release(old)
	}
}

// RunLocal runs f in a new innermost scope. The scope is closed when f
// returns, even if it fails, and the environment returns to its prior depth.
func (in *Interp) RunLocal(f func() (Value, error)) (Value, error) {
	depth := in.Env.Depth()
	in.Env.BeginScope()
	in.Logger.Debug("begin scope", "depth", in.Env.Depth())
	defer func() {
		in.Env.EndScope(in.Env.Depth() - depth)
		in.Logger.Debug("end scope", "depth", in.Env.Depth())
	}()
	return f()
}
