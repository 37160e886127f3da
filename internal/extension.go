package internal

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// extStart and extEnd are the lines bracketing an extension block in
	// source text.
	extStart = "@start"
	extEnd   = "@end"
	// includeDirective begins each extension definition in a store.
	includeDirective = "#INCLUDE"
)

// ExtensionInfo describes one registered extension.
type ExtensionInfo struct {
	// Alias is the keyword the extension is installed as.
	Alias Symbol
	// Host is the host catalog name the extension came from, or the alias for
	// extensions defined in Alvin.
	Host Symbol
	// Lines is the number of lines the extension's definition occupies in the
	// backing store.
	Lines int
}

// extBlock is one parsed definition from a store.
type extBlock struct {
	Host, Alias Symbol
	Body        string
	Lines       int
}

// extensions is an interpreter's extension registry. The log lists
// installed extensions in the same order as their definitions appear in the
// store, most recently added first.
type extensions struct {
	mu sync.Mutex

	store    Store
	persist  bool
	snapshot []byte
	closed   bool

	// preamble is the number of lines before the first definition.
	preamble int
	// joined is set when the registry ended the preamble's last line with
	// the newline it lacked, so that withdrawing everything can remove it.
	joined bool
	log    []ExtensionInfo

	// hosts is the catalog of Go extensions available to definitions.
	hosts map[Symbol]Primitive
	// funcs are the functions behind extensions defined in Alvin.
	funcs map[Symbol]Value
}

// initExtensions creates the registry on an empty in-memory store.
func (in *Interp) initExtensions() {
	in.ext = &extensions{
		store: NewMemStore(""),
		hosts: make(map[Symbol]Primitive),
		funcs: make(map[Symbol]Value),
	}
}

// RegisterHost adds fn to the host catalog under name, making it available to
// extension definitions. It does not install an extension.
func (in *Interp) RegisterHost(name Symbol, fn Primitive) {
	in.ext.hosts[name] = fn
}

// Hosts returns the names in the host catalog, sorted.
func (in *Interp) Hosts() []Symbol {
	return sortedKeys(in.ext.hosts)
}

// OpenExtensions attaches s as the registry's backing store and installs
// every extension it defines. Unless persist is set, CloseExtensions restores
// the store to its content at this moment.
func (in *Interp) OpenExtensions(s Store, persist bool) error {
	data, err := s.Load()
	if err != nil {
		return fmt.Errorf("alvin: error loading extensions: %w", err)
	}
	in.ext.mu.Lock()
	in.ext.store = s
	in.ext.persist = persist
	in.ext.snapshot = data
	in.ext.closed = false
	in.ext.joined = false
	in.ext.mu.Unlock()
	return in.reloadExtensions(string(data))
}

// Extensions returns the installed extensions, most recently added first.
func (in *Interp) Extensions() []ExtensionInfo {
	r := make([]ExtensionInfo, len(in.ext.log))
	copy(r, in.ext.log)
	return r
}

// Register adds fn to the host catalog under name and installs it as an
// extension keyword, recording its definition in the store.
func (in *Interp) Register(name Symbol, fn Primitive) error {
	in.RegisterHost(name, fn)
	return in.addBlocks([]extBlock{{Host: name, Alias: name}})
}

// Extend installs the extensions defined in src, which may be bracketed by
// @start and @end lines. Each definition is
//
//	#INCLUDE host as alias
//	optional Alvin source
//
// With no source, host names an entry in the host catalog. Otherwise the
// source must evaluate to a function, which the extension calls with its
// evaluated operands. The definitions are recorded in the store.
func (in *Interp) Extend(src string) error {
	var body []string
	for _, line := range strings.SplitAfter(src, "\n") {
		switch strings.TrimSpace(line) {
		case extStart, extEnd:
			continue
		}
		body = append(body, line)
	}
	pre, blocks, err := parseBlocks(body)
	if err != nil {
		return err
	}
	for _, line := range body[:pre] {
		if strings.TrimSpace(line) != "" {
			return &ExtensionError{Msg: "text before first " + includeDirective + ": " + strings.TrimSpace(line)}
		}
	}
	if len(blocks) == 0 {
		return &ExtensionError{Msg: "no definitions in extension block"}
	}
	return in.addBlocks(blocks)
}

// Withdraw removes the named extension: its definition is cut from the store
// and the remaining definitions are reinstalled from the store.
func (in *Interp) Withdraw(name Symbol) error {
	i := in.extIndex(name)
	if i < 0 {
		return &ExtensionWithdrawError{Name: name}
	}
	data, err := in.ext.store.Load()
	if err != nil {
		return fmt.Errorf("alvin: error loading extensions: %w", err)
	}
	lines := splitLines(string(data))
	off := in.ext.preamble
	for _, e := range in.ext.log[:i] {
		off += e.Lines
	}
	end := off + in.ext.log[i].Lines
	if end > len(lines) {
		return &ExtensionError{Name: name, Msg: "store is shorter than its recorded definitions"}
	}
	rest := strings.Join(lines[:off], "") + strings.Join(lines[end:], "")
	if in.ext.joined && len(in.ext.log) == 1 {
		rest = strings.TrimSuffix(rest, "\n")
		in.ext.joined = false
	}
	if err := in.ext.store.Save([]byte(rest)); err != nil {
		return fmt.Errorf("alvin: error saving extensions: %w", err)
	}
	in.Logger.Debug("withdrew extension", "alias", name, "lines", end-off)
	return in.reloadExtensions(rest)
}

// CloseExtensions ends the extension session. Unless the registry was opened
// with persist set, the store is restored to its content when it was opened.
// Only the first call has any effect; it is safe to call from another
// goroutine, e.g. a signal handler.
func (in *Interp) CloseExtensions() error {
	e := in.ext
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.persist {
		in.Logger.Debug("kept extensions", "count", len(e.log))
		return nil
	}
	if err := e.store.Save(e.snapshot); err != nil {
		return fmt.Errorf("alvin: error reverting extensions: %w", err)
	}
	in.Logger.Debug("reverted extensions")
	return nil
}

// extIndex returns the log index of alias, or -1.
func (in *Interp) extIndex(alias Symbol) int {
	for i, e := range in.ext.log {
		if e.Alias == alias {
			return i
		}
	}
	return -1
}

// addBlocks installs new definitions and records them directly after the
// store's preamble, ahead of older definitions.
func (in *Interp) addBlocks(blocks []extBlock) error {
	for i := range blocks {
		blocks[i].Body = strings.TrimSpace(blocks[i].Body)
		text := renderBlock(blocks[i])
		blocks[i].Lines = strings.Count(text, "\n")
	}
	for i, b := range blocks {
		if err := in.installBlock(b); err != nil {
			for _, u := range blocks[:i] {
				in.uninstall(u.Alias)
			}
			return err
		}
	}
	data, err := in.ext.store.Load()
	if err != nil {
		return fmt.Errorf("alvin: error loading extensions: %w", err)
	}
	lines := splitLines(string(data))
	pre := in.ext.preamble
	if pre > len(lines) {
		pre = len(lines)
	}
	var b strings.Builder
	for _, l := range lines[:pre] {
		b.WriteString(l)
	}
	joined := false
	if pre > 0 && !strings.HasSuffix(lines[pre-1], "\n") {
		b.WriteByte('\n')
		joined = true
	}
	entries := make([]ExtensionInfo, len(blocks))
	for i, blk := range blocks {
		b.WriteString(renderBlock(blk))
		entries[i] = ExtensionInfo{Alias: blk.Alias, Host: blk.Host, Lines: blk.Lines}
	}
	for _, l := range lines[pre:] {
		b.WriteString(l)
	}
	if err := in.ext.store.Save([]byte(b.String())); err != nil {
		for _, u := range blocks {
			in.uninstall(u.Alias)
		}
		return fmt.Errorf("alvin: error saving extensions: %w", err)
	}
	if joined {
		in.ext.joined = true
	}
	in.ext.log = append(entries, in.ext.log...)
	for _, blk := range blocks {
		in.Logger.Debug("registered extension", "alias", blk.Alias, "host", blk.Host, "lines", blk.Lines)
	}
	return nil
}

// installBlock makes one definition callable as a keyword.
func (in *Interp) installBlock(b extBlock) error {
	switch in.Keywords.Classify(b.Alias) {
	case NotKeyword:
	case Extension:
		return &ExtensionError{Name: b.Alias, Msg: "already registered"}
	default:
		return &ExtensionError{Name: b.Alias, Msg: "is a built-in keyword"}
	}
	if b.Body == "" {
		fn, ok := in.ext.hosts[b.Host]
		if !ok {
			return &ExtensionError{Name: b.Alias, Msg: "no host extension named " + string(b.Host)}
		}
		in.Keywords.Extensions[b.Alias] = fn
		return nil
	}
	forms, err := in.ReadAll(b.Body)
	if err != nil {
		return err
	}
	var v Value
	for _, f := range forms {
		if v, err = in.Evaluate(f); err != nil {
			return err
		}
	}
	switch fn := v.(type) {
	case *Function:
		in.ext.funcs[b.Alias] = fn
		in.Keywords.Extensions[b.Alias] = func(in *Interp, args List) (Value, error) {
			return in.Call(fn, args)
		}
	case *Builtin:
		in.Keywords.Extensions[b.Alias] = func(in *Interp, args List) (Value, error) {
			return in.callBuiltin(fn, args)
		}
	default:
		return &ExtensionError{Name: b.Alias, Msg: "definition must evaluate to a function, not " + KindOf(v).String()}
	}
	return nil
}

// uninstall removes an extension keyword without touching the store.
func (in *Interp) uninstall(alias Symbol) {
	delete(in.Keywords.Extensions, alias)
	delete(in.ext.funcs, alias)
}

// reloadExtensions reinstalls every definition in data, replacing the
// installed set.
func (in *Interp) reloadExtensions(data string) error {
	for alias := range in.Keywords.Extensions {
		in.uninstall(alias)
	}
	in.ext.log = in.ext.log[:0]
	pre, blocks, err := parseBlocks(splitLines(data))
	if err != nil {
		return err
	}
	in.ext.preamble = pre
	for _, b := range blocks {
		// Record the definition even if it fails to install so that line
		// offsets stay aligned with the store.
		in.ext.log = append(in.ext.log, ExtensionInfo{Alias: b.Alias, Host: b.Host, Lines: b.Lines})
		b.Body = strings.TrimSpace(b.Body)
		if err := in.installBlock(b); err != nil {
			in.Logger.Warn("could not install extension", "alias", b.Alias, "err", err)
		}
	}
	return nil
}

// splitLines splits text into lines, each keeping its newline.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseBlocks splits lines into a preamble and definitions. Each definition
// runs from its #INCLUDE line to the next one.
func parseBlocks(lines []string) (int, []extBlock, error) {
	pre := len(lines)
	var blocks []extBlock
	for i, line := range lines {
		f := strings.Fields(line)
		if len(f) == 0 || f[0] != includeDirective {
			if len(blocks) > 0 {
				b := &blocks[len(blocks)-1]
				b.Body += line
				b.Lines++
			}
			continue
		}
		if len(blocks) == 0 {
			pre = i
		}
		var b extBlock
		switch {
		case len(f) == 2:
			b.Host, b.Alias = Symbol(f[1]), Symbol(f[1])
		case len(f) == 4 && f[2] == "as":
			b.Host, b.Alias = Symbol(f[1]), Symbol(f[3])
		default:
			return 0, nil, &ExtensionError{Msg: "malformed directive: " + strings.TrimSpace(line)}
		}
		b.Lines = 1
		blocks = append(blocks, b)
	}
	return pre, blocks, nil
}

// renderBlock formats a definition as it is stored: the directive, the body
// if any, and a blank line.
func renderBlock(b extBlock) string {
	var s strings.Builder
	s.WriteString(includeDirective + " " + string(b.Host) + " as " + string(b.Alias) + "\n")
	if b.Body != "" {
		s.WriteString(b.Body)
		s.WriteByte('\n')
	}
	s.WriteByte('\n')
	return s.String()
}
