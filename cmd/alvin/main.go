// Command alvin runs Alvin programs and the interactive interpreter.
//
// Usage:
//
//	alvin [flags] [file.alv ...]
//
// Each named file is run in order. With no files, or with -i, alvin then
// reads expressions from standard input, printing each result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/config"
	"github.com/zephyrtronium/alvin/coreext/sys"

	// import for side effects
	_ "github.com/zephyrtronium/alvin/coreext"
)

func main() {
	var (
		interactive bool
		debug       bool
		persist     bool
		cfgPath     string
	)
	flag.BoolVar(&interactive, "i", false, "run interactively after any files, with prompts and a welcome")
	flag.BoolVar(&debug, "d", false, "debug mode: log evaluation details and stop at the first error")
	flag.BoolVar(&persist, "p", false, "keep extensions registered in this session")
	flag.StringVar(&cfgPath, "config", config.DefaultPath(), "configuration `file`")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts := append(cfg.Options(), alvin.WithArgs(flag.Args()...))
	if debug {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, alvin.WithLogger(slog.New(h)))
	}
	in := alvin.NewInterp(opts...)
	if err := in.OpenExtensions(cfg.Store(), persist || cfg.Extensions.Persist); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", alvin.ErrorName(err), err)
		os.Exit(1)
	}

	r := &repl{
		in:          in,
		cfg:         cfg,
		out:         os.Stdout,
		interactive: interactive,
		debug:       debug,
		flags:       flagSummary(),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		r.close()
		os.Exit(130)
	}()

	for _, path := range flag.Args() {
		if _, err := in.DoFile(path); err != nil {
			if code, stop := r.report(err); stop {
				r.close()
				os.Exit(code)
			}
		}
	}
	code := 0
	if interactive || flag.NArg() == 0 {
		code = r.run(newReader(os.Stdin, os.Stdout, cfg, interactive))
	}
	r.close()
	os.Exit(code)
}

// exitCode returns the status requested by sys.exit, or -1 if err is not an
// exit request.
func exitCode(err error) int {
	var exit *sys.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return -1
}

func flagSummary() string {
	var s string
	flag.VisitAll(func(f *flag.Flag) {
		s += fmt.Sprintf("-%-8s %s (%s)\n", f.Name, f.Usage, f.Value)
	})
	return s
}
