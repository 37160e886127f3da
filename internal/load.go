package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// openSource opens a source file for reading as UTF-8. A byte order mark
// selects UTF-16 decoding instead and is dropped.
func openSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return struct {
		io.Reader
		io.Closer
	}{r, f}, nil
}

// DoFile runs the source file at path. The path must end in the
// interpreter's source extension.
func (in *Interp) DoFile(path string) (Value, error) {
	if !strings.HasSuffix(path, in.SourceExt) {
		return nil, &TypeError{Op: "load", Msg: fmt.Sprintf("%s is not a %s file", path, in.SourceExt)}
	}
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	in.Logger.Debug("load", "path", path, "bytes", len(b))
	return in.DoString(string(b))
}

// ReadLines returns the lines of the file at path without their line
// endings.
func ReadLines(path string) ([]string, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r []string
	sc := bufio.NewScanner(f)
	sc.Buffer(nil, 1<<24)
	for sc.Scan() {
		r = append(r, sc.Text())
	}
	return r, sc.Err()
}
