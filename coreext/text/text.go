// Package text provides the text module, imported in Alvin with
// (import text). It converts the case of text atoms and normalizes their
// Unicode representation.
package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/internal"
)

func init() {
	internal.Register(initText)
}

func initText(in *alvin.Interp) {
	in.ProvideModule(&alvin.Module{
		Name: "text",
		Members: map[alvin.Symbol]alvin.Value{
			"upper":     alvin.NewBuiltin("upper", caser("text.upper", func() cases.Caser { return cases.Upper(language.Und) })),
			"lower":     alvin.NewBuiltin("lower", caser("text.lower", func() cases.Caser { return cases.Lower(language.Und) })),
			"title":     alvin.NewBuiltin("title", caser("text.title", func() cases.Caser { return cases.Title(language.Und) })),
			"fold":      alvin.NewBuiltin("fold", caser("text.fold", func() cases.Caser { return cases.Fold() })),
			"normalize": alvin.NewBuiltin("normalize", normalize),
			"split":     alvin.NewBuiltin("split", split),
			"join":      alvin.NewBuiltin("join", join),
		},
	})
}

// caser creates a text function applying a case mapping. Casers are stateful,
// so each call gets a new one.
func caser(name alvin.Symbol, mk func() cases.Caser) alvin.Primitive {
	return func(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
		if err := internal.CheckArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		s, err := internal.TextArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return alvin.Text(mk().String(s)), nil
	}
}

var forms = map[string]norm.Form{
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// normalize is a text function.
//
// normalize converts text to a Unicode normalization form, NFC by default.
// The form is named by the optional second argument.
func normalize(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("text.normalize", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := internal.TextArg("text.normalize", args, 0)
	if err != nil {
		return nil, err
	}
	f := norm.NFC
	if len(args) > 1 {
		name, err := internal.TextArg("text.normalize", args, 1)
		if err != nil {
			return nil, err
		}
		var ok bool
		f, ok = forms[strings.ToUpper(name)]
		if !ok {
			return nil, &alvin.TypeError{Op: "text.normalize", Msg: "unknown normalization form " + name}
		}
	}
	return alvin.Text(f.String(s)), nil
}

// split is a text function.
//
// split returns the characters of a text atom as a list, or the pieces
// between occurrences of the separator given as the second argument.
func split(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("text.split", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := internal.TextArg("text.split", args, 0)
	if err != nil {
		return nil, err
	}
	sep := ""
	if len(args) > 1 {
		if sep, err = internal.TextArg("text.split", args, 1); err != nil {
			return nil, err
		}
	}
	parts := strings.Split(s, sep)
	r := make(alvin.List, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			r = append(r, alvin.Text(p))
		}
	}
	return r, nil
}

// join is a text function.
//
// join concatenates the printed forms of a list's elements, placing the
// optional separator between them.
func join(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("text.join", args, 1, 2); err != nil {
		return nil, err
	}
	l, ok := alvin.Datum(args[0]).(alvin.List)
	if !ok {
		return nil, &alvin.TypeError{Op: "text.join", Msg: "expected list, got " + alvin.KindOf(args[0]).String()}
	}
	sep := ""
	if len(args) > 1 {
		var err error
		if sep, err = internal.TextArg("text.join", args, 1); err != nil {
			return nil, err
		}
	}
	var b strings.Builder
	for i, v := range l {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(alvin.Print(v))
	}
	return alvin.Text(b.String()), nil
}
