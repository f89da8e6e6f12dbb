package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/command"
	"github.com/danderson/cdif"
	"github.com/danderson/cdif/cborcdc"
	"github.com/danderson/cdif/jsoncdc"
)

type indenter struct {
	out        io.Writer
	prefix     string
	indentNext bool
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if i.indentNext {
			i.indentNext = false
			_, err := io.WriteString(i.out, i.prefix)
			if err != nil {
				return ret, err
			}
		}

		var wr []byte
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.indentNext = true
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			wr, bs = bs, nil
		}

		n, err := i.out.Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
}

// printTree writes f to out, one line per value, with the children of
// containers indented below their parent.
func printTree(out *indenter, depth int, label string, f cdif.Field) {
	out.indent(depth)
	if label != "" {
		label += ": "
	}
	k := f.Kind()
	switch {
	case k.IsComposite():
		out.f("%s%s %s", label, k, f.TypeID())
		for _, p := range f.Pairs() {
			printTree(out, depth+1, p.Name, p.Value)
		}
	case k == cdif.KindArray:
		elems := f.Elems()
		out.f("%sArray (%d elements)", label, len(elems))
		for i, e := range elems {
			printTree(out, depth+1, fmt.Sprintf("[%d]", i), e)
		}
	case k == cdif.KindDictionary:
		entries := f.Entries()
		out.f("%sDictionary (%d entries)", label, len(entries))
		for _, e := range entries {
			printTree(out, depth+1, e.Key.String(), e.Value)
		}
	case k == cdif.KindOptional && !f.IsNone():
		inner, _ := f.Inner()
		out.f("%sSome", label)
		printTree(out, depth+1, "", inner)
	default:
		out.f("%s%s", label, f)
	}
}

func optionalArg(env *command.Env) (string, error) {
	switch len(env.Args) {
	case 0:
		return "-", nil
	case 1:
		return env.Args[0], nil
	default:
		return "", env.Usagef("too many arguments")
	}
}

// readFields decodes the values in the named file, or standard input
// if path is "-".
func readFields(path, format string) ([]cdif.Field, error) {
	var (
		bs  []byte
		err error
	)
	if path == "-" {
		bs, err = io.ReadAll(os.Stdin)
	} else {
		bs, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if format == "auto" {
		format = "cbor"
		if trimmed := bytes.TrimSpace(bs); len(trimmed) > 0 && trimmed[0] == '{' {
			format = "json"
		}
	}
	switch format {
	case "json":
		f, err := jsoncdc.Decode(bs)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return []cdif.Field{f}, nil
	case "cbor":
		var ret []cdif.Field
		dec := cborcdc.NewDecoder(bytes.NewReader(bs))
		for {
			f, err := dec.Decode()
			if errors.Is(err, io.EOF) {
				return ret, nil
			}
			if err != nil {
				return nil, fmt.Errorf("decoding %s: %w", path, err)
			}
			ret = append(ret, f)
		}
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}
