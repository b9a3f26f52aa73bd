package deffile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"FormatKit/expr"
)

// Eval evaluates the arguments of key as an expression. Variables refer
// to other keys of the document, which are evaluated in turn, so
//
//	width  640
//	height width * 3 / 4
//
// gives 480 for height. Circular references are an error.
func (d *Document) Eval(key string) (float64, error) {
	return d.eval(key, make(map[string]bool))
}

func (d *Document) eval(key string, visiting map[string]bool) (float64, error) {
	e, ok := d.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	name := strings.ToLower(e.Key)
	if visiting[name] {
		return 0, fmt.Errorf("'%s' refers to itself", e.Key)
	}
	visiting[name] = true
	defer delete(visiting, name)

	src := strings.Join(e.Args, " ")
	if v, err := strconv.ParseFloat(src, 64); err == nil {
		return v, nil
	}
	v, err := expr.EvaluateWith(src, entryParams{d, visiting})
	if err != nil {
		return 0, fmt.Errorf("'%s' on line %d: %w", e.Key, e.Line, err)
	}
	return v, nil
}

// entryParams resolves expression variables from the document.
type entryParams struct {
	doc      *Document
	visiting map[string]bool
}

func (p entryParams) Get(name string) (interface{}, error) {
	return p.doc.eval(name, p.visiting)
}

// Decode copies the document into out, which must be a pointer to a
// struct or map. Keys match field names ignoring case, or the
// `mapstructure` tag. A key with one argument decodes as that string, one
// with several as a slice and one without arguments as true. Strings
// convert to numbers and booleans as needed.
func (d *Document) Decode(out interface{}) error {
	values := make(map[string]interface{}, len(d.index))
	for _, i := range d.index {
		e := d.Entries[i]
		switch len(e.Args) {
		case 0:
			values[e.Key] = true
		case 1:
			values[e.Key] = e.Args[0]
		default:
			values[e.Key] = e.Args
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode definition: %w", err)
	}
	return nil
}
