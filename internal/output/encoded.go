package output

import (
	"bufio"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

type encodeFunc func(w io.Writer, v any) error

// encoded buffers values and writes them in one document on Flush. A single
// value is written as is, several as a list.
type encoded struct {
	w      *bufio.Writer
	encode encodeFunc
	items  []any
}

func newEncoded(w io.Writer, encode encodeFunc) *encoded {
	return &encoded{w: bufio.NewWriter(w), encode: encode}
}

func (e *encoded) Write(v any) error {
	e.items = append(e.items, v)
	return nil
}

func (e *encoded) Flush() error {
	if len(e.items) == 0 {
		return nil
	}
	var v any = e.items
	if len(e.items) == 1 {
		v = e.items[0]
	}
	e.items = nil
	if err := e.encode(e.w, v); err != nil {
		return err
	}
	return e.w.Flush()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
