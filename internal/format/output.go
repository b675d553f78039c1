package format

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// Envelope wraps CLI payloads: {"data": ...}.
type Envelope struct {
	Data any `json:"data"`
}

// Write writes v in the requested format.
//
// Supported formats:
// - json (default): the value wrapped in an Envelope
// - text: one line per label for string slices, otherwise fmt's %v
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, Envelope{Data: v}, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteText(w io.Writer, v any) error {
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, t.String())
		return err
	default:
		_, err := fmt.Fprintf(w, "%v\n", t)
		return err
	}
}
