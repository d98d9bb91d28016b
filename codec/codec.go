// Package codec encodes checkpoint entries.
//
// Every checkpoint manifest records the codec name, so a snapshot written
// with one codec is decoded with the same codec regardless of the current
// default.
package codec

import "github.com/cockroachdb/errors"

// ErrUnknown is returned by Lookup for names no built-in codec carries.
var ErrUnknown = errors.New("codec: unknown codec")

// Codec encodes and decodes values. Implementations must be safe for
// concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Lookup is ByName with an error for unknown names.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknown, "%q", name)
	}

	return c, nil
}

// MustMarshal marshals v with c, or with Default when c is nil, and panics
// on failure.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}

	b, err := c.Marshal(v)
	if err != nil {
		panic(errors.Wrapf(err, "codec %s: marshal", c.Name()))
	}

	return b
}
