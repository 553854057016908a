// Package params provides the parameter model carried inside a path's
// parameter segment: a closed scalar value type (string, number, bool)
// and an insertion-ordered string-keyed map with an order-preserving
// JSON round trip.
package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	// KindUnset is the zero Kind. An unset Value is the explicit
	// "remove this key" marker used when rebuilding paths.
	KindUnset Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a closed JSON-scalar: string, number, or bool.
// The zero Value is the unset marker.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Unset returns the explicit unset marker.
func Unset() Value { return Value{} }

// Kind reports the scalar type of v.
func (v Value) Kind() Kind { return v.kind }

// IsUnset reports whether v is the unset marker.
func (v Value) IsUnset() bool { return v.kind == KindUnset }

// Text renders v for display. Numbers use the shortest exact form
// ("2024", "3.5"), booleans render as "true"/"false".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Interface returns the underlying Go value (string, float64, bool, or
// nil for unset).
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool { return v == o }

// MarshalJSON encodes the scalar; the unset marker encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Params is an insertion-ordered mapping of parameter names to scalar
// values. The zero Params is empty and ready to use.
//
// Params is written from the single UI thread only; no locking.
type Params struct {
	keys []string
	vals map[string]Value
}

// New returns an empty Params.
func New() Params { return Params{} }

// Len returns the number of keys.
func (p Params) Len() int { return len(p.keys) }

// IsEmpty reports whether no keys are set.
func (p Params) IsEmpty() bool { return len(p.keys) == 0 }

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Get returns the value for key and whether it is present.
func (p Params) Get(key string) (Value, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Set stores value under key, appending the key on first use.
func (p *Params) Set(key string, value Value) {
	if p.vals == nil {
		p.vals = make(map[string]Value)
	}
	if _, exists := p.vals[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = value
}

// Delete removes key if present.
func (p *Params) Delete(key string) {
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := Params{}
	for _, k := range p.keys {
		out.Set(k, p.vals[k])
	}
	return out
}

// Merge returns a copy of p with every key of other set on top,
// overriding on collision.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for _, k := range other.keys {
		out.Set(k, other.vals[k])
	}
	return out
}

// Equal reports whether both hold the same key/value pairs. Key order
// is not significant.
func (p Params) Equal(o Params) bool {
	if len(p.keys) != len(o.keys) {
		return false
	}
	for _, k := range p.keys {
		ov, ok := o.vals[k]
		if !ok || !p.vals[k].Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := p.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. Scalar
// values map onto the closed value type; nested objects and arrays are
// kept as their compact JSON text in a string value; null values drop
// the key (null means "unset" in the path-rebuild pruning rule, so a
// stored null must never resurrect a parameter).
func (p *Params) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("parameter segment is not a JSON object")
	}
	out := Params{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v for object key", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		v, keep, err := valueFromRaw(raw)
		if err != nil {
			return err
		}
		if keep {
			out.Set(key, v)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}

func valueFromRaw(raw json.RawMessage) (Value, bool, error) {
	t := strings.TrimSpace(string(raw))
	if t == "" {
		return Value{}, false, fmt.Errorf("empty JSON value")
	}
	switch t[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, false, err
		}
		return String(s), true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, false, err
		}
		return Bool(b), true, nil
	case 'n':
		return Value{}, false, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return Value{}, false, err
		}
		return String(buf.String()), true, nil
	default:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return Value{}, false, fmt.Errorf("invalid JSON number %q: %w", t, err)
		}
		return Number(f), true, nil
	}
}
