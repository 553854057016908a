// Package pathcodec encodes and decodes the parameter segment that a
// navigable path carries after its first '?'. The segment is normally a
// JSON object literal, which keeps arbitrarily structured filter state
// (date ranges, multi-column text filters) in one opaque, copyable
// chunk. A legacy "key=value&key=value" form is still accepted on
// decode for compatibility with old links.
package pathcodec

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/pkg/params"
)

// Encode serializes p as a JSON object in key insertion order.
// An empty mapping encodes to "".
func Encode(p params.Params) string {
	if p.IsEmpty() {
		return ""
	}
	data, err := json.Marshal(p)
	if err != nil {
		// Closed scalar values cannot fail to marshal.
		return ""
	}
	return string(data)
}

// Decode parses a parameter segment. An empty segment yields an empty
// mapping. A (URL-decoded) segment starting with '{' or '[' is parsed
// as JSON; parse failures are logged and yield an empty mapping, never
// an error. Anything else is treated as a legacy query string with
// boolean and number coercion.
//
// Legacy number coercion is strict: a value is a number only when the
// whole token parses as one, so "3abc" stays a string. This tightens
// the original rule, which accepted any numeric prefix.
func Decode(segment string, log logr.Logger) params.Params {
	if segment == "" {
		return params.Params{}
	}
	s := segment
	if unescaped, err := url.PathUnescape(segment); err == nil {
		s = unescaped
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var p params.Params
		if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
			log.Error(err, "malformed parameter segment ignored", "segment", segment)
			return params.Params{}
		}
		return p
	}
	// The legacy parser unescapes each key and value itself, so it gets
	// the raw segment: an escape like %2B must decode exactly once.
	return decodeLegacy(strings.TrimSpace(segment))
}

// decodeLegacy parses "key=value&..." pairs with scalar coercion.
func decodeLegacy(segment string) params.Params {
	p := params.Params{}
	for _, pair := range strings.Split(segment, "&") {
		if pair == "" {
			continue
		}
		key, rawValue, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if key == "" {
			continue
		}
		if unescaped, err := url.QueryUnescape(rawValue); err == nil {
			rawValue = unescaped
		}
		p.Set(key, coerceLegacyValue(rawValue))
	}
	return p
}

func coerceLegacyValue(raw string) params.Value {
	switch raw {
	case "true":
		return params.Bool(true)
	case "false":
		return params.Bool(false)
	}
	if raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return params.Number(f)
		}
	}
	return params.String(raw)
}

// Split divides input at the first '?' into the clean route path and
// the raw parameter segment. Without a '?' the segment is empty.
func Split(input string) (cleanPath, rawSegment string) {
	if idx := strings.Index(input, "?"); idx >= 0 {
		return input[:idx], input[idx+1:]
	}
	return input, ""
}

// BuildPath re-encodes path with newParams merged over any parameters
// the path already carries; newParams wins on key collision. When the
// merged mapping is empty the clean path is returned with no trailing
// '?'.
func BuildPath(path string, newParams params.Params, log logr.Logger) string {
	cleanPath, rawSegment := Split(path)
	merged := Decode(rawSegment, log).Merge(newParams)
	if merged.IsEmpty() {
		return cleanPath
	}
	return cleanPath + "?" + Encode(merged)
}
