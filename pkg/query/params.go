package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Param is a single backend query parameter.
type Param struct {
	Key   string
	Value any // int, int64, float64 or string
}

// Params is an ordered mapping from parameter name to scalar value. Each key
// appears once; setting an existing key replaces its value in place.
type Params struct {
	entries []Param
	index   map[string]int
}

// Set assigns value to key.
func (p *Params) Set(key string, value any) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.entries[i].Value = value
		return
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, Param{Key: key, Value: value})
}

// Get returns the value stored for key.
func (p *Params) Get(key string) (any, bool) {
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.entries[i].Value, true
}

// Has reports whether key is set.
func (p *Params) Has(key string) bool {
	_, ok := p.index[key]
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.entries)
}

// All returns the parameters in insertion order.
func (p *Params) All() []Param {
	return append([]Param(nil), p.entries...)
}

// Encode renders the parameters as a URL query string, preserving order.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, e := range p.entries {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(e.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(FormatValue(e.Value)))
	}
	return b.String()
}

// MarshalJSON renders the parameters as a JSON object in insertion order.
func (p Params) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		if s, ok := e.Value.(string); ok {
			val, err := json.Marshal(s)
			if err != nil {
				return nil, err
			}
			b.Write(val)
			continue
		}
		b.WriteString(FormatValue(e.Value))
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// FormatValue renders a parameter value the way the backend expects it.
func FormatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
