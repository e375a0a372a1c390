package cart

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
)

// EncodeSnapshot serializes the cart as a JSON object of id→quantity for
// durable storage. Keys are written in insertion order so a decoded cart
// renders exactly as the user built it. An empty or nil cart encodes as "{}".
func EncodeSnapshot(c *Cart) []byte {
	if c == nil || c.IsEmpty() {
		return []byte("{}")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return []byte("{}")
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.qty[id]))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// DecodeSnapshot restores a cart from its stored form, keeping the key order
// of the document. Decoding is defensive: malformed, legacy-shaped, or
// foreign values (including plain strings left over from older schema
// versions) yield an empty cart rather than an error. Entries with
// non-positive quantities are dropped.
func DecodeSnapshot(raw []byte) *Cart {
	if len(raw) == 0 {
		return New()
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return New()
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return New()
	}
	c := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return New()
		}
		id, ok := keyTok.(string)
		if !ok {
			return New()
		}
		var qty int
		if err := dec.Decode(&qty); err != nil {
			return New()
		}
		if id == "" || qty <= 0 {
			continue
		}
		if _, exists := c.qty[id]; !exists {
			c.order = append(c.order, id)
		}
		c.qty[id] += qty
	}
	if _, err := dec.Token(); err != nil {
		return New()
	}
	if _, err := dec.Token(); err != io.EOF {
		// Trailing content after the object means the value never was a
		// cart snapshot.
		return New()
	}
	return c
}
