// Package opack2 implements Apple's OPACK2 binary object encoding used
// to carry structured payloads inside XPC frames. It encodes only;
// decoding OPACK2 is out of scope for this core.
//
// The encoder dispatches on Value's concrete shape (see Value below)
// the way backkem-matter/pkg/tlv/writer.go dispatches its Put* methods
// by magnitude range — here the magnitude ladders pick OPACK2's
// small-form vs. variable-form headers instead of TLV element types.
package opack2

import (
	"encoding/binary"
	"math"

	"github.com/harsha509/ios-pair-core/pairingerr"
)

// Map is an ordered string-keyed mapping. OPACK2 maps preserve
// insertion order for deterministic output, so this is a slice of
// entries rather than a Go map.
type Map struct {
	entries []mapEntry
}

type mapEntry struct {
	key   string
	value Value
}

// NewMap creates an empty ordered Map.
func NewMap() *Map {
	return &Map{}
}

// Set appends or updates key's entry, preserving first-insertion order
// for new keys.
func (m *Map) Set(key string, value Value) *Map {
	for i := range m.entries {
		if m.entries[i].key == key {
			m.entries[i].value = value
			return m
		}
	}
	m.entries = append(m.entries, mapEntry{key: key, value: value})
	return m
}

// Len returns the number of entries in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Value is the recursive OPACK2 value sum type: null, boolean, finite
// number, UTF-8 string, raw bytes, ordered list, or ordered
// string-keyed map. The zero Value encodes as null.
type Value struct {
	kind  kind
	b     bool
	f     float64
	isInt bool
	s     string
	raw   []byte
	list  []Value
	dict  *Map
}

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindBytes
	kindArray
	kindDict
)

// Null is the OPACK2 null/undefined value.
var Null = Value{kind: kindNull}

// Bool wraps a boolean value.
func Bool(v bool) Value { return Value{kind: kindBool, b: v} }

// Int wraps an integer value. Values above 2^53-1 are rejected at
// encode time; negative values are encoded as 32-bit floats.
func Int(v int64) Value { return Value{kind: kindNumber, f: float64(v), isInt: true} }

// Float wraps a non-integer (or negative) number, always encoded as a
// 32-bit IEEE-754 float regardless of the precision of v — deliberately
// lossy, matching the wire format's only representation for such values.
func Float(v float64) Value { return Value{kind: kindNumber, f: v, isInt: false} }

// String wraps a UTF-8 string value.
func String(v string) Value { return Value{kind: kindString, s: v} }

// Bytes wraps a raw byte-sequence value.
func Bytes(v []byte) Value { return Value{kind: kindBytes, raw: v} }

// Array wraps an ordered list of values.
func Array(v []Value) Value { return Value{kind: kindArray, list: v} }

// Dict wraps an ordered string-keyed map.
func Dict(m *Map) Value { return Value{kind: kindDict, dict: m} }

// Encode renders v as its OPACK2 byte representation.
func Encode(v Value) ([]byte, error) {
	var out []byte
	var err error
	out, err = appendValue(out, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func appendValue(out []byte, v Value) ([]byte, error) {
	switch v.kind {
	case kindNull:
		return append(out, 0x03), nil
	case kindBool:
		if v.b {
			return append(out, 0x01), nil
		}
		return append(out, 0x02), nil
	case kindNumber:
		return appendNumber(out, v)
	case kindString:
		return appendString(out, []byte(v.s))
	case kindBytes:
		return appendBytes(out, v.raw)
	case kindArray:
		return appendArray(out, v.list)
	case kindDict:
		return appendDict(out, v.dict)
	default:
		return nil, pairingerr.New(pairingerr.ErrOPACK2Encoding, "opack2: unsupported value type")
	}
}

// appendNumber implements the Number encoding: non-integers and
// negatives always go through the 32-bit float path; non-negative
// integers use the smallest of the four magnitude-based forms.
func appendNumber(out []byte, v Value) ([]byte, error) {
	if !v.isInt || v.f < 0 {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v.f)))
		out = append(out, 0x35)
		return append(out, buf[:]...), nil
	}

	n := uint64(v.f)
	switch {
	case n <= 39:
		return append(out, byte(n)+0x08), nil
	case n <= 0xFF:
		return append(out, 0x30, byte(n)), nil
	case n <= 0xFFFFFFFF:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(n))
		out = append(out, 0x32)
		return append(out, buf[:]...), nil
	case n <= (1<<53)-1:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		out = append(out, 0x33)
		return append(out, buf[:]...), nil
	default:
		return nil, pairingerr.Newf(pairingerr.ErrOPACK2Encoding, "opack2: integer %d exceeds 2^53-1", n)
	}
}

// appendString implements the String encoding.
func appendString(out []byte, data []byte) ([]byte, error) {
	l := len(data)
	switch {
	case l <= 0x20:
		out = append(out, byte(0x40+l))
	case l <= 0xFF:
		out = append(out, 0x61, byte(l))
	case l <= 0xFFFF:
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(l))
		out = append(out, 0x62)
		out = append(out, buf[:]...)
	case uint64(l) <= 0xFFFFFFFF:
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(l))
		out = append(out, 0x63)
		out = append(out, buf[:]...)
	default:
		return nil, pairingerr.Newf(pairingerr.ErrOPACK2Encoding, "opack2: string length %d exceeds 2^32-1", l)
	}
	return append(out, data...), nil
}

// appendBytes implements the Bytes encoding: identical shape to
// strings, with bases 0x70/0x91/0x92/0x93.
func appendBytes(out []byte, data []byte) ([]byte, error) {
	l := len(data)
	switch {
	case l <= 0x20:
		out = append(out, byte(0x70+l))
	case l <= 0xFF:
		out = append(out, 0x91, byte(l))
	case l <= 0xFFFF:
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(l))
		out = append(out, 0x92)
		out = append(out, buf[:]...)
	case uint64(l) <= 0xFFFFFFFF:
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(l))
		out = append(out, 0x93)
		out = append(out, buf[:]...)
	default:
		return nil, pairingerr.Newf(pairingerr.ErrOPACK2Encoding, "opack2: byte length %d exceeds 2^32-1", l)
	}
	return append(out, data...), nil
}

// appendArray implements the Array encoding. Small arrays (L <= 15)
// use header 0xD0+L; larger arrays use the variable form 0xDF,
// elements, terminator 0x03.
func appendArray(out []byte, items []Value) ([]byte, error) {
	l := len(items)
	var err error
	if l <= 15 {
		out = append(out, byte(0xD0+l))
		for _, item := range items {
			out, err = appendValue(out, item)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	out = append(out, 0xDF)
	for _, item := range items {
		out, err = appendValue(out, item)
		if err != nil {
			return nil, err
		}
	}
	return append(out, 0x03), nil
}

// appendDict implements the Mapping encoding. The small-form threshold
// is L < 15 (strictly less than), not L <= 15 as for arrays — this
// asymmetry is intentional and must be preserved exactly: changing it
// produces payloads Apple's decoder rejects. The variable form's
// terminator is two bytes, 0x03 0x03, not one.
func appendDict(out []byte, m *Map) ([]byte, error) {
	l := m.Len()
	var err error
	if l < 15 {
		out = append(out, byte(0xE0+l))
		for _, e := range m.entries {
			out, err = appendString(out, []byte(e.key))
			if err != nil {
				return nil, err
			}
			out, err = appendValue(out, e.value)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	out = append(out, 0xEF)
	for _, e := range m.entries {
		out, err = appendString(out, []byte(e.key))
		if err != nil {
			return nil, err
		}
		out, err = appendValue(out, e.value)
		if err != nil {
			return nil, err
		}
	}
	return append(out, 0x03, 0x03), nil
}
