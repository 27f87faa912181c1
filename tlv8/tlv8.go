// Package tlv8 implements the fragmenting TLV8 encoder used to frame
// Pair-Setup messages: each item is a (type, data) pair, emitted as one
// or more [type:1][length:1][payload:length] records. Values longer
// than 255 bytes are split across consecutive records sharing the same
// type, all but the last carrying exactly 255 bytes; decoders identify
// the final fragment of a run by a length byte less than 255.
//
// This package only encodes; decoding TLV8 is handled by the outer
// pairing state machine, not this core.
package tlv8

import "bytes"

// maxRecordLen is the largest payload a single TLV8 record can carry;
// values longer than this are fragmented across multiple records.
const maxRecordLen = 255

// Item is a single (type, data) pair to encode. Items are emitted in
// input order; duplicate types are permitted and represent
// continuation, not an error.
type Item struct {
	Type byte
	Data []byte
}

// Encode renders items as the concatenation of their TLV8 records.
func Encode(items []Item) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		encodeItem(&buf, item)
	}
	return buf.Bytes()
}

// encodeItem appends one item's records to buf, fragmenting Data into
// maxRecordLen-byte chunks as needed.
func encodeItem(buf *bytes.Buffer, item Item) {
	data := item.Data
	if len(data) == 0 {
		buf.WriteByte(item.Type)
		buf.WriteByte(0)
		return
	}
	for len(data) > 0 {
		n := len(data)
		if n > maxRecordLen {
			n = maxRecordLen
		}
		buf.WriteByte(item.Type)
		buf.WriteByte(byte(n))
		buf.Write(data[:n])
		data = data[n:]
	}
}
