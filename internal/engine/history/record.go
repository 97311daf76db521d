package history

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EncodeRecord serializes s as {"pointer":N,"entries":[...]}.
func EncodeRecord(s Snapshot) ([]byte, error) {
	entries := s.Entries
	if entries == nil {
		entries = []string{}
	}

	data, err := sjson.SetBytes([]byte(`{}`), "pointer", s.Pointer)
	if err != nil {
		return nil, fmt.Errorf("encode pointer: %w", err)
	}
	data, err = sjson.SetBytes(data, "entries", entries)
	if err != nil {
		return nil, fmt.Errorf("encode entries: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a record written by EncodeRecord.
func DecodeRecord(data []byte) (Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return Snapshot{}, fmt.Errorf("%w: invalid JSON", ErrMalformedRecord)
	}

	rec := gjson.ParseBytes(data)
	if !rec.IsObject() {
		return Snapshot{}, fmt.Errorf("%w: not an object", ErrMalformedRecord)
	}

	pointer := rec.Get("pointer")
	if pointer.Type != gjson.Number {
		return Snapshot{}, fmt.Errorf("%w: pointer is not a number", ErrMalformedRecord)
	}

	list := rec.Get("entries")
	if !list.IsArray() {
		return Snapshot{}, fmt.Errorf("%w: entries is not an array", ErrMalformedRecord)
	}

	var entries []string
	var bad error
	list.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.String {
			bad = fmt.Errorf("%w: entry %d is not a string", ErrMalformedRecord, len(entries))
			return false
		}
		entries = append(entries, v.String())
		return true
	})
	if bad != nil {
		return Snapshot{}, bad
	}

	return Snapshot{Pointer: int(pointer.Int()), Entries: entries}, nil
}

// ReadRecord loads and decodes the record stored under key.
func ReadRecord(kv KV, key string) (Snapshot, error) {
	data, err := kv.Get(key)
	if err != nil {
		return Snapshot{}, err
	}
	return DecodeRecord(data)
}

// IsMalformed reports whether err came from decoding a bad record.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}
