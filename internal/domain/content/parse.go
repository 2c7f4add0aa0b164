package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMalformedContent wraps every decoding failure of a locale document.
	ErrMalformedContent = errors.New("malformed content")
	// ErrRootNotMapping is returned when a locale document is not an object.
	ErrRootNotMapping = errors.New("locale document root must be an object")
)

// Parse decodes a locale document. The root must be a JSON object.
func Parse(data []byte) (Value, error) {
	v, err := parseValue(data)
	if err != nil {
		return Value{}, err
	}
	if v.Kind() != KindMapping {
		return Value{}, fmt.Errorf("%w: %w, got %s", ErrMalformedContent, ErrRootNotMapping, v.Kind())
	}
	return v, nil
}

func parseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrMalformedContent, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: trailing data after document", ErrMalformedContent)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Value{kind: KindScalar, scalar: json.RawMessage(t.String())}, nil
	case bool:
		if t {
			return Value{kind: KindScalar, scalar: json.RawMessage("true")}, nil
		}
		return Value{kind: KindScalar, scalar: json.RawMessage("false")}, nil
	case nil:
		return Value{kind: KindScalar, scalar: json.RawMessage("null")}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	m := newMapping(8)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string at offset %d", dec.InputOffset())
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", key, err)
		}
		m.set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return m, nil
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	seq := Value{kind: KindSequence}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("[%d]: %w", len(seq.items), err)
		}
		seq.items = append(seq.items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return seq, nil
}
