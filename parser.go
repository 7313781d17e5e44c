package bser

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// defaultMaxDepth bounds recursive descent against pathological
// nesting. It is generous relative to any real Watchman payload.
const defaultMaxDepth = 512

// body is the in-memory, position-bounded cursor over a decoded
// envelope's payload. Every read after the envelope comes from this
// buffer at a monotonically advancing cursor.
type body struct {
	data     []byte
	pos      int
	order    binary.ByteOrder
	maxDepth int
}

func (b *body) remaining() int { return len(b.data) - b.pos }

func (b *body) readByte() (byte, error) {
	if b.remaining() < 1 {
		return 0, framingErrorf("truncated BSER value (expected 1 byte, got 0 bytes)")
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

func (b *body) readN(n int) ([]byte, error) {
	if b.remaining() < n {
		return nil, framingErrorf("truncated BSER value (expected %d bytes, got %d bytes)", n, b.remaining())
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// readLength reads a length prefix: a one-byte integer-type tag
// followed by its payload, then rejects negative lengths and lengths
// exceeding what remains in the body.
func (b *body) readLength() (int, error) {
	tag, err := b.readByte()
	if err != nil {
		return 0, err
	}
	width, ok := lengthWidth(tag)
	if !ok {
		return 0, framingErrorf("Unrecognized BSER header length type %d", tag&0x0F)
	}
	raw, err := b.readN(width)
	if err != nil {
		return 0, err
	}
	length := readFixedInt[int64](raw, b.order)
	if length < 0 {
		return 0, framingErrorf("BSER length out of range (%d < 0)", length)
	}
	if length > int64(b.remaining()) {
		return 0, framingErrorf("BSER length out of range (%d > %d remaining bytes)", length, b.remaining())
	}
	return int(length), nil
}

// parseValue dispatches on the type tag at the cursor and recursively
// materializes a Value.
func (b *body) parseValue(policy Policy, depth int) (Value, error) {
	tag, err := b.readByte()
	if err != nil {
		return Value{}, err
	}

	switch tag {
	case tagNull:
		return nullValue(), nil
	case tagTrue:
		return boolValue(true), nil
	case tagFalse:
		return boolValue(false), nil
	case tagInt8:
		raw, err := b.readN(1)
		if err != nil {
			return Value{}, err
		}
		return int8Value(readFixedInt[int8](raw, b.order)), nil
	case tagInt16:
		raw, err := b.readN(2)
		if err != nil {
			return Value{}, err
		}
		return int16Value(readFixedInt[int16](raw, b.order)), nil
	case tagInt32:
		raw, err := b.readN(4)
		if err != nil {
			return Value{}, err
		}
		return int32Value(readFixedInt[int32](raw, b.order)), nil
	case tagInt64:
		raw, err := b.readN(8)
		if err != nil {
			return Value{}, err
		}
		return int64Value(readFixedInt[int64](raw, b.order)), nil
	case tagReal:
		raw, err := b.readN(8)
		if err != nil {
			return Value{}, err
		}
		bits := b.order.Uint64(raw)
		return realValue(math.Float64frombits(bits)), nil
	case tagString:
		s, err := b.parseStringPayload()
		if err != nil {
			return Value{}, err
		}
		return stringValue(s), nil
	case tagArray:
		return b.parseArray(policy, depth)
	case tagObject:
		return b.parseObject(policy, depth)
	default:
		return Value{}, framingErrorf("Unrecognized BSER value type %d", tag)
	}
}

// parseStringPayload reads a length-prefixed UTF-8 string.
func (b *body) parseStringPayload() (string, error) {
	n, err := b.readLength()
	if err != nil {
		return "", err
	}
	raw, err := b.readN(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", codingErrorf("invalid UTF-8 in BSER string")
	}
	return string(raw), nil
}

func (b *body) enterContainer(depth int) error {
	if depth+1 > b.maxDepth {
		return framingErrorf("BSER nesting too deep (limit %d)", b.maxDepth)
	}
	return nil
}

// parseArray reads a length-prefixed sequence of values.
func (b *body) parseArray(policy Policy, depth int) (Value, error) {
	if err := b.enterContainer(depth); err != nil {
		return Value{}, err
	}
	n, err := b.readLength()
	if err != nil {
		return Value{}, err
	}
	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := b.parseValue(policy, depth+1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return arrayValue(elems), nil
}

// parseObject reads a length-prefixed sequence of (string, value)
// pairs and hands them to the container policy.
func (b *body) parseObject(policy Policy, depth int) (Value, error) {
	if err := b.enterContainer(depth); err != nil {
		return Value{}, err
	}
	n, err := b.readLength()
	if err != nil {
		return Value{}, err
	}
	obj := newObject(policy, n)
	for i := 0; i < n; i++ {
		keyTag, err := b.readByte()
		if err != nil {
			return Value{}, err
		}
		if keyTag != tagString {
			return Value{}, framingErrorf("Unrecognized BSER object key type %d, expected string", keyTag)
		}
		key, err := b.parseStringPayload()
		if err != nil {
			return Value{}, err
		}
		val, err := b.parseValue(policy, depth+1)
		if err != nil {
			return Value{}, err
		}
		obj.set(key, val)
	}
	obj.finish()
	return objectValue(obj), nil
}
