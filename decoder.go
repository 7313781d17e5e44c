package bser

import (
	"encoding/binary"
	"io"
)

// Decoder decodes BSER envelopes from a blocking octet stream. A
// Decoder is a stateless function over a stream and a policy: each
// call to Decode reads one envelope, produces one Value or an error,
// and holds no state between calls. Two concurrent calls on distinct
// streams are independent.
type Decoder struct {
	policy    Policy
	byteOrder binary.ByteOrder
	maxDepth  int
}

// Option configures a Decoder beyond its required key-ordering policy.
type Option func(*Decoder)

// WithByteOrder overrides the byte order used to decode multi-byte
// integers and the Real payload, defaulting to binary.NativeEndian.
// A producer and consumer on different architectures can disagree on
// byte order; this lets a caller that knows the producer's endianness
// decode its messages correctly instead of silently misreading them.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(d *Decoder) { d.byteOrder = order }
}

// WithMaxDepth overrides the recursion depth guard against pathological
// array/object nesting. The default is generous enough for any
// realistic Watchman message.
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) { d.maxDepth = depth }
}

// NewDecoder constructs a Decoder with the given key-ordering policy.
func NewDecoder(policy Policy, opts ...Option) *Decoder {
	d := &Decoder{
		policy:    policy,
		byteOrder: binary.NativeEndian,
		maxDepth:  defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads one BSER envelope from r and returns the decoded Value.
// The decoder does not allocate the body buffer until the envelope has
// been validated and the declared length range-checked, so a malformed
// or adversarial length field cannot drive an oversized allocation. On
// success r is left positioned immediately after the envelope; on
// error its position is unspecified.
func (d *Decoder) Decode(r io.Reader) (Value, error) {
	bodyLength, err := d.readEnvelope(r)
	if err != nil {
		return Value{}, err
	}
	buf, err := readBody(r, bodyLength)
	if err != nil {
		return Value{}, err
	}

	b := &body{data: buf, order: d.byteOrder, maxDepth: d.maxDepth}
	val, err := b.parseValue(d.policy, 0)
	if err != nil {
		return Value{}, err
	}
	if b.remaining() != 0 {
		return Value{}, framingErrorf("BSER body has %d unread trailing bytes", b.remaining())
	}
	return val, nil
}
