package bser

import (
	"io"
	"math"
)

// maxBodyLength is the largest body length accepted: the body is
// buffered as a single contiguous array addressed by 32-bit offsets.
const maxBodyLength = math.MaxInt32

// readExact reads exactly n bytes from r, returning the bytes actually
// read alongside the error from io.ReadFull (io.EOF, io.ErrUnexpectedEOF,
// or an underlying I/O error). Callers turn a short read into the
// appropriate diagnostic; the byte count is preserved for messages
// like "expected K bytes, got N bytes".
func readExact(r io.Reader, n int) ([]byte, int, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if err != nil {
		return buf[:got], got, err
	}
	return buf, got, nil
}

// readEnvelope consumes the magic prefix, length-type tag, and length
// field, returning the validated, non-negative body length.
func (d *Decoder) readEnvelope(r io.Reader) (int, error) {
	header, n, err := readExact(r, 3)
	if err != nil {
		return 0, framingErrorf("Invalid BSER header (expected 3 bytes, got %d bytes)", n)
	}
	if header[0] != magicByte0 || header[1] != magicByte1 {
		return 0, framingErrorf("Invalid BSER header")
	}

	lenTag := header[2]
	width, ok := lengthWidth(lenTag)
	if !ok {
		return 0, framingErrorf("Unrecognized BSER header length type %d", lenTag&0x0F)
	}

	lenBytes, n, err := readExact(r, width)
	if err != nil {
		return 0, framingErrorf("Invalid BSER header length (expected %d bytes, got %d bytes)", width, n)
	}
	length := readFixedInt[int64](lenBytes, d.byteOrder)

	if length < 0 {
		return 0, framingErrorf("BSER length out of range (%d < 0)", length)
	}
	if length > maxBodyLength {
		return 0, framingErrorf("BSER length out of range (%d > %d)", length, maxBodyLength)
	}
	return int(length), nil
}

// readBody reads exactly bodyLength bytes following the envelope.
// Short reads reuse the "Invalid BSER header" diagnostic for wire
// compatibility with existing BSER consumers.
func readBody(r io.Reader, bodyLength int) ([]byte, error) {
	buf, n, err := readExact(r, bodyLength)
	if err != nil {
		return nil, framingErrorf("Invalid BSER header (expected %d bytes, got %d bytes)", bodyLength, n)
	}
	return buf, nil
}
