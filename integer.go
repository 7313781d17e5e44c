package bser

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// lengthWidth returns the number of payload bytes a length-type tag
// selects. ok is false for any tag outside {Int8, Int16, Int32, Int64}.
func lengthWidth(tag byte) (width int, ok bool) {
	switch tag {
	case tagInt8:
		return 1, true
	case tagInt16:
		return 2, true
	case tagInt32:
		return 4, true
	case tagInt64:
		return 8, true
	default:
		return 0, false
	}
}

// readFixedInt decodes a signed integer of width len(b) (1, 2, 4, or 8
// bytes) from b using order, widening or narrowing into T. b must be
// exactly one of those four lengths; any other length panics, since
// callers always size b from lengthWidth or a fixed scalar tag.
func readFixedInt[T constraints.Signed](b []byte, order binary.ByteOrder) T {
	switch len(b) {
	case 1:
		return T(int8(b[0]))
	case 2:
		return T(int16(order.Uint16(b)))
	case 4:
		return T(int32(order.Uint32(b)))
	case 8:
		return T(int64(order.Uint64(b)))
	default:
		panic("bser: readFixedInt: unsupported width")
	}
}
