package bser

// Wire magic bytes that open every BSER envelope.
const (
	magicByte0 = 0x00
	magicByte1 = 0x01
)

// Type tags identifying each BSER value. The four integer tags double
// as the length-type tags that introduce a length prefix.
const (
	tagArray  = 0x00
	tagObject = 0x01
	tagString = 0x02
	tagInt8   = 0x03
	tagInt16  = 0x04
	tagInt32  = 0x05
	tagInt64  = 0x06
	tagReal   = 0x07
	tagTrue   = 0x08
	tagFalse  = 0x09
	tagNull   = 0x0A
)
