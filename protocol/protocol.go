// Package protocol implements the telemetry framing the firmware uses to
// report boot, toggle and fault events over a serial link.
//
// A frame is
//
//	[len][seq|0x10][payload...][crc16 hi][crc16 lo][0x7E]
//
// where len counts the whole frame and the CRC covers len, seq and payload.
// Payload fields are VLQ encoded.
package protocol

// Version is the firmware/telemetry version reported in the boot event
const Version = "0.1.0"

// Frame layout constants
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin

	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	MessageSeqMask = 0x0F
)

// MessageMax is the scratch buffer size; room for a few frames.
const MessageMax = 4 * MessageLengthMax
