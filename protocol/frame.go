package protocol

import (
	"bytes"
	"errors"
)

// ErrPayloadTooLarge is returned by Encode for payloads over MessagePayloadMax
var ErrPayloadTooLarge = errors.New("payload too large for one frame")

// FrameEncoder wraps payloads in frames with a rolling 4-bit sequence.
type FrameEncoder struct {
	seq uint8
}

// Encode appends one frame holding payload to output.
func (e *FrameEncoder) Encode(output OutputBuffer, payload []byte) error {
	if len(payload) > MessagePayloadMax {
		return ErrPayloadTooLarge
	}
	cursor := output.CurPosition()

	// Header with length placeholder
	output.Output([]byte{0, MessageDest | (e.seq & MessageSeqMask)})
	output.Output(payload)
	output.Update(cursor, uint8(len(output.DataSince(cursor))+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	e.seq = (e.seq + 1) & MessageSeqMask
	return nil
}

// Frame is one decoded frame.
type Frame struct {
	Seq     uint8
	Payload []byte
}

// FrameDecoder reassembles frames from a byte stream. After a length, seq,
// sync or CRC error it discards input up to the next sync byte, the same way
// the receiving side of the link resynchronises.
type FrameDecoder struct {
	buf          []byte
	synchronized bool

	// Dropped counts frames discarded for framing or CRC errors.
	Dropped uint32
	// Lost counts frames skipped according to the sequence numbers.
	Lost uint32

	lastSeq int
}

// NewFrameDecoder returns a decoder that expects a frame boundary at the
// first byte.
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{synchronized: true, lastSeq: -1}
}

// Feed appends raw bytes from the link.
func (d *FrameDecoder) Feed(data []byte) {
	d.buf = append(d.buf, data...)
}

// Next returns the next complete frame, if any. The returned payload is a
// copy and stays valid after further calls.
func (d *FrameDecoder) Next() (Frame, bool) {
	for len(d.buf) > 0 {
		if !d.synchronized {
			idx := bytes.IndexByte(d.buf, MessageValueSync)
			if idx < 0 {
				d.buf = d.buf[:0]
				return Frame{}, false
			}
			d.buf = d.buf[idx+1:]
			d.synchronized = true
			continue
		}

		// Skip leading sync bytes
		if d.buf[0] == MessageValueSync {
			d.buf = d.buf[1:]
			continue
		}

		if len(d.buf) < MessageLengthMin {
			return Frame{}, false
		}

		msgLen := int(d.buf[MessagePositionLen])
		seq := d.buf[MessagePositionSeq]
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax || seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		// Wait for the full frame
		if len(d.buf) < msgLen {
			return Frame{}, false
		}

		if d.buf[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(d.buf[msgLen-MessageTrailerCRC])<<8 | uint16(d.buf[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(d.buf[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := make([]byte, msgLen-MessageLengthMin)
		copy(payload, d.buf[MessageHeaderSize:msgLen-MessageTrailerSize])
		d.buf = d.buf[msgLen:]

		s := seq & MessageSeqMask
		if d.lastSeq >= 0 {
			d.Lost += uint32((int(s) - d.lastSeq - 1) & MessageSeqMask)
		}
		d.lastSeq = int(s)
		return Frame{Seq: s, Payload: payload}, true
	}
	return Frame{}, false
}

func (d *FrameDecoder) desync() {
	d.synchronized = false
	d.Dropped++
	d.buf = d.buf[1:]
}
