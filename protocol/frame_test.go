package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeFrames(t *testing.T, payloads ...[]byte) []byte {
	t.Helper()
	var enc FrameEncoder
	out := NewScratchOutput()
	for _, p := range payloads {
		require.NoError(t, enc.Encode(out, p))
	}
	return append([]byte(nil), out.Result()...)
}

func TestFrameLayout(t *testing.T) {
	raw := encodeFrames(t, []byte{0x02, 0x01})

	require.Len(t, raw, 7)
	assert.Equal(t, byte(7), raw[0])
	assert.Equal(t, byte(MessageDest), raw[1])
	assert.Equal(t, []byte{0x02, 0x01}, raw[2:4])
	crc := CRC16(raw[:4])
	assert.Equal(t, byte(crc>>8), raw[4])
	assert.Equal(t, byte(crc), raw[5])
	assert.Equal(t, byte(MessageValueSync), raw[6])
}

func TestFrameSequenceWraps(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	for i := 0; i < 17; i++ {
		out.Reset()
		require.NoError(t, enc.Encode(out, nil))
		assert.Equal(t, byte(MessageDest|(i&MessageSeqMask)), out.Result()[1])
	}
}

func TestFramePayloadTooLarge(t *testing.T) {
	var enc FrameEncoder
	err := enc.Encode(NewScratchOutput(), make([]byte, MessagePayloadMax+1))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestFrameDecoderSplitInput(t *testing.T) {
	raw := encodeFrames(t, []byte{1, 2, 3}, []byte{4})
	d := NewFrameDecoder()

	d.Feed(raw[:4])
	_, ok := d.Next()
	assert.False(t, ok)

	d.Feed(raw[4:])
	f, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, f.Payload)
	assert.Equal(t, uint8(0), f.Seq)

	f, ok = d.Next()
	require.True(t, ok)
	assert.Equal(t, []byte{4}, f.Payload)
	assert.Equal(t, uint8(1), f.Seq)

	_, ok = d.Next()
	assert.False(t, ok)
	assert.Zero(t, d.Dropped)
	assert.Zero(t, d.Lost)
}

func TestFrameDecoderResyncAfterGarbage(t *testing.T) {
	good := encodeFrames(t, []byte{9})
	d := NewFrameDecoder()
	d.Feed([]byte("boot\r\n"))
	d.Feed([]byte{MessageValueSync})
	d.Feed(good)

	f, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, []byte{9}, f.Payload)
	assert.NotZero(t, d.Dropped)
}

func TestFrameDecoderRejectsBadCRC(t *testing.T) {
	raw := encodeFrames(t, []byte{1}, []byte{2})
	raw[2] ^= 0xFF // corrupt first payload

	d := NewFrameDecoder()
	d.Feed(raw)

	f, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, []byte{2}, f.Payload)
	assert.Equal(t, uint32(1), d.Dropped)
}

func TestFrameDecoderCountsLostFrames(t *testing.T) {
	var enc FrameEncoder
	out := NewScratchOutput()
	require.NoError(t, enc.Encode(out, []byte{1}))
	first := append([]byte(nil), out.Result()...)

	out.Reset()
	require.NoError(t, enc.Encode(out, []byte{2})) // never delivered
	out.Reset()
	require.NoError(t, enc.Encode(out, []byte{3}))
	third := append([]byte(nil), out.Result()...)

	d := NewFrameDecoder()
	d.Feed(first)
	d.Feed(third)
	_, ok := d.Next()
	require.True(t, ok)
	_, ok = d.Next()
	require.True(t, ok)
	assert.Equal(t, uint32(1), d.Lost)
}
