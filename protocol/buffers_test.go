package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScratchOutput(t *testing.T) {
	assert := assert.New(t)

	scratch := NewScratchOutput()
	scratch.Output([]byte{1, 2, 3})
	assert.Equal(3, scratch.CurPosition())

	scratch.Output([]byte{4, 5})
	assert.Equal([]byte{1, 2, 3, 4, 5}, scratch.Result())
	assert.Equal([]byte{4, 5}, scratch.DataSince(3))

	scratch.Update(0, 9)
	assert.Equal(byte(9), scratch.Result()[0])

	scratch.Reset()
	assert.Empty(scratch.Result())
}

func TestScratchOutputTruncates(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, MessageMax+10))
	assert.Equal(t, MessageMax, scratch.CurPosition())
	assert.Nil(t, scratch.DataSince(MessageMax+1))
}
