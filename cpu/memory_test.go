package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_New(t *testing.T) {
	assert := assert.New(t)

	mem, err := NewMemory(16)
	assert.NoError(err)
	assert.Equal(16, mem.Size())
	assert.Equal(make([]byte, 16), mem.Bytes())

	_, err = NewMemory(1)
	assert.ErrorIs(err, ErrMemorySize)

	_, err = NewMemory(MEMORY_SIZE_MAX + 1)
	assert.ErrorIs(err, ErrMemorySize)
}

func TestMemory_Word(t *testing.T) {
	assert := assert.New(t)

	mem, _ := NewMemory(16)

	err := mem.WriteWord(4, 0x1234)
	assert.NoError(err)

	hi, err := mem.ReadByteAt(4)
	assert.NoError(err)
	assert.Equal(byte(0x12), hi)

	lo, err := mem.ReadByteAt(5)
	assert.NoError(err)
	assert.Equal(byte(0x34), lo)

	val, err := mem.ReadWord(4)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), val)

	val, err = mem.ReadWord(5)
	assert.NoError(err)
	assert.Equal(uint16(0x3400), val)
}

func TestMemory_Bounds(t *testing.T) {
	assert := assert.New(t)

	mem, _ := NewMemory(16)

	_, err := mem.ReadByteAt(16)
	assert.ErrorIs(err, ErrMemoryBounds)
	_, err = mem.ReadByteAt(-1)
	assert.ErrorIs(err, ErrMemoryBounds)
	assert.ErrorIs(mem.WriteByteAt(16, 1), ErrMemoryBounds)

	_, err = mem.ReadWord(15)
	assert.ErrorIs(err, ErrMemoryBounds)
	assert.ErrorIs(mem.WriteWord(15, 0xffff), ErrMemoryBounds)

	_, err = mem.ReadWord(14)
	assert.NoError(err)
	assert.NoError(mem.WriteWord(14, 0xffff))

	// Nothing written by a faulting access.
	assert.Equal(byte(0), mem.Bytes()[13])
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem, _ := NewMemory(8)

	err := mem.Load([]byte{1, 2, 3}, 5)
	assert.NoError(err)
	assert.Equal([]byte{0, 0, 0, 0, 0, 1, 2, 3}, mem.Bytes())

	err = mem.Load([]byte{9, 9, 9}, 6)
	assert.ErrorIs(err, ErrLoadBounds)
	assert.Equal([]byte{0, 0, 0, 0, 0, 1, 2, 3}, mem.Bytes())

	err = mem.Load([]byte{9}, -1)
	assert.ErrorIs(err, ErrLoadBounds)

	mem.Reset()
	assert.Equal(make([]byte, 8), mem.Bytes())
}

func TestMemory_BytesIsSnapshot(t *testing.T) {
	assert := assert.New(t)

	mem, _ := NewMemory(4)
	snap := mem.Bytes()
	snap[0] = 0xff

	val, _ := mem.ReadByteAt(0)
	assert.Equal(byte(0), val)
}
