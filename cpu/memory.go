package cpu

const (
	MEMORY_SIZE_MIN = 2      // Smallest memory that holds one word.
	MEMORY_SIZE_MAX = 0xffff // Largest memory whose size fits in the stack pointer.
)

// Memory is the byte addressable address space of the machine.
// Words are stored big-endian.
type Memory struct {
	data []byte
}

// NewMemory creates a zero filled memory of size bytes.
func NewMemory(size int) (mem *Memory, err error) {
	if size < MEMORY_SIZE_MIN || size > MEMORY_SIZE_MAX {
		err = ErrMemorySize
		return
	}

	mem = &Memory{data: make([]byte, size)}

	return
}

// Size returns the number of bytes in memory.
func (mem *Memory) Size() int {
	return len(mem.data)
}

func (mem *Memory) valid(addr int, width int) bool {
	return addr >= 0 && addr+width <= len(mem.data)
}

func (mem *Memory) ReadByteAt(addr int) (value byte, err error) {
	if !mem.valid(addr, 1) {
		err = ErrMemoryBounds
		return
	}

	value = mem.data[addr]
	return
}

func (mem *Memory) WriteByteAt(addr int, value byte) (err error) {
	if !mem.valid(addr, 1) {
		return ErrMemoryBounds
	}

	mem.data[addr] = value
	return
}

// ReadWord reads the big-endian word at addr and addr+1.
func (mem *Memory) ReadWord(addr int) (value uint16, err error) {
	if !mem.valid(addr, 2) {
		err = ErrMemoryBounds
		return
	}

	value = (uint16(mem.data[addr]) << 8) | uint16(mem.data[addr+1])
	return
}

// WriteWord writes value big-endian, high byte at addr.
func (mem *Memory) WriteWord(addr int, value uint16) (err error) {
	if !mem.valid(addr, 2) {
		return ErrMemoryBounds
	}

	mem.data[addr] = byte(value >> 8)
	mem.data[addr+1] = byte(value & 0xff)
	return
}

// Load copies data verbatim into memory at offset.
// Memory is left untouched if data does not fit.
func (mem *Memory) Load(data []byte, offset int) (err error) {
	if offset < 0 || offset+len(data) > len(mem.data) {
		return ErrLoadBounds
	}

	copy(mem.data[offset:], data)
	return
}

// Bytes returns a snapshot of the full memory.
func (mem *Memory) Bytes() []byte {
	return append([]byte(nil), mem.data...)
}

// Reset zeroes the memory.
func (mem *Memory) Reset() {
	clear(mem.data)
}
