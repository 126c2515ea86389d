package emulator

import (
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/gbarletta/varch-vm/cpu"
	"github.com/gbarletta/varch-vm/internal"
)

const (
	MEMORY_SIZE = cpu.MEMORY_SIZE_MAX // Default memory size.
)

// Emulator state. CPU + memory images.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the machine simulation.
}

// NewEmulator creates a new emulator with size bytes of memory.
func NewEmulator(size int) (emu *Emulator, err error) {
	machine, err := cpu.NewCpu(size)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu: machine,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	emulator_defines := map[string]string{
		"MEMORY_SIZE":     fmt.Sprintf("%v", emu.Memory.Size()),
		"MEMORY_SIZE_MAX": fmt.Sprintf("%v", cpu.MEMORY_SIZE_MAX),
	}

	return internal.IterSeq2Concat(maps.All(emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load copies an image from r verbatim into memory at offset.
func (emu *Emulator) Load(r io.Reader, offset int) (err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	err = emu.Memory.Load(data, offset)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes at 0x%04x", len(data), offset)
	}

	return
}

// LoadFile copies the contents of a file into memory at offset.
func (emu *Emulator) LoadFile(path string, offset int) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Load(inf, offset)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// Dump writes the full memory, unchanged, to w.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	_, err = w.Write(emu.Memory.Bytes())
	return
}

// DumpFile writes the full memory to a file.
func (emu *Emulator) DumpFile(path string) (err error) {
	return os.WriteFile(path, emu.Memory.Bytes(), 0644)
}

// Hexdump writes a hex listing of the full memory to w.
func (emu *Emulator) Hexdump(w io.Writer) (err error) {
	dumper := hex.Dumper(w)
	_, err = dumper.Write(emu.Memory.Bytes())
	if err != nil {
		return
	}

	return dumper.Close()
}

func (emu *Emulator) wrap(err error) error {
	if err == nil {
		return nil
	}

	return &ErrRuntime{Tick: emu.Cpu.Ticks, Err: err}
}

// Run executes from start until the machine halts.
func (emu *Emulator) Run(start uint16) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	return emu.wrap(emu.Cpu.Run(start))
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	done, err = emu.Cpu.Tick()
	err = emu.wrap(err)

	return
}
