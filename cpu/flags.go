package cpu

const (
	FLAG_COUNT = 16

	FLAG_LT      = 0 // Last CMP had a < b.
	FLAG_GT      = 2 // Last CMP had a > b.
	FLAG_EQ      = 4 // Last CMP had a == b.
	FLAG_RUNNING = 5 // Cleared by HLT.
)

// Flags is the flags register.
type Flags [FLAG_COUNT]bool

// Get returns the flag as 0 or 1.
func (fl *Flags) Get(slot int) uint16 {
	if fl[slot] {
		return 1
	}
	return 0
}

func (fl *Flags) Set(slot int, value bool) {
	fl[slot] = value
}

// Running returns true until HLT clears the running flag.
func (fl *Flags) Running() bool {
	return fl[FLAG_RUNNING]
}

// Compare applies CMP to a pair of signed values.
// Exactly one of the lt, gt, and eq flags is set afterwards.
func (fl *Flags) Compare(a, b int16) {
	fl[FLAG_LT] = false
	fl[FLAG_GT] = false
	fl[FLAG_EQ] = false

	switch {
	case a < b:
		fl[FLAG_LT] = true
	case a > b:
		fl[FLAG_GT] = true
	default:
		fl[FLAG_EQ] = true
	}
}

// Reset clears all flags.
func (fl *Flags) Reset() {
	clear(fl[:])
}
