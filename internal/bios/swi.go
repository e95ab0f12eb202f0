package bios

import (
	"math"

	"gbamem/internal/interfaces"
	"gbamem/util/dbg"
)

// Software-interrupt immediates handled by Swi16 (spec §4.F).
const (
	swiHalt       = 0x02
	swiCpuSet     = 0x0B
	swiFastCpuSet = 0x0C
	swiLZ77WRAM   = 0x11
	swiLZ77VRAM   = 0x12
	swiMidiKey2Hz = 0x1F
)

// Halter is the minimal collaborator SWI 0x02 needs; the CPU
// interpreter is out of scope here, so Halt is whatever the embedder
// wants "stop fetching until the next IRQ" to mean.
type Halter interface {
	Halt()
}

// Swi16 dispatches a 16-bit-immediate software interrupt (spec §4.F,
// §6). r0-r2 carry the guest's registers at the trap point; SWI
// 0x11/0x12 both decompress to the bus address in r1, which the bus
// wraps into its region.
func Swi16(bus interfaces.BusAccessor, halt Halter, immediate int, r0, r1, r2 uint32) {
	switch immediate {
	case swiHalt:
		halt.Halt()
	case swiCpuSet:
		CpuSet(bus, r0, r1, r2)
	case swiFastCpuSet:
		FastCpuSet(bus, r0, r1, r2)
	case swiLZ77WRAM, swiLZ77VRAM:
		DecodeLZ77(bus, r0, r1)
	case swiMidiKey2Hz:
		// Left to the caller: MidiKey2Freq reads its input from memory
		// (r0+4) and returns a value rather than touching the bus, so
		// it doesn't fit this side-effecting dispatch shape. Call
		// MidiKey2Freq directly.
	default:
		dbg.Stub("unhandled swi16 immediate %#02x", immediate)
	}
}

// Swi32 is the 32-bit-immediate software-interrupt entry point. It
// never dispatches to a routine: it only calls itself again.
//
// The reference implementation's GBASwi32 is:
//
//	void GBASwi32(struct ARMBoard* board, int immediate) {
//		GBASwi32(board, immediate >> 16);
//	}
//
// which recurses into itself rather than delegating to GBASwi16 —
// almost certainly meant to shift into the 16-bit handler and call
// that, not call itself again with a shrinking immediate. That typo
// means a 32-bit SWI never actually dispatches; it just recurses with
// immediate>>16, immediate>>32 (zero), immediate>>48 (zero), ...,
// until the argument is 0 forever, which a real ARM caller never
// observes because ARM right-shifts of a 32-bit value by 16 settle at
// 0 and stay there — so in practice this becomes an infinite loop in
// the original C, masked there only by the fact that GBA games always
// trigger SWI through the 16-bit Thumb or ARM software-interrupt
// encodings that reach GBASwi16 directly. Preserved as-is rather than
// "fixed" to GBASwi16(board, immediate>>16): this dispatch is
// unreachable in practice, so its behavior has never been observed,
// and silently changing unobserved behavior is exactly how real bugs
// get reintroduced.
func Swi32(bus interfaces.BusAccessor, halt Halter, immediate int, r0, r1, r2 uint32) {
	Swi32(bus, halt, immediate>>16, r0, r1, r2)
}

// MidiKey2Freq implements SWI 0x1F (spec §4.F): converts a sample
// rate stored 4 bytes into the structure at addr, a MIDI key number,
// and a cents-style fine adjustment into a playback frequency.
func MidiKey2Freq(bus interfaces.BusAccessor, addr uint32, key, fineAdjust int32) uint32 {
	sampleRate := bus.Load32(addr + 4)
	freq := float64(sampleRate) / math.Pow(2, (180.0-float64(key)-float64(fineAdjust)/256.0)/12.0)
	return uint32(freq)
}
