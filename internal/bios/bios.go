// Package bios implements the BIOS high-level-emulation routines from
// spec §4.F: CpuSet, FastCpuSet, LZ77 decompression, and
// MidiKey2Freq, invoked through the same software-interrupt dispatch
// the real BIOS exposes (Swi16/Swi32). None of these routines execute
// actual BIOS machine code; they reproduce its observable effect on
// memory directly, which is what "high-level emulation" means here.
//
// Ported from the reference implementation's gba-bios.c, adapted from
// register-file-driven calling convention (source/dest/mode read out
// of gprs[0..2]) to explicit Go parameters.
package bios

import "gbamem/internal/interfaces"

// Mode register bit layout shared by CpuSet and FastCpuSet (spec §4.F).
const (
	modeCountMask = 0x000FFFFF
	modeFillBit   = 0x01000000
	modeWidthBit  = 0x04000000
)

// CpuSet implements SWI 0x0B: a fill-or-copy loop whose element count,
// width and fill-vs-copy choice are decoded from mode, operating through bus so I/O-
// or video-backed destinations see the same side effects a CPU-driven
// loop would produce.
func CpuSet(bus interfaces.BusAccessor, source, dest, mode uint32) {
	count := int(mode & modeCountMask)
	fill := mode&modeFillBit != 0
	word32 := mode&modeWidthBit != 0

	if word32 {
		source &^= 3
		dest &^= 3
		if fill {
			word := bus.Load32(source)
			for i := 0; i < count; i++ {
				bus.Store32(dest+uint32(i)*4, word)
			}
			return
		}
		for i := 0; i < count; i++ {
			bus.Store32(dest+uint32(i)*4, bus.Load32(source+uint32(i)*4))
		}
		return
	}

	source &^= 1
	dest &^= 1
	if fill {
		word := bus.Load16(source)
		for i := 0; i < count; i++ {
			bus.Store16(dest+uint32(i)*2, word)
		}
		return
	}
	for i := 0; i < count; i++ {
		bus.Store16(dest+uint32(i)*2, bus.Load16(source+uint32(i)*2))
	}
}

// FastCpuSet implements SWI 0x0C: always 32-bit, count rounded up to
// a multiple of 8 words (spec §4.F).
func FastCpuSet(bus interfaces.BusAccessor, source, dest, mode uint32) {
	source &^= 3
	dest &^= 3
	count := int(mode & modeCountMask)
	count = ((count + 7) >> 3) << 3

	if mode&modeFillBit != 0 {
		word := bus.Load32(source)
		for i := 0; i < count; i++ {
			bus.Store32(dest+uint32(i)*4, word)
		}
		return
	}
	for i := 0; i < count; i++ {
		bus.Store32(dest+uint32(i)*4, bus.Load32(source+uint32(i)*4))
	}
}
