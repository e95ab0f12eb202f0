package bios_test

import (
	"testing"

	"gbamem/internal/bios"
)

// fakeBus is a flat-addressed BusAccessor stand-in, enough to exercise
// the HLE routines without the full bus/memory/video stack. Addresses
// wrap modulo the 1 MiB buffer, so GBA addresses such as 0x03000000
// and 0x08000000 land inside it.
type fakeBus struct {
	mem [1 << 20]byte
}

func (b *fakeBus) idx(addr uint32) uint32 { return addr % uint32(len(b.mem)) }

func (b *fakeBus) Load8(addr uint32) uint8 { return b.mem[b.idx(addr)] }
func (b *fakeBus) LoadS8(addr uint32) int8 { return int8(b.Load8(addr)) }
func (b *fakeBus) Load16(addr uint32) uint16 {
	return uint16(b.Load8(addr)) | uint16(b.Load8(addr+1))<<8
}
func (b *fakeBus) LoadS16(addr uint32) int16 { return int16(b.Load16(addr)) }
func (b *fakeBus) Load32(addr uint32) uint32 {
	return uint32(b.Load8(addr)) | uint32(b.Load8(addr+1))<<8 | uint32(b.Load8(addr+2))<<16 | uint32(b.Load8(addr+3))<<24
}
func (b *fakeBus) Store8(addr uint32, v uint8) { b.mem[b.idx(addr)] = v }
func (b *fakeBus) Store16(addr uint32, v uint16) {
	b.Store8(addr, uint8(v))
	b.Store8(addr+1, uint8(v>>8))
}
func (b *fakeBus) Store32(addr uint32, v uint32) {
	b.Store8(addr, uint8(v))
	b.Store8(addr+1, uint8(v>>8))
	b.Store8(addr+2, uint8(v>>16))
	b.Store8(addr+3, uint8(v>>24))
}

// Scenario 3 (spec §8): CpuSet fill 32-bit.
func TestCpuSetFill32Scenario(t *testing.T) {
	bus := &fakeBus{}
	bus.Store32(0x03000000, 0xAA55AA55)

	const mode = 0x05000008 // fill bit | 32-bit width bit, count=8
	bios.CpuSet(bus, 0x03000000, 0x03000100, mode)

	for off := uint32(0); off < 8*4; off += 4 {
		if got := bus.Load32(0x03000100 + off); got != 0xAA55AA55 {
			t.Fatalf("word at +%#x = %#x, want 0xAA55AA55", off, got)
		}
	}
}

func TestCpuSetCopy16(t *testing.T) {
	bus := &fakeBus{}
	for i := uint32(0); i < 6; i++ {
		bus.Store16(0x1000+i*2, uint16(0x1100+i))
	}
	bios.CpuSet(bus, 0x1000, 0x2000, 3) // copy, 16-bit, count=3
	for i := uint32(0); i < 3; i++ {
		if got, want := bus.Load16(0x2000+i*2), uint16(0x1100+i); got != want {
			t.Fatalf("halfword %d = %#x, want %#x", i, got, want)
		}
	}
}

func TestFastCpuSetRoundsCountUpToMultipleOf8(t *testing.T) {
	bus := &fakeBus{}
	for i := uint32(0); i < 5; i++ {
		bus.Store32(0x1000+i*4, 0x1000+i)
	}
	bios.FastCpuSet(bus, 0x1000, 0x2000, 5) // copy, count=5 -> rounds to 8
	for i := uint32(0); i < 5; i++ {
		if got, want := bus.Load32(0x2000+i*4), 0x1000+i; got != want {
			t.Fatalf("word %d = %#x, want %#x", i, got, want)
		}
	}
	// Words 5-7 come from source+20..31, whatever garbage was there;
	// the only contract is that 8 words were written, not 5.
	if got := bus.Load32(0x2000 + 7*4); got != bus.Load32(0x1000+7*4) {
		t.Fatalf("word 7 should mirror source+28 even past the requested count")
	}
}

// Scenario 4 (spec §8): LZ77 decompression.
func TestLZ77LiteralRunScenario(t *testing.T) {
	bus := &fakeBus{}
	bus.Store32(0x08000000, 0x00000820) // length=8, signature byte assumed 0x10
	bus.Store8(0x08000004, 0x00)        // flag byte: all 8 tokens literal
	for i := uint32(0); i < 8; i++ {
		bus.Store8(0x08000005+i, uint8(i))
	}

	bios.DecodeLZ77(bus, 0x08000000, 0x00000000)

	for i := uint32(0); i < 8; i++ {
		if got := bus.Load8(i); got != uint8(i) {
			t.Fatalf("WRAM[%d] = %#x, want %#x", i, got, i)
		}
	}
}

func TestLZ77BackReference(t *testing.T) {
	bus := &fakeBus{}
	// Decompressed stream: "AB" then a back-reference copying "AB" twice more -> "ABABAB" (6 bytes).
	bus.Store32(0x08000000, 0x00000618)
	bus.Store8(0x08000004, 0x20) // flags: token0=literal, token1=literal, token2=compressed
	// Token 0: literal 'A'
	bus.Store8(0x08000005, 'A')
	// Token 1: literal 'B'
	bus.Store8(0x08000006, 'B')
	// Token 2: compressed, length=4 (nibble (4-3)=1), disp=1 (copy from 2 bytes back)
	bus.Store8(0x08000007, 0x10) // byteA = (length-3)<<4 | (disp>>8) = 1<<4|0
	bus.Store8(0x08000008, 0x01) // byteB = disp&0xFF

	bios.DecodeLZ77(bus, 0x08000000, 0x00000000)

	want := []byte("ABABAB")
	for i, w := range want {
		if got := bus.Load8(uint32(i)); got != w {
			t.Fatalf("WRAM[%d] = %q, want %q (full output should read ABABAB)", i, got, w)
		}
	}
}

func TestMidiKey2Freq(t *testing.T) {
	bus := &fakeBus{}
	bus.Store32(0x1004, 22050) // sample rate at addr+4

	got := bios.MidiKey2Freq(bus, 0x1000, 180, 0)
	if got != 22050 {
		t.Fatalf("MidiKey2Freq(key=180,fine=0) = %d, want 22050 (no pitch shift)", got)
	}

	shifted := bios.MidiKey2Freq(bus, 0x1000, 168, 0) // one octave down
	if shifted == 0 || shifted >= got {
		t.Fatalf("MidiKey2Freq(key=168) = %d, want roughly half of %d", shifted, got)
	}
}
