// Package bus implements the typed bus access layer (spec §4.B): it
// consults the address decoder and waitstate table in package memory,
// and dispatches per-region to the backing RAM buffers, the BIOS
// image, and the video/I/O/cartridge collaborators. DMA transfers
// observe the same path, since they are specified to go "via the
// bus" rather than touching backing buffers directly.
package bus

import (
	"gbamem/internal/interfaces"
	"gbamem/internal/memory"
	"gbamem/util/dbg"
)

// Bus wires the Memory entity together with its external
// collaborators. All fields are borrowed references except the
// pcInBIOS flag, which the bus itself tracks as part of its BIOS
// open-bus simplification (spec §4.B).
type Bus struct {
	Mem       *memory.Memory
	IO        interfaces.IOFile
	Video     interfaces.VideoMemory
	Cartridge interfaces.CartridgeStore

	pcInBIOS bool
}

// New wires a Bus from its collaborators. None of io, video, or cart
// may be nil; mem may not be nil either.
func New(mem *memory.Memory, io interfaces.IOFile, video interfaces.VideoMemory, cart interfaces.CartridgeStore) *Bus {
	return &Bus{Mem: mem, IO: io, Video: video, Cartridge: cart}
}

// SetActiveRegion is the CPU's prefetch hook (spec §4.D): it records
// whether the PC is currently inside BIOS (for BIOS open-bus
// emulation) and forwards to the Memory entity's own active-region
// cache.
func (b *Bus) SetActiveRegion(addr uint32) {
	b.pcInBIOS = memory.Region(addr>>24) == memory.RegionBIOS
	b.Mem.SetActiveRegion(addr)
}

// --- 8-bit ---

func (b *Bus) Load8(addr uint32) uint8 {
	region, off := memory.Decode(addr)
	switch region {
	case memory.RegionBIOS:
		if !b.pcInBIOS {
			return 0
		}
		return b.Mem.BIOS.Read8(off)
	case memory.RegionWRAM:
		return b.Mem.WRAM.Read8(off)
	case memory.RegionIWRAM:
		return b.Mem.IWRAM.Read8(off)
	case memory.RegionIO:
		return b.IO.Read8(off)
	case memory.RegionPalette:
		return b.Video.ReadPalette8(off)
	case memory.RegionVRAM:
		return b.Video.ReadVRAM8(off)
	case memory.RegionOAM:
		return b.Video.ReadOAM8(off)
	case memory.RegionSRAM:
		return b.Cartridge.ReadSRAM8(off)
	default:
		if memory.IsCartROM(region) {
			return b.Cartridge.ReadROM8(off & b.Cartridge.ROMMask())
		}
		return 0
	}
}

func (b *Bus) LoadS8(addr uint32) int8 {
	return int8(b.Load8(addr))
}

func (b *Bus) Store8(addr uint32, v uint8) {
	region, off := memory.Decode(addr)
	switch region {
	case memory.RegionBIOS:
		dbg.Warnf("bus: dropped write to read-only BIOS at %#08x", addr)
	case memory.RegionWRAM:
		b.Mem.WRAM.Write8(off, v)
	case memory.RegionIWRAM:
		b.Mem.IWRAM.Write8(off, v)
	case memory.RegionIO:
		if !b.IO.WriteByte(off, v) {
			dbg.Warnf("bus: dropped 8-bit I/O write to %#08x (no byte-write whitelist entry)", addr)
		}
	case memory.RegionPalette:
		b.Video.WritePalette8(off, v)
	case memory.RegionVRAM:
		b.Video.WriteVRAM8(off, v) // hardware drops this; Video.WriteVRAM8 is already a no-op
	case memory.RegionOAM:
		b.Video.WriteOAM8(off, v) // likewise a no-op
	case memory.RegionSRAM:
		b.Cartridge.WriteSRAM8(off, v)
	default:
		if memory.IsCartROM(region) {
			dbg.Warnf("bus: dropped write to read-only ROM at %#08x", addr)
		}
	}
}

// --- 16-bit ---

func (b *Bus) Load16(addr uint32) uint16 {
	addr &^= 1
	region, off := memory.Decode(addr)
	switch region {
	case memory.RegionBIOS:
		if !b.pcInBIOS {
			return 0
		}
		return b.Mem.BIOS.Read16(off)
	case memory.RegionWRAM:
		return b.Mem.WRAM.Read16(off)
	case memory.RegionIWRAM:
		return b.Mem.IWRAM.Read16(off)
	case memory.RegionIO:
		return b.IO.Read16(off)
	case memory.RegionPalette:
		return b.Video.ReadPalette16(off)
	case memory.RegionVRAM:
		return b.Video.ReadVRAM16(off)
	case memory.RegionOAM:
		return b.Video.ReadOAM16(off)
	case memory.RegionSRAM:
		lo := uint16(b.Cartridge.ReadSRAM8(off))
		return lo | lo<<8
	default:
		if memory.IsCartROM(region) {
			return b.Cartridge.ReadROM16(off & b.Cartridge.ROMMask())
		}
		return 0
	}
}

func (b *Bus) LoadS16(addr uint32) int16 {
	return int16(b.Load16(addr))
}

func (b *Bus) Store16(addr uint32, v uint16) {
	addr &^= 1
	region, off := memory.Decode(addr)
	switch region {
	case memory.RegionBIOS:
		dbg.Warnf("bus: dropped write to read-only BIOS at %#08x", addr)
	case memory.RegionWRAM:
		b.Mem.WRAM.Write16(off, v)
	case memory.RegionIWRAM:
		b.Mem.IWRAM.Write16(off, v)
	case memory.RegionIO:
		b.IO.Write16(off, v)
	case memory.RegionPalette:
		b.Video.WritePalette16(off, v)
	case memory.RegionVRAM:
		b.Video.WriteVRAM16(off, v)
	case memory.RegionOAM:
		b.Video.WriteOAM16(off, v)
	case memory.RegionSRAM:
		b.Cartridge.WriteSRAM8(off, uint8(v))
	default:
		if memory.IsCartROM(region) {
			dbg.Warnf("bus: dropped write to read-only ROM at %#08x", addr)
		}
	}
}

// --- 32-bit ---

func (b *Bus) Load32(addr uint32) uint32 {
	addr &^= 3
	region, off := memory.Decode(addr)
	switch region {
	case memory.RegionIO:
		// 32-bit I/O loads compose two 16-bit register reads, per
		// spec §4.B, rather than indexing a 32-bit-wide register.
		lo := uint32(b.Load16(addr))
		hi := uint32(b.Load16(addr + 2))
		return lo | hi<<16
	case memory.RegionBIOS:
		if !b.pcInBIOS {
			return 0
		}
		return b.Mem.BIOS.Read32(off)
	case memory.RegionWRAM:
		return b.Mem.WRAM.Read32(off)
	case memory.RegionIWRAM:
		return b.Mem.IWRAM.Read32(off)
	case memory.RegionPalette:
		return b.Video.ReadPalette32(off)
	case memory.RegionVRAM:
		return b.Video.ReadVRAM32(off)
	case memory.RegionOAM:
		return b.Video.ReadOAM32(off)
	case memory.RegionSRAM:
		lo := uint32(b.Cartridge.ReadSRAM8(0))
		return lo | lo<<8 | lo<<16 | lo<<24
	default:
		if memory.IsCartROM(region) {
			return b.Cartridge.ReadROM32(off & b.Cartridge.ROMMask())
		}
		return 0
	}
}

func (b *Bus) Store32(addr uint32, v uint32) {
	addr &^= 3
	region, off := memory.Decode(addr)
	switch region {
	case memory.RegionIO:
		// 32-bit I/O stores split into two 16-bit writes, per spec §4.B.
		b.Store16(addr, uint16(v))
		b.Store16(addr+2, uint16(v>>16))
	case memory.RegionBIOS:
		dbg.Warnf("bus: dropped write to read-only BIOS at %#08x", addr)
	case memory.RegionWRAM:
		b.Mem.WRAM.Write32(off, v)
	case memory.RegionIWRAM:
		b.Mem.IWRAM.Write32(off, v)
	case memory.RegionPalette:
		b.Video.WritePalette32(off, v)
	case memory.RegionVRAM:
		b.Video.WriteVRAM32(off, v)
	case memory.RegionOAM:
		b.Video.WriteOAM32(off, v)
	case memory.RegionSRAM:
		b.Cartridge.WriteSRAM8(0, uint8(v))
	default:
		if memory.IsCartROM(region) {
			dbg.Warnf("bus: dropped write to read-only ROM at %#08x", addr)
		}
	}
}

// Waitstate passthrough for internal/dma (interfaces.WaitstateSource).

func (b *Bus) Waitstates16(region uint8) int    { return b.Mem.Waitstates.NonSeq16(memory.Region(region)) }
func (b *Bus) Waitstates32(region uint8) int    { return b.Mem.Waitstates.NonSeq32(memory.Region(region)) }
func (b *Bus) SeqWaitstates16(region uint8) int { return b.Mem.Waitstates.Seq16(memory.Region(region)) }
func (b *Bus) SeqWaitstates32(region uint8) int { return b.Mem.Waitstates.Seq32(memory.Region(region)) }

// AdjustWaitstates is the entry point exposed to the I/O register
// file for a WAITCNT write (spec §6).
func (b *Bus) AdjustWaitstates(waitcnt uint16) {
	b.Mem.AdjustWaitstates(waitcnt)
}

var _ interfaces.BusAccessor = (*Bus)(nil)
var _ interfaces.WaitstateSource = (*Bus)(nil)
