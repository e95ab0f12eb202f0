package interfaces

// VideoMemory is the delegation interface the bus uses to reach
// Palette RAM, VRAM, and OAM. The video controller owns these backing
// stores; the bus never indexes into them directly. Per GBA hardware,
// 8-bit writes to VRAM and OAM are no-ops — implementations drop them
// rather than erroring.
type VideoMemory interface {
	ReadPalette8(addr uint32) uint8
	ReadPalette16(addr uint32) uint16
	ReadPalette32(addr uint32) uint32
	WritePalette8(addr uint32, v uint8)
	WritePalette16(addr uint32, v uint16)
	WritePalette32(addr uint32, v uint32)

	ReadVRAM8(addr uint32) uint8
	ReadVRAM16(addr uint32) uint16
	ReadVRAM32(addr uint32) uint32
	WriteVRAM8(addr uint32, v uint8)
	WriteVRAM16(addr uint32, v uint16)
	WriteVRAM32(addr uint32, v uint32)

	ReadOAM8(addr uint32) uint8
	ReadOAM16(addr uint32) uint16
	ReadOAM32(addr uint32) uint32
	WriteOAM8(addr uint32, v uint8)
	WriteOAM16(addr uint32, v uint16)
	WriteOAM32(addr uint32, v uint32)
}
