package interfaces

// IOFile is the I/O register file collaborator. The bus composes
// 32-bit I/O reads/writes from two 16-bit register accesses; 8-bit
// reads shift/mask the 16-bit register, and 8-bit writes are dropped
// except through the explicit WriteByte escape hatch reserved for the
// hardware's byte-write whitelist (sound/serial registers), which is
// the register file's concern, not the bus's.
type IOFile interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Write16(addr uint32, v uint16)
	WriteByte(addr uint32, v uint8) bool
	Size() uint32
}
