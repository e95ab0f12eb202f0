package video

import "testing"

func TestVRAM16RoundTrip(t *testing.T) {
	s := NewStore()
	s.WriteVRAM16(0x100, 0xBEEF)
	if got := s.ReadVRAM16(0x100); got != 0xBEEF {
		t.Fatalf("ReadVRAM16 = %#x, want 0xBEEF", got)
	}
}

func TestVRAM8WriteDropped(t *testing.T) {
	s := NewStore()
	s.WriteVRAM16(0x200, 0x1234)
	s.WriteVRAM8(0x200, 0xFF)
	if got := s.ReadVRAM16(0x200); got != 0x1234 {
		t.Fatalf("8-bit VRAM write should be dropped, got %#x", got)
	}
}

func TestOAM8WriteDropped(t *testing.T) {
	s := NewStore()
	s.WriteOAM16(0x10, 0xAAAA)
	s.WriteOAM8(0x10, 0x11)
	if got := s.ReadOAM16(0x10); got != 0xAAAA {
		t.Fatalf("8-bit OAM write should be dropped, got %#x", got)
	}
}

func TestPaletteMirrors(t *testing.T) {
	s := NewStore()
	s.WritePalette16(0x10, 0x7FFF)
	if got := s.ReadPalette16(0x10 + PaletteSize); got != 0x7FFF {
		t.Fatalf("palette mirror mismatch: %#x", got)
	}
}
