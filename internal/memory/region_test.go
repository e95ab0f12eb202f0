package memory

import "testing"

func TestDecodeOffsetInvariant(t *testing.T) {
	cases := []uint32{0x00000000, 0x00003FFF, 0x02012345, 0x03007FFF, 0x04000200, 0x05000123, 0x06010000, 0x07000010}
	for _, addr := range cases {
		region, off := Decode(addr)
		size := RegionSize(region)
		if size == 0 {
			continue
		}
		if want := addr % size; off != want {
			t.Fatalf("Decode(%#x) offset = %#x, want %#x", addr, off, want)
		}
	}
}

func TestDecodeCartMirrorPair(t *testing.T) {
	r8, off8 := Decode(0x08000010)
	r9, off9 := Decode(0x09000010)
	if r8 != RegionCart0 || r9 != RegionCart0Ex {
		t.Fatalf("unexpected regions: %v %v", r8, r9)
	}
	if off9-off8 != 0x01000000 {
		t.Fatalf("cart mirror pair offsets not contiguous: %#x vs %#x", off8, off9)
	}
}

func TestDecodeUnmapped(t *testing.T) {
	r, _ := Decode(0x01000000)
	if r != RegionUnmapped1 {
		t.Fatalf("region = %v, want RegionUnmapped1", r)
	}
}
