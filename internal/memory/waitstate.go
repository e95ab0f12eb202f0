package memory

// Cost holds the four cycle costs tracked per region (spec §3).
type Cost struct {
	NonSeq16 int
	Seq16    int
	NonSeq32 int
	Seq32    int
}

// baseWaitstates16/baseWaitstatesSeq16 are the fixed reset-time base
// table, indexed by region nibble (0..14); index 15 is never read
// because RegionUnmappedF carries no waitstate entry. WRAM costs 2/2;
// the cartridge mirror regions and SRAM default to 4/4 until WAITCNT
// reprograms them.
var baseWaitstates16 = [15]int{0, 0, 2, 0, 0, 0, 0, 0, 4, 4, 4, 4, 4, 4, 4}
var baseWaitstatesSeq16 = [15]int{0, 0, 2, 0, 0, 0, 0, 0, 4, 4, 4, 4, 4, 4, 4}

// romNonSeqCosts/romSeqCosts implement the WAITCNT field decode
// tables from spec §4.C.
var romNonSeqCosts = [4]int{4, 3, 2, 8}
var romSeqCosts = [6]int{2, 1, 4, 1, 8, 1}

// WaitstateTable is the "256 entries indexed by top byte" table from
// spec §3: slots 0..15 carry real per-region values, 16..255 are
// always zero. It is rebuilt from scratch on every AdjustWaitstates
// call; nothing ever mutates a single slot in place.
type WaitstateTable struct {
	entries [256]Cost
}

// NewWaitstateTable builds the table from the fixed base costs, with
// no WAITCNT override applied yet. This is not the table Adjust(0)
// produces: WAITCNT 0 gives the WS0/WS1/WS2 cartridge regions
// sequential costs of 2, 4 and 8, where the base table has 4 for all.
func NewWaitstateTable() *WaitstateTable {
	t := &WaitstateTable{}
	t.resetBase()
	return t
}

func (t *WaitstateTable) resetBase() {
	t.entries = [256]Cost{}
	for i := 0; i < 15; i++ {
		ns16 := baseWaitstates16[i]
		s16 := baseWaitstatesSeq16[i]
		t.entries[i] = Cost{
			NonSeq16: ns16,
			Seq16:    s16,
			NonSeq32: ns16 + 1 + s16,
			Seq32:    2*s16 + 1,
		}
	}
}

// Adjust decodes a WAITCNT value per spec §4.C and rebuilds the
// cartridge-region (SRAM, CART0/CART0Ex, CART1/CART1Ex, CART2/CART2Ex)
// entries of the table. Bit 14 (prefetch enable) is decoded but has no
// effect here, matching spec's "modeling it is optional".
func (t *WaitstateTable) Adjust(waitcnt uint16) {
	t.resetBase()

	sram := waitcnt & 0x3
	ws0First := (waitcnt >> 2) & 0x3
	ws0Seq := (waitcnt >> 4) & 0x1
	ws1First := (waitcnt >> 5) & 0x3
	ws1Seq := (waitcnt >> 7) & 0x1
	ws2First := (waitcnt >> 8) & 0x3
	ws2Seq := (waitcnt >> 10) & 0x1

	sramNS := romNonSeqCosts[sram]
	t.setRegionPair(RegionSRAM, RegionSRAM, Cost{
		NonSeq16: sramNS,
		Seq16:    sramNS,
		NonSeq32: 2*sramNS + 1,
		Seq32:    2*sramNS + 1,
	})

	t.setROMRegion(RegionCart0, RegionCart0Ex, romNonSeqCosts[ws0First], romSeqCosts[ws0Seq])
	t.setROMRegion(RegionCart1, RegionCart1Ex, romNonSeqCosts[ws1First], romSeqCosts[2+ws1Seq])
	t.setROMRegion(RegionCart2, RegionCart2Ex, romNonSeqCosts[ws2First], romSeqCosts[4+ws2Seq])
}

func (t *WaitstateTable) setROMRegion(a, b Region, ns16, s16 int) {
	c := Cost{
		NonSeq16: ns16,
		Seq16:    s16,
		NonSeq32: ns16 + 1 + s16,
		Seq32:    2*s16 + 1,
	}
	t.setRegionPair(a, b, c)
}

func (t *WaitstateTable) setRegionPair(a, b Region, c Cost) {
	t.entries[a] = c
	t.entries[b] = c
}

func (t *WaitstateTable) NonSeq16(region Region) int { return t.entries[region].NonSeq16 }
func (t *WaitstateTable) Seq16(region Region) int    { return t.entries[region].Seq16 }
func (t *WaitstateTable) NonSeq32(region Region) int { return t.entries[region].NonSeq32 }
func (t *WaitstateTable) Seq32(region Region) int    { return t.entries[region].Seq32 }

// CostFor returns the full cost record for a top-byte value, matching
// the spec's literal "256 entries indexed by top byte" framing; values
// outside 0..15 always read as the zero Cost.
func (t *WaitstateTable) CostFor(topByte uint8) Cost {
	return t.entries[topByte]
}
