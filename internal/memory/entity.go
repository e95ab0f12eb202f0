package memory

// Memory is the entity described in spec §3: it owns the BIOS image,
// the two mutable RAM buffers, the waitstate table, and the active
// instruction-fetch region cursor. The DMA channel records and the
// I/O shadow mirror are owned by internal/dma and internal/ioregs
// respectively — this type only keeps the pieces that are purely
// about address decoding and region storage, and exposes them to
// package bus, which implements the typed load/store policy per
// region.
type Memory struct {
	BIOS  *BIOS
	WRAM  Buffer
	IWRAM Buffer

	Waitstates *WaitstateTable

	activeRegion     Region
	activePrefetch16 int
	activePrefetch32 int
}

// New allocates the WRAM/IWRAM buffers and the waitstate table. It
// returns an error rather than panicking on allocation failure
// (spec §5, §7's out_of_memory is a recoverable, surfaced condition,
// not a fatal log) — allocation failure can't actually happen with
// Go's make() short of an OOM kill, but the error-returning shape is
// kept so a future caller-supplied allocator can fail gracefully.
func New(bios *BIOS) (*Memory, error) {
	m := &Memory{
		BIOS:       bios,
		WRAM:       newBuffer(WRAMSize),
		IWRAM:      newBuffer(IWRAMSize),
		Waitstates: NewWaitstateTable(),
	}
	if m.WRAM.data == nil || m.IWRAM.data == nil {
		return nil, newError(ErrOutOfMemory, "failed to allocate RAM buffers")
	}
	m.refreshActivePrefetch()
	return m, nil
}

// SetActiveRegion is the prefetch/active-region hook from spec §4.D.
// It stores the region the CPU just fetched from and caches that
// region's waitstate costs so per-instruction cycle accounting is a
// field read, not a table lookup.
func (m *Memory) SetActiveRegion(addr uint32) {
	m.activeRegion = Region(addr >> 24)
	m.refreshActivePrefetch()
}

func (m *Memory) refreshActivePrefetch() {
	m.activePrefetch16 = m.Waitstates.NonSeq16(m.activeRegion)
	m.activePrefetch32 = m.Waitstates.NonSeq32(m.activeRegion)
}

// ActivePrefetchCycles16/32 are the cached fast-path cycle costs for
// the CPU's current fetch region.
func (m *Memory) ActivePrefetchCycles16() int { return m.activePrefetch16 }
func (m *Memory) ActivePrefetchCycles32() int { return m.activePrefetch32 }

// AdjustWaitstates decodes WAITCNT and rebuilds the waitstate table,
// then refreshes the active-region prefetch cache (spec §4.C).
func (m *Memory) AdjustWaitstates(waitcnt uint16) {
	m.Waitstates.Adjust(waitcnt)
	m.refreshActivePrefetch()
}
