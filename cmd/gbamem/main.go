// Command gbamem is a smoke-test harness for the memory subsystem: it
// loads a BIOS image and a ROM, wires up a Bus and DMA controller,
// runs a CpuSet HLE call and an immediate-timing DMA copy, and drains
// the DMA completion IRQ through ProcessEvents. It does not interpret
// any CPU instructions — there is no CPU collaborator in this module.
package main

import (
	"flag"
	"os"

	"gbamem/internal/bios"
	"gbamem/internal/bus"
	"gbamem/internal/cartridge"
	"gbamem/internal/dma"
	"gbamem/internal/interfaces"
	"gbamem/internal/ioregs"
	"gbamem/internal/irq"
	"gbamem/internal/memory"
	"gbamem/internal/video"
	"gbamem/util/dbg"
)

const (
	regWaitcnt  = 0x0204
	dma0SrcAddr = 0x00B0
	dma0DstAddr = 0x00B4
	dma0CntLo   = 0x00B8
	dma0CntHi   = 0x00BA
	dmaRegStride = 0x0C
)

func main() {
	biosPath := flag.String("bios", "", "path to a GBA BIOS image (optional; open-bus reads return 0 without one)")
	romPath := flag.String("rom", "", "path to a GBA ROM image")
	flag.Parse()

	var biosData []byte
	if *biosPath != "" {
		data, err := os.ReadFile(*biosPath)
		if err != nil {
			dbg.Warnf("gbamem: failed to read BIOS image %s: %v", *biosPath, err)
		} else {
			biosData = data
		}
	}

	var romData []byte
	if *romPath != "" {
		data, err := os.ReadFile(*romPath)
		if err != nil {
			dbg.Warnf("gbamem: failed to read ROM %s: %v", *romPath, err)
		} else {
			romData = data
		}
	}

	mem, err := memory.New(memory.NewBIOS(biosData))
	if err != nil {
		dbg.Warnf("gbamem: %v", err)
		os.Exit(1)
	}

	io := ioregs.NewFile()
	vid := video.NewStore()
	cart, err := cartridge.New(romData, cartridge.DefaultSRAMSize)
	if err != nil {
		dbg.Warnf("gbamem: invalid ROM: %v", err)
		os.Exit(1)
	}

	b := bus.New(mem, io, vid, cart)
	sink := irq.NewSink()
	controller := dma.NewController(b, b, sink, io)

	wireIORegisters(io, b, controller)

	dbg.Printf("gbamem: loaded %d-byte ROM, mask=%#x", len(romData), cart.ROMMask())

	demoCpuSet(b)
	demoImmediateDMA(b, io, controller, sink)
}

// wireIORegisters hooks WAITCNT and the four DMA channels' register
// windows to the bus and DMA controller, matching the entry points
// spec §6 documents as "provided to the I/O register file".
func wireIORegisters(io *ioregs.File, b *bus.Bus, controller *dma.Controller) {
	io.OnWrite(regWaitcnt, func(addr uint32, v uint16) {
		b.AdjustWaitstates(v)
	})

	for ch := 0; ch < dma.NumChannels; ch++ {
		ch := ch
		base := uint32(ch) * dmaRegStride

		io.OnWrite(dma0SrcAddr+base, func(addr uint32, v uint16) {
			full := uint32(io.Read16(addr)) | uint32(io.Read16(addr+2))<<16
			controller.WriteSourceAddress(ch, full)
		})
		io.OnWrite(dma0SrcAddr+base+2, func(addr uint32, v uint16) {
			full := uint32(io.Read16(addr-2)) | uint32(io.Read16(addr))<<16
			controller.WriteSourceAddress(ch, full)
		})
		io.OnWrite(dma0DstAddr+base, func(addr uint32, v uint16) {
			full := uint32(io.Read16(addr)) | uint32(io.Read16(addr+2))<<16
			controller.WriteDestAddress(ch, full)
		})
		io.OnWrite(dma0DstAddr+base+2, func(addr uint32, v uint16) {
			full := uint32(io.Read16(addr-2)) | uint32(io.Read16(addr))<<16
			controller.WriteDestAddress(ch, full)
		})
		io.OnWrite(dma0CntLo+base, func(addr uint32, v uint16) {
			controller.WriteCount(ch, v)
		})
		io.OnWrite(dma0CntHi+base, func(addr uint32, v uint16) {
			resolved := controller.WriteControl(ch, v)
			io.SetRaw16(addr, resolved)
		})
	}
}

// demoCpuSet fills 8 words of IWRAM with a pattern using the CpuSet
// BIOS HLE routine (spec §4.F, scenario 3).
func demoCpuSet(busAcc interfaces.BusAccessor) {
	busAcc.Store32(0x03000000, 0xAA55AA55)
	const mode = 0x05000008 // fill | width32, count=8
	bios.CpuSet(busAcc, 0x03000000, 0x03000100, mode)
	dbg.Printf("gbamem: CpuSet fill wrote %#x at 0x03000100: %#08x", uint32(0xAA55AA55), busAcc.Load32(0x03000100))
}

// demoImmediateDMA programs DMA channel 3 for an immediate, IRQ-on-
// completion ROM-to-WRAM copy (spec §4.E, scenario 5) and drains the
// resulting completion IRQ through ProcessEvents.
func demoImmediateDMA(b *bus.Bus, io *ioregs.File, controller *dma.Controller, sink *irq.Sink) {
	const channel = 3
	const base = channel * dmaRegStride

	io.Write16(dma0SrcAddr+base, 0x0000)
	io.Write16(dma0SrcAddr+base+2, 0x0800) // source = 0x08000000 (ROM)
	io.Write16(dma0DstAddr+base, 0x0000)
	io.Write16(dma0DstAddr+base+2, 0x0200) // dest = 0x02000000 (WRAM)
	io.Write16(dma0CntLo+base, 4)          // count = 4 words

	const control = uint16(1<<15) | uint16(1<<14) | uint16(1<<10) // enable, IRQ, 32-bit, immediate
	io.Write16(dma0CntHi+base, control)

	dbg.Printf("gbamem: DMA3 copied ROM[0:16] to WRAM: %#08x", b.Load32(0x02000000))

	horizon := controller.ProcessEvents(1000)
	dbg.Printf("gbamem: DMA3 completion IRQs raised: %d, next horizon: %d", sink.Count(irq.DMA3), horizon)
}
