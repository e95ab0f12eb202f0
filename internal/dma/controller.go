// Package dma implements the four-channel DMA engine (spec §4.E) and
// the event/tick driver that counts down pending completion IRQs
// (spec §4.G). The controller never touches backing RAM directly —
// every transfer goes through a BusAccessor, so I/O-sourced or
// I/O-destined DMA observes side effects exactly as the CPU would.
package dma

import (
	"gbamem/internal/interfaces"
	"gbamem/util/dbg"
)

// NumChannels is the number of DMA channels on the GBA.
const NumChannels = 4

// Controller owns the four channel records and the collaborators
// needed to service a transfer and report its completion.
type Controller struct {
	channels [NumChannels]*Channel

	bus        interfaces.BusAccessor
	waitstates interfaces.WaitstateSource
	irq        interfaces.IRQRaiser

	// ioShadow, when set, receives the cleared enable bit after a
	// non-repeating transfer completes, so I/O register-file reads of
	// DMAxCNT_HI observe the engine's own state change (spec §3's "I/O
	// shadow mirror", §4.E's "clear the corresponding enable bit in
	// the shadowed I/O control word").
	ioShadow ShadowWriter
}

// ShadowWriter is the minimal capability the DMA engine needs from the
// I/O register file: the ability to overwrite a register's raw bytes
// without re-triggering write hooks (avoiding re-entrant scheduling).
type ShadowWriter interface {
	SetRaw16(addr uint32, v uint16)
}

// controlRegOffset returns the I/O-window byte offset of channel n's
// DMAxCNT_HI register, used only to update the shadow mirror.
func controlRegOffset(n int) uint32 {
	const dma0CntHi = 0x00BA
	const stride = 0x0C
	return dma0CntHi + uint32(n)*stride
}

// NewController builds a DMA controller with all four channels idle.
func NewController(bus interfaces.BusAccessor, ws interfaces.WaitstateSource, irq interfaces.IRQRaiser, shadow ShadowWriter) *Controller {
	c := &Controller{bus: bus, waitstates: ws, irq: irq, ioShadow: shadow}
	for i := range c.channels {
		c.channels[i] = newChannel(i)
	}
	return c
}

// WriteSourceAddress implements the §6 "provided to I/O register
// file" entry point for DMAxSAD.
func (c *Controller) WriteSourceAddress(channel int, addr uint32) {
	c.channels[channel].WriteSourceAddress(addr)
}

// WriteDestAddress implements the DMAxDAD entry point.
func (c *Controller) WriteDestAddress(channel int, addr uint32) {
	c.channels[channel].WriteDestAddress(addr)
}

// WriteCount implements the DMAxCNT_LO entry point.
func (c *Controller) WriteCount(channel int, count uint16) {
	c.channels[channel].WriteCount(count)
}

// WriteControl implements the DMAxCNT_HI entry point (spec §4.E,
// §6). It returns the possibly-modified control word, since
// immediate-timing transfers may run and clear the enable bit
// synchronously within this call.
func (c *Controller) WriteControl(channel int, control uint16) uint16 {
	ch := c.channels[channel]
	wasEnabled := ch.enable
	ch.decodeControl(control)
	ch.nextIRQ = sentinelIdle

	if !wasEnabled && ch.enable {
		ch.nextSource = ch.source
		ch.nextDest = ch.dest
		ch.nextCount = ch.count
		c.schedule(channel, ch)
	}
	return ch.packed
}

// schedule dispatches a channel per its timing field (spec §4.E).
func (c *Controller) schedule(index int, ch *Channel) {
	switch ch.timing {
	case TimingNow:
		c.service(index, ch)
	case TimingVBlank, TimingHBlank:
		// Serviced later by RunVblankDMAs/RunHblankDMAs.
	case TimingSpecial:
		if index == 0 {
			dbg.Warnf("dma: discarding invalid special-timing schedule on channel 0")
			ch.enable = false
		}
		// Channels 1/2 (audio FIFO) and channel 3 (video capture) are
		// serviced through their dedicated hooks below, not here.
	}
}

// RunHblankDMAs services every enabled channel whose timing is
// HBlank, in ascending channel order (spec §4.E's ordering guarantee).
func (c *Controller) RunHblankDMAs() {
	for i, ch := range c.channels {
		if ch.enable && ch.timing == TimingHBlank {
			c.service(i, ch)
		}
	}
}

// RunVblankDMAs services every enabled channel whose timing is
// VBlank, in ascending channel order.
func (c *Controller) RunVblankDMAs() {
	for i, ch := range c.channels {
		if ch.enable && ch.timing == TimingVBlank {
			c.service(i, ch)
		}
	}
}

// RunAudioFifoDMA services channel 1 or 2 on an audio FIFO refill
// signal, the hook the audio collaborator is expected to pull
// (spec §4.E's special-timing case for channels 1/2).
func (c *Controller) RunAudioFifoDMA(channel int) {
	if channel != 1 && channel != 2 {
		return
	}
	ch := c.channels[channel]
	if ch.enable && ch.timing == TimingSpecial {
		c.service(channel, ch)
	}
}

// RunVideoCaptureDMA services channel 3 on a video capture signal,
// the hook the video collaborator is expected to pull (spec §4.E's
// special-timing case for channel 3).
func (c *Controller) RunVideoCaptureDMA() {
	ch := c.channels[3]
	if ch.enable && ch.timing == TimingSpecial {
		c.service(3, ch)
	}
}

// service runs the DMA service algorithm from spec §4.E.
func (c *Controller) service(index int, ch *Channel) {
	if !ch.enable {
		// A scheduled-but-not-yet-run service raced with a guest
		// disable; this is a no-op per spec §5.
		return
	}

	width := ch.width.Bytes()
	sourceOffset := addrOffsetSign[ch.srcControl] * int32(width)
	destOffset := addrOffsetSign[ch.dstControl] * int32(width)

	source := ch.nextSource
	dest := ch.nextDest
	count := ch.nextCount

	if width == 4 {
		source &^= 3
		dest &^= 3
	}

	sourceRegion := uint8(source >> 24)
	destRegion := uint8(dest >> 24)

	for i := uint32(0); i < count; i++ {
		if width == 4 {
			c.bus.Store32(dest, c.bus.Load32(source))
		} else {
			c.bus.Store16(dest, c.bus.Load16(source))
		}
		source = uint32(int64(source) + int64(sourceOffset))
		dest = uint32(int64(dest) + int64(destOffset))
	}

	if ch.doIrq {
		var delay int64 = 2
		if width == 4 {
			delay += int64(c.waitstates.Waitstates32(sourceRegion)) + int64(c.waitstates.Waitstates32(destRegion))
			if count > 0 {
				delay += int64(count-1) * int64(c.waitstates.SeqWaitstates32(sourceRegion)+c.waitstates.SeqWaitstates32(destRegion))
			}
		} else {
			delay += int64(c.waitstates.Waitstates16(sourceRegion)) + int64(c.waitstates.Waitstates16(destRegion))
			if count > 0 {
				delay += int64(count-1) * int64(c.waitstates.SeqWaitstates16(sourceRegion)+c.waitstates.SeqWaitstates16(destRegion))
			}
		}
		ch.nextIRQ = delay
	}

	ch.nextSource = source
	ch.nextDest = dest
	ch.nextCount = 0

	if !ch.repeat {
		ch.clearEnableShadow()
		if c.ioShadow != nil {
			c.ioShadow.SetRaw16(controlRegOffset(index), ch.packed)
		}
	} else {
		ch.nextCount = ch.count
		if ch.dstControl == AddrIncrementReload {
			ch.nextDest = ch.dest
		}
		c.schedule(index, ch)
	}
}

// ProcessEvents is the event/tick driver from spec §4.G: it
// decrements every channel's pending-IRQ countdown by cycles and
// raises any channel whose countdown has reached zero. It returns the
// smallest positive countdown remaining across all channels, or the
// idle sentinel if none is pending.
//
// The guard below tracks nextIRQ against the idle sentinel rather
// than the channel's guest-visible enable bit. The reference
// implementation's guard (spec §9) requires dma->enable, but a
// non-repeating channel's enable bit is already cleared by the time
// the transfer's own service call finishes — before ProcessEvents
// ever runs — so a literal enable-gated guard would make a one-shot
// completion IRQ unraisable, contradicting the worked example in
// spec §8 scenario 5. doIrq is latched at the control write and is
// not cleared by a completed non-repeating transfer, so it is the
// guard that actually preserves the source's intent.
func (c *Controller) ProcessEvents(cycles int64) int64 {
	horizon := sentinelIdle
	for i, ch := range c.channels {
		if ch.nextIRQ == sentinelIdle {
			continue
		}
		ch.nextIRQ -= cycles
		if !ch.doIrq {
			continue
		}
		if ch.nextIRQ <= 0 {
			ch.nextIRQ = sentinelIdle
			c.irq.RaiseIRQ(dmaIRQLine(i))
		} else if ch.nextIRQ < horizon {
			horizon = ch.nextIRQ
		}
	}
	return horizon
}

func dmaIRQLine(channel int) int {
	// IRQ line numbers match irq.DMA0..DMA3 (IE/IF bits 8-11); the DMA
	// package itself stays decoupled from the irq package's constants
	// to avoid an import cycle risk, since irq has no reason to import
	// dma.
	return 8 + channel
}

// Channel exposes a read-only view of channel n, used by tests and
// the demo CLI to observe enable/packed state without mutating it.
func (c *Controller) Channel(n int) *Channel {
	return c.channels[n]
}

// IdleSentinel is the public name for the "no event pending" horizon
// value ProcessEvents returns.
const IdleSentinel = sentinelIdle
