package cpu

import "github.com/mattfbacon/space80/mask"

// Button names one of the cabinet's five player inputs.
type Button byte

const (
	ButtonStart Button = iota
	ButtonLeft
	ButtonRight
	ButtonShoot
	ButtonCoin
)

// ButtonEvent is a single press or release of a cabinet button, as queued
// by a frontend and drained by the emulator's main loop.
type ButtonEvent struct {
	Button  Button
	Pressed bool
}

// Buttons tracks port 1's live bit state.
type Buttons struct {
	port1 byte
}

// Port1 returns the byte IN instructions against port 1 read.
func (b Buttons) Port1() byte { return b.port1 }

// Update applies one button event to the tracked port byte. Bit positions
// match the cabinet wiring (§4.8): Coin=0, Start=2, Shoot=4, Left=5, Right=6,
// counting from the MSB the way mask numbers positions (position p is bit
// 8-p).
func (b *Buttons) Update(event ButtonEvent) {
	var bit byte
	if event.Pressed {
		bit = 1
	}

	switch event.Button {
	case ButtonCoin:
		b.port1 = mask.Set(mask.Unset(b.port1, mask.I8, mask.I8), mask.I8, bit)
	case ButtonStart:
		b.port1 = mask.Set(mask.Unset(b.port1, mask.I6, mask.I6), mask.I6, bit)
	case ButtonShoot:
		b.port1 = mask.Set(mask.Unset(b.port1, mask.I4, mask.I4), mask.I4, bit)
	case ButtonLeft:
		b.port1 = mask.Set(mask.Unset(b.port1, mask.I3, mask.I3), mask.I3, bit)
	case ButtonRight:
		b.port1 = mask.Set(mask.Unset(b.port1, mask.I2, mask.I2), mask.I2, bit)
	}
}
