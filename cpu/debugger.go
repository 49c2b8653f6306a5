package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/mattfbacon/space80/isa"
)

type model struct {
	cpu *Cpu

	prevPC uint16
	halted bool
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.halted {
				return m, nil
			}
			m.prevPC = m.cpu.Registers.PC
			result := m.cpu.Step()
			m.halted = result.Halted
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte row of memory as a line, with the
// current PC's byte bracketed.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		b := m.cpu.Bus.Read(addr)
		if addr == m.cpu.Registers.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	r := m.cpu.Registers
	f := m.cpu.Flags
	flagBits := []bool{f.SignPositive, f.Zero, f.AuxiliaryCarry, f.ParityEven, f.Carry}
	flagNames := []string{"S", "Z", "A", "P", "C"}
	var flags string
	for i, set := range flagBits {
		if set {
			flags += flagNames[i] + " "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (prev %04x)
SP: %04x
 A: %02x   B: %02x C: %02x
 D: %02x   E: %02x
 H: %02x   L: %02x
%s
halted: %v
`,
		r.PC, m.prevPC,
		r.SP,
		r.A, r.B, r.C,
		r.D, r.E,
		r.H, r.L,
		flags,
		m.halted,
	)
}

func (m model) pageTable() string {
	header := "addr | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	base := m.cpu.Registers.PC &^ 0xF
	rows := []string{header}
	for i := uint16(0); i < 5; i++ {
		rows = append(rows, m.renderPage(base+i*16))
	}
	return strings.Join(rows, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	buf := isa.NewBuffer(m.cpu.Bus.Bytes[:], int(m.cpu.Registers.PC))
	instr := isa.Decode(buf)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		fmt.Sprintf("next: %s", instr.String()),
		spew.Sdump(instr),
	)
}

// Debug loads program into memory at start and drives an interactive
// step-through TUI over it.
func Debug(program []byte, start uint16) {
	c := New(program, start)
	_, err := tea.NewProgram(model{cpu: c, prevPC: start}).Run()
	if err != nil {
		panic(err)
	}
}
