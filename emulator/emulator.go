// Copyright 2025, 0xd1rac

// Package emulator executes encoded cpu-n-chill program images.
package emulator

import (
	"log"

	"github.com/0xd1rac/cpu-n-chill/asm"
)

const (
	REGISTER_COUNT = 16      // Size of the register bank.
	TICK_LIMIT     = 1 << 20 // Default Run tick budget.
)

// Machine is the simulation context: a register bank, a byte-addressed
// program counter, and the loaded image.
type Machine struct {
	Verbose bool // If set, enables verbose logging.

	Register [REGISTER_COUNT]uint32 // Register bank.
	Pc       uint32                 // Byte address of the next instruction to execute.
	Image    []uint32               // Loaded machine words.

	Ticks int // Executed instruction counter.
}

// Load loads a program image and resets the machine state.
func (m *Machine) Load(prog *asm.Program) {
	m.Image = prog.Words
	m.Reset()
}

// Reset clears the register bank, the Pc, and the tick counter.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}

	clear(m.Register[:])
	m.Pc = 0
	m.Ticks = 0
}

// Step fetches, decodes, and executes a single instruction. done is
// set once the Pc walks off the end of the image. Faults carry the
// Pc of the faulting instruction.
func (m *Machine) Step() (done bool, err error) {
	defer func() {
		if err != nil {
			err = &ErrFault{Pc: m.Pc, Err: err}
		}
	}()

	if m.Pc%asm.INSTRUCTION_WIDTH != 0 {
		err = ErrPcUnaligned
		return
	}
	index := int(m.Pc / asm.INSTRUCTION_WIDTH)
	if index >= len(m.Image) {
		done = true
		return
	}

	word := m.Image[index]
	op := asm.Op(word >> 28)

	if m.Verbose {
		log.Printf("%04x: %v %08x", m.Pc, op, word)
	}

	next := int64(m.Pc) + asm.INSTRUCTION_WIDTH

	switch op {
	case asm.OP_MOV:
		rd := (word >> 16) & asm.RD_MASK
		if rd >= REGISTER_COUNT {
			err = ErrRegisterRange
			return
		}
		// The 16-bit field is sign-extended, so a negative
		// immediate survives the encode-side wraparound.
		m.Register[rd] = uint32(int32(int16(word & asm.IMM_MASK)))
	case asm.OP_ADD, asm.OP_SUB:
		rd := (word >> 16) & asm.RD_MASK
		rn := (word >> 8) & asm.RS_MASK
		rm := word & asm.RS_MASK
		if rd >= REGISTER_COUNT || rn >= REGISTER_COUNT || rm >= REGISTER_COUNT {
			err = ErrRegisterRange
			return
		}
		if op == asm.OP_ADD {
			m.Register[rd] = m.Register[rn] + m.Register[rm]
		} else {
			m.Register[rd] = m.Register[rn] - m.Register[rm]
		}
	case asm.OP_B:
		// Sign-extend the 28-bit instruction-count offset.
		offset := int32(word<<4) >> 4
		next += int64(offset) * asm.INSTRUCTION_WIDTH
	default:
		err = ErrOpcode(word)
		return
	}

	if next < 0 {
		err = ErrPcRange
		return
	}

	m.Pc = uint32(next)
	m.Ticks += 1

	return
}

// Run executes until the program ends or the tick budget is
// exhausted. The instruction set has no conditional branch, so a
// backward branch loops until the budget bounds it. A limit of 0
// uses TICK_LIMIT.
func (m *Machine) Run(limit int) error {
	if limit == 0 {
		limit = TICK_LIMIT
	}

	for done, err := m.Step(); !done; done, err = m.Step() {
		if err != nil {
			return err
		}
		if m.Ticks >= limit {
			return &ErrFault{Pc: m.Pc, Err: ErrTickLimit}
		}
	}

	return nil
}
