package asm

import (
	"regexp"
	"strconv"
)

// Op identifies the instruction kind held in bits [31:28] of a word.
type Op uint32

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_MOV = Op(1) // MOV
	OP_ADD = Op(2) // ADD
	OP_SUB = Op(3) // SUB
	OP_B   = Op(4) // B
)

const (
	INSTRUCTION_WIDTH = 4 // Bytes per encoded instruction.

	RD_MASK     = uint32(0xFFF)       // Destination register field, bits [27:16].
	RS_MASK     = uint32(0xFF)        // Source register fields, 8 bits each.
	IMM_MASK    = uint32(0xFFFF)      // Immediate field, bits [15:0].
	OFFSET_MASK = uint32(0x0FFF_FFFF) // Branch offset field, bits [27:0].
)

// LabelTable maps label names to absolute byte addresses. It is built
// once per assembly unit by Resolve and is read-only afterwards.
type LabelTable map[string]uint32

// Instruction is one entry of a parsed assembly unit. The variant set
// is closed: Mov, Add, Sub, Branch, and the zero-width Label marker.
//
// Encode is a pure function of its receiver and arguments; once the
// label table is frozen it is safe to call concurrently.
type Instruction interface {
	// Encode packs the instruction into its 32-bit machine word.
	// addr is the byte address of the instruction itself; labels
	// must be the completed table from Resolve.
	Encode(labels LabelTable, addr uint32) (word uint32, err error)
	// Line returns the source line this instruction came from.
	Line() int

	instruction()
}

var registerPattern = regexp.MustCompile(`^[Rr](\d+)$`)

// registerNumber parses the numeric part of an "R<number>" register
// name.
func registerNumber(name string) (reg uint32, err error) {
	match := registerPattern.FindStringSubmatch(name)
	if match == nil {
		err = ErrRegisterInvalid(name)
		return
	}

	v64, perr := strconv.ParseUint(match[1], 10, 32)
	if perr != nil {
		err = ErrRegisterInvalid(name)
		return
	}

	reg = uint32(v64)
	return
}

// Mov is "MOV Rd, #imm".
//
// Encoding:
//   - bits [31:28] = 1
//   - bits [27:16] = destination register number
//   - bits [15:0]  = immediate value, low 16 bits
type Mov struct {
	Rd     string // Destination register name, "R<number>".
	Imm    int64  // Immediate value; the field keeps the low 16 bits.
	LineNo int
}

func (ins *Mov) Encode(labels LabelTable, addr uint32) (word uint32, err error) {
	rd, err := registerNumber(ins.Rd)
	if err != nil {
		return
	}

	// Out-of-range immediates wrap; only the low 16 bits survive.
	word = uint32(OP_MOV)<<28 | (rd&RD_MASK)<<16 | uint32(ins.Imm)&IMM_MASK
	return
}

func (ins *Mov) Line() int { return ins.LineNo }

func (ins *Mov) instruction() {}

// Add is "ADD Rd, Rn, Rm".
//
// Encoding:
//   - bits [31:28] = 2
//   - bits [27:16] = destination register number
//   - bits [15:8]  = first source register
//   - bits [7:0]   = second source register
type Add struct {
	Rd, Rn, Rm string
	LineNo     int
}

func (ins *Add) Encode(labels LabelTable, addr uint32) (word uint32, err error) {
	return encodeArith(OP_ADD, ins.Rd, ins.Rn, ins.Rm)
}

func (ins *Add) Line() int { return ins.LineNo }

func (ins *Add) instruction() {}

// Sub is "SUB Rd, Rn, Rm". Same layout as Add, opcode 3.
type Sub struct {
	Rd, Rn, Rm string
	LineNo     int
}

func (ins *Sub) Encode(labels LabelTable, addr uint32) (word uint32, err error) {
	return encodeArith(OP_SUB, ins.Rd, ins.Rn, ins.Rm)
}

func (ins *Sub) Line() int { return ins.LineNo }

func (ins *Sub) instruction() {}

// encodeArith packs the shared ADD/SUB three-register layout.
// Source registers above 255 truncate to their low 8 bits.
func encodeArith(op Op, rd, rn, rm string) (word uint32, err error) {
	var d, n, m uint32

	if d, err = registerNumber(rd); err != nil {
		return
	}
	if n, err = registerNumber(rn); err != nil {
		return
	}
	if m, err = registerNumber(rm); err != nil {
		return
	}

	word = uint32(op)<<28 | (d&RD_MASK)<<16 | (n&RS_MASK)<<8 | m&RS_MASK
	return
}

// Branch is "B label". The target address is not known at
// construction time; it is resolved from the label table at encode
// time.
//
// Encoding:
//   - bits [31:28] = 4
//   - bits [27:0]  = offset in whole instructions, relative to the
//     instruction following the branch, two's complement
type Branch struct {
	Target string
	LineNo int
}

func (ins *Branch) Encode(labels LabelTable, addr uint32) (word uint32, err error) {
	target, ok := labels[ins.Target]
	if !ok {
		err = ErrLabelMissing(ins.Target)
		return
	}

	// The fixed-width layout keeps every address word-aligned, so
	// this division is always exact; an unaligned target would
	// truncate here instead of failing.
	offset := (int64(target) - int64(addr) - INSTRUCTION_WIDTH) / INSTRUCTION_WIDTH

	word = uint32(OP_B)<<28 | uint32(offset)&OFFSET_MASK
	return
}

func (ins *Branch) Line() int { return ins.LineNo }

func (ins *Branch) instruction() {}

// Label marks a name bound to the address of the next real
// instruction. It is zero-width: it occupies no address space and
// emits no machine word.
type Label struct {
	Name   string
	LineNo int
}

// Encode of a label marker is a no-op; the encode pass skips markers.
func (ins *Label) Encode(labels LabelTable, addr uint32) (word uint32, err error) {
	return
}

func (ins *Label) Line() int { return ins.LineNo }

func (ins *Label) instruction() {}
