package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	instrs, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Empty(instrs)

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("4", asm.Equate["WIDTH"])
}

func TestAssembler_Program(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"; compute 5 + 5, then skip the subtract",
		"MOV R0, #5",
		"ADD R1, R0, R0 ; R1 = 10",
		"B END",
		"SUB R2, R1, R0",
		"END:",
	}

	instrs, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []Instruction{
		&Mov{Rd: "R0", Imm: 5, LineNo: 2},
		&Add{Rd: "R1", Rn: "R0", Rm: "R0", LineNo: 3},
		&Branch{Target: "END", LineNo: 4},
		&Sub{Rd: "R2", Rn: "R1", Rm: "R0", LineNo: 5},
		&Label{Name: "END", LineNo: 6},
	}
	assert.Equal(expected, instrs)
}

func TestAssembler_LabelledLine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	instrs, err := asm.Parse(strings.NewReader("HERE: THERE: mov r3, #1"))
	assert.NoError(err)

	expected := []Instruction{
		&Label{Name: "HERE", LineNo: 1},
		&Label{Name: "THERE", LineNo: 1},
		&Mov{Rd: "r3", Imm: 1, LineNo: 1},
	}
	assert.Equal(expected, instrs)
}

func TestAssembler_Numbers(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"MOV R0, #10",
		"MOV R1, #0x10",
		"MOV R2, #-5",
	}

	instrs, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(int64(10), instrs[0].(*Mov).Imm)
	assert.Equal(int64(16), instrs[1].(*Mov).Imm)
	assert.Equal(int64(-5), instrs[2].(*Mov).Imm)
}

func TestAssembler_Equate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ COUNT #5",
		".equ DST R4",
		"MOV DST, COUNT",
	}

	instrs, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []Instruction{
		&Mov{Rd: "R4", Imm: 5, LineNo: 3},
	}
	assert.Equal(expected, instrs)
}

func TestAssembler_EquateDuplicate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ COUNT #5",
		".equ COUNT #6",
	}

	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrEquateDuplicate)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(2, syntax.LineNo)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "#8")

	instrs, err := asm.Parse(strings.NewReader("MOV R0, BASE"))
	assert.NoError(err)
	assert.Equal(int64(8), instrs[0].(*Mov).Imm)
}

func TestAssembler_ParenEval(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ BASE 8",
		"MOV R0, #$(2 + 3)",
		"MOV R1, #$(BASE * 2)",
		"MOV R2, #$(1 - 2)",
	}

	instrs, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(int64(5), instrs[0].(*Mov).Imm)
	assert.Equal(int64(16), instrs[1].(*Mov).Imm)
	assert.Equal(int64(-1), instrs[2].(*Mov).Imm)
}

func TestAssembler_ParenEvalInvalid(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("MOV R0, #$(nonsense!)"))
	assert.Error(err)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(1, syntax.LineNo)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		line string
		want error
	}{
		{"FROB R0, R1", ErrInstructionInvalid},
		{"MOV R0", ErrOperandMissing},
		{"MOV R0, #1, #2", ErrOperandExtra},
		{"ADD R0, R1", ErrOperandMissing},
		{"B", ErrOperandMissing},
		{"B HERE, THERE", ErrOperandExtra},
		{".equ TOO MANY WORDS", ErrEquateSyntax},
	}

	for _, tc := range cases {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(tc.line))
		assert.ErrorIs(err, tc.want, "line %q", tc.line)
	}
}

func TestAssembler_BadImmediate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("MOV R0, five"))
	var number ErrParseNumber
	assert.ErrorAs(err, &number)

	asm = &Assembler{}
	_, err = asm.Parse(strings.NewReader("MOV R0, #"))
	assert.ErrorAs(err, &number)
}

func TestAssembler_Assemble(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"MOV R0, #5",
		"ADD R1, R0, R0",
		"B END",
		"SUB R2, R1, R0",
		"END:",
	}

	prog, errs := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.Empty(errs)
	if prog == nil {
		t.Fatal("no program")
	}

	expected := []uint32{0x10000005, 0x20010000, 0x40000001, 0x30020100}
	assert.Equal(expected, prog.Words)
}

func TestAssembler_AssembleErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"MOV RX, #5",
		"B NOWHERE",
	}

	prog, errs := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.Nil(prog)
	assert.Len(errs, 2)
}
