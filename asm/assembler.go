// Copyright 2025, 0xd1rac

package asm

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/japanoise/numparse"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"WIDTH":  strconv.Itoa(INSTRUCTION_WIDTH),
}

var (
	labelPattern       = regexp.MustCompile(`^(\w+):`)
	instructionPattern = regexp.MustCompile(`^\s*(\w+)(.*)$`)
	parenPattern       = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler parses assembly source into an instruction stream and
// drives the two encoding passes over it.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate,
// visible from the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// numberOf returns the numeric value of a simple word. A leading '#'
// immediate marker is tolerated, as is a leading '-' sign.
func numberOf(word string) (value int64, err error) {
	text := strings.TrimPrefix(word, "#")

	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}
	if len(text) == 0 {
		err = ErrParseNumber(word)
		return
	}

	uval, perr := numparse.UNumParse(text)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int64(uval)
	if negative {
		value = -value
	}

	return
}

// immediateValue parses an immediate operand of the form
// "#<number>".
func (asm *Assembler) immediateValue(word string) (value int64, err error) {
	if !strings.HasPrefix(word, "#") {
		err = ErrParseNumber(word)
		return
	}

	return numberOf(word)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, verr := numberOf(str)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

// splitOperands splits the operand tail of an instruction on commas
// and substitutes equates per operand.
func (asm *Assembler) splitOperands(rest string) (operands []string) {
	rest = strings.TrimSpace(rest)
	if len(rest) == 0 {
		return
	}

	for _, word := range strings.Split(rest, ",") {
		word = strings.TrimSpace(word)
		if equate, ok := asm.Equate[word]; ok {
			word = equate
		}
		operands = append(operands, word)
	}

	return
}

// parseLine parses a single source line into zero or more
// instructions: any number of label markers, optionally followed by
// one instruction.
func (asm *Assembler) parseLine(line string, lineno int) (instrs []Instruction, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line = parenPattern.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	if len(strings.TrimSpace(line)) == 0 {
		return
	}

	// .equ CONST VALUE
	fields := strings.Fields(line)
	if fields[0] == ".equ" {
		if len(fields) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[fields[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[fields[1]] = fields[2]
		return
	}

	line = strings.TrimSpace(line)
	for {
		match := labelPattern.FindStringSubmatch(line)
		if match == nil {
			break
		}
		instrs = append(instrs, &Label{Name: match[1], LineNo: lineno})
		line = strings.TrimSpace(line[len(match[0]):])
		if len(line) == 0 {
			return
		}
	}

	match := instructionPattern.FindStringSubmatch(line)
	if match == nil {
		err = ErrInstructionInvalid
		return
	}

	ins, err := asm.parseInstruction(match[1], asm.splitOperands(match[2]), lineno)
	if err != nil {
		return
	}
	instrs = append(instrs, ins)

	return
}

// parseInstruction builds one instruction variant from a mnemonic and
// its operand list. Mnemonics are case-insensitive.
func (asm *Assembler) parseInstruction(mnemonic string, operands []string, lineno int) (ins Instruction, err error) {
	need := func(count int) error {
		if len(operands) < count {
			return ErrOperandMissing
		}
		if len(operands) > count {
			return ErrOperandExtra
		}
		return nil
	}

	switch strings.ToUpper(mnemonic) {
	case "MOV":
		if err = need(2); err != nil {
			return
		}
		var imm int64
		imm, err = asm.immediateValue(operands[1])
		if err != nil {
			return
		}
		ins = &Mov{Rd: operands[0], Imm: imm, LineNo: lineno}
	case "ADD":
		if err = need(3); err != nil {
			return
		}
		ins = &Add{Rd: operands[0], Rn: operands[1], Rm: operands[2], LineNo: lineno}
	case "SUB":
		if err = need(3); err != nil {
			return
		}
		ins = &Sub{Rd: operands[0], Rn: operands[1], Rm: operands[2], LineNo: lineno}
	case "B":
		if err = need(1); err != nil {
			return
		}
		ins = &Branch{Target: operands[0], LineNo: lineno}
	default:
		err = ErrInstructionInvalid
	}

	return
}

// Parse parses an input stream into an instruction stream. Parse
// failures are fatal and carry the offending line.
func (asm *Assembler) Parse(input io.Reader) (instrs []Instruction, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			instrs = nil
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var parsed []Instruction
		parsed, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		instrs = append(instrs, parsed...)
	}
	err = scanner.Err()

	return
}

// Assemble parses an input stream and encodes it into a program.
// Parse failures surface as a single error; encode failures are
// collected per instruction.
func (asm *Assembler) Assemble(input io.Reader) (prog *Program, errs []error) {
	instrs, err := asm.Parse(input)
	if err != nil {
		errs = []error{err}
		return
	}

	return Encode(instrs)
}
