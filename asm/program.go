package asm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
)

// Program is an encoded machine-code image: one 32-bit word per real
// instruction, in source order.
type Program struct {
	Words []uint32
}

// Listing yields each word with its byte address, in program order.
func (prog *Program) Listing() iter.Seq2[uint32, uint32] {
	return func(yield func(addr uint32, word uint32) bool) {
		for n, word := range prog.Words {
			if !yield(uint32(n)*INSTRUCTION_WIDTH, word) {
				return
			}
		}
	}
}

// Binary returns the little-endian byte image of the program.
func (prog *Program) Binary() (image []byte) {
	image = make([]byte, 0, len(prog.Words)*INSTRUCTION_WIDTH)
	for _, word := range prog.Words {
		image = binary.LittleEndian.AppendUint32(image, word)
	}

	return
}

// WriteHex writes the program as text, one zero-padded hex word per
// line.
func (prog *Program) WriteHex(w io.Writer) (err error) {
	out := bufio.NewWriter(w)
	for _, word := range prog.Words {
		_, err = fmt.Fprintf(out, "%08x\n", word)
		if err != nil {
			return
		}
	}
	err = out.Flush()

	return
}
