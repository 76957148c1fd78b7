package asm

import (
	"strings"
	"testing"
)

// FuzzParse feeds arbitrary source text through the full pipeline;
// the assembler must reject bad input with errors, never a panic.
func FuzzParse(f *testing.F) {
	f.Add("MOV R0, #5\nADD R1, R0, R0\nB END\nSUB R2, R1, R0\nEND:")
	f.Add("LOOP: B LOOP ; forever")
	f.Add(".equ COUNT #5\nMOV R0, COUNT")
	f.Add("MOV R0, #$(2 + 3)")
	f.Add("HERE: THERE:")
	f.Add("MOV R0, #-32768")
	f.Add(":::")
	f.Add("\x00\xff")

	f.Fuzz(func(t *testing.T, source string) {
		asm := &Assembler{}

		instrs, err := asm.Parse(strings.NewReader(source))
		if err != nil {
			if len(instrs) != 0 {
				t.Errorf("instructions returned alongside error %v", err)
			}
			return
		}

		prog, errs := Encode(instrs)
		if prog != nil && len(errs) != 0 {
			t.Errorf("program returned alongside errors %v", errs)
		}
		if prog == nil && len(errs) == 0 && len(instrs) != 0 {
			hasReal := false
			for _, ins := range instrs {
				if _, marker := ins.(*Label); !marker {
					hasReal = true
				}
			}
			if hasReal {
				t.Error("no program and no errors")
			}
		}
	})
}
