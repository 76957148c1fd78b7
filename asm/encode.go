package asm

// Encode runs both assembler passes over a parsed instruction stream.
//
// On success it returns the encoded program: one 32-bit word per real
// instruction, in source order. On failure it returns a non-empty
// list of errors instead, each tagged with its source line.
//
// Encoding is best-effort: a bad register or an unresolved branch
// fails only its own instruction, and the rest of the stream is still
// encoded so every error surfaces in one run. Resolution failures are
// different — a duplicated label poisons the whole table, so they
// yield exactly one error and nothing is encoded.
func Encode(instrs []Instruction) (prog *Program, errs []error) {
	layout, err := Resolve(instrs)
	if err != nil {
		errs = []error{err}
		return
	}

	words := make([]uint32, 0, len(instrs))
	for n, ins := range instrs {
		if _, marker := ins.(*Label); marker {
			continue
		}

		word, err := ins.Encode(layout.Labels, layout.Address[n])
		if err != nil {
			errs = append(errs, &ErrLine{LineNo: ins.Line(), Err: err})
			continue
		}
		words = append(words, word)
	}

	if len(errs) != 0 {
		return
	}

	prog = &Program{Words: words}
	return
}
