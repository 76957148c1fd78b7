package asm

// Layout is the result of the address-assignment pass: the byte
// address of every entry in program order, plus the completed label
// table. Once built it is never written again; the encode pass reads
// it as-is.
type Layout struct {
	// Address[n] is the byte address of instrs[n]. A label marker
	// carries the address of the next real instruction.
	Address []uint32
	Labels  LabelTable
}

// Resolve walks the instruction stream in order, assigning each real
// instruction a byte address and binding each label to the address of
// the instruction that follows it. Labels are zero-width and do not
// advance the address counter.
//
// A duplicated label name is fatal to the whole unit: a colliding
// table cannot be trusted, so resolution stops at once.
func Resolve(instrs []Instruction) (layout *Layout, err error) {
	layout = &Layout{
		Address: make([]uint32, len(instrs)),
		Labels:  make(LabelTable, 16),
	}

	var address uint32
	for n, ins := range instrs {
		layout.Address[n] = address

		lbl, ok := ins.(*Label)
		if !ok {
			address += INSTRUCTION_WIDTH
			continue
		}

		if _, bound := layout.Labels[lbl.Name]; bound {
			layout = nil
			err = &ErrLine{LineNo: lbl.LineNo, Err: ErrLabelDuplicate}
			return
		}
		layout.Labels[lbl.Name] = address
	}

	return
}
