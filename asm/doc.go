// Package asm implements the two-pass assembler for the cpu-n-chill
// machine.
//
// The instruction set is small and fixed: MOV, ADD, SUB, and the
// unconditional branch B, each encoding to a single 32-bit word.
// Assembly runs in two passes: the first assigns every instruction
// its byte address and binds every label, the second packs operands
// into machine words against the completed label table. A forward
// branch may reference a label defined later in the source, so the
// second pass never starts before the first has finished.
//
// The assembler also provides labels, .equ named constants, and
// compile-time $() expression evaluation.
package asm
