// Package cpu implements the varch virtual machine.
//
// The machine consists of a byte addressable memory of up to 65535 bytes,
// sixteen 16-bit registers (r0-r15), sixteen flags, and a program counter.
// Instructions are a single opcode byte followed by register index bytes
// and big-endian 16-bit address or immediate words.
//
// By convention r13 (sp) is the stack pointer, initialized to the memory
// size, and r11 is the link register written by CALL and read by RET.
// Flag 5 is the running flag, cleared by HLT.
package cpu
