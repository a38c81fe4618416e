// Package registers names the 32 general purpose MIPS registers.
package registers

import "strings"

const (
	ZERO = iota
	AT
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA
)

// Count is the number of architectural registers.
const Count = 32

var names = [Count]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

var byName = func() map[string]int {
	m := make(map[string]int, Count+1)
	for i, n := range names {
		m[n] = i
	}
	// s8 is the assembler alias of fp
	m["s8"] = FP
	return m
}()

// Lookup resolves a register name like "sp", "$t0" or "$31".
func Lookup(name string) (int, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, "$"))
	if n, ok := byName[name]; ok {
		return n, true
	}
	if len(name) == 0 || len(name) > 2 {
		return 0, false
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n >= Count {
		return 0, false
	}
	return n, true
}

// Name returns the conventional name of register n, or "" when n is not a register.
func Name(n int) string {
	if n < 0 || n >= Count {
		return ""
	}
	return names[n]
}
