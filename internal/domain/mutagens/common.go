// Package mutagens holds the alteration tables of the mutation engine. Every
// function is pure: it maps an operator or literal to the variants a mutant
// may replace it with, never including the original.
package mutagens

import "github.com/dop251/goja/token"

// alternatives returns the table entry for op with op itself filtered out.
func alternatives(table map[token.Token][]token.Token, op token.Token) []token.Token {
	var out []token.Token

	for _, alt := range table[op] {
		if alt != op {
			out = append(out, alt)
		}
	}

	return out
}
