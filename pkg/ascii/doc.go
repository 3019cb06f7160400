// ABOUTME: ASCII character table package
// ABOUTME: Named 7-bit codes with rune and C char conversions
// Package ascii provides a closed table of the 128 ASCII codes.
//
// Each code is a Character constant whose value is its ASCII byte. Values
// that cannot be represented (non-ASCII runes, negative C chars) come back
// as Invalid with ok == false; they are not errors.
//
// Example:
//
//	c, ok := ascii.FromRune('A')
//	if ok {
//	    fmt.Println(c, c.Rune()) // UppercaseA 65
//	}
package ascii
