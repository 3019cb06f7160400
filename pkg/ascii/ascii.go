// ABOUTME: ASCII character table
// ABOUTME: Maps the 128 ASCII codes to named constants and converts to and from runes
package ascii

import (
	"strings"
	"unicode/utf8"
)

// Character is a 7-bit ASCII code. Values outside 0-127 are not valid
// characters; Invalid is the only one given a name.
type Character int8

// Invalid marks a value that has no ASCII representation
const Invalid Character = -1

// Control characters
const (
	Null Character = iota
	StartOfHeading
	StartOfText
	EndOfText
	EndOfTransmission
	Enquiry
	Acknowledge
	Bell
	Backspace
	HorizontalTab
	LineFeed // '\n'
	VerticalTab
	FormFeed
	CarriageReturn
	ShiftOut
	ShiftIn
	DataLinkEscape
	DeviceControl1
	DeviceControl2
	DeviceControl3
	DeviceControl4
	NegativeAcknowledge
	SynchronousIdle
	EndOfTransmissionBlock
	Cancel
	EndOfMedium
	Substitute
	Escape
	FileSeparator
	GroupSeparator
	RecordSeparator
	UnitSeparator
)

// Punctuation, 0x20-0x2F
const (
	Space Character = iota + 0x20
	ExclamationMark
	DoubleQuote
	NumberSign
	DollarSign
	PercentSign
	Ampersand
	SingleQuote
	OpenParenthesis
	CloseParenthesis
	Asterisk
	PlusSign
	Comma
	Hyphen
	Period
	Slash
)

// Digits and punctuation, 0x30-0x40
const (
	Digit0 Character = iota + 0x30
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Colon
	Semicolon
	LessThan
	Equals
	GreaterThan
	QuestionMark
	AtSign
)

// Uppercase letters and punctuation, 0x41-0x60
const (
	UppercaseA Character = iota + 0x41
	UppercaseB
	UppercaseC
	UppercaseD
	UppercaseE
	UppercaseF
	UppercaseG
	UppercaseH
	UppercaseI
	UppercaseJ
	UppercaseK
	UppercaseL
	UppercaseM
	UppercaseN
	UppercaseO
	UppercaseP
	UppercaseQ
	UppercaseR
	UppercaseS
	UppercaseT
	UppercaseU
	UppercaseV
	UppercaseW
	UppercaseX
	UppercaseY
	UppercaseZ
	OpenBracket
	Backslash
	CloseBracket
	Caret
	Underscore
	GraveAccent
)

// Lowercase letters and punctuation, 0x61-0x7F
const (
	LowercaseA Character = iota + 0x61
	LowercaseB
	LowercaseC
	LowercaseD
	LowercaseE
	LowercaseF
	LowercaseG
	LowercaseH
	LowercaseI
	LowercaseJ
	LowercaseK
	LowercaseL
	LowercaseM
	LowercaseN
	LowercaseO
	LowercaseP
	LowercaseQ
	LowercaseR
	LowercaseS
	LowercaseT
	LowercaseU
	LowercaseV
	LowercaseW
	LowercaseX
	LowercaseY
	LowercaseZ
	OpenBrace
	VerticalBar
	CloseBrace
	Tilde
	Delete
)

// InvalidRune is returned by Rune for Invalid
const InvalidRune = '∅'

// FromRune returns the character for r. The second result is false when
// r has no 7-bit encoding.
func FromRune(r rune) (Character, bool) {
	var buf [utf8.UTFMax]byte
	utf8.EncodeRune(buf[:], r)

	if buf[0]&0x80 != 0 {
		return Invalid, false
	}
	return Character(buf[0]), true
}

// FromByte maps a C char value onto the table. Negative values,
// including Invalid itself, are rejected.
func FromByte(b int8) (Character, bool) {
	if b < 0 {
		return Invalid, false
	}
	return Character(b), true
}

// IsValid reports whether c is in the 0-127 range
func (c Character) IsValid() bool {
	return c >= 0
}

// Rune returns the rune for c, or InvalidRune when c is not valid
func (c Character) Rune() rune {
	if c < 0 {
		return InvalidRune
	}
	return rune(c)
}

// Less orders characters by code
func (c Character) Less(o Character) bool {
	return c < o
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, with or after b
func Compare(a, b Character) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ToString joins the runes of chars
func ToString(chars []Character) string {
	var sb strings.Builder
	sb.Grow(len(chars))
	for _, c := range chars {
		sb.WriteRune(c.Rune())
	}
	return sb.String()
}

// FromString converts s to characters. It stops and returns false at the
// first rune that is not ASCII.
func FromString(s string) ([]Character, bool) {
	chars := make([]Character, 0, len(s))
	for _, r := range s {
		c, ok := FromRune(r)
		if !ok {
			return nil, false
		}
		chars = append(chars, c)
	}
	return chars, true
}
