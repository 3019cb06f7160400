// ABOUTME: Symbolic names for ASCII characters
// ABOUTME: Backs Character.String so codes print by name
package ascii

var names = [128]string{
	"Null", "StartOfHeading", "StartOfText", "EndOfText",
	"EndOfTransmission", "Enquiry", "Acknowledge", "Bell",
	"Backspace", "HorizontalTab", "LineFeed", "VerticalTab",
	"FormFeed", "CarriageReturn", "ShiftOut", "ShiftIn",
	"DataLinkEscape", "DeviceControl1", "DeviceControl2", "DeviceControl3",
	"DeviceControl4", "NegativeAcknowledge", "SynchronousIdle", "EndOfTransmissionBlock",
	"Cancel", "EndOfMedium", "Substitute", "Escape",
	"FileSeparator", "GroupSeparator", "RecordSeparator", "UnitSeparator",

	"Space", "ExclamationMark", "DoubleQuote", "NumberSign",
	"DollarSign", "PercentSign", "Ampersand", "SingleQuote",
	"OpenParenthesis", "CloseParenthesis", "Asterisk", "PlusSign",
	"Comma", "Hyphen", "Period", "Slash",

	"Digit0", "Digit1", "Digit2", "Digit3", "Digit4",
	"Digit5", "Digit6", "Digit7", "Digit8", "Digit9",
	"Colon", "Semicolon", "LessThan", "Equals", "GreaterThan", "QuestionMark",

	"AtSign",
	"UppercaseA", "UppercaseB", "UppercaseC", "UppercaseD", "UppercaseE",
	"UppercaseF", "UppercaseG", "UppercaseH", "UppercaseI", "UppercaseJ",
	"UppercaseK", "UppercaseL", "UppercaseM", "UppercaseN", "UppercaseO",
	"UppercaseP", "UppercaseQ", "UppercaseR", "UppercaseS", "UppercaseT",
	"UppercaseU", "UppercaseV", "UppercaseW", "UppercaseX", "UppercaseY",
	"UppercaseZ",
	"OpenBracket", "Backslash", "CloseBracket", "Caret", "Underscore",

	"GraveAccent",
	"LowercaseA", "LowercaseB", "LowercaseC", "LowercaseD", "LowercaseE",
	"LowercaseF", "LowercaseG", "LowercaseH", "LowercaseI", "LowercaseJ",
	"LowercaseK", "LowercaseL", "LowercaseM", "LowercaseN", "LowercaseO",
	"LowercaseP", "LowercaseQ", "LowercaseR", "LowercaseS", "LowercaseT",
	"LowercaseU", "LowercaseV", "LowercaseW", "LowercaseX", "LowercaseY",
	"LowercaseZ",
	"OpenBrace", "VerticalBar", "CloseBrace", "Tilde", "Delete",
}

// String returns the constant name of c
func (c Character) String() string {
	if c < 0 {
		return "Invalid"
	}
	return names[c]
}
