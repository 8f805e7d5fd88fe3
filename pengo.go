package pengo

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications to define them.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    TokType = Float       // identifier for this kind of tokens (application specific)
//    Lexeme  = "3.1316"    // lexeme how it appeared in the input stream
//    Value   = 3.1416      // is a float64 value, if the scanner converted it
//    Pos     = 3:17        // occured in line 3, column 17
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Pos() Position
}

// --- Positions --------------------------------------------------------

// Position is a source location. Lines and columns start at 1; the zero value
// denotes an unknown position.
type Position struct {
	Line   int
	Column int
}

// At is a shortcut for creating a position.
func At(line, col int) Position {
	return Position{Line: line, Column: col}
}

// IsNull is true for unknown positions.
func (p Position) IsNull() bool {
	return p == Position{}
}

// Before is true if p is located in front of other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || p.Line == other.Line && p.Column < other.Column
}

func (p Position) String() string {
	if p.IsNull() {
		return "(?:?)"
	}
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}
