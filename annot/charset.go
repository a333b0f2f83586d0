package annot

// The intermediate form of a record (values with prefixes stripped, joined by
// ';' inside a category and ',' between categories) uses only these fifteen
// characters, so each fits a 4-bit code and two characters pack into a byte.
// Code 0 doubles as the padding marker for an odd-length tail.

const padCode = 0

// charToCode maps an intermediate-form character to its 4-bit code, or -1 for
// characters that cannot appear in a well-formed record.
var charToCode = [256]int8{}

// codeToChar maps a 4-bit code back to its character; index 0 is the padding
// marker and never decodes to output.
var codeToChar = [15]byte{'$', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '-', '.', ',', ';'}

func init() {
	for i := range charToCode {
		charToCode[i] = -1
	}
	for code, c := range codeToChar {
		charToCode[c] = int8(code)
	}
}
