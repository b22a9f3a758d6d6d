package util

import "unicode"

//
// Rune range helper functions
//

type RuneRange struct {
	min int
	max int
}

func IsRuneInRange(char rune, ranges ...RuneRange) bool {
	intChar := int(char)
	for _, ran := range ranges {
		if intChar >= ran.min && intChar <= ran.max {
			return true
		}
	}
	return false
}

func IsDigit(char rune) bool { return IsRuneInRange(char, RuneRange{min: 48, max: 57}) }

func IsSign(char rune) bool { return char == '+' || char == '-' }

func IsIdentChar(char rune) bool {
	return IsRuneInRange(
		char,
		RuneRange{min: 48, max: 57},  // digits
		RuneRange{min: 65, max: 90},  // capital letters
		RuneRange{min: 97, max: 122}, // lowercase letters
		RuneRange{min: 95, max: 95},  // underscore
	)
}

// IsDelimiter reports whether `char` terminates a number or a lexeme.
func IsDelimiter(char rune) bool {
	switch char {
	case '(', ')', '#', '\'':
		return true
	default:
		return unicode.IsSpace(char)
	}
}

// IsUnexpected reports characters which can never start a token.
func IsUnexpected(char rune) bool {
	return char == unicode.ReplacementChar || (!unicode.IsSpace(char) && !unicode.IsPrint(char))
}

func IsIdent(test string) bool {
	if len(test) == 0 {
		return false
	}

	if IsDigit(rune(test[0])) {
		return false
	}

	for _, char := range test {
		if !IsIdentChar(char) {
			return false
		}
	}

	return true
}
