package eval

import (
	"fmt"
	"strings"
	"unicode"
)

// Validate rejects constraint strings that reach beyond plain comparisons and
// boolean logic over decision variables: no arithmetic, no calls, no member
// access, no statement separators.
func Validate(cond string) error {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil
	}

	for _, r := range cond {
		switch r {
		case '{', '}', '[', ']', ';', ':', '?', '@', '#', '$', '\\':
			return fmt.Errorf("illegal character %q", r)
		case '.':
			return fmt.Errorf("dot access is not allowed")
		case '+', '-', '*', '/', '%':
			return fmt.Errorf("arithmetic operator %q is not allowed", string(r))
		}
	}

	if ident := callTarget(cond); ident != "" {
		return fmt.Errorf("function calls are not allowed (found %q(...))", ident)
	}
	return nil
}

// callTarget returns the identifier directly preceding an opening paren, which
// would make the paren a call rather than grouping.
func callTarget(cond string) string {
	runes := []rune(cond)
	for i, r := range runes {
		if r != '(' {
			continue
		}
		j := i - 1
		for j >= 0 && unicode.IsSpace(runes[j]) {
			j--
		}
		if j < 0 || !isIdentRune(runes[j]) {
			continue
		}
		end := j + 1
		for j >= 0 && isIdentRune(runes[j]) {
			j--
		}
		if unicode.IsDigit(runes[j+1]) {
			// A bare number before a paren is already rejected by expr.
			continue
		}
		return string(runes[j+1 : end])
	}
	return ""
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
