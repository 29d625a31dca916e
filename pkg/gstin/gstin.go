// Package gstin validates Indian GST identification numbers.
//
// Layout (15 characters):
//
//	SS PPPPPPPPPP E Z C
//	│  │          │ │ └─ check character (mod 36)
//	│  │          │ └─── "Z" by default
//	│  │          └───── entity number within the PAN (1-9, A-Z)
//	│  └──────────────── PAN of the holder (AAAAA9999A)
//	└─────────────────── state code (01-38, 97 other territory, 99 centre)
package gstin

import (
	"fmt"
	"strings"
)

const (
	length  = 15
	charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Normalize upper-cases and strips spaces so "27aapfu0939f1zv " validates.
func Normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// Validate checks the structure and the check character of a GSTIN.
func Validate(raw string) error {
	g := Normalize(raw)
	if len(g) != length {
		return fmt.Errorf("gstin: must have %d characters, got %d", length, len(g))
	}
	if !isDigit(g[0]) || !isDigit(g[1]) {
		return fmt.Errorf("gstin: state code %q is not numeric", g[:2])
	}
	state := int(g[0]-'0')*10 + int(g[1]-'0')
	if !validState(state) {
		return fmt.Errorf("gstin: unknown state code %02d", state)
	}
	if err := validatePAN(g[2:12]); err != nil {
		return err
	}
	if g[12] == '0' || strings.IndexByte(charset, g[12]) < 0 {
		return fmt.Errorf("gstin: invalid entity number %q", g[12])
	}
	if g[13] != 'Z' {
		return fmt.Errorf("gstin: 14th character must be Z, got %q", g[13])
	}
	expected, err := CheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("gstin: invalid check character: expected %c, got %c", expected, g[14])
	}
	return nil
}

// CheckChar computes the check character for the first 14 characters.
// Odd positions (1-based) weigh 1, even positions weigh 2; each product
// contributes quotient + remainder by 36.
func CheckChar(first14 string) (byte, error) {
	if len(first14) != length-1 {
		return 0, fmt.Errorf("gstin: need %d characters to compute the check character, got %d", length-1, len(first14))
	}
	var sum int
	for i := 0; i < len(first14); i++ {
		v := strings.IndexByte(charset, first14[i])
		if v < 0 {
			return 0, fmt.Errorf("gstin: invalid character %q", first14[i])
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return charset[(36-sum%36)%36], nil
}

func validatePAN(pan string) error {
	for i := 0; i < 5; i++ {
		if !isLetter(pan[i]) {
			return fmt.Errorf("gstin: PAN %q is malformed", pan)
		}
	}
	for i := 5; i < 9; i++ {
		if !isDigit(pan[i]) {
			return fmt.Errorf("gstin: PAN %q is malformed", pan)
		}
	}
	if !isLetter(pan[9]) {
		return fmt.Errorf("gstin: PAN %q is malformed", pan)
	}
	return nil
}

func validState(code int) bool {
	return (code >= 1 && code <= 38) || code == 97 || code == 99
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return b >= 'A' && b <= 'Z' }
