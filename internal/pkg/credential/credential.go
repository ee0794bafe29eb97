// Package credential derives employee login IDs and one-time system passwords.
package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*"
	allChars     = upperChars + lowerChars + digitChars + specialChars

	// DefaultPasswordLength is the length of passwords issued to new employees.
	DefaultPasswordLength = 12
	minPasswordLength     = 4
)

// SplitName returns the first token of fullName and the remaining tokens joined by a
// space. A single-token name repeats the first name as the last name.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	if len(parts) == 1 {
		return first, first
	}
	return first, strings.Join(parts[1:], " ")
}

// CompanyInitials upper-cases the first letter of every word and fixes the result to
// two characters, padding with X.
func CompanyInitials(company string) string {
	var b strings.Builder
	for _, word := range strings.Fields(company) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteString(strings.ToUpper(string(r)))
	}
	return fixWidth(b.String(), 2)
}

// NamePart combines the first two letters of the first and last name, upper-cased and
// padded with X to four characters.
func NamePart(fullName string) string {
	first, last := SplitName(fullName)
	return fixWidth(prefix(first, 2)+prefix(last, 2), 4)
}

// MaxSerial is the largest serial that fits the 4-digit field of a login ID.
const MaxSerial = 9999

// LoginID builds <company initials><name part><year><serial>, e.g. DXJODO20250001.
func LoginID(company, fullName string, year, serial int) string {
	return fmt.Sprintf("%s%s%04d%04d", CompanyInitials(company), NamePart(fullName), year, serial)
}

func prefix(s string, n int) string {
	runes := []rune(strings.ToUpper(s))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func fixWidth(s string, n int) string {
	runes := []rune(s)
	if len(runes) >= n {
		return string(runes[:n])
	}
	return s + strings.Repeat("X", n-len(runes))
}

// SystemPassword returns a random password of the given length containing at least one
// upper-case letter, lower-case letter, digit and special character.
func SystemPassword(length int) (string, error) {
	if length < minPasswordLength {
		length = minPasswordLength
	}

	buf := make([]byte, 0, length)
	for _, set := range []string{upperChars, lowerChars, digitChars, specialChars} {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < length {
		c, err := pick(allChars)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func pick(set string) (byte, error) {
	i, err := randInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("generate random number: %w", err)
	}
	return int(v.Int64()), nil
}
