// Package document validates Brazilian personal documents.
package document

import "strings"

// NormalizeCPF keeps only the digits of s.
func NormalizeCPF(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF checks length and both check digits. Punctuation is ignored.
func ValidCPF(s string) bool {
	d := NormalizeCPF(s)
	if len(d) != 11 {
		return false
	}
	same := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	return checkDigit(d[:9], 10) == int(d[9]-'0') && checkDigit(d[:10], 11) == int(d[10]-'0')
}

func checkDigit(digits string, weight int) int {
	sum := 0
	for _, r := range digits {
		sum += int(r-'0') * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
