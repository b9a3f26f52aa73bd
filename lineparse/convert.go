package lineparse

import (
	"strconv"
	"strings"
)

// ToInt parses the decimal number at the start of s, after optional white
// space and sign. Text after the digits is ignored; without digits the
// result is 0. Values out of range are clamped.
func ToInt(s string) int64 {
	v, _ := strconv.ParseInt(numericPrefix(s), 10, 64)
	return v
}

// ToUInt is like ToInt but unsigned. A leading minus negates the value
// modulo 2^64, so "-1" gives the largest uint64.
func ToUInt(s string) uint64 {
	p := numericPrefix(s)
	neg := strings.HasPrefix(p, "-")
	v, _ := strconv.ParseUint(strings.TrimLeft(p, "+-"), 10, 64)
	if neg {
		v = -v
	}
	return v
}

// ToBool accepts "true" and "false" in any case; anything else is true if
// it starts with a non-zero number.
func ToBool(s string) bool {
	switch {
	case strings.EqualFold(s, "true"):
		return true
	case strings.EqualFold(s, "false"):
		return false
	}
	return ToInt(s) != 0
}

// FindString returns the index of the first item equal to s ignoring case, or -1.
func FindString(s string, items []string) int {
	for i, item := range items {
		if strings.EqualFold(s, item) {
			return i
		}
	}
	return -1
}

// FindChar returns the position of c in chars, or -1.
func FindChar(c byte, chars string) int {
	return strings.IndexByte(chars, c)
}

// IsChar reports whether c occurs in chars.
func IsChar(c byte, chars string) bool {
	return FindChar(c, chars) >= 0
}

func numericPrefix(s string) string {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return ""
	}
	return s[:j]
}
