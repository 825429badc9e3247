package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// CalculateDataMD5 returns the hex MD5 digest of data
func CalculateDataMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// IsNumber reports whether s is non-empty and made only of numeric characters
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsNumber(r) }) == -1
}
