package rle

import (
	"math"
	"strconv"
	"strings"
)

// scanRuns walks "<count><tag>" tokens in s, calling fn with the run count
// (1 when omitted) and the tag. Blanks are skipped, a count that is never
// followed by a tag is dropped, and scanning stops when fn returns false.
func scanRuns(s string, fn func(count int, tag byte) bool) {
	count, hasCount := 0, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		case c >= '0' && c <= '9':
			if count <= (math.MaxInt32-9)/10 {
				count = count*10 + int(c-'0')
			}
			hasCount = true
			continue
		}
		if !hasCount {
			count = 1
		}
		if !fn(count, c) {
			return
		}
		count, hasCount = 0, false
	}
}

// ExpandTags expands run-length encoded tags: "2b3o" becomes "bbooo"
func ExpandTags(s string) string {
	var sb strings.Builder
	scanRuns(s, func(count int, tag byte) bool {
		for range count {
			sb.WriteByte(tag)
		}
		return true
	})
	return sb.String()
}

// CompressTags run-length encodes a tag string: "abbaaa" becomes "a2b3a"
func CompressTags(s string) string {
	return strings.Join(runTokens(s), "")
}

// runTokens splits s into "<count><tag>" tokens, omitting counts of 1
func runTokens(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		j := i + 1
		for j < len(s) && s[j] == s[i] {
			j++
		}
		token := s[i : i+1]
		if j-i > 1 {
			token = strconv.Itoa(j-i) + token
		}
		tokens = append(tokens, token)
		i = j
	}
	return tokens
}
