package util

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

func HashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

// ProspectID derives the stable id for a record: canonical URL when present,
// else the lowercased title. The same underlying opportunity must always map
// to the same id, or dedupe breaks.
func ProspectID(rawURL, title string) string {
	if u := CanonicalizeURL(rawURL); u != "" {
		return HashString("url:" + u)
	}
	return HashString("title:" + strings.ToLower(CleanText(title)))
}
