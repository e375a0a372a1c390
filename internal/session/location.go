package session

import (
	"regexp"
	"strings"
)

// roomRe accepts digits followed by one Latin or Cyrillic letter, e.g. "429Г".
var roomRe = regexp.MustCompile(`^\d+[A-Za-zА-Яа-я]$`)

// NormalizeRoom validates the room code and returns its canonical uppercase
// form. The second result is false when the input does not match the pattern.
func NormalizeRoom(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if !roomRe.MatchString(s) {
		return "", false
	}
	return strings.ToUpper(s), true
}

// LooksLikeRoom reports whether the value matches the room pattern. It is
// used by the maintenance repair to recognize room codes stored where cart
// data belongs.
func LooksLikeRoom(value string) bool {
	return roomRe.MatchString(strings.TrimSpace(value))
}
