package agent

import "regexp"

// reTrackingNumber matches a run of eight or more ASCII digits.
var reTrackingNumber = regexp.MustCompile(`\d{8,}`)

// ExtractTrackingNumber returns the first tracking-number-like token in text.
// ok is false when text holds no such token.
func ExtractTrackingNumber(text string) (number string, ok bool) {
	number = reTrackingNumber.FindString(text)
	return number, number != ""
}
