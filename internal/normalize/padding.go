package normalize

import "strings"

// PadIdentifier left-pads id with zeros to width. Identifiers already at or
// beyond width, and a width of zero, leave id unchanged.
func PadIdentifier(id string, width int) string {
	if width <= 0 || len(id) >= width {
		return id
	}
	return strings.Repeat("0", width-len(id)) + id
}
