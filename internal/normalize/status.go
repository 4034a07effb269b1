package normalize

import (
	"regexp"
	"strconv"
)

// Payment status labels.
const (
	StatusUnknown  = "Unknown"
	StatusUpcoming = "Upcoming"
	StatusOverdue  = "Overdue"
	StatusDueSoon  = "Due Soon"
)

const overdueAfterDays = 30

var embeddedInteger = regexp.MustCompile(`-?\d+`)

// derivations are the named computed fields a mapping can reference.
var derivations = map[string]func(string) any{
	"payment_status": func(aging string) any { return PaymentStatus(aging) },
}

// HasDerivation reports whether name is a known derivation.
func HasDerivation(name string) bool {
	_, ok := derivations[name]
	return ok
}

// PaymentStatus classifies an aging value in days. A leading integer is read
// the way a lenient number parser would ("12 days" is 12); failing that the
// first signed integer anywhere in the text is used.
func PaymentStatus(aging string) string {
	if aging == "" {
		return StatusUnknown
	}
	days, ok := leadingInteger(aging)
	if !ok {
		m := embeddedInteger.FindString(aging)
		if m == "" {
			return StatusUnknown
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return StatusUnknown
		}
		days = n
	}
	switch {
	case days < 0:
		return StatusUpcoming
	case days > overdueAfterDays:
		return StatusOverdue
	default:
		return StatusDueSoon
	}
}

// leadingInteger parses optional whitespace, an optional sign and at least
// one digit from the start of s, ignoring whatever follows.
func leadingInteger(s string) (int, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
