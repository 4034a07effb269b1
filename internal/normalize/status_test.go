package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		aging string
		want  string
	}{
		{"", StatusUnknown},
		{"-5", StatusUpcoming},
		{"45", StatusOverdue},
		{"10", StatusDueSoon},
		{"0", StatusDueSoon},
		{"30", StatusDueSoon},
		{"31", StatusOverdue},
		{"abc", StatusUnknown},
		{"N/A", StatusUnknown},
		{"net -3 days", StatusUpcoming},
		{"12 days", StatusDueSoon},
		{"  -1", StatusUpcoming},
		{"+40", StatusOverdue},
		{"due in 60", StatusOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.aging, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentStatus(tt.aging))
		})
	}
}

func TestPadIdentifier(t *testing.T) {
	assert.Equal(t, "0000000004", PadIdentifier("4", 10))
	assert.Equal(t, "1234567890", PadIdentifier("1234567890", 10))
	assert.Equal(t, "123456789012", PadIdentifier("123456789012", 10))
	assert.Equal(t, "4", PadIdentifier("4", 0))
	assert.Equal(t, "0000000000", PadIdentifier("", 10))
}

func TestParseAmount(t *testing.T) {
	n, err := ParseAmount("1234.50")
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, n)

	n, err = ParseAmount(" 99.00- ")
	assert.NoError(t, err)
	assert.Equal(t, -99.0, n)

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestStripZeros(t *testing.T) {
	assert.Equal(t, "4711", StripZeros("0000004711"))
	assert.Equal(t, "0", StripZeros("0000"))
	assert.Equal(t, "", StripZeros(""))
	assert.Equal(t, "AB01", StripZeros("AB01"))
}
