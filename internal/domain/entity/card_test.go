package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{name: "visa test number", number: "4242424242424242", want: true},
		{name: "spaces are ignored", number: "4242 4242 4242 4242", want: true},
		{name: "amex test number", number: "378282246310005", want: true},
		{name: "luhn failure", number: "4242424242424241", want: false},
		{name: "too short", number: "42424242", want: false},
		{name: "letters", number: "4242abcd42424242", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCardNumber(tt.number))
		})
	}
}

func TestCardType(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{number: "4242424242424242", want: "Visa"},
		{number: "5555555555554444", want: "MasterCard"},
		{number: "378282246310005", want: "American Express"},
		{number: "6011111111111117", want: "Discover"},
		{number: "3530111333300000", want: "JCB"},
		{number: "6200000000000005", want: "UnionPay"},
		{number: "9999999999999999", want: "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CardType(tt.number), tt.number)
	}
}

func TestValidCardExpiry(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, ValidCardExpiry("12/30", now))
	assert.True(t, ValidCardExpiry("09/26", now)) // expires end of current month
	assert.False(t, ValidCardExpiry("08/26", now))
	assert.False(t, ValidCardExpiry("12/20", now))
	assert.False(t, ValidCardExpiry("13/30", now))
	assert.False(t, ValidCardExpiry("1230", now))
	assert.False(t, ValidCardExpiry("aa/bb", now))
}

func TestValidCVV(t *testing.T) {
	assert.True(t, ValidCVV("123", "Visa"))
	assert.False(t, ValidCVV("1234", "Visa"))
	assert.True(t, ValidCVV("1234", "American Express"))
	assert.False(t, ValidCVV("123", "American Express"))
	assert.False(t, ValidCVV("12a", "Visa"))
}
