package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOrderNumber(t *testing.T) {
	tests := map[string]string{
		"":        "OS001",
		"OS001":   "OS002",
		"OS009":   "OS010",
		"OS999":   "OS1000",
		"OS0042":  "OS043",
		"avulsa":  "OS001",
		"X-OS12-": "OS001",
		"VIP":     "OS001",
	}
	for last, want := range tests {
		assert.Equal(t, want, NextOrderNumber(last), "last %q", last)
	}
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11987654321", OnlyDigits("(11) 98765-4321"))
	assert.Equal(t, "12345678900", OnlyDigits("123.456.789-00"))
	assert.Equal(t, "", OnlyDigits("n/a"))
}

func TestOrderSequence(t *testing.T) {
	n, ok := OrderSequence("OS042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	for _, number := range []string{"", "VIP", "OS", "os001", "XOS12", "OS12A"} {
		_, ok := OrderSequence(number)
		assert.False(t, ok, number)
	}
}
