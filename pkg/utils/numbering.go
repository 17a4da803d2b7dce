package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// OrderNumberPrefix starts every service order number: OS001, OS002, ...
const OrderNumberPrefix = "OS"

// OrderNumberSQLPattern matches generated-style numbers in a postgres regex.
const OrderNumberSQLPattern = `^OS[0-9]+$`

var orderNumberPattern = regexp.MustCompile(`^OS(\d+)$`)

// FormatOrderNumber renders n as an order number padded to three digits.
func FormatOrderNumber(n int) string {
	return fmt.Sprintf("%s%03d", OrderNumberPrefix, n)
}

// OrderSequence returns the numeric part of an OS<digits> number. Any
// other number, such as a hand-typed "VIP", reports false.
func OrderSequence(number string) (int, bool) {
	m := orderNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextOrderNumber returns the number following last. A last number that
// is not OS<digits> restarts the sequence at OS001.
func NextOrderNumber(last string) string {
	n, ok := OrderSequence(last)
	if !ok {
		return FormatOrderNumber(1)
	}
	return FormatOrderNumber(n + 1)
}

// OnlyDigits strips everything but ASCII digits, e.g. from CPF or phone input.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
