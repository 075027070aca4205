package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells num using the lakh/crore grouping used on invoices.
func NumberToWords(num int) string {
	switch {
	case num <= 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		return joinWords(ones[num/100]+" Hundred", NumberToWords(num%100))
	case num < 100000:
		return joinWords(NumberToWords(num/1000)+" Thousand", NumberToWords(num%1000))
	case num < 10000000:
		return joinWords(NumberToWords(num/100000)+" Lakh", NumberToWords(num%100000))
	default:
		return joinWords(NumberToWords(num/10000000)+" Crore", NumberToWords(num%10000000))
	}
}

func joinWords(head, tail string) string {
	if tail == "" {
		return head
	}
	return head + " " + tail
}

// NumberToCurrencyWords spells an amount in Rupees and Paisa,
// e.g. 1250.5 -> "One Thousand Two Hundred Fifty Rupees and Fifty Paisa Only".
func NumberToCurrencyWords(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "Zero Rupees Only"
	}
	prefix := ""
	if amount < 0 {
		prefix = "Minus "
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	rupees := int(cents / 100)
	paisa := int(cents % 100)

	var parts []string
	if rupees > 0 {
		parts = append(parts, fmt.Sprintf("%s Rupees", NumberToWords(rupees)))
	}
	if paisa > 0 {
		parts = append(parts, fmt.Sprintf("%s Paisa", NumberToWords(paisa)))
	}

	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}
