package entity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CardDetails holds card input entered during checkout. Values are ephemeral:
// they are validated, passed to the gateway call and never persisted.
type CardDetails struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"` // MM/YY
	CVV        string `json:"cvv"`
	HolderName string `json:"holderName"`
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ValidCardNumber checks length and the Luhn checksum of a card number.
func ValidCardNumber(number string) bool {
	num := strings.ReplaceAll(number, " ", "")
	if len(num) < 13 || len(num) > 19 || !digitsOnly.MatchString(num) {
		return false
	}

	sum := 0
	double := false
	for i := len(num) - 1; i >= 0; i-- {
		digit := int(num[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// CardType detects the card network from the number prefix.
func CardType(number string) string {
	num := strings.ReplaceAll(number, " ", "")

	patterns := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"Visa", regexp.MustCompile(`^4`)},
		{"MasterCard", regexp.MustCompile(`^5[1-5]`)},
		{"American Express", regexp.MustCompile(`^3[47]`)},
		{"Discover", regexp.MustCompile(`^6(?:011|5)`)},
		{"Diners Club", regexp.MustCompile(`^3[0689]`)},
		{"JCB", regexp.MustCompile(`^35`)},
		{"UnionPay", regexp.MustCompile(`^62`)},
	}

	for _, p := range patterns {
		if p.re.MatchString(num) {
			return p.name
		}
	}

	return "Unknown"
}

// ValidCardExpiry checks an MM/YY expiry against the given instant.
func ValidCardExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return false
	}

	return true
}

// ValidCVV checks the CVV length for the detected card type.
func ValidCVV(cvv, cardType string) bool {
	want := 3
	if cardType == "American Express" {
		want = 4
	}

	return len(cvv) == want && digitsOnly.MatchString(cvv)
}
