// Package region resolves billing details that depend on where the user is.
package region

import "shophub/internal/domain/service"

// currencyByCountry maps ISO 3166 alpha-2 country codes to the currency
// charged for them. Unlisted countries settle in USD.
var currencyByCountry = map[string]string{
	"US": "USD",
	"CA": "CAD",
	"GB": "GBP",
	"DE": "EUR",
	"FR": "EUR",
	"ES": "EUR",
	"IT": "EUR",
	"NL": "EUR",
	"IN": "INR",
	"JP": "JPY",
	"AU": "AUD",
	"SG": "SGD",
	"BR": "BRL",
	"MX": "MXN",
}

type detector struct{}

// NewDetector creates the country-to-currency detector.
func NewDetector() service.CurrencyDetector {
	return detector{}
}

func (detector) Detect(country string) string {
	if currency, ok := currencyByCountry[country]; ok {
		return currency
	}

	return "USD"
}
