package config

import "strings"

// CountryNorms holds the static financial norms for one country.
type CountryNorms struct {
	// IncomeTaxRate is the effective income-tax rate applied when an
	// expense amount includes tax.
	IncomeTaxRate float64
	// BaselineSavingsRate anchors budget suggestions and the health
	// scorer's savings-rate target.
	BaselineSavingsRate float64
	// EmergencyFundMonths is the recommended months-of-expenses target
	// for the emergency fund.
	EmergencyFundMonths float64
}

// DefaultNorms maps ISO 3166-1 alpha-2 country codes to their norms.
// Static lookup data, not logic; unknown codes fall back to fallbackNorms.
var DefaultNorms = map[string]CountryNorms{
	"US": {IncomeTaxRate: 0.22, BaselineSavingsRate: 0.20, EmergencyFundMonths: 6},
	"GB": {IncomeTaxRate: 0.20, BaselineSavingsRate: 0.18, EmergencyFundMonths: 6},
	"DE": {IncomeTaxRate: 0.30, BaselineSavingsRate: 0.17, EmergencyFundMonths: 6},
	"FR": {IncomeTaxRate: 0.28, BaselineSavingsRate: 0.15, EmergencyFundMonths: 6},
	"ES": {IncomeTaxRate: 0.24, BaselineSavingsRate: 0.12, EmergencyFundMonths: 6},
	"IT": {IncomeTaxRate: 0.27, BaselineSavingsRate: 0.12, EmergencyFundMonths: 6},
	"CA": {IncomeTaxRate: 0.25, BaselineSavingsRate: 0.18, EmergencyFundMonths: 6},
	"AU": {IncomeTaxRate: 0.24, BaselineSavingsRate: 0.18, EmergencyFundMonths: 6},
	"JP": {IncomeTaxRate: 0.20, BaselineSavingsRate: 0.25, EmergencyFundMonths: 8},
	"IN": {IncomeTaxRate: 0.15, BaselineSavingsRate: 0.30, EmergencyFundMonths: 9},
	"BR": {IncomeTaxRate: 0.18, BaselineSavingsRate: 0.10, EmergencyFundMonths: 6},
	"MX": {IncomeTaxRate: 0.16, BaselineSavingsRate: 0.10, EmergencyFundMonths: 6},
}

var fallbackNorms = CountryNorms{
	IncomeTaxRate:       0.20,
	BaselineSavingsRate: 0.15,
	EmergencyFundMonths: 6,
}

// NormalizeCountryCode uppercases and trims a country code.
func NormalizeCountryCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// LookupNorms returns the norms for a country code. The second return is
// false when the code was unknown and the fallback was used.
func LookupNorms(code string) (CountryNorms, bool) {
	n, ok := DefaultNorms[NormalizeCountryCode(code)]
	if !ok {
		return fallbackNorms, false
	}
	return n, true
}

// Countries returns the known country codes, for setup prompts.
func Countries() []string {
	codes := make([]string, 0, len(DefaultNorms))
	for c := range DefaultNorms {
		codes = append(codes, c)
	}
	return codes
}
