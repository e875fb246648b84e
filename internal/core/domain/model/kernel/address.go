package kernel

import "strings"

// Address is a postal address snapshot carried on orders and customer
// records. Shop platforms deliver addresses with arbitrary gaps, so every
// field is optional; validation of deliverability belongs to the carrier.
type Address struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Zip     string
	Country string
}

// IsZero reports whether every field of the address is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// CountryOrDefault returns the country code, defaulting to "US" when the
// shop payload omitted it. Carrier rate APIs reject empty countries.
func (a Address) CountryOrDefault() string {
	if strings.TrimSpace(a.Country) == "" {
		return "US"
	}
	return a.Country
}
