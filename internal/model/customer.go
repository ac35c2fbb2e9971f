package model

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Customer is a registered client. The (full_name, country_name) pair
// is unique among active customers.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:cst"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	FullName    string    `bun:"full_name,notnull" json:"full_name"`
	CountryCode string    `bun:"country_code,notnull" json:"country_code"`
	CountryName string    `bun:"country_name,notnull" json:"country_name"`

	Lifecycle
}

func (c *Customer) GetID() uuid.UUID {
	return c.ID
}

func (c *Customer) SetID(id uuid.UUID) {
	c.ID = id
}

// countries is the closed registry of supported customer countries.
var countries = map[string]string{
	"China":          "CN",
	"United States":  "US",
	"Japan":          "JP",
	"Germany":        "DE",
	"South Korea":    "KR",
	"India":          "IN",
	"France":         "FR",
	"Italy":          "IT",
	"United Kingdom": "GB",
	"Spain":          "ES",
	"Mexico":         "MX",
	"Brazil":         "BR",
	"Thailand":       "TH",
	"Russia":         "RU",
	"Czech Republic": "CZ",
	"Turkey":         "TR",
}

// CountryCode resolves a country name to its ISO code. The lookup is
// case-insensitive on the name.
func CountryCode(name string) (string, bool) {
	for country, code := range countries {
		if strings.EqualFold(country, name) {
			return code, true
		}
	}
	return "", false
}

// CountryNames returns every supported country name, sorted.
func CountryNames() []string {
	names := make([]string, 0, len(countries))
	for country := range countries {
		names = append(names, country)
	}
	sort.Strings(names)
	return names
}
