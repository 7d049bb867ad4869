package domain

import (
	"fmt"

	"github.com/shopfloor/shopfloor/internal/validation"
)

// Address is owned by exactly one user or one site.
type Address struct {
	ID         int
	Street     string
	Number     int
	PostalCode int
	City       string
}

// String formats the address on one line.
func (a *Address) String() string {
	return fmt.Sprintf("%s %d, %d %s", a.Street, a.Number, a.PostalCode, a.City)
}

// AddressBuilder accumulates address fields; only Build validates.
type AddressBuilder struct {
	street     string
	number     int
	postalCode int
	city       string
}

// NewAddressBuilder returns an empty builder.
func NewAddressBuilder() *AddressBuilder {
	return &AddressBuilder{}
}

func (b *AddressBuilder) WithStreet(street string) *AddressBuilder {
	b.street = street
	return b
}

func (b *AddressBuilder) WithNumber(number int) *AddressBuilder {
	b.number = number
	return b
}

func (b *AddressBuilder) WithPostalCode(postalCode int) *AddressBuilder {
	b.postalCode = postalCode
	return b
}

func (b *AddressBuilder) WithCity(city string) *AddressBuilder {
	b.city = city
	return b
}

// Validate returns every violation of the accumulated fields. Parents embedding an
// address merge this map into their own.
func (b *AddressBuilder) Validate() validation.Violations {
	v := validation.NewViolations()
	v.Require("street", b.street, AddressStreetRequired, validation.NotBlank)
	v.Require("number", b.number, AddressNumberRequired)
	v.Require("postalCode", b.postalCode, AddressPostalCodeRequired)
	v.Require("city", b.city, AddressCityRequired, validation.NotBlank)
	return v
}

// Build returns the address, or an *validation.InformationRequiredError listing
// every missing field.
func (b *AddressBuilder) Build() (*Address, error) {
	if v := b.Validate(); !v.Empty() {
		return nil, validation.NewInformationRequiredError("address", v)
	}
	return &Address{
		Street:     b.street,
		Number:     b.number,
		PostalCode: b.postalCode,
		City:       b.city,
	}, nil
}

// buildNested builds an address for a parent builder, returning the partial
// violation map instead of an error.
func buildNested(street string, number, postalCode int, city string) (*Address, validation.Violations) {
	b := NewAddressBuilder().
		WithStreet(street).
		WithNumber(number).
		WithPostalCode(postalCode).
		WithCity(city)
	if v := b.Validate(); !v.Empty() {
		return nil, v
	}
	address, _ := b.Build()
	return address, nil
}
