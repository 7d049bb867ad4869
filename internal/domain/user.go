package domain

import (
	"fmt"
	"time"

	"github.com/shopfloor/shopfloor/internal/validation"
)

// User is an employee of the shopfloor. Password holds the hash, never the plain text.
type User struct {
	ID          int
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string //nolint:gosec // argon2id hash
	Birthdate   time.Time
	Role        Role
	Status      Status
	Address     *Address
}

// FullName returns "first last".
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Age returns the completed years between the birthdate and now.
func (u *User) Age(now time.Time) int {
	years := now.Year() - u.Birthdate.Year()
	if now.Month() < u.Birthdate.Month() ||
		(now.Month() == u.Birthdate.Month() && now.Day() < u.Birthdate.Day()) {
		years--
	}
	return years
}

// IsActive reports whether the user may log in and be assigned work.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// UserRef returns an id-only user used for references that are resolved later.
func UserRef(id int) *User {
	return &User{ID: id}
}

// UserBuilder accumulates user fields; only Build validates.
type UserBuilder struct {
	firstName   string
	lastName    string
	email       string
	phoneNumber string
	password    string
	birthdate   time.Time
	role        Role
	status      Status

	address           *Address
	addressViolations validation.Violations
}

// NewUserBuilder returns an empty builder.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{}
}

func (b *UserBuilder) WithFirstName(firstName string) *UserBuilder {
	b.firstName = firstName
	return b
}

func (b *UserBuilder) WithLastName(lastName string) *UserBuilder {
	b.lastName = lastName
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPhoneNumber(phoneNumber string) *UserBuilder {
	b.phoneNumber = phoneNumber
	return b
}

// WithPassword stores an already hashed password.
func (b *UserBuilder) WithPassword(hash string) *UserBuilder {
	b.password = hash
	return b
}

func (b *UserBuilder) WithBirthdate(birthdate time.Time) *UserBuilder {
	b.birthdate = birthdate
	return b
}

func (b *UserBuilder) WithRole(role Role) *UserBuilder {
	b.role = role
	return b
}

func (b *UserBuilder) WithStatus(status Status) *UserBuilder {
	b.status = status
	return b
}

// WithAddress builds the owned address right away. Its violations are kept and
// reported by Build under the address's own field keys.
func (b *UserBuilder) WithAddress(street string, number, postalCode int, city string) *UserBuilder {
	b.address, b.addressViolations = buildNested(street, number, postalCode, city)
	return b
}

// Build returns the user, or an *validation.InformationRequiredError carrying the
// user's and the nested address's violations together.
func (b *UserBuilder) Build() (*User, error) {
	v := validation.NewViolations()
	v.Merge(b.addressViolations)

	v.Require("firstName", b.firstName, UserFirstNameRequired, validation.NotBlank)
	v.Require("lastName", b.lastName, UserLastNameRequired, validation.NotBlank)
	v.Require("email", b.email, UserEmailRequired, validation.Email)
	v.Require("birthDate", b.birthdate, UserBirthDateRequired)
	v.Require("role", b.role, UserRoleRequired, validation.OneOf(roles...))
	v.Require("status", b.status, UserStatusRequired, validation.OneOf(statuses...))

	if !v.Empty() {
		return nil, validation.NewInformationRequiredError("user", v)
	}

	return &User{
		FirstName:   b.firstName,
		LastName:    b.lastName,
		Email:       b.email,
		PhoneNumber: b.phoneNumber,
		Password:    b.password,
		Birthdate:   b.birthdate,
		Role:        b.role,
		Status:      b.status,
		Address:     b.address,
	}, nil
}
