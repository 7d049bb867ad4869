package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// AddressParams are the address flags shared by several commands.
type AddressParams struct {
	Street     string
	Number     int
	PostalCode int
	City       string
}

func (p AddressParams) toInput() usecase.AddressInput {
	return usecase.AddressInput{
		Street:     p.Street,
		Number:     p.Number,
		PostalCode: p.PostalCode,
		City:       p.City,
	}
}

// UserParams are the raw flags of create-user.
type UserParams struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Birthdate   string
	Role        string
	Address     AddressParams
}

type createUserOutput struct {
	ID       int         `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Password string      `json:"password"`
}

// RunCreateUser registers a user and prints the generated password once.
func RunCreateUser(
	ctx context.Context,
	userUseCase usecase.UserUseCase,
	logger *slog.Logger,
	params UserParams,
	format string,
	io IOTuple,
) error {
	birthdate, err := parseDate("birthdate", params.Birthdate)
	if err != nil {
		return err
	}
	role, err := parseOptional(params.Role, domain.ParseRole)
	if err != nil {
		return err
	}

	logger.Info("creating user", slog.String("email", params.Email), slog.String("role", string(role)))

	output, err := userUseCase.Create(ctx, &usecase.CreateUserInput{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		PhoneNumber: params.PhoneNumber,
		Birthdate:   birthdate,
		Role:        role,
		Address:     params.Address.toInput(),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user := output.User
	logger.Info("user created", slog.Int("id", user.ID))

	result := createUserOutput{
		ID:       user.ID,
		FullName: user.FullName(),
		Email:    user.Email,
		Role:     user.Role,
		Password: output.PlainPassword,
	}
	return writeOutput(io.Writer, format, result)
}

func (o createUserOutput) printText(w io.Writer) {
	_, _ = fmt.Fprintln(w, "User created successfully!")
	_, _ = fmt.Fprintf(w, "ID: %d\n", o.ID)
	_, _ = fmt.Fprintf(w, "Name: %s\n", o.FullName)
	_, _ = fmt.Fprintf(w, "Email: %s\n", o.Email)
	_, _ = fmt.Fprintf(w, "Role: %s\n", o.Role)
	_, _ = fmt.Fprintf(w, "Password: %s\n", o.Password)
	_, _ = fmt.Fprintln(w, "\nWARNING: Save the password securely. It will not be shown again.")
}
