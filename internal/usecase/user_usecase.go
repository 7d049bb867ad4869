package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/notification"
	"github.com/shopfloor/shopfloor/internal/service"
)

type userUseCase struct {
	*controller
	users           UserRepository
	passwordService service.PasswordService
}

// NewUserUseCase creates a UserUseCase. persistence may be nil.
func NewUserUseCase(
	users UserRepository,
	passwordService service.PasswordService,
	persistence notification.Observer,
	logger *slog.Logger,
	opts ...Option,
) UserUseCase {
	return &userUseCase{
		controller:      newController(logger, persistence, opts...),
		users:           users,
		passwordService: passwordService,
	}
}

func (u *userUseCase) Create(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	output, err := u.create(ctx, input)
	if err != nil {
		return nil, err
	}
	user := output.User
	u.NotifyObservers(ctx, fmt.Sprintf("User created: %d %s", user.ID, user.FullName()))
	return output, nil
}

func (u *userUseCase) create(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	plainPassword, hashedPassword, err := u.passwordService.GeneratePassword()
	if err != nil {
		return nil, err
	}

	builder := domain.NewUserBuilder().
		WithFirstName(input.FirstName).
		WithLastName(input.LastName).
		WithEmail(normalizeEmail(input.Email)).
		WithPhoneNumber(input.PhoneNumber).
		WithPassword(hashedPassword).
		WithBirthdate(input.Birthdate).
		WithRole(input.Role).
		WithStatus(domain.StatusActive)
	if !input.Address.IsZero() {
		a := input.Address
		builder.WithAddress(a.Street, a.Number, a.PostalCode, a.City)
	}
	user, err := builder.Build()
	if err != nil {
		return nil, err
	}

	err = unitOfWork(ctx, u.users, func() error {
		if err := u.ensureEmailFree(ctx, user.Email, 0); err != nil {
			return err
		}
		return u.users.Insert(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return &CreateUserOutput{User: user, PlainPassword: plainPassword}, nil
}

func (u *userUseCase) Update(ctx context.Context, userID int, input *UpdateUserInput) (*domain.User, error) {
	user, err := u.update(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	u.NotifyObservers(ctx, fmt.Sprintf("User updated: %d %s", user.ID, user.FullName()))
	return user, nil
}

func (u *userUseCase) update(ctx context.Context, userID int, input *UpdateUserInput) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	existing, err := mustGet(ctx, u.users, userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	builder := domain.NewUserBuilder().
		WithFirstName(input.FirstName).
		WithLastName(input.LastName).
		WithEmail(normalizeEmail(input.Email)).
		WithPhoneNumber(input.PhoneNumber).
		WithPassword(existing.Password).
		WithBirthdate(input.Birthdate).
		WithRole(input.Role).
		WithStatus(input.Status)
	if !input.Address.IsZero() {
		a := input.Address
		builder.WithAddress(a.Street, a.Number, a.PostalCode, a.City)
	}
	user, err := builder.Build()
	if err != nil {
		return nil, err
	}
	user.ID = existing.ID
	if user.Address != nil && existing.Address != nil {
		user.Address.ID = existing.Address.ID
	}

	err = unitOfWork(ctx, u.users, func() error {
		if err := u.ensureEmailFree(ctx, user.Email, user.ID); err != nil {
			return err
		}
		_, err := u.users.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUseCase) Get(ctx context.Context, userID int) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return mustGet(ctx, u.users, userID, domain.ErrUserNotFound)
}

func (u *userUseCase) List(ctx context.Context) ([]*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.users.FindAll(ctx)
}

func (u *userUseCase) ListTechnicians(ctx context.Context) ([]*domain.User, error) {
	return u.listByRole(ctx, domain.RoleTechnician)
}

func (u *userUseCase) ListSiteManagers(ctx context.Context) ([]*domain.User, error) {
	return u.listByRole(ctx, domain.RoleSiteManager)
}

func (u *userUseCase) listByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.users.FindBy(ctx, "role", string(role))
}

// Authenticate never tells apart an unknown email, a wrong password and an
// inactive account.
func (u *userUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.users.FindBy(ctx, "email", normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrInvalidCredentials
	}

	user := users[0]
	if !u.passwordService.ComparePassword(password, user.Password) || !user.IsActive() {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (u *userUseCase) ensureEmailFree(ctx context.Context, email string, selfID int) error {
	users, err := u.users.FindBy(ctx, "email", email)
	if err != nil {
		return err
	}
	for _, other := range users {
		if other.ID != selfID {
			return domain.ErrUserAlreadyExists
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
