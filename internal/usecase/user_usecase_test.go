package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor/shopfloor/internal/domain"
	"github.com/shopfloor/shopfloor/internal/validation"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
)

func validCreateUserInput() *CreateUserInput {
	return &CreateUserInput{
		FirstName: "Jan",
		LastName:  "Peeters",
		Email:     " Jan.Peeters@Example.com ",
		Birthdate: domain.Date(1990, 6, 15),
		Role:      domain.RoleTechnician,
		Address:   AddressInput{Street: "Stationsstraat", Number: 12, PostalCode: 9000, City: "Gent"},
	}
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := &mockRepository[domain.User]{}
		passwords := &mockPasswordService{}
		persistence := &messages{}
		uc := NewUserUseCase(users, passwords, persistence, discardLogger())
		view := &messages{}
		uc.AddObserver(view)

		passwords.On("GeneratePassword").Return("plain", "$argon2id$hash", nil).Once()
		users.expectCommit(ctx)
		users.On("FindBy", ctx, "email", "jan.peeters@example.com").Return([]*domain.User{}, nil).Once()
		users.On("Insert", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Password == "$argon2id$hash" && u.Status == domain.StatusActive && u.Address != nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil).Once()

		output, err := uc.Create(ctx, validCreateUserInput())

		require.NoError(t, err)
		assert.Equal(t, "plain", output.PlainPassword)
		assert.Equal(t, 7, output.User.ID)
		assert.Equal(t, []string{"User created: 7 Jan Peeters"}, persistence.received)
		assert.Equal(t, []string{"User created: 7 Jan Peeters"}, view.received)
		users.AssertExpectations(t)
		passwords.AssertExpectations(t)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		users := &mockRepository[domain.User]{}
		passwords := &mockPasswordService{}
		persistence := &messages{}
		uc := NewUserUseCase(users, passwords, persistence, discardLogger())

		passwords.On("GeneratePassword").Return("plain", "hash", nil).Once()
		users.expectRollback(ctx)
		users.On("FindBy", ctx, "email", "jan.peeters@example.com").
			Return([]*domain.User{{ID: 1}}, nil).Once()

		output, err := uc.Create(ctx, validCreateUserInput())

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Empty(t, persistence.received)
		users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		users.AssertExpectations(t)
	})

	t.Run("Error_MissingFieldsNoTransaction", func(t *testing.T) {
		users := &mockRepository[domain.User]{}
		passwords := &mockPasswordService{}
		persistence := &messages{}
		uc := NewUserUseCase(users, passwords, persistence, discardLogger())

		passwords.On("GeneratePassword").Return("plain", "hash", nil).Once()

		_, err := uc.Create(ctx, &CreateUserInput{
			FirstName: "Jan",
			Address:   AddressInput{Street: "Stationsstraat", City: "Gent"},
		})

		infoErr, ok := validation.AsInformationRequired(err)
		require.True(t, ok)
		assert.ElementsMatch(t,
			[]string{"lastName", "email", "birthDate", "role", "number", "postalCode"},
			infoErr.Violations.Keys())
		users.AssertNotCalled(t, "StartTransaction", mock.Anything)
		assert.Empty(t, persistence.received)
	})

	t.Run("Error_InsertFailureRollsBack", func(t *testing.T) {
		users := &mockRepository[domain.User]{}
		passwords := &mockPasswordService{}
		uc := NewUserUseCase(users, passwords, nil, discardLogger())
		dbErr := errors.New("connection reset")

		passwords.On("GeneratePassword").Return("plain", "hash", nil).Once()
		users.expectRollback(ctx)
		users.On("FindBy", ctx, "email", mock.Anything).Return([]*domain.User{}, nil).Once()
		users.On("Insert", ctx, mock.Anything).Return(dbErr).Once()

		_, err := uc.Create(ctx, validCreateUserInput())

		assert.ErrorIs(t, err, dbErr)
		users.AssertExpectations(t)
	})
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()
	existing := testTechnician(3)
	existing.Password = "stored-hash"
	existing.Address = &domain.Address{ID: 40, Street: "Oud", Number: 1, PostalCode: 1000, City: "Brussel"}

	input := &UpdateUserInput{
		FirstName: "Tom", LastName: "Claes", Email: "tom@example.com",
		Birthdate: domain.Date(1988, 3, 4), Role: domain.RoleSiteManager, Status: domain.StatusActive,
		Address: AddressInput{Street: "Nieuw", Number: 2, PostalCode: 2000, City: "Antwerpen"},
	}

	t.Run("Success_KeepsPasswordAndAddressID", func(t *testing.T) {
		users := &mockRepository[domain.User]{}
		persistence := &messages{}
		uc := NewUserUseCase(users, &mockPasswordService{}, persistence, discardLogger())

		users.expectGet(ctx, 3, existing)
		users.expectCommit(ctx)
		users.On("FindBy", ctx, "email", "tom@example.com").Return([]*domain.User{existing}, nil).Once()
		users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 3 && u.Password == "stored-hash" && u.Address.ID == 40 && u.Address.City == "Antwerpen"
		})).Return(nil).Once()

		user, err := uc.Update(ctx, 3, input)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleSiteManager, user.Role)
		assert.Equal(t, []string{"User updated: 3 Tom Claes"}, persistence.received)
		users.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		users := &mockRepository[domain.User]{}
		uc := NewUserUseCase(users, &mockPasswordService{}, nil, discardLogger())

		users.expectGet(ctx, 99, nil)

		_, err := uc.Update(ctx, 99, input)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	active := testTechnician(3)
	active.Password = "hash"
	inactive := testTechnician(4)
	inactive.Password = "hash"
	inactive.Status = domain.StatusInactive

	tests := []struct {
		name     string
		found    []*domain.User
		matches  bool
		expected *domain.User
	}{
		{name: "Success", found: []*domain.User{active}, matches: true, expected: active},
		{name: "Error_UnknownEmail", found: []*domain.User{}},
		{name: "Error_WrongPassword", found: []*domain.User{active}, matches: false},
		{name: "Error_Inactive", found: []*domain.User{inactive}, matches: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockRepository[domain.User]{}
			passwords := &mockPasswordService{}
			uc := NewUserUseCase(users, passwords, nil, discardLogger())

			users.On("FindBy", ctx, "email", "tom@example.com").Return(tt.found, nil).Once()
			passwords.On("ComparePassword", "secret", "hash").Return(tt.matches).Maybe()

			user, err := uc.Authenticate(ctx, "TOM@example.com", "secret")

			if tt.expected != nil {
				require.NoError(t, err)
				assert.Same(t, tt.expected, user)
				return
			}
			assert.Nil(t, user)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestUserUseCase_ListByRole(t *testing.T) {
	ctx := context.Background()
	users := &mockRepository[domain.User]{}
	uc := NewUserUseCase(users, &mockPasswordService{}, nil, discardLogger())

	technicians := []*domain.User{testTechnician(3)}
	users.On("FindBy", ctx, "role", "TECHNICIAN").Return(technicians, nil).Once()
	users.On("FindBy", ctx, "role", "SITE_MANAGER").Return([]*domain.User{}, nil).Once()

	found, err := uc.ListTechnicians(ctx)
	require.NoError(t, err)
	assert.Equal(t, technicians, found)

	found, err = uc.ListSiteManagers(ctx)
	require.NoError(t, err)
	assert.Empty(t, found)
	users.AssertExpectations(t)
}
