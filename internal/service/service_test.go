package service_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/database"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/service"
)

func newServices(t *testing.T) *service.Services {
	t.Helper()
	db := database.MustOpenTest(t)
	// MinCost keeps the password hashing out of the test's hot path.
	return service.New(db, auth.NewHasher(auth.WithCost(4)))
}

func strPtr(s string) *string { return &s }

func TestUserServiceCreate(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName:           "Ada Lovelace",
		Email:              "Ada@Example.COM",
		Password:           "correct-horse",
		RegistrationNumber: "EMP-001",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "ada@example.com", user.Email, "email is normalized")
	assert.Equal(t, "User", user.Role, "role defaults to the lowest one")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestUserServiceCreateInvalidPayload(t *testing.T) {
	svc := newServices(t)

	cases := []struct {
		name    string
		payload service.CreateUserPayload
	}{
		{"missing email", service.CreateUserPayload{FullName: "X", Password: "longenough", RegistrationNumber: "1"}},
		{"bad email", service.CreateUserPayload{FullName: "X", Email: "nope", Password: "longenough", RegistrationNumber: "1"}},
		{"short password", service.CreateUserPayload{FullName: "X", Email: "x@example.com", Password: "short", RegistrationNumber: "1"}},
		{"unknown role", service.CreateUserPayload{FullName: "X", Email: "x@example.com", Password: "longenough", RegistrationNumber: "1", Role: "Owner"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Users.Create(context.Background(), tc.payload)
			require.Error(t, err)

			var rich *errors.Error
			require.True(t, errors.As(err, &rich))
			assert.Equal(t, errors.CodeBadRequest, rich.Code)
		})
	}
}

func TestUserServiceDuplicateEmail(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "First", Email: "dup@example.com", Password: "longenough", RegistrationNumber: "EMP-001",
	})
	require.NoError(t, err)

	_, err = svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "Second", Email: "dup@example.com", Password: "longenough", RegistrationNumber: "EMP-002",
	})
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))
}

func TestUserServiceReviveDeletedAccount(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	first, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "Grace Hopper", Email: "grace@example.com", Password: "longenough", RegistrationNumber: "EMP-007",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Users.Delete(ctx, first.ID))

	// Registration with the same email revives the old account row.
	second, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "Grace B. Hopper", Email: "grace@example.com", Password: "longenough", RegistrationNumber: "EMP-007",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Grace B. Hopper", second.FullName)
	assert.True(t, second.IsActive)
}

func TestUserServiceDualInactiveConflict(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	a, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "A", Email: "a@example.com", Password: "longenough", RegistrationNumber: "EMP-A",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Users.Delete(ctx, a.ID))

	b, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "B", Email: "b@example.com", Password: "longenough", RegistrationNumber: "EMP-B",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Users.Delete(ctx, b.ID))

	// Email claims one deleted row, registration number claims the
	// other. No single restore satisfies both, so the create fails.
	_, err = svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "C", Email: "a@example.com", Password: "longenough", RegistrationNumber: "EMP-B",
	})
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))
}

func TestUserServiceUpdatePartial(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	user, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "Old Name", Email: "upd@example.com", Password: "longenough", RegistrationNumber: "EMP-042",
	})
	require.NoError(t, err)
	oldHash := user.PasswordHash

	updated, err := svc.Users.Update(ctx, user.ID, service.UpdateUserPayload{
		FullName: strPtr("New Name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "upd@example.com", updated.Email)
	assert.Equal(t, oldHash, updated.PasswordHash, "untouched fields survive")

	updated, err = svc.Users.Update(ctx, user.ID, service.UpdateUserPayload{
		Password: strPtr("another-secret"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
}

func TestCustomerServiceCountryResolution(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	customer, err := svc.Customers.Create(ctx, service.CreateCustomerPayload{
		FullName:    "Kaito Precision",
		CountryName: "japan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Japan", customer.CountryName, "name is canonicalized")
	assert.Equal(t, "JP", customer.CountryCode)

	_, err = svc.Customers.Create(ctx, service.CreateCustomerPayload{
		FullName:    "Nowhere Inc",
		CountryName: "Atlantis",
	})
	require.Error(t, err)

	var rich *errors.Error
	require.True(t, errors.As(err, &rich))
	assert.Equal(t, errors.CodeBadRequest, rich.Code)
}

func TestMoldServiceCreate(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	customer, err := svc.Customers.Create(ctx, service.CreateCustomerPayload{
		FullName: "Stark Tooling", CountryName: "United States",
	})
	require.NoError(t, err)

	creator, err := svc.Users.Create(ctx, service.CreateUserPayload{
		FullName: "Op", Email: "op@example.com", Password: "longenough", RegistrationNumber: "EMP-100", Role: "Admin",
	})
	require.NoError(t, err)

	mold, err := svc.Molds.Create(ctx, service.CreateMoldPayload{
		Name:         "Bumper mold",
		DeliveryDate: mustTime(t, "2026-10-01"),
		Priority:     "High",
		Quantity:     2,
		Dimensions:   "200x150x50 mm",
		CustomerID:   &customer.ID,
	}, creator.ID)
	require.NoError(t, err)

	assert.Equal(t, "Pending", string(mold.Status), "status defaults to Pending")
	require.NotNil(t, mold.CreatedByID)
	assert.Equal(t, creator.ID, *mold.CreatedByID)
}

func TestMoldServiceUnknownCustomer(t *testing.T) {
	svc := newServices(t)
	missing := uuid.New()

	_, err := svc.Molds.Create(context.Background(), service.CreateMoldPayload{
		Name:         "Orphan mold",
		DeliveryDate: mustTime(t, "2026-10-01"),
		Priority:     "Low",
		Quantity:     1,
		Dimensions:   "10x10x10 mm",
		CustomerID:   &missing,
	}, uuid.Nil)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPartServiceScopedUniqueness(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	moldA, err := svc.Molds.Create(ctx, service.CreateMoldPayload{
		Name: "Mold A", DeliveryDate: mustTime(t, "2026-09-15"), Priority: "Low", Quantity: 1, Dimensions: "100x100x40 mm",
	}, uuid.Nil)
	require.NoError(t, err)
	moldB, err := svc.Molds.Create(ctx, service.CreateMoldPayload{
		Name: "Mold B", DeliveryDate: mustTime(t, "2026-09-15"), Priority: "Low", Quantity: 1, Dimensions: "120x100x40 mm",
	}, uuid.Nil)
	require.NoError(t, err)

	_, err = svc.Parts.Create(ctx, service.CreatePartPayload{
		Name: "Core insert", Quantity: 4, MoldID: moldA.ID,
	})
	require.NoError(t, err)

	// Same part name under a different mold is allowed.
	_, err = svc.Parts.Create(ctx, service.CreatePartPayload{
		Name: "Core insert", Quantity: 2, MoldID: moldB.ID,
	})
	require.NoError(t, err)

	// Under the same mold it conflicts.
	_, err = svc.Parts.Create(ctx, service.CreatePartPayload{
		Name: "Core insert", Quantity: 1, MoldID: moldA.ID,
	})
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))
}

func TestMaterialServiceLifecycle(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	created, err := svc.Materials.Create(ctx, service.CreateMaterialPayload{
		Name: "P20 Steel", Description: "Pre-hardened mold steel", UnitOfMeasure: "kg", StockQuantity: 120,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Materials.Delete(ctx, created.ID))
	_, err = svc.Materials.Get(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	restored, err := svc.Materials.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, restored.ID)
	assert.True(t, restored.IsActive)
}

func TestMachineServiceList(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	for _, name := range []string{"DMU 50", "Haas VF-2", "Agie Charmilles"} {
		_, err := svc.Machines.Create(ctx, service.CreateMachinePayload{Name: name, MachineType: "CNC"})
		require.NoError(t, err)
	}

	page, total, err := svc.Machines.List(ctx, listPage(0, 10))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 3)
	assert.Equal(t, "Agie Charmilles", page[0].Name, "default order is by name")
}
