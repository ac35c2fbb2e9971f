package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/database"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

var customerFields = map[string]string{
	"id":           "id",
	"full_name":    "full_name",
	"country_code": "country_code",
	"country_name": "country_name",
	"created_at":   "created_at",
}

func newCustomerRepo() *repository.Repository[*model.Customer] {
	return repository.New(repository.ModelHandlers[*model.Customer]{
		NewRecord: func() *model.Customer { return &model.Customer{} },
	}, customerFields)
}

func mergeCustomer(dst, src *model.Customer) {
	dst.FullName = src.FullName
	dst.CountryCode = src.CountryCode
	dst.CountryName = src.CountryName
}

func newCustomerReconciler(db *bun.DB, keys []lifecycle.UniqueKey[*model.Customer]) *lifecycle.Reconciler[*model.Customer] {
	return lifecycle.New(db, newCustomerRepo(), lifecycle.Handlers[*model.Customer]{
		NewRecord: func() *model.Customer { return &model.Customer{} },
		Merge:     mergeCustomer,
	}, keys)
}

func customerKey() []lifecycle.UniqueKey[*model.Customer] {
	return []lifecycle.UniqueKey[*model.Customer]{{
		Fields: []string{"full_name", "country_name"},
		Values: func(c *model.Customer) []any { return []any{c.FullName, c.CountryName} },
	}}
}

func testCustomer(name, country string) *model.Customer {
	code, _ := model.CountryCode(country)
	return &model.Customer{FullName: name, CountryCode: code, CountryName: country}
}

func TestReconcilerCreate(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	created, err := r.Create(ctx, testCustomer("Stark Industries", "United States"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.DisabledAt)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stark Industries", got.FullName)
	assert.Equal(t, "US", got.CountryCode)
}

func TestReconcilerCreateActiveDuplicate(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	_, err := r.Create(ctx, testCustomer("Wayne Enterprises", "United States"))
	require.NoError(t, err)

	_, err = r.Create(ctx, testCustomer("Wayne Enterprises", "United States"))
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))

	// Same name in a different country is a different composite key.
	_, err = r.Create(ctx, testCustomer("Wayne Enterprises", "Japan"))
	assert.NoError(t, err)
}

func TestReconcilerCreateRestoresInactiveDuplicate(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	original, err := r.Create(ctx, testCustomer("Acme Corp", "Germany"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, original.ID))

	// Re-registering the same key revives the old row instead of
	// inserting a second one.
	revived, err := r.Create(ctx, testCustomer("Acme Corp", "Germany"))
	require.NoError(t, err)
	assert.Equal(t, original.ID, revived.ID)
	assert.True(t, revived.IsActive)
	assert.Nil(t, revived.DisabledAt)

	count, err := db.NewSelect().Model((*model.Customer)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReconcilerUpdate(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	created, err := r.Create(ctx, testCustomer("Initech", "France"))
	require.NoError(t, err)

	candidate := r.CandidateFrom(created)
	candidate.FullName = "Initech Global"
	updated, err := r.Update(ctx, created.ID, candidate)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Initech Global", updated.FullName)
	assert.Equal(t, "FR", updated.CountryCode)
}

func TestReconcilerUpdateNotFound(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())

	_, err := r.Update(context.Background(), uuid.New(), testCustomer("Ghost", "Spain"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestReconcilerUpdateTransfersIdentity(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	// A soft-deleted customer holds the key the update moves onto.
	old, err := r.Create(ctx, testCustomer("Umbrella Corp", "Italy"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, old.ID))

	current, err := r.Create(ctx, testCustomer("Umbrella Corporation", "Italy"))
	require.NoError(t, err)

	candidate := r.CandidateFrom(current)
	candidate.FullName = "Umbrella Corp"
	updated, err := r.Update(ctx, current.ID, candidate)
	require.NoError(t, err)

	// The previously-deleted row comes back carrying the payload;
	// the edited row takes its place among the deleted.
	assert.Equal(t, old.ID, updated.ID)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "Umbrella Corp", updated.FullName)

	_, err = r.Get(ctx, current.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestReconcilerUpdateActiveConflict(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	_, err := r.Create(ctx, testCustomer("Cyberdyne", "Japan"))
	require.NoError(t, err)
	other, err := r.Create(ctx, testCustomer("Cyberdyne Systems", "Japan"))
	require.NoError(t, err)

	candidate := r.CandidateFrom(other)
	candidate.FullName = "Cyberdyne"
	_, err = r.Update(ctx, other.ID, candidate)
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))
}

func TestReconcilerDelete(t *testing.T) {
	db := database.MustOpenTest(t)
	frozen := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	r := newCustomerReconciler(db, customerKey()).WithClock(func() time.Time { return frozen })
	ctx := context.Background()

	created, err := r.Create(ctx, testCustomer("Tyrell Corp", "United Kingdom"))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.Get(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))

	// The row itself survives with the deletion timestamp.
	gone, err := newCustomerRepo().FindByID(ctx, db, created.ID, true)
	require.NoError(t, err)
	assert.False(t, gone.IsActive)
	require.NotNil(t, gone.DisabledAt)
	assert.Equal(t, frozen, gone.DisabledAt.UTC())

	// Deleting twice is a not-found, not a silent no-op.
	err = r.Delete(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestReconcilerRestore(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	created, err := r.Create(ctx, testCustomer("Soylent Corp", "Brazil"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, created.ID))

	restored, err := r.Restore(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, restored.ID)
	assert.True(t, restored.IsActive)
	assert.Nil(t, restored.DisabledAt)
}

func TestReconcilerDualInactiveConflict(t *testing.T) {
	db := database.MustOpenTest(t)
	// Two independent single-field keys make it possible for two
	// distinct deleted rows to each block the candidate.
	keys := []lifecycle.UniqueKey[*model.Customer]{
		{Fields: []string{"full_name"}, Values: func(c *model.Customer) []any { return []any{c.FullName} }},
		{Fields: []string{"country_name"}, Values: func(c *model.Customer) []any { return []any{c.CountryName} }},
	}
	r := newCustomerReconciler(db, keys)
	ctx := context.Background()

	a, err := r.Create(ctx, testCustomer("Massive Dynamic", "India"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, a.ID))

	b, err := r.Create(ctx, testCustomer("Hooli", "Mexico"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, b.ID))

	_, err = r.Create(ctx, testCustomer("Massive Dynamic", "Mexico"))
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))
}

func TestReconcilerMapsIndexViolation(t *testing.T) {
	db := database.MustOpenTest(t)
	// No keys configured, so the pre-check never fires and the
	// partial unique index is what rejects the second insert.
	r := newCustomerReconciler(db, nil)
	ctx := context.Background()

	_, err := r.Create(ctx, testCustomer("Globex", "Thailand"))
	require.NoError(t, err)

	_, err = r.Create(ctx, testCustomer("Globex", "Thailand"))
	require.Error(t, err)
	assert.True(t, lifecycle.IsDataConflict(err))
}

func TestReconcilerList(t *testing.T) {
	db := database.MustOpenTest(t)
	r := newCustomerReconciler(db, customerKey())
	ctx := context.Background()

	names := []string{"Aperture", "Black Mesa", "Vault-Tec"}
	for _, name := range names {
		_, err := r.Create(ctx, testCustomer(name, "Czech Republic"))
		require.NoError(t, err)
	}
	deleted, err := r.Create(ctx, testCustomer("Abstergo", "Turkey"))
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, deleted.ID))

	page, total, err := r.List(ctx, repository.PageRequest{
		Limit:      2,
		OrderField: "full_name",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Aperture", page[0].FullName)
	assert.Equal(t, "Black Mesa", page[1].FullName)
}
