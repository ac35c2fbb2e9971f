package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

var userFields = map[string]string{
	"id":                  "id",
	"full_name":           "full_name",
	"email":               "email",
	"registration_number": "registration_number",
	"role":                "role",
	"created_at":          "created_at",
}

// CreateUserPayload registers a new account.
type CreateUserPayload struct {
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	RegistrationNumber string `json:"registration_number"`
	Role               string `json:"role"`
}

func (p CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.EmailFormat),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&p.RegistrationNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&p.Role, validation.In(model.RoleUser, model.RoleEditor, model.RoleAdmin)),
	)
}

// UpdateUserPayload is a partial update; nil fields keep their value.
type UpdateUserPayload struct {
	FullName           *string `json:"full_name"`
	Email              *string `json:"email"`
	Password           *string `json:"password"`
	RegistrationNumber *string `json:"registration_number"`
	Role               *string `json:"role"`
}

func (p UpdateUserPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Email, validation.NilOrNotEmpty, validation.Length(6, 100), is.EmailFormat),
		validation.Field(&p.Password, validation.NilOrNotEmpty, validation.Length(8, 100)),
		validation.Field(&p.RegistrationNumber, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&p.Role, validation.NilOrNotEmpty, validation.In(model.RoleUser, model.RoleEditor, model.RoleAdmin)),
	)
}

// UserService owns account records. It also backs the auth gateway's
// identity lookups.
type UserService struct {
	rec    *lifecycle.Reconciler[*model.User]
	hasher *auth.Hasher
}

func NewUserService(db *bun.DB, hasher *auth.Hasher) *UserService {
	repo := repository.New(repository.ModelHandlers[*model.User]{
		NewRecord: func() *model.User { return &model.User{} },
	}, userFields)

	rec := lifecycle.New(db, repo, lifecycle.Handlers[*model.User]{
		NewRecord: func() *model.User { return &model.User{} },
		Merge: func(dst, src *model.User) {
			dst.FullName = src.FullName
			dst.Email = src.Email
			dst.PasswordHash = src.PasswordHash
			dst.RegistrationNumber = src.RegistrationNumber
			dst.Role = src.Role
		},
	}, []lifecycle.UniqueKey[*model.User]{
		{Fields: []string{"email"}, Values: func(u *model.User) []any { return []any{u.Email} }},
		{Fields: []string{"registration_number"}, Values: func(u *model.User) []any { return []any{u.RegistrationNumber} }},
	})

	return &UserService{rec: rec, hasher: hasher}
}

// Create registers a new account. The role defaults to the lowest one
// when omitted, and re-registering a soft-deleted email or
// registration number revives the old account under the new payload.
func (s *UserService) Create(ctx context.Context, payload CreateUserPayload) (*model.User, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	role := payload.Role
	if role == "" {
		role = model.RoleUser
	}

	return s.rec.Create(ctx, &model.User{
		FullName:           strings.TrimSpace(payload.FullName),
		Email:              normalizeEmail(payload.Email),
		PasswordHash:       hash,
		RegistrationNumber: strings.TrimSpace(payload.RegistrationNumber),
		Role:               role,
	})
}

// Update applies a partial payload to an active account.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, payload UpdateUserPayload) (*model.User, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	current, err := s.rec.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate := s.rec.CandidateFrom(current)
	if payload.FullName != nil {
		candidate.FullName = strings.TrimSpace(*payload.FullName)
	}
	if payload.Email != nil {
		candidate.Email = normalizeEmail(*payload.Email)
	}
	if payload.Password != nil {
		hash, err := s.hasher.Hash(*payload.Password)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
		}
		candidate.PasswordHash = hash
	}
	if payload.RegistrationNumber != nil {
		candidate.RegistrationNumber = strings.TrimSpace(*payload.RegistrationNumber)
	}
	if payload.Role != nil {
		candidate.Role = *payload.Role
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.rec.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context, req repository.PageRequest) ([]*model.User, int, error) {
	if req.OrderField == "" {
		req.OrderField = "created_at"
	}
	return s.rec.List(ctx, req)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *UserService) Restore(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.rec.Restore(ctx, id)
}

// FindActive satisfies auth.IdentityStore.
func (s *UserService) FindActive(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.rec.Get(ctx, id)
}

// FindActiveByEmail satisfies auth.UserStore.
func (s *UserService) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.rec.GetByField(ctx, "email", normalizeEmail(email), repository.FindOptions{})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
