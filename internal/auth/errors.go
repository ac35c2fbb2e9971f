package auth

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired       = "token_expired"
	TextCodeTokenMalformed     = "token_malformed"
	TextCodeMissingCredential  = "credential_missing"
	TextCodeNotAuthenticated   = "not_authenticated"
	TextCodePermissionDenied   = "permission_denied"
	TextCodeInvalidCredentials = "invalid_credentials"
)

// ErrTokenExpired is returned for tokens that were once valid but are
// past their encoded expiration. Callers may tell users to log in
// again; the token itself is not garbage.
var ErrTokenExpired = errors.New("token has expired, please log in again", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers every other verification failure: bad
// signature, wrong algorithm, structurally invalid token.
var ErrTokenMalformed = errors.New("invalid authentication token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMissingCredential is returned when a request carries no bearer
// credential at all, or a malformed scheme.
var ErrMissingCredential = errors.New("authentication token is missing", errors.CategoryAuth).
	WithTextCode(TextCodeMissingCredential).
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthenticated is returned when no principal has been admitted
// for the request. The message never reveals whether the subject exists.
var ErrNotAuthenticated = errors.New("not authenticated", errors.CategoryAuth).
	WithTextCode(TextCodeNotAuthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials merges unknown email and wrong password into
// one externally indistinguishable login error.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the hasher's verification failure.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// PermissionDenied builds the authorization failure for a principal
// whose role is outside the route's allow-list.
func PermissionDenied(allowed []string) error {
	return errors.New(
		fmt.Sprintf("permission denied, only %s allowed", strings.Join(allowed, ", ")),
		errors.CategoryAuthz,
	).
		WithTextCode(TextCodePermissionDenied).
		WithCode(errors.CodeForbidden).
		WithMetadata(map[string]any{"allowed_roles": allowed})
}
