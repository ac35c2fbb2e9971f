package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

const sha256Prefix = "{SHA256}"

// LegacyVerifier verifies digests produced by a deprecated hashing
// scheme. Stored digests are never rehashed; verification keeps
// working for as long as the scheme stays configured.
type LegacyVerifier interface {
	// Match reports whether the digest belongs to this scheme.
	Match(digest string) bool
	// Verify compares the plaintext against the digest.
	Verify(password, digest string) error
}

// Hasher hashes and verifies passwords. New digests are always
// bcrypt; verification additionally accepts any configured legacy
// scheme.
type Hasher struct {
	cost   int
	legacy []LegacyVerifier
}

type HasherOption func(*Hasher)

// WithCost overrides the bcrypt cost factor.
func WithCost(cost int) HasherOption {
	return func(h *Hasher) {
		h.cost = cost
	}
}

// WithLegacyVerifiers registers deprecated schemes accepted during
// verification.
func WithLegacyVerifiers(verifiers ...LegacyVerifier) HasherOption {
	return func(h *Hasher) {
		for _, v := range verifiers {
			if v != nil {
				h.legacy = append(h.legacy, v)
			}
		}
	}
}

// NewHasher returns a Hasher with the default bcrypt cost.
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Hash generates a salted bcrypt digest for the password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	return string(digest), nil
}

// Verify validates the cleartext password against a stored digest,
// dispatching on the digest format.
func (h *Hasher) Verify(password, digest string) error {
	if strings.HasPrefix(digest, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrMismatchedHashAndPassword
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password")
		}
		return nil
	}

	for _, legacy := range h.legacy {
		if legacy.Match(digest) {
			return legacy.Verify(password, digest)
		}
	}

	return ErrMismatchedHashAndPassword
}

// SHA256Verifier verifies digests in the deprecated salted SHA-256
// format "{SHA256}salt$hex".
type SHA256Verifier struct{}

func (SHA256Verifier) Match(digest string) bool {
	return strings.HasPrefix(digest, sha256Prefix)
}

func (SHA256Verifier) Verify(password, digest string) error {
	salt, want, ok := strings.Cut(strings.TrimPrefix(digest, sha256Prefix), "$")
	if !ok {
		return ErrMismatchedHashAndPassword
	}

	sum := sha256.Sum256([]byte(salt + password))
	got := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return ErrMismatchedHashAndPassword
	}
	return nil
}

// HashSHA256Legacy produces a digest in the deprecated format. Only
// tests and migration tooling should call it; new digests are bcrypt.
func HashSHA256Legacy(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return sha256Prefix + salt + "$" + hex.EncodeToString(sum[:])
}
