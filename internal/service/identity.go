package service

import (
	"context"
	"fmt"

	"sluice-scada/internal/repository"

	"go.uber.org/zap"
)

// IdentityKind which channel supplied the acting user
type IdentityKind int

const (
	IdentityNone IdentityKind = iota
	IdentitySession
	IdentityPayload
)

func (k IdentityKind) String() string {
	switch k {
	case IdentitySession:
		return "session"
	case IdentityPayload:
		return "payload"
	default:
		return "none"
	}
}

// IdentityClaim tagged identity taken from a request.
// UserID is meaningful only for IdentitySession and IdentityPayload.
type IdentityClaim struct {
	Kind   IdentityKind
	UserID int64
}

// NewIdentityClaim picks the channel: an established session always wins
// over a user id in the request body (web cookie clients and stateless
// mobile clients share one endpoint).
func NewIdentityClaim(sessionUserID, payloadUserID *int64) IdentityClaim {
	switch {
	case sessionUserID != nil:
		return IdentityClaim{Kind: IdentitySession, UserID: *sessionUserID}
	case payloadUserID != nil:
		return IdentityClaim{Kind: IdentityPayload, UserID: *payloadUserID}
	default:
		return IdentityClaim{Kind: IdentityNone}
	}
}

// IdentityResolver turns a claim into an authorized user id.
type IdentityResolver struct {
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewIdentityResolver(users repository.UsersRepository, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{users: users, logger: logger}
}

// Resolve returns the acting user id, ErrUnauthorized, ErrInvalidUser, or
// ErrPersistence when the user lookup itself fails. It never writes.
func (r *IdentityResolver) Resolve(ctx context.Context, claim IdentityClaim) (int64, error) {
	switch claim.Kind {
	case IdentitySession:
		return claim.UserID, nil
	case IdentityPayload:
		exists, err := r.users.UserExists(ctx, claim.UserID)
		if err != nil {
			r.logger.Error("User lookup failed",
				zap.Int64("user_id", claim.UserID),
				zap.Error(err),
			)
			return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !exists {
			r.logger.Warn("Gate command rejected: unknown payload user",
				zap.Int64("user_id", claim.UserID),
				zap.String("reason", "invalid_user"),
			)
			return 0, ErrInvalidUser
		}
		return claim.UserID, nil
	default:
		return 0, ErrUnauthorized
	}
}
