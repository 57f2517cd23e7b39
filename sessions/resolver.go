package sessions

import (
	"context"
	"time"

	"github.com/jrsteele09/snap-species-web/backend"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/rs/zerolog"
)

// ProfileSource fetches the profile owning a bearer token.
type ProfileSource interface {
	Me(ctx context.Context, token string) (*backend.Profile, error)
}

// Resolution is the outcome of resolving a session token.
type Resolution struct {
	// Identity is nil when there is no token, the token is refused, or the
	// backend cannot be reached.
	Identity *Identity
	// Rejected is set when a token was presented and is known to be invalid:
	// expired, or refused by the backend with 401/403.
	Rejected bool
	// Err explains a rejection and wraps apperrors.ErrInvalidSession.
	Err error
}

var errTokenExpired = apperrors.Join(apperrors.ErrInvalidSession, apperrors.ErrNotAuthenticated)

// Resolver turns a session token into an Identity. It never returns an error:
// every failure resolves to an anonymous request.
type Resolver struct {
	profiles ProfileSource
	now      func() time.Time
}

func NewResolver(profiles ProfileSource) *Resolver {
	return &Resolver{profiles: profiles, now: time.Now}
}

// Resolve performs at most one call to the identity endpoint and none when
// token is empty.
func (r *Resolver) Resolve(ctx context.Context, token string) Resolution {
	if token == "" {
		return Resolution{}
	}
	if tokenExpired(token, r.now()) {
		return Resolution{Rejected: true, Err: apperrors.Wrapf(errTokenExpired, "token expired")}
	}

	profile, err := r.profiles.Me(ctx, token)
	if err != nil {
		logger := zerolog.Ctx(ctx)
		if statusErr, ok := backend.AsStatusError(err); ok {
			logger.Debug().Int("status", statusErr.StatusCode).Msg("session token refused by backend")
			if !statusErr.Unauthorized() {
				return Resolution{}
			}
			return Resolution{Rejected: true, Err: apperrors.Join(apperrors.ErrInvalidSession, err)}
		}
		if apperrors.Is(err, backend.ErrUnavailable) {
			logger.Warn().Err(err).Msg("identity endpoint unreachable, continuing anonymously")
		} else {
			logger.Warn().Err(err).Msg("identity lookup failed, continuing anonymously")
		}
		return Resolution{}
	}
	return Resolution{Identity: IdentityFromProfile(profile)}
}
