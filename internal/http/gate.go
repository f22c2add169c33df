package httpapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"redviva-data/internal/auth"
	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
)

type profileCtxKey struct{}

// ProfileFrom returns the gated profile stored by the session gate.
func ProfileFrom(ctx context.Context) (domain.Profile, bool) {
	p, ok := ctx.Value(profileCtxKey{}).(domain.Profile)
	return p, ok
}

// SessionGate validates an active session and a matching role record
// before a portal section renders anything.
//
// No/expired token -> 401 with the token-expired code (client redirects
// to login for the required role). Valid token but missing or
// wrong-role record -> best-effort sign-out and 403 (destructive for
// the session, never for the role record). Lookup errors deny exactly
// like absence; no transient/missing distinction is made.
type SessionGate struct {
	verifier   *auth.TokenVerifier
	authClient *auth.Client
	profiles   repository.ProfilesRepository
	logger     *zap.Logger
}

func NewSessionGate(verifier *auth.TokenVerifier, authClient *auth.Client, profiles repository.ProfilesRepository, logger *zap.Logger) *SessionGate {
	return &SessionGate{
		verifier:   verifier,
		authClient: authClient,
		profiles:   profiles,
		logger:     logger,
	}
}

// RequireCaregiver gates the caregiver portal.
func (g *SessionGate) RequireCaregiver(next http.HandlerFunc) http.HandlerFunc {
	return g.require(next, "caregiver", func(ctx context.Context, userID string) (domain.Profile, error) {
		p, err := g.profiles.GetCaregiverByAuthUserID(ctx, userID)
		if err != nil {
			return domain.Profile{}, err
		}
		if p.Status != "active" {
			return domain.Profile{}, errors.New("profile is not active")
		}
		return domain.Profile{
			ProfileID:   p.ProfileID,
			AuthUserID:  p.AuthUserID,
			Email:       p.Email,
			Role:        p.Role,
			DisplayName: p.DisplayName,
		}, nil
	})
}

// RequireProfessional gates the professional portal.
func (g *SessionGate) RequireProfessional(next http.HandlerFunc) http.HandlerFunc {
	return g.require(next, "professional", func(ctx context.Context, userID string) (domain.Profile, error) {
		p, err := g.profiles.GetProfessionalByAuthUserID(ctx, userID)
		if err != nil {
			return domain.Profile{}, err
		}
		if p.Status != "active" {
			return domain.Profile{}, errors.New("profile is not active")
		}
		if !p.Role.IsProfessional() {
			return domain.Profile{}, errors.New("role not accepted for this portal")
		}
		return domain.Profile{
			ProfileID:   p.ProfileID,
			AuthUserID:  p.AuthUserID,
			Email:       p.Email,
			Role:        p.Role,
			DisplayName: p.DisplayName,
		}, nil
	})
}

func (g *SessionGate) require(next http.HandlerFunc, portal string, lookup func(context.Context, string) (domain.Profile, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		session, err := g.verifier.Verify(token)
		if err != nil {
			g.logger.Warn("Session gate: no active session",
				zap.String("portal", portal),
				zap.String("reason", err.Error()),
			)
			writeJSON(w, http.StatusUnauthorized, FailCode(ResultTokenExpired, "session required"))
			return
		}

		profile, err := lookup(r.Context(), session.UserID)
		if err != nil {
			g.logger.Warn("Session gate: role record rejected",
				zap.String("portal", portal),
				zap.String("auth_user_id", session.UserID),
				zap.String("reason", err.Error()),
			)
			// terminate the session; the role record is untouched
			if soErr := g.authClient.SignOut(r.Context(), token); soErr != nil {
				g.logger.Warn("Session gate: sign-out failed", zap.Error(soErr))
			}
			writeJSON(w, http.StatusForbidden, FailCode(ResultWrongRole, "account not enabled for this portal"))
			return
		}

		ctx := context.WithValue(r.Context(), profileCtxKey{}, profile)
		next(w, r.WithContext(ctx))
	}
}
