package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/responses"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	pkgauth "github.com/MaksTishchuk/OnlineShop-version-2/pkg/auth"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/auth/session"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/config"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// AccessTokenCookie carries the JWT for browser clients that do not set
	// an Authorization header.
	AccessTokenCookie = "shop_access_token"
	// AnonymousSessionCookie marks a guest so their cart survives requests.
	AnonymousSessionCookie = "shop_session"

	anonymousSessionMaxAge = 30 * 24 * time.Hour
)

type customerResolver interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
}

// Identity resolves every request to a cart owner. A valid access token with
// a live session yields a customer owner; anything else falls back to an
// anonymous session cookie, minted on first touch. Authentication failures
// never block here, endpoints that need a customer use RequireCustomer.
func Identity(cfg config.JWTConfig, sessions session.AccessSessionChecker, customerRepo customerResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if owner, userID, ok := resolveCustomer(ctx, cfg, sessions, customerRepo, r); ok {
				ctx = WithOwner(ctx, owner)
				ctx = WithUserID(ctx, userID)
				if logg != nil {
					ctx = logg.WithUserID(ctx, userID)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sid := anonymousSessionID(r)
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     AnonymousSessionCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(anonymousSessionMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = WithOwner(ctx, cart.SessionOwner(sid))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCustomer rejects requests whose resolved owner is anonymous.
func RequireCustomer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, ok := OwnerFromContext(r.Context())
			if !ok || owner.CustomerID == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveCustomer(
	ctx context.Context,
	cfg config.JWTConfig,
	sessions session.AccessSessionChecker,
	customerRepo customerResolver,
	r *http.Request,
) (cart.Owner, string, bool) {
	token := accessToken(r)
	if token == "" {
		return cart.Owner{}, "", false
	}

	claims, err := pkgauth.ParseAccessToken(cfg, token)
	if err != nil || claims.ID == "" {
		return cart.Owner{}, "", false
	}

	if sessions != nil {
		ok, err := sessions.HasSession(ctx, claims.ID)
		if err != nil || !ok {
			return cart.Owner{}, "", false
		}
	}

	customerID := claims.CustomerID
	if customerID == nil && customerRepo != nil {
		customer, err := customerRepo.FindByUserID(ctx, claims.UserID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return cart.Owner{}, "", false
			}
		} else {
			id := customer.ID
			customerID = &id
		}
	}
	if customerID == nil {
		return cart.Owner{}, "", false
	}

	return cart.CustomerOwner(*customerID), claims.UserID.String(), true
}

func accessToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

func anonymousSessionID(r *http.Request) string {
	cookie, err := r.Cookie(AnonymousSessionCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
