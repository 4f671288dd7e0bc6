package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	pkgauth "github.com/MaksTishchuk/OnlineShop-version-2/pkg/auth"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/config"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var identityJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "onlineshop-test",
	ExpirationMinutes: 30,
}

type fakeSessionChecker struct {
	live map[string]bool
}

func (f *fakeSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return f.live[accessID], nil
}

type fakeCustomerResolver struct {
	byUserID map[uuid.UUID]*models.Customer
}

func (f *fakeCustomerResolver) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	if customer, ok := f.byUserID[userID]; ok {
		return customer, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func mintToken(t *testing.T, userID uuid.UUID, customerID *uuid.UUID, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(identityJWTConfig, time.Now(), pkgauth.AccessTokenPayload{
		UserID:     userID,
		CustomerID: customerID,
		Email:      "maks@example.com",
		JTI:        jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func captureOwner(t *testing.T, captured *cart.Owner) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := OwnerFromContext(r.Context())
		if !ok {
			t.Fatal("expected owner in context")
		}
		*captured = owner
	})
}

func TestIdentityResolvesCustomerFromBearer(t *testing.T) {
	customerID := uuid.New()
	sessions := &fakeSessionChecker{live: map[string]bool{"jti-1": true}}

	var owner cart.Owner
	handler := Identity(identityJWTConfig, sessions, nil, nil)(captureOwner(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, uuid.New(), &customerID, "jti-1"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if owner.CustomerID == nil || *owner.CustomerID != customerID {
		t.Fatalf("expected customer owner %s, got %+v", customerID, owner)
	}
}

func TestIdentityFallsBackToCustomerLookup(t *testing.T) {
	userID := uuid.New()
	customer := &models.Customer{ID: uuid.New(), UserID: userID}
	sessions := &fakeSessionChecker{live: map[string]bool{"jti-2": true}}
	resolver := &fakeCustomerResolver{byUserID: map[uuid.UUID]*models.Customer{userID: customer}}

	var owner cart.Owner
	handler := Identity(identityJWTConfig, sessions, resolver, nil)(captureOwner(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, userID, nil, "jti-2"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if owner.CustomerID == nil || *owner.CustomerID != customer.ID {
		t.Fatalf("expected resolved customer %s, got %+v", customer.ID, owner)
	}
}

func TestIdentityMintsAnonymousSession(t *testing.T) {
	var owner cart.Owner
	handler := Identity(identityJWTConfig, nil, nil, nil)(captureOwner(t, &owner))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !owner.IsAnonymous() {
		t.Fatalf("expected anonymous owner, got %+v", owner)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == AnonymousSessionCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected anonymous session cookie to be set")
	}
	if owner.SessionID == nil || *owner.SessionID != cookie.Value {
		t.Fatalf("expected owner session to match cookie %q, got %+v", cookie.Value, owner)
	}
}

func TestIdentityReusesSessionCookie(t *testing.T) {
	var owner cart.Owner
	handler := Identity(identityJWTConfig, nil, nil, nil)(captureOwner(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AnonymousSessionCookie, Value: "guest-42"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if owner.SessionID == nil || *owner.SessionID != "guest-42" {
		t.Fatalf("expected session owner guest-42, got %+v", owner)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a returning guest")
	}
}

func TestIdentityIgnoresRevokedSession(t *testing.T) {
	customerID := uuid.New()
	sessions := &fakeSessionChecker{live: map[string]bool{}}

	var owner cart.Owner
	handler := Identity(identityJWTConfig, sessions, nil, nil)(captureOwner(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, uuid.New(), &customerID, "jti-gone"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !owner.IsAnonymous() {
		t.Fatalf("expected revoked token to fall back to anonymous, got %+v", owner)
	}
}

func TestRequireCustomer(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireCustomer(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	req = req.WithContext(WithOwner(req.Context(), cart.SessionOwner("guest-1")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous owner, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/profile/", nil)
	req = req.WithContext(WithOwner(req.Context(), cart.CustomerOwner(uuid.New())))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for customer owner, got %d", rec.Code)
	}
}
