package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/middleware"
	cartsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeFlash struct {
	messages map[string]string
}

func newFakeFlash() *fakeFlash {
	return &fakeFlash{messages: map[string]string{}}
}

func (f *fakeFlash) SetFlash(ctx context.Context, ownerKey, message string, ttl time.Duration) error {
	f.messages[ownerKey] = message
	return nil
}

func (f *fakeFlash) PopFlash(ctx context.Context, ownerKey string) (string, error) {
	message := f.messages[ownerKey]
	delete(f.messages, ownerKey)
	return message, nil
}

type stubCartService struct {
	cart    *cartsvc.CartDTO
	created bool
	err     error

	lastOwner cartsvc.Owner
	lastSlug  string
	lastQty   int
}

func (s *stubCartService) GetOrCreate(ctx context.Context, owner cartsvc.Owner) (*cartsvc.CartDTO, error) {
	s.lastOwner = owner
	return s.cart, s.err
}

func (s *stubCartService) AddProduct(ctx context.Context, owner cartsvc.Owner, slug string) (*cartsvc.CartDTO, bool, error) {
	s.lastOwner, s.lastSlug = owner, slug
	return s.cart, s.created, s.err
}

func (s *stubCartService) RemoveProduct(ctx context.Context, owner cartsvc.Owner, slug string) (*cartsvc.CartDTO, error) {
	s.lastOwner, s.lastSlug = owner, slug
	return s.cart, s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, owner cartsvc.Owner, slug string, qty int) (*cartsvc.CartDTO, error) {
	s.lastOwner, s.lastSlug, s.lastQty = owner, slug, qty
	return s.cart, s.err
}

func requestWithOwner(r *http.Request, owner cartsvc.Owner, slug string) *http.Request {
	ctx := middleware.WithOwner(r.Context(), owner)
	if slug != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("slug", slug)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}
	return r.WithContext(ctx)
}

func TestCartFetchIncludesFlash(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	svc := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}}
	flash := newFakeFlash()
	flash.messages[owner.Key()] = "Product added to cart"

	req := requestWithOwner(httptest.NewRequest(http.MethodGet, "/cart/", nil), owner, "")
	rec := httptest.NewRecorder()
	CartFetch(svc, flash, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Product added to cart") {
		t.Fatalf("expected flash in payload, got %s", body)
	}
	if len(flash.messages) != 0 {
		t.Fatal("expected flash to be consumed")
	}
}

func TestAddToCartRedirectsWithFlash(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	svc := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}, created: true}
	flash := newFakeFlash()

	req := requestWithOwner(httptest.NewRequest(http.MethodGet, "/add-to-cart/apple-phone/", nil), owner, "apple-phone")
	rec := httptest.NewRecorder()
	AddToCart(svc, flash, time.Minute, nil)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/cart/" {
		t.Fatalf("expected redirect to /cart/, got %q", loc)
	}
	if svc.lastSlug != "apple-phone" {
		t.Fatalf("expected slug apple-phone, got %q", svc.lastSlug)
	}
	if flash.messages[owner.Key()] != flashProductAdded {
		t.Fatalf("unexpected flash %q", flash.messages[owner.Key()])
	}
}

func TestAddToCartDuplicateFlash(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	svc := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}, created: false}
	flash := newFakeFlash()

	req := requestWithOwner(httptest.NewRequest(http.MethodGet, "/add-to-cart/apple-phone/", nil), owner, "apple-phone")
	rec := httptest.NewRecorder()
	AddToCart(svc, flash, time.Minute, nil)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if flash.messages[owner.Key()] != flashProductInCart {
		t.Fatalf("unexpected flash %q", flash.messages[owner.Key()])
	}
}

func TestAddToCartAnonymousBouncesBack(t *testing.T) {
	owner := cartsvc.SessionOwner("guest-1")
	svc := &stubCartService{}
	flash := newFakeFlash()

	req := httptest.NewRequest(http.MethodGet, "/add-to-cart/apple-phone/", nil)
	req.Header.Set("Referer", "/products/apple-phone/")
	req = requestWithOwner(req, owner, "apple-phone")
	rec := httptest.NewRecorder()
	AddToCart(svc, flash, time.Minute, nil)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/products/apple-phone/" {
		t.Fatalf("expected redirect to referer, got %q", loc)
	}
	if flash.messages[owner.Key()] != flashLoginRequired {
		t.Fatalf("unexpected flash %q", flash.messages[owner.Key()])
	}
	if svc.lastSlug != "" {
		t.Fatal("expected no cart mutation for anonymous owner")
	}
}

func TestChangeQtyRejectsBadForm(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	svc := &stubCartService{}

	form := url.Values{"qty": {"0"}}
	req := httptest.NewRequest(http.MethodPost, "/change-qty/apple-phone/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithOwner(req, owner, "apple-phone")

	rec := httptest.NewRecorder()
	ChangeQty(svc, newFakeFlash(), time.Minute, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.lastQty != 0 {
		t.Fatal("expected service untouched on invalid qty")
	}
}

func TestDeleteFromCartMissingLine(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")}

	req := requestWithOwner(httptest.NewRequest(http.MethodGet, "/delete-from-cart/apple-phone/", nil), owner, "apple-phone")
	rec := httptest.NewRecorder()
	DeleteFromCart(svc, newFakeFlash(), time.Minute, nil)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
