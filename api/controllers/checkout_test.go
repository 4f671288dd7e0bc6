package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cartsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	checkoutsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/checkout"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/google/uuid"
)

type stubCheckoutService struct {
	order *checkoutsvc.OrderDTO
	err   error

	lastCustomerID uuid.UUID
	lastCartID     uuid.UUID
	lastShipping   checkoutsvc.ShippingInput
}

func (s *stubCheckoutService) MakeOrder(ctx context.Context, customerID, cartID uuid.UUID, shipping checkoutsvc.ShippingInput) (*checkoutsvc.OrderDTO, error) {
	s.lastCustomerID = customerID
	s.lastCartID = cartID
	s.lastShipping = shipping
	return s.order, s.err
}

const orderBody = `{
	"first_name": "Maks",
	"last_name": "Tishchuk",
	"phone": "+380501112233",
	"address": "Main street 1",
	"buying_type": "delivery",
	"order_date": "2026-09-02T10:00:00Z"
}`

func TestMakeOrderRedirectsWithFlash(t *testing.T) {
	customerID := uuid.New()
	owner := cartsvc.CustomerOwner(customerID)
	cartID := uuid.New()
	carts := &stubCartService{cart: &cartsvc.CartDTO{ID: cartID}}
	checkout := &stubCheckoutService{order: &checkoutsvc.OrderDTO{ID: uuid.New()}}
	flash := newFakeFlash()

	req := httptest.NewRequest(http.MethodPost, "/make-order", strings.NewReader(orderBody))
	req = requestWithOwner(req, owner, "")
	rec := httptest.NewRecorder()
	MakeOrder(checkout, carts, flash, time.Minute, nil)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d (%s)", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if checkout.lastCustomerID != customerID || checkout.lastCartID != cartID {
		t.Fatalf("unexpected checkout call: customer=%s cart=%s", checkout.lastCustomerID, checkout.lastCartID)
	}
	if checkout.lastShipping.FirstName != "Maks" || string(checkout.lastShipping.BuyingType) != "delivery" {
		t.Fatalf("unexpected shipping payload %+v", checkout.lastShipping)
	}
	if flash.messages[owner.Key()] != flashOrderPlaced {
		t.Fatalf("unexpected flash %q", flash.messages[owner.Key()])
	}
}

func TestMakeOrderRequiresCustomer(t *testing.T) {
	owner := cartsvc.SessionOwner("guest-1")
	carts := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}}
	checkout := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/make-order", strings.NewReader(orderBody))
	req = requestWithOwner(req, owner, "")
	rec := httptest.NewRecorder()
	MakeOrder(checkout, carts, newFakeFlash(), time.Minute, nil)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if checkout.lastCustomerID != uuid.Nil {
		t.Fatal("expected checkout untouched for anonymous owner")
	}
}

func TestMakeOrderConsumedCartConflict(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	carts := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}}
	checkout := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart already ordered")}

	req := httptest.NewRequest(http.MethodPost, "/make-order", strings.NewReader(orderBody))
	req = requestWithOwner(req, owner, "")
	rec := httptest.NewRecorder()
	MakeOrder(checkout, carts, newFakeFlash(), time.Minute, nil)(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cart already ordered") {
		t.Fatalf("expected conflict message, got %s", rec.Body.String())
	}
}

func TestMakeOrderValidatesBody(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	carts := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}}
	checkout := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/make-order", strings.NewReader(`{"first_name":"Maks"}`))
	req = requestWithOwner(req, owner, "")
	rec := httptest.NewRecorder()
	MakeOrder(checkout, carts, newFakeFlash(), time.Minute, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if checkout.lastCustomerID != uuid.Nil {
		t.Fatal("expected checkout untouched on validation failure")
	}
}

func TestCheckoutFormListsFields(t *testing.T) {
	owner := cartsvc.CustomerOwner(uuid.New())
	carts := &stubCartService{cart: &cartsvc.CartDTO{ID: uuid.New()}}

	req := requestWithOwner(httptest.NewRequest(http.MethodGet, "/checkout/", nil), owner, "")
	rec := httptest.NewRecorder()
	CheckoutForm(carts, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, field := range []string{"first_name", "buying_type", "order_date"} {
		if !strings.Contains(body, field) {
			t.Fatalf("expected field %s in schema, got %s", field, body)
		}
	}
}
