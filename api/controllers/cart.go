package controllers

import (
	"net/http"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/middleware"
	"github.com/MaksTishchuk/OnlineShop-version-2/api/responses"
	"github.com/MaksTishchuk/OnlineShop-version-2/api/validators"
	cartsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/redis"
	"github.com/go-chi/chi/v5"
)

const (
	cartLocation = "/cart/"

	flashProductAdded   = "Product added to cart"
	flashProductInCart  = "Product is already in your cart"
	flashProductRemoved = "Product removed from cart"
	flashQtyChanged     = "Quantity updated"
	flashLoginRequired  = "Please log in to add products to your cart"
)

type cartPage struct {
	Cart  *cartsvc.CartDTO `json:"cart"`
	Flash string           `json:"flash,omitempty"`
}

// CartFetch returns the owner's active cart plus any pending flash message.
func CartFetch(svc cartsvc.Service, flash redis.FlashStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := ownerFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.GetOrCreate(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartPage{
			Cart:  cart,
			Flash: popFlash(r, flash, logg),
		})
	}
}

// AddToCart puts a product line into the cart. Guests are bounced back with
// an informational flash instead of a hard 401.
func AddToCart(svc cartsvc.Service, flash redis.FlashStore, flashTTL time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := ownerFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if owner.IsAnonymous() {
			setFlash(r, flash, owner, flashLoginRequired, flashTTL, logg)
			responses.Redirect(w, r, refererOr(r, "/"))
			return
		}

		_, created, err := svc.AddProduct(r.Context(), owner, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := flashProductAdded
		if !created {
			message = flashProductInCart
		}
		setFlash(r, flash, owner, message, flashTTL, logg)
		responses.Redirect(w, r, cartLocation)
	}
}

// DeleteFromCart removes a product line from the cart.
func DeleteFromCart(svc cartsvc.Service, flash redis.FlashStore, flashTTL time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := ownerFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.RemoveProduct(r.Context(), owner, chi.URLParam(r, "slug")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setFlash(r, flash, owner, flashProductRemoved, flashTTL, logg)
		responses.Redirect(w, r, cartLocation)
	}
}

// ChangeQty sets a line's quantity from the posted `qty` form field.
func ChangeQty(svc cartsvc.Service, flash redis.FlashStore, flashTTL time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := ownerFromRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qty, err := validators.FormQuantity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.SetQuantity(r.Context(), owner, chi.URLParam(r, "slug"), qty); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setFlash(r, flash, owner, flashQtyChanged, flashTTL, logg)
		responses.Redirect(w, r, cartLocation)
	}
}

func ownerFromRequest(r *http.Request, svc cartsvc.Service) (cartsvc.Owner, error) {
	if svc == nil {
		return cartsvc.Owner{}, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		return cartsvc.Owner{}, pkgerrors.New(pkgerrors.CodeInternal, "cart owner not resolved")
	}
	return owner, nil
}

func refererOr(r *http.Request, fallback string) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return fallback
}
