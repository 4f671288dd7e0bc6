package controllers

import (
	"net/http"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/responses"
	"github.com/MaksTishchuk/OnlineShop-version-2/api/validators"
	cartsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	checkoutsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/checkout"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/enums"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/redis"
)

const flashOrderPlaced = "Thank you for your order! Our manager will contact you shortly"

type orderField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Values   []string `json:"values,omitempty"`
}

type checkoutPage struct {
	Cart   *cartsvc.CartDTO `json:"cart"`
	Fields []orderField     `json:"fields"`
}

var orderFormFields = []orderField{
	{Name: "first_name", Type: "string", Required: true},
	{Name: "last_name", Type: "string", Required: true},
	{Name: "phone", Type: "string", Required: true},
	{Name: "address", Type: "string", Required: true},
	{Name: "buying_type", Type: "enum", Required: true, Values: []string{
		string(enums.BuyingTypeSelf),
		string(enums.BuyingTypeDelivery),
	}},
	{Name: "order_date", Type: "datetime", Required: true},
	{Name: "comment", Type: "string", Required: false},
}

// CheckoutForm returns the active cart and the order form schema.
func CheckoutForm(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, checkoutPage{Cart: cart, Fields: orderFormFields})
	}
}

type makeOrderRequest struct {
	FirstName  string    `json:"first_name" validate:"required"`
	LastName   string    `json:"last_name" validate:"required"`
	Phone      string    `json:"phone" validate:"required"`
	Address    string    `json:"address" validate:"required"`
	BuyingType string    `json:"buying_type" validate:"required"`
	OrderDate  time.Time `json:"order_date" validate:"required"`
	Comment    *string   `json:"comment,omitempty"`
}

// MakeOrder converts the customer's active cart into an order.
func MakeOrder(svc checkoutsvc.Service, carts cartsvc.Service, flash redis.FlashStore, flashTTL time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		owner, err := ownerFromRequest(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if owner.CustomerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		var body makeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := carts.GetOrCreate(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		_, err = svc.MakeOrder(r.Context(), *owner.CustomerID, cart.ID, checkoutsvc.ShippingInput{
			FirstName:  body.FirstName,
			LastName:   body.LastName,
			Phone:      body.Phone,
			Address:    body.Address,
			BuyingType: enums.BuyingType(body.BuyingType),
			OrderDate:  body.OrderDate,
			Comment:    body.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setFlash(r, flash, owner, flashOrderPlaced, flashTTL, logg)
		responses.Redirect(w, r, "/")
	}
}
