package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/middleware"
	"github.com/MaksTishchuk/OnlineShop-version-2/api/responses"
	checkoutsvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/checkout"
	ordersvc "github.com/MaksTishchuk/OnlineShop-version-2/internal/orders"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type profileView struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type profilePage struct {
	Customer profileView           `json:"customer"`
	Orders   []checkoutsvc.OrderDTO `json:"orders"`
}

// Profile returns the customer's contact details and order history,
// newest order first.
func Profile(customers customerFinder, orders ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customers == nil || orders == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile services unavailable"))
			return
		}

		owner, ok := middleware.OwnerFromContext(r.Context())
		if !ok || owner.CustomerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		customer, err := customers.FindByID(r.Context(), *owner.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer"))
			return
		}

		history, err := orders.History(r.Context(), customer.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := profileView{
			Phone:   customer.Phone,
			Address: customer.Address,
		}
		if customer.User != nil {
			view.Email = customer.User.Email
			view.FirstName = customer.User.FirstName
			view.LastName = customer.User.LastName
		}

		responses.WriteSuccess(w, profilePage{Customer: view, Orders: history})
	}
}

// OrderDetail returns a single order owned by the authenticated customer.
func OrderDetail(orders ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := middleware.OwnerFromContext(r.Context())
		if !ok || owner.CustomerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id"))
			return
		}

		order, err := orders.Get(r.Context(), *owner.CustomerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
