package controllers

import (
	"net/http"
	"strings"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/responses"
	"github.com/MaksTishchuk/OnlineShop-version-2/api/validators"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/catalog"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/pagination"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/redis"
	"github.com/go-chi/chi/v5"
)

type storefrontPage struct {
	Categories []catalog.CategoryDTO `json:"categories"`
	Products   []catalog.ProductDTO  `json:"products"`
	NextCursor *string               `json:"next_cursor,omitempty"`
	Flash      string                `json:"flash,omitempty"`
}

// Index renders the landing payload: all categories plus the newest products.
func Index(svc catalog.Service, flash redis.FlashStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := listPage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, storefrontPage{
			Categories: categories,
			Products:   listing.Products,
			NextCursor: listing.NextCursor,
			Flash:      popFlash(r, flash, logg),
		})
	}
}

// ProductDetail returns a single product with its spec payload.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type categoryPage struct {
	Category   *catalog.CategoryDTO `json:"category"`
	Products   []catalog.ProductDTO `json:"products"`
	NextCursor *string              `json:"next_cursor,omitempty"`
}

// CategoryDetail returns a category and its product listing.
func CategoryDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		category, err := svc.GetCategory(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := listPage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			CategorySlug: slug,
			Page:         page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categoryPage{
			Category:   category,
			Products:   listing.Products,
			NextCursor: listing.NextCursor,
		})
	}
}

func listPage(r *http.Request) (pagination.Page, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.Page{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}
