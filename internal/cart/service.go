package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productFinder interface {
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// Service exposes cart operations for a resolved owner. Every mutation runs
// in one transaction and persists recomputed totals before returning, so the
// aggregate a caller observes is never stale.
type Service interface {
	GetOrCreate(ctx context.Context, owner Owner) (*CartDTO, error)
	AddProduct(ctx context.Context, owner Owner, slug string) (*CartDTO, bool, error)
	RemoveProduct(ctx context.Context, owner Owner, slug string) (*CartDTO, error)
	SetQuantity(ctx context.Context, owner Owner, slug string, qty int) (*CartDTO, error)
}

type service struct {
	repo     Repository
	products productFinder
	dbClient txRunner
	metrics  *metrics.StorefrontMetrics
}

// NewService constructs a cart service instance.
func NewService(repo Repository, products productFinder, dbClient txRunner, storeMetrics *metrics.StorefrontMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		products: products,
		dbClient: dbClient,
		metrics:  storeMetrics,
	}, nil
}

func (s *service) GetOrCreate(ctx context.Context, owner Owner) (*CartDTO, error) {
	if err := owner.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var cart *models.Cart
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		cart, err = s.getOrCreate(ctx, s.repo.WithTx(tx), owner)
		return err
	}); err != nil {
		return nil, err
	}
	return toCartDTO(cart), nil
}

func (s *service) AddProduct(ctx context.Context, owner Owner, slug string) (*CartDTO, bool, error) {
	if err := owner.Validate(); err != nil {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if strings.TrimSpace(slug) == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "product slug required")
	}

	var (
		cart    *models.Cart
		created bool
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		var err error
		cart, err = s.getOrCreate(ctx, txRepo, owner)
		if err != nil {
			return err
		}
		if cart.InOrder {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart already ordered")
		}

		product, err := s.findProduct(ctx, slug)
		if err != nil {
			return err
		}

		_, err = txRepo.FindItem(ctx, cart.ID, product.ID)
		switch {
		case err == nil:
			// Same product added twice: the existing line is reused untouched.
			created = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := &models.CartItem{
				CartID:     cart.ID,
				CustomerID: owner.CustomerID,
				ProductID:  product.ID,
				Qty:        1,
				LineTotal:  LineTotal(product.Price, 1),
			}
			switch _, err := txRepo.CreateItem(ctx, item); {
			case err == nil:
				created = true
			case db.IsUniqueViolation(err, ""):
				// A concurrent add won the insert; reuse its line.
				if _, err := txRepo.FindItem(ctx, cart.ID, product.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
				}
				created = false
			default:
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
			}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
		}

		return s.recalc(ctx, txRepo, cart)
	}); err != nil {
		return nil, false, err
	}
	return toCartDTO(cart), created, nil
}

func (s *service) RemoveProduct(ctx context.Context, owner Owner, slug string) (*CartDTO, error) {
	if err := owner.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var cart *models.Cart
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		var err error
		cart, err = s.getOrCreate(ctx, txRepo, owner)
		if err != nil {
			return err
		}
		if cart.InOrder {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart already ordered")
		}

		product, err := s.findProduct(ctx, slug)
		if err != nil {
			return err
		}

		affected, err := txRepo.DeleteItem(ctx, cart.ID, product.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
		}

		return s.recalc(ctx, txRepo, cart)
	}); err != nil {
		return nil, err
	}
	return toCartDTO(cart), nil
}

func (s *service) SetQuantity(ctx context.Context, owner Owner, slug string, qty int) (*CartDTO, error) {
	if err := owner.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var cart *models.Cart
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		var err error
		cart, err = s.getOrCreate(ctx, txRepo, owner)
		if err != nil {
			return err
		}
		if cart.InOrder {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart already ordered")
		}

		product, err := s.findProduct(ctx, slug)
		if err != nil {
			return err
		}

		item, err := txRepo.FindItem(ctx, cart.ID, product.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
		}

		item.Qty = qty
		item.LineTotal = LineTotal(product.Price, qty)
		if err := txRepo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save cart item")
		}

		return s.recalc(ctx, txRepo, cart)
	}); err != nil {
		return nil, err
	}
	return toCartDTO(cart), nil
}

func (s *service) getOrCreate(ctx context.Context, txRepo Repository, owner Owner) (*models.Cart, error) {
	cart, err := txRepo.FindActiveCartByOwner(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	cart = &models.Cart{
		CustomerID:       owner.CustomerID,
		SessionID:        owner.SessionID,
		ForAnonymousUser: owner.IsAnonymous(),
	}
	if _, err := txRepo.CreateCart(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart")
	}
	return cart, nil
}

func (s *service) findProduct(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// recalc recomputes the aggregate from the current line set and persists it,
// refreshing cart.Items and totals in place.
func (s *service) recalc(ctx context.Context, txRepo Repository, cart *models.Cart) error {
	items, err := txRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}

	qty, total := ComputeTotals(items)
	cart.Items = items
	cart.TotalQuantity = qty
	cart.TotalPrice = total

	if err := txRepo.SaveTotals(ctx, cart); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save cart totals")
	}
	s.metrics.IncCartRecalculation()
	return nil
}
