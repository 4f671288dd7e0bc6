package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/enums"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	ordered map[uuid.UUID]bool
	orders  []*models.Order

	failCreate error
}

func newStubRepo() *stubRepo {
	return &stubRepo{ordered: map[uuid.UUID]bool{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) MarkOrdered(ctx context.Context, cartID uuid.UUID) (int64, error) {
	if s.ordered[cartID] {
		return 0, nil
	}
	s.ordered[cartID] = true
	return 1, nil
}

func (s *stubRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.failCreate != nil {
		return nil, s.failCreate
	}
	order.ID = uuid.New()
	s.orders = append(s.orders, order)
	return order, nil
}

type stubCarts struct {
	byID map[uuid.UUID]*models.Cart
}

func (s *stubCarts) FindCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	if cart, ok := s.byID[id]; ok {
		return cart, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func validShipping() ShippingInput {
	comment := "call on arrival"
	return ShippingInput{
		FirstName:  "Maks",
		LastName:   "Tishchuk",
		Phone:      "+380501112233",
		Address:    "Main street 1",
		BuyingType: enums.BuyingTypeDelivery,
		OrderDate:  time.Now().Add(48 * time.Hour),
		Comment:    &comment,
	}
}

func newTestService(t *testing.T, repo Repository, carts cartLoader) Service {
	t.Helper()
	svc, err := NewService(repo, carts, stubTx{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestMakeOrderCopiesFieldsVerbatim(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	customerID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), CustomerID: &customerID, TotalQuantity: 2}
	svc := newTestService(t, repo, &stubCarts{byID: map[uuid.UUID]*models.Cart{cart.ID: cart}})

	shipping := validShipping()
	shipping.FirstName = "  Maks  " // copied untouched, never trimmed
	order, err := svc.MakeOrder(context.Background(), customerID, cart.ID, shipping)
	if err != nil {
		t.Fatalf("make order: %v", err)
	}

	if order.FirstName != "  Maks  " {
		t.Fatalf("first name must be copied verbatim, got %q", order.FirstName)
	}
	if order.BuyingType != enums.BuyingTypeDelivery {
		t.Fatalf("unexpected buying type %s", order.BuyingType)
	}
	if order.Status != enums.OrderStatusNew {
		t.Fatalf("new order must start in status new, got %s", order.Status)
	}
	if order.CartID != cart.ID {
		t.Fatalf("order must reference the consumed cart")
	}
	if order.Comment == nil || *order.Comment != "call on arrival" {
		t.Fatalf("comment not carried over: %v", order.Comment)
	}
}

func TestMakeOrderTwiceConflicts(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	customerID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), CustomerID: &customerID, TotalQuantity: 1}
	svc := newTestService(t, repo, &stubCarts{byID: map[uuid.UUID]*models.Cart{cart.ID: cart}})
	ctx := context.Background()

	if _, err := svc.MakeOrder(ctx, customerID, cart.ID, validShipping()); err != nil {
		t.Fatalf("first make order: %v", err)
	}

	_, err := svc.MakeOrder(ctx, customerID, cart.ID, validShipping())
	expectCode(t, err, pkgerrors.CodeStateConflict)

	if len(repo.orders) != 1 {
		t.Fatalf("exactly one order must exist, got %d", len(repo.orders))
	}
}

func TestMakeOrderValidation(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	customerID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), CustomerID: &customerID, TotalQuantity: 1}
	svc := newTestService(t, repo, &stubCarts{byID: map[uuid.UUID]*models.Cart{cart.ID: cart}})
	ctx := context.Background()

	shipping := validShipping()
	shipping.Phone = ""
	_, err := svc.MakeOrder(ctx, customerID, cart.ID, shipping)
	expectCode(t, err, pkgerrors.CodeValidation)

	shipping = validShipping()
	shipping.BuyingType = "teleport"
	_, err = svc.MakeOrder(ctx, customerID, cart.ID, shipping)
	expectCode(t, err, pkgerrors.CodeValidation)

	// Failed validation must leave the cart untouched.
	if repo.ordered[cart.ID] {
		t.Fatal("cart must not be consumed by rejected submissions")
	}
}

func TestMakeOrderRequiresCustomer(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, newStubRepo(), &stubCarts{byID: map[uuid.UUID]*models.Cart{}})

	_, err := svc.MakeOrder(context.Background(), uuid.Nil, uuid.New(), validShipping())
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestMakeOrderUnknownCart(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, newStubRepo(), &stubCarts{byID: map[uuid.UUID]*models.Cart{}})

	_, err := svc.MakeOrder(context.Background(), uuid.New(), uuid.New(), validShipping())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestMakeOrderEmptyCart(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	customerID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), CustomerID: &customerID}
	svc := newTestService(t, repo, &stubCarts{byID: map[uuid.UUID]*models.Cart{cart.ID: cart}})

	_, err := svc.MakeOrder(context.Background(), customerID, cart.ID, validShipping())
	expectCode(t, err, pkgerrors.CodeValidation)

	if repo.ordered[cart.ID] {
		t.Fatal("empty cart must not be consumed")
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no order must exist for an empty cart, got %d", len(repo.orders))
	}
}

func TestMakeOrderForeignCart(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), CustomerID: &ownerID, TotalQuantity: 1}
	svc := newTestService(t, newStubRepo(), &stubCarts{byID: map[uuid.UUID]*models.Cart{cart.ID: cart}})

	_, err := svc.MakeOrder(context.Background(), uuid.New(), cart.ID, validShipping())
	expectCode(t, err, pkgerrors.CodeForbidden)
}
