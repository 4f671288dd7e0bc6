package orders

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
	byCustomer map[uuid.UUID][]models.Order
	byID       map[uuid.UUID]*models.Order
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return s.byCustomer[customerID], nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
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

func TestHistory(t *testing.T) {
	t.Parallel()
	customerID := uuid.New()
	repo := &stubRepo{
		byCustomer: map[uuid.UUID][]models.Order{
			customerID: {
				{ID: uuid.New(), CustomerID: customerID, Status: enums.OrderStatusNew, OrderDate: time.Now()},
				{ID: uuid.New(), CustomerID: customerID, Status: enums.OrderStatusCompleted, OrderDate: time.Now()},
			},
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	history, err := svc.History(context.Background(), customerID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}

	_, err = svc.History(context.Background(), uuid.Nil)
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestGetChecksOwnership(t *testing.T) {
	t.Parallel()
	customerID := uuid.New()
	order := &models.Order{ID: uuid.New(), CustomerID: customerID, Status: enums.OrderStatusNew}
	repo := &stubRepo{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	found, err := svc.Get(ctx, customerID, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("unexpected order %s", found.ID)
	}

	_, err = svc.Get(ctx, uuid.New(), order.ID)
	expectCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.Get(ctx, customerID, uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}
