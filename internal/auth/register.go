package auth

import (
	"context"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/security"
	"gorm.io/gorm"
)

// Register creates the user credential and its customer profile in one
// transaction, then logs the new account in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var (
		user     *models.User
		customer *models.Customer
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txUsers := s.users.WithTx(tx)
		txCustomers := s.customers.WithTx(tx)

		user, err = txUsers.Create(ctx, &models.User{
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IsActive:     true,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create user")
		}

		customer, err = txCustomers.Create(ctx, &models.Customer{
			UserID:  user.ID,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create customer")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, customer)
}
