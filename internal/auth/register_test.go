package auth

import (
	"context"
	"testing"

	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/security"
)

func TestRegisterCreatesUserAndCustomer(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)

	resp, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:     "  New@Example.COM ",
		Password:  "correct horse",
		FirstName: "Maks",
		LastName:  "Tishchuk",
		Phone:     "+380501112233",
		Address:   "Main street 1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, ok := f.users.byEmail["new@example.com"]
	if !ok {
		t.Fatal("expected user stored under the normalized email")
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("expected the password to be hashed")
	}
	valid, err := security.VerifyPassword("correct horse", user.PasswordHash)
	if err != nil || !valid {
		t.Fatalf("expected stored hash to verify, valid=%v err=%v", valid, err)
	}

	customer, ok := f.customers.byUserID[user.ID]
	if !ok {
		t.Fatal("expected a customer profile for the new user")
	}
	if customer.Phone != "+380501112233" || customer.Address != "Main street 1" {
		t.Fatalf("unexpected customer profile %+v", customer)
	}

	if resp.CustomerID == nil || *resp.CustomerID != customer.ID {
		t.Fatalf("expected customer id %s in response, got %v", customer.ID, resp.CustomerID)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("expected registration to log the account in")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)
	f.seedUser(t, "maks@example.com", "correct horse", true)

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		Email:     "MAKS@example.com",
		Password:  "another pass",
		FirstName: "Maks",
		LastName:  "Tishchuk",
		Phone:     "+380501112233",
		Address:   "Main street 1",
	})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterRequest{
		Email:     "new@example.com",
		Password:  "short",
		FirstName: "Maks",
		LastName:  "Tishchuk",
		Phone:     "+380501112233",
		Address:   "Main street 1",
	})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = f.svc.Register(ctx, RegisterRequest{
		Email:    "new@example.com",
		Password: "correct horse",
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}
