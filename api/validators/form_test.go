package validators

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
)

func postForm(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/change-qty/apple-phone/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormQuantity(t *testing.T) {
	qty, err := FormQuantity(postForm(t, url.Values{"qty": {"3"}}))
	if err != nil {
		t.Fatalf("form quantity: %v", err)
	}
	if qty != 3 {
		t.Fatalf("expected 3, got %d", qty)
	}
}

func TestFormQuantityRejectsBadInput(t *testing.T) {
	cases := map[string]url.Values{
		"missing":     {},
		"non numeric": {"qty": {"many"}},
		"zero":        {"qty": {"0"}},
		"negative":    {"qty": {"-3"}},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FormQuantity(postForm(t, values))
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(`{"email":"a@b.com","password":"x","extra":true}`))
	var dest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	err := DecodeJSONBody(req, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
