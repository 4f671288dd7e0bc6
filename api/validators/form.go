package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/MaksTishchuk/OnlineShop-version-2/pkg/errors"
)

// FormQuantity reads the `qty` field from a posted form. The quantity floor
// is enforced again by the cart service; rejecting here keeps garbage input
// from ever reaching it.
func FormQuantity(r *http.Request) (int, error) {
	if err := r.ParseForm(); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	raw := strings.TrimSpace(r.PostFormValue("qty"))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "qty is required").WithDetails(map[string]any{"field": "qty"})
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "qty must be numeric").WithDetails(map[string]any{"field": "qty"})
	}
	if qty < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1").WithDetails(map[string]any{"field": "qty"})
	}
	return qty, nil
}

// ParseQueryInt reads an optional numeric query parameter with bounds.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
