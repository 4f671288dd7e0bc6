package controllers

import (
	"net/http"
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/api/middleware"
	"github.com/MaksTishchuk/OnlineShop-version-2/internal/cart"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/logger"
	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/redis"
)

// popFlash drains the owner's pending status message. Flash delivery is best
// effort; a redis hiccup must not break a catalog or cart render.
func popFlash(r *http.Request, flash redis.FlashStore, logg *logger.Logger) string {
	if flash == nil {
		return ""
	}
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		return ""
	}
	message, err := flash.PopFlash(r.Context(), owner.Key())
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(r.Context(), "owner", owner.Key()), "flash.pop_failed")
		}
		return ""
	}
	return message
}

func setFlash(r *http.Request, flash redis.FlashStore, owner cart.Owner, message string, ttl time.Duration, logg *logger.Logger) {
	if flash == nil || message == "" {
		return
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := flash.SetFlash(r.Context(), owner.Key(), message, ttl); err != nil && logg != nil {
		logg.Warn(logg.WithField(r.Context(), "owner", owner.Key()), "flash.set_failed")
	}
}
