package cart

import (
	"fmt"

	"github.com/google/uuid"
)

// Owner identifies who a cart belongs to. Exactly one of CustomerID or
// SessionID must be set: authenticated shoppers own carts by customer id,
// anonymous shoppers by the session cookie minted on first touch.
type Owner struct {
	CustomerID *uuid.UUID
	SessionID  *string
}

// CustomerOwner builds an owner for an authenticated customer.
func CustomerOwner(customerID uuid.UUID) Owner {
	return Owner{CustomerID: &customerID}
}

// SessionOwner builds an owner for an anonymous session.
func SessionOwner(sessionID string) Owner {
	return Owner{SessionID: &sessionID}
}

// IsAnonymous reports whether the owner is session-based.
func (o Owner) IsAnonymous() bool {
	return o.CustomerID == nil
}

// Validate checks that exactly one identity is present.
func (o Owner) Validate() error {
	if o.CustomerID == nil && o.SessionID == nil {
		return fmt.Errorf("cart owner requires a customer or session identity")
	}
	if o.CustomerID != nil && o.SessionID != nil {
		return fmt.Errorf("cart owner cannot carry both identities")
	}
	if o.CustomerID != nil && *o.CustomerID == uuid.Nil {
		return fmt.Errorf("cart owner customer id is empty")
	}
	if o.SessionID != nil && *o.SessionID == "" {
		return fmt.Errorf("cart owner session id is empty")
	}
	return nil
}

// Key returns a stable string identity, used for flash message storage.
func (o Owner) Key() string {
	if o.CustomerID != nil {
		return "customer:" + o.CustomerID.String()
	}
	if o.SessionID != nil {
		return "session:" + *o.SessionID
	}
	return ""
}
