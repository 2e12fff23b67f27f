package services

import (
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
)

// Capability names a guarded operation.
type Capability string

const (
	// CapActiveQueue is the staff order queue at /orders/admin.
	CapActiveQueue Capability = "active_queue"
	// CapVendorConsole covers vendor queue, dashboard, vendor history and availability toggling.
	CapVendorConsole Capability = "vendor_console"
	// CapOrderTransition covers order status updates.
	CapOrderTransition Capability = "order_transition"
)

var capabilities = map[Capability][]auth.Role{
	CapActiveQueue:     {auth.RoleAdmin, auth.RoleCanteen},
	CapVendorConsole:   {auth.RoleAdmin, auth.RoleVendor, auth.RoleCanteen},
	CapOrderTransition: {auth.RoleAdmin, auth.RoleVendor, auth.RoleCanteen},
}

// Scope is the set of vendors a principal may see or act on.
type Scope struct {
	All    bool
	Vendor models.VendorType
}

// Allows reports whether the scope covers orders or records of vendor v.
func (s Scope) Allows(v models.VendorType) bool {
	return s.All || (s.Vendor != "" && s.Vendor == v)
}

// Apply narrows an order filter to the scope.
func (s Scope) Apply(f *models.OrderFilter) {
	if !s.All {
		f.Vendor = s.Vendor
	}
}

type scopeFunc func(p auth.Principal) (Scope, error)

var roleScopes = map[auth.Role]scopeFunc{
	auth.RoleAdmin: func(auth.Principal) (Scope, error) {
		return Scope{All: true}, nil
	},
	auth.RoleCanteen: func(p auth.Principal) (Scope, error) {
		if p.Type == "food" {
			return Scope{Vendor: models.VendorCanteen}, nil
		}
		return Scope{Vendor: models.VendorStationery}, nil
	},
	auth.RoleVendor: func(p auth.Principal) (Scope, error) {
		v := models.VendorType(p.VendorType)
		if !v.Outlet() {
			return Scope{}, apperrors.Forbidden("Vendor account has no vendor type")
		}
		return Scope{Vendor: v}, nil
	},
	auth.RoleStudent: func(auth.Principal) (Scope, error) {
		return Scope{}, apperrors.Forbidden("Access denied")
	},
}

// Authorize checks that p holds capability c and returns the vendor scope it operates in.
func Authorize(p auth.Principal, c Capability) (Scope, error) {
	allowed := false
	for _, r := range capabilities[c] {
		if r == p.Role {
			allowed = true
			break
		}
	}
	if !allowed {
		return Scope{}, apperrors.Forbidden("Access denied")
	}
	return VendorScope(p)
}

// VendorScope resolves the vendor scope of p without a capability check.
func VendorScope(p auth.Principal) (Scope, error) {
	fn, ok := roleScopes[p.Role]
	if !ok {
		return Scope{}, apperrors.Forbidden("Access denied")
	}
	return fn(p)
}
