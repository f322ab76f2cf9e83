package enums

import "fmt"

// Page identifies one screen of the warehouse dashboard.
type Page string

const (
	PageLogin          Page = "login"
	PageSignup         Page = "signup"
	PageDashboard      Page = "dashboard"
	PageInventory      Page = "inventory"
	PageOrders         Page = "orders"
	PageSuppliers      Page = "suppliers"
	PageReports        Page = "reports"
	PageSettings       Page = "settings"
	PageUserManagement Page = "user_management"
)

// authenticatedPages lists the pages reachable after login, in menu order.
var authenticatedPages = []Page{
	PageDashboard,
	PageInventory,
	PageOrders,
	PageSuppliers,
	PageReports,
	PageSettings,
	PageUserManagement,
}

// String implements fmt.Stringer.
func (p Page) String() string {
	return string(p)
}

// IsValid reports whether the value names a known page.
func (p Page) IsValid() bool {
	if p == PageLogin || p == PageSignup {
		return true
	}
	return p.RequiresAuth()
}

// RequiresAuth reports whether the page sits behind the login gate.
func (p Page) RequiresAuth() bool {
	for _, candidate := range authenticatedPages {
		if candidate == p {
			return true
		}
	}
	return false
}

// AdminOnly reports whether only administrators may open the page.
func (p Page) AdminOnly() bool {
	return p == PageUserManagement
}

// AuthenticatedPages returns the menu pages visible to the given role.
func AuthenticatedPages(role UserRole) []Page {
	pages := make([]Page, 0, len(authenticatedPages))
	for _, p := range authenticatedPages {
		if p.AdminOnly() && role != UserRoleAdmin {
			continue
		}
		pages = append(pages, p)
	}
	return pages
}

// ParsePage converts raw input into a Page.
func ParsePage(value string) (Page, error) {
	p := Page(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid page %q", value)
	}
	return p, nil
}
