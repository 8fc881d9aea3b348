package middleware

import (
	"net/http"
	"slices"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// Capability names an action a route needs.
type Capability string

const (
	ViewTickets     Capability = "view_tickets"
	SubmitTickets   Capability = "submit_tickets"
	ManageTickets   Capability = "manage_tickets"
	ViewReference   Capability = "view_reference"
	ManageReference Capability = "manage_reference"
	ViewReports     Capability = "view_reports"
)

// policy maps each capability to the roles granted it.
var policy = map[Capability][]string{
	ViewTickets:     {models.RoleAdmin, models.RoleUser},
	SubmitTickets:   {models.RoleAdmin, models.RoleUser},
	ViewReference:   {models.RoleAdmin, models.RoleUser},
	ManageTickets:   {models.RoleAdmin},
	ManageReference: {models.RoleAdmin},
	ViewReports:     {models.RoleAdmin},
}

// Allowed reports whether role holds capability c.
func Allowed(role string, c Capability) bool {
	return slices.Contains(policy[c], role)
}

// Require lets the request through only if the authenticated caller's role
// holds c. It must run after Authenticate.
func Require(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := utils.PrincipalFrom(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "No token provided")
				return
			}
			if !Allowed(p.Role, c) {
				utils.Error(w, http.StatusForbidden, "Access Denied: Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
