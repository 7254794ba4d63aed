package handlers

import (
	"net/http"
	"strconv"
)

// DefaultTenantID is used when a request does not name a tenant. Tenant
// scoping is part of the storage natural key; account management itself lives
// outside this service.
const DefaultTenantID int64 = 1

// tenantIDFromRequest resolves the tenant identifier from the X-Tenant-ID
// header, falling back to the tenant_id query or form value.
func tenantIDFromRequest(r *http.Request) int64 {
	raw := r.Header.Get("X-Tenant-ID")
	if raw == "" {
		raw = r.FormValue("tenant_id")
	}
	if raw == "" {
		return DefaultTenantID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return DefaultTenantID
	}
	return id
}
