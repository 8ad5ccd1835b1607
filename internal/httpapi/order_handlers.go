package httpapi

import (
	"net/http"
	"strings"

	"stitchmart.org/internal/catalog"
)

func (a *API) handleOrdersCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	orders, err := a.cfg.Catalog.Orders(r.Context(), acting)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*catalog.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (a *API) handleOrderResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/orders/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	order, err := a.cfg.Catalog.Order(r.Context(), acting, id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}
