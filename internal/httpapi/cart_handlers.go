package httpapi

import (
	"net/http"
	"strings"

	"stitchmart.org/internal/audit"
	"stitchmart.org/internal/cart"
)

type addToCartRequest struct {
	ItemID string `json:"itemId"`
}

func (a *API) handleCartCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listCart(w, r)
	case http.MethodPost:
		a.addToCart(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleCartResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/cart/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	a.removeFromCart(w, r, id)
}

func (a *API) listCart(w http.ResponseWriter, r *http.Request) {
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	lines, err := a.cfg.Carts.List(r.Context(), acting.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if lines == nil {
		lines = []*cart.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": lines})
}

func (a *API) addToCart(w http.ResponseWriter, r *http.Request) {
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// The referenced item must exist; the cart never holds dangling lines.
	if _, err := a.cfg.Catalog.Item(r.Context(), req.ItemID); err != nil {
		handleDomainError(w, r, err)
		return
	}

	line, err := a.cfg.Carts.Add(r.Context(), acting.ID, req.ItemID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "cart.item.added", map[string]any{
		"item_id":  req.ItemID,
		"quantity": line.Quantity,
	})

	writeJSON(w, http.StatusOK, map[string]any{"cartItem": line})
}

func (a *API) removeFromCart(w http.ResponseWriter, r *http.Request, id string) {
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if err := a.cfg.Carts.Remove(r.Context(), acting.ID, id); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "cart.item.removed", map[string]any{
		"cart_item_id": id,
	})

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
