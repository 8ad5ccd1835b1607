package httpapi

import (
	"net/http"
	"strings"

	"stitchmart.org/internal/audit"
	"stitchmart.org/internal/catalog"
)

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Image       string `json:"image"`
	LargeImage  string `json:"largeImage"`
}

func (a *API) handleItemsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listItems(w, r)
	case http.MethodPost:
		a.createItem(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleItemResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/items/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getItem(w, r, id)
	case http.MethodPut:
		a.updateItem(w, r, id)
	case http.MethodDelete:
		a.deleteItem(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := a.cfg.Catalog.Items(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []*catalog.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *API) getItem(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.cfg.Catalog.Item(r.Context(), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (a *API) createItem(w http.ResponseWriter, r *http.Request) {
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := a.cfg.Catalog.CreateItem(r.Context(), acting, &catalog.Item{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "catalog.item.created", map[string]any{
		"item_id": item.ID,
		"title":   item.Title,
	})

	w.Header().Set("Location", "/v1/items/"+item.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (a *API) updateItem(w http.ResponseWriter, r *http.Request, id string) {
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	var patch catalog.ItemPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := a.cfg.Catalog.UpdateItem(r.Context(), acting, id, patch)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "catalog.item.updated", map[string]any{
		"item_id": item.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (a *API) deleteItem(w http.ResponseWriter, r *http.Request, id string) {
	acting, err := a.requireUser(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if err := a.cfg.Catalog.DeleteItem(r.Context(), acting, id); err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "catalog.item.deleted", map[string]any{
		"item_id": id,
	})

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
