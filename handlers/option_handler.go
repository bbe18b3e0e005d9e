package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lrbooking/services"
)

// OptionHandler serves dropdown lists, autocomplete history and the
// per-destination caches.
type OptionHandler struct {
	Service *services.BookingService
}

func (h *OptionHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListOptions(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *OptionHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	key := chi.URLParam(r, "key")
	if err := h.Service.AddOption(r.Context(), key, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.Service.ListOptions(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, list)
}

func (h *OptionHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.History(r.Context(), chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *OptionHandler) Consignees(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Consignees(r.Context(), chi.URLParam(r, "destination"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *OptionHandler) Address(w http.ResponseWriter, r *http.Request) {
	addr, err := h.Service.Address(r.Context(), chi.URLParam(r, "destination"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"address": addr})
}
