package handlers

import (
	"net/http"

	"lrbooking/models"
	"lrbooking/services"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var in models.CompanySettings
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := h.Service.Save(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, saved)
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, s)
}
