package handlers

import (
	"net/http"

	"lrbooking/reports"
	"lrbooking/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func (h *ReportHandler) filter(r *http.Request) (reports.Filter, error) {
	q := r.URL.Query()
	return reports.ParseFilter(q.Get("from"), q.Get("to"), q.Get("destination"), q.Get("bookingType"), h.Service.Location)
}

func (h *ReportHandler) BookingReport(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := h.Service.BookingReport(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, rep)
}

func (h *ReportHandler) DispatchReport(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.Service.DispatchReport(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}
