package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lrbooking/models"
	"lrbooking/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func bookingID(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "id")))
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var draft services.BookingDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.Service.CreateBooking(r.Context(), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, b)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.BookingFilter{
		Status:      models.Status(q.Get("status")),
		BookingType: models.BookingType(strings.ToUpper(q.Get("bookingType"))),
		Destination: q.Get("destination"),
	}
	list, err := h.Service.ListBookings(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Booking{}
	}
	writeData(w, http.StatusOK, list)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.GetBooking(r.Context(), bookingID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var draft services.BookingDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.Service.UpdateBooking(r.Context(), bookingID(r), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := bookingID(r)
	if err := h.Service.Remove(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Booking "+id+" deleted successfully")
}

func (h *BookingHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Dispatch(r.Context(), bookingID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *BookingHandler) Receive(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Receive(r.Context(), bookingID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *BookingHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	var req services.DeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.Service.Deliver(r.Context(), bookingID(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

type transitionRequest struct {
	Status    models.Status    `json:"status"`
	DateField models.DateField `json:"dateField"`
}

func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.Service.Transition(r.Context(), bookingID(r), req.Status, req.DateField)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.Service.SetStatus(r.Context(), bookingID(r), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}
