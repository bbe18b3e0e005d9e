package handlers

import (
	"net/http"
	"strconv"

	"lrbooking/reports"
	"lrbooking/services"
)

type PDFHandler struct {
	Documents *services.DocumentService
}

func writePDF(w http.ResponseWriter, f *services.GeneratedFile) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Data)
}

// Invoice generates and stores the invoice. With ?download=true the PDF is
// returned instead of its location.
func (h *PDFHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	f, err := h.Documents.Invoice(r.Context(), bookingID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		writePDF(w, f)
		return
	}
	writeData(w, http.StatusOK, f)
}

func (h *PDFHandler) filter(r *http.Request) (reports.Filter, error) {
	q := r.URL.Query()
	return reports.ParseFilter(q.Get("from"), q.Get("to"), q.Get("destination"), q.Get("bookingType"), h.Documents.Location)
}

func (h *PDFHandler) BookingReport(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Documents.BookingReportPDF(r.Context(), r.URL.Query().Get("title"), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePDF(w, out)
}

func (h *PDFHandler) DispatchReport(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Documents.DispatchReportPDF(r.Context(), r.URL.Query().Get("title"), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePDF(w, out)
}
