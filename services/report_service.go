package services

import (
	"context"
	"time"

	"lrbooking/apperr"
	"lrbooking/models"
	"lrbooking/reports"
	"lrbooking/repository"
)

// ReportService fetches bookings once per call and aggregates them in memory.
type ReportService struct {
	PDF      *repository.PDFRepository
	Location *time.Location
}

func NewReportService(pdf *repository.PDFRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{PDF: pdf, Location: loc}
}

func (r *ReportService) load(ctx context.Context) ([]*models.Booking, error) {
	list, err := r.PDF.GetBookingsForReport(ctx)
	if err != nil {
		return nil, apperr.TransientIO("load bookings for report", err)
	}
	return list, nil
}

func (r *ReportService) BookingReport(ctx context.Context, f reports.Filter) (reports.Report, error) {
	list, err := r.load(ctx)
	if err != nil {
		return reports.Report{}, err
	}
	return reports.Build(list, f, r.Location), nil
}

func (r *ReportService) DispatchReport(ctx context.Context, f reports.Filter) ([]*models.Booking, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := reports.Dispatch(list, f, r.Location)
	if out == nil {
		out = []*models.Booking{}
	}
	return out, nil
}
