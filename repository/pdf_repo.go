package repository

import (
	"context"

	"lrbooking/models"
)

// PDFRepository provides the data invoices and reports are rendered from.
type PDFRepository struct {
	BookingRepo  BookingRepository
	SettingsRepo SettingsRepository
}

func NewPDFRepository(bookingRepo BookingRepository, settingsRepo SettingsRepository) *PDFRepository {
	return &PDFRepository{
		BookingRepo:  bookingRepo,
		SettingsRepo: settingsRepo,
	}
}

// GetBookingForPDF returns nil, nil when the booking does not exist.
func (r *PDFRepository) GetBookingForPDF(ctx context.Context, id string) (*models.Booking, error) {
	return r.BookingRepo.GetBooking(ctx, id)
}

// GetSettingsForPDF falls back to empty branding when nothing was saved yet.
func (r *PDFRepository) GetSettingsForPDF(ctx context.Context) (*models.CompanySettings, error) {
	s, err := r.SettingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &models.CompanySettings{}, nil
	}
	return s, nil
}

// GetBookingsForReport lists every booking; report filtering happens in memory.
func (r *PDFRepository) GetBookingsForReport(ctx context.Context) ([]*models.Booking, error) {
	return r.BookingRepo.ListBookings(ctx, models.BookingFilter{})
}
