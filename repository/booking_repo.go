package repository

import (
	"context"
	"time"

	"lrbooking/models"
)

// TransitionPatch is the set of fields a status transition writes.
type TransitionPatch struct {
	To               models.Status
	DateField        models.DateField
	Date             string
	Receiver         *models.Party
	DeliveryDiscount *float64
	UpdatedAt        time.Time
}

// Apply writes the patch onto b.
func (p TransitionPatch) Apply(b *models.Booking) {
	b.Status = p.To
	switch p.DateField {
	case models.DateDispatch:
		b.DispatchDate = p.Date
	case models.DateReceive:
		b.ReceiveDate = p.Date
	case models.DateDelivery:
		b.DeliveryDate = p.Date
	}
	if p.Receiver != nil {
		r := *p.Receiver
		b.Receiver = &r
	}
	if p.DeliveryDiscount != nil {
		b.DeliveryDiscount = *p.DeliveryDiscount
	}
	t := p.UpdatedAt
	b.UpdatedAt = &t
}

// EditPatch is the set of fields a client edit writes. Status, lifecycle
// dates, receiver, delivery discount and pdfUrl are never part of it.
type EditPatch struct {
	BookingType   models.BookingType
	Consignor     models.Party
	Consignee     models.Party
	Destination   string
	IsInterstate  bool
	Articles      []models.Article
	Charges       models.Charges
	DeclaredValue float64
	FixAmount     float64
	ArticleAmount float64
	TotalAmount   float64
	Remarks       string
	// BookingDate is left unchanged when empty.
	BookingDate string
	UpdatedAt   time.Time
}

// EditFrom copies the editable fields of b.
func EditFrom(b *models.Booking, at time.Time) EditPatch {
	return EditPatch{
		BookingType:   b.BookingType,
		Consignor:     b.Consignor,
		Consignee:     b.Consignee,
		Destination:   b.Destination,
		IsInterstate:  b.IsInterstate,
		Articles:      append([]models.Article(nil), b.Articles...),
		Charges:       b.Charges,
		DeclaredValue: b.DeclaredValue,
		FixAmount:     b.FixAmount,
		ArticleAmount: b.ArticleAmount,
		TotalAmount:   b.TotalAmount,
		Remarks:       b.Remarks,
		BookingDate:   b.BookingDate,
		UpdatedAt:     at,
	}
}

// Apply merges the patch onto b.
func (p EditPatch) Apply(b *models.Booking) {
	b.BookingType = p.BookingType
	b.Consignor = p.Consignor
	b.Consignee = p.Consignee
	b.Destination = p.Destination
	b.IsInterstate = p.IsInterstate
	b.Articles = append([]models.Article(nil), p.Articles...)
	b.Charges = p.Charges
	b.DeclaredValue = p.DeclaredValue
	b.FixAmount = p.FixAmount
	b.ArticleAmount = p.ArticleAmount
	b.TotalAmount = p.TotalAmount
	b.Remarks = p.Remarks
	if p.BookingDate != "" {
		b.BookingDate = p.BookingDate
	}
	t := p.UpdatedAt
	b.UpdatedAt = &t
}

// fields returns the patch as document field updates.
func (p EditPatch) fields() map[string]interface{} {
	set := map[string]interface{}{
		"bookingType":   p.BookingType,
		"consignor":     p.Consignor,
		"consignee":     p.Consignee,
		"destination":   p.Destination,
		"isInterstate":  p.IsInterstate,
		"articles":      p.Articles,
		"charges":       p.Charges,
		"declaredValue": p.DeclaredValue,
		"fixAmount":     p.FixAmount,
		"articleAmount": p.ArticleAmount,
		"totalAmount":   p.TotalAmount,
		"remarks":       p.Remarks,
		"updatedAt":     p.UpdatedAt,
	}
	if p.BookingDate != "" {
		set["bookingDate"] = p.BookingDate
	}
	return set
}

// BookingRepository persists bookings. Lookups return nil, nil when the id is unknown.
type BookingRepository interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
	// UpdateBooking merges patch into the stored record and returns the
	// result, or nil when the id is unknown.
	UpdateBooking(ctx context.Context, id string, patch EditPatch) (*models.Booking, error)
	// ApplyTransition writes patch only while the stored status still equals from.
	ApplyTransition(ctx context.Context, id string, from models.Status, patch TransitionPatch) (bool, error)
	UpdatePDFURL(ctx context.Context, id, url string, t time.Time) error
	// DeleteBooking removes the record and returns it, or nil when the id is unknown.
	DeleteBooking(ctx context.Context, id string) (*models.Booking, error)
}

// Sequencer hands out booking sequence numbers atomically.
type Sequencer interface {
	NextSequence(ctx context.Context) (int64, error)
}

func cloneBooking(b *models.Booking) *models.Booking {
	if b == nil {
		return nil
	}
	out := *b
	if b.Articles != nil {
		out.Articles = append([]models.Article(nil), b.Articles...)
	}
	if b.Receiver != nil {
		r := *b.Receiver
		out.Receiver = &r
	}
	if b.UpdatedAt != nil {
		t := *b.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

// maxSequence returns the highest PT<n> among ids, floored so the next id is PT100.
func maxSequence(ids []string) int64 {
	floor := models.FirstSequence - 1
	for _, id := range ids {
		if n, ok := models.ParseID(id); ok && n > floor {
			floor = n
		}
	}
	return floor
}
