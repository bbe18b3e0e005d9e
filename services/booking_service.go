package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"lrbooking/apperr"
	"lrbooking/calculator"
	"lrbooking/logger"
	"lrbooking/metrics"
	"lrbooking/models"
	"lrbooking/repository"
)

// step is one allowed forward move and the date it stamps.
type step struct {
	to    models.Status
	field models.DateField
}

var forward = map[models.Status][]step{
	models.StatusBooked:     {{models.StatusDispatched, models.DateDispatch}},
	models.StatusDispatched: {{models.StatusReceived, models.DateReceive}, {models.StatusDelivered, models.DateDelivery}},
	models.StatusReceived:   {{models.StatusDelivered, models.DateDelivery}},
}

// DeliveryRequest carries the delivery-only fields. A nil Receiver means the
// consignee took delivery.
type DeliveryRequest struct {
	Receiver         *models.Party `json:"receiver,omitempty"`
	DeliveryDiscount float64       `json:"deliveryDiscount"`
}

type BookingService struct {
	Repo      repository.BookingRepository
	Sequencer repository.Sequencer
	Options   repository.OptionStore
	Parties   repository.PartyCache
	// Files holds stored invoices; nil leaves them in place on Remove.
	Files    FileStore
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Location *time.Location
	Now      func() time.Time

	validate *validator.Validate
}

// NewBookingService wires the stores. options and parties may be nil, in
// which case the derived lists are not maintained.
func NewBookingService(repo repository.BookingRepository, seq repository.Sequencer, options repository.OptionStore, parties repository.PartyCache, log *logger.Logger) *BookingService {
	if log == nil {
		log = logger.Nop()
	}
	return &BookingService{
		Repo:      repo,
		Sequencer: seq,
		Options:   options,
		Parties:   parties,
		Logger:    log.WithComponent("bookings"),
		Location:  time.Local,
		Now:       time.Now,
		validate:  newValidator(),
	}
}

func (s *BookingService) now() time.Time {
	return s.Now().In(s.Location)
}

func (s *BookingService) today() string {
	return s.now().Format(models.DateLayout)
}

func (s *BookingService) check(d *BookingDraft) error {
	d.normalize()
	if err := s.validate.Struct(d); err != nil {
		return validationError(err)
	}
	return nil
}

// CreateBooking validates the draft, assigns the next id and stores the
// booking with status Booked.
func (s *BookingService) CreateBooking(ctx context.Context, d BookingDraft) (*models.Booking, error) {
	if err := s.check(&d); err != nil {
		return nil, err
	}

	known := s.knownDestinations(ctx)

	seq, err := s.Sequencer.NextSequence(ctx)
	if err != nil {
		return nil, apperr.TransientIO("assign booking id", err)
	}

	now := s.now()
	b := &models.Booking{
		ID:            models.FormatID(seq),
		BookingType:   d.BookingType,
		Status:        models.StatusBooked,
		Consignor:     d.Consignor,
		Consignee:     d.Consignee,
		Destination:   d.Destination,
		IsInterstate:  d.IsInterstate,
		Articles:      append([]models.Article(nil), d.Articles...),
		Charges:       d.Charges,
		DeclaredValue: d.DeclaredValue,
		FixAmount:     d.FixAmount,
		Remarks:       d.Remarks,
		BookingDate:   d.BookingDate,
		CreatedAt:     now,
	}
	if b.BookingDate == "" {
		b.BookingDate = now.Format(models.DateLayout)
	}
	calculator.Apply(b)

	if err := s.Repo.CreateBooking(ctx, b); err != nil {
		return nil, apperr.TransientIO("create booking", err)
	}

	s.Metrics.BookingCreated(string(b.BookingType))
	log := logger.FromContext(ctx, s.Logger)
	log.Infow("booking created", "id", b.ID, "type", b.BookingType, "destination", b.Destination, "grandTotal", b.Charges.GrandTotal)

	s.remember(ctx, b, known)
	return b, nil
}

// UpdateBooking replaces the client fields of an existing booking and
// recomputes its charges. Status, lifecycle dates and pdfUrl are kept,
// including any written by a transition that lands during the edit.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, d BookingDraft) (*models.Booking, error) {
	if err := s.check(&d); err != nil {
		return nil, err
	}
	known := s.knownDestinations(ctx)

	edit := &models.Booking{
		BookingType:   d.BookingType,
		Consignor:     d.Consignor,
		Consignee:     d.Consignee,
		Destination:   d.Destination,
		IsInterstate:  d.IsInterstate,
		Articles:      append([]models.Article(nil), d.Articles...),
		Charges:       d.Charges,
		DeclaredValue: d.DeclaredValue,
		FixAmount:     d.FixAmount,
		Remarks:       d.Remarks,
		BookingDate:   d.BookingDate,
	}
	calculator.Apply(edit)

	b, err := s.Repo.UpdateBooking(ctx, id, repository.EditFrom(edit, s.now()))
	if err != nil {
		return nil, apperr.TransientIO("update booking", err)
	}
	if b == nil {
		return nil, apperr.NotFound("booking %s not found", id)
	}
	logger.FromContext(ctx, s.Logger).Infow("booking updated", "id", b.ID, "status", b.Status, "grandTotal", b.Charges.GrandTotal)

	s.remember(ctx, b, known)
	return b, nil
}

// Transition moves a booking one step forward and stamps the step's date.
// dateField is optional; when set it must name the step's date.
func (s *BookingService) Transition(ctx context.Context, id string, target models.Status, dateField models.DateField) (*models.Booking, error) {
	if !target.IsValid() {
		return nil, apperr.Validation("status", "unknown status "+string(target))
	}
	return s.transition(ctx, id, target, dateField, nil)
}

func (s *BookingService) Dispatch(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusDispatched, "", nil)
}

func (s *BookingService) Receive(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusReceived, "", nil)
}

// Deliver records who took the goods and the discount given at delivery.
func (s *BookingService) Deliver(ctx context.Context, id string, req DeliveryRequest) (*models.Booking, error) {
	if req.DeliveryDiscount < 0 {
		return nil, apperr.Validation("deliveryDiscount", "must not be negative")
	}
	return s.transition(ctx, id, models.StatusDelivered, "", func(b *models.Booking, p *repository.TransitionPatch) {
		receiver := b.Consignee
		if req.Receiver != nil && !req.Receiver.IsZero() {
			receiver = *req.Receiver
			trimParty(&receiver)
		}
		discount := req.DeliveryDiscount
		p.Receiver = &receiver
		p.DeliveryDiscount = &discount
	})
}

func (s *BookingService) transition(ctx context.Context, id string, target models.Status, dateField models.DateField, extra func(*models.Booking, *repository.TransitionPatch)) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var next *step
	for _, st := range forward[b.Status] {
		if st.to == target {
			next = &st
			break
		}
	}
	if next == nil {
		return nil, apperr.InvalidTransition("booking %s cannot move from %s to %s", id, b.Status, target)
	}
	if dateField != "" && dateField != next.field {
		return nil, apperr.Validation("dateField", "a move to "+string(target)+" stamps "+string(next.field))
	}

	now := s.now()
	patch := repository.TransitionPatch{
		To:        target,
		DateField: next.field,
		Date:      now.Format(models.DateLayout),
		UpdatedAt: now,
	}
	if extra != nil {
		extra(b, &patch)
	}
	if err := s.apply(ctx, b, patch); err != nil {
		return nil, err
	}
	return b, nil
}

// SetStatus sets one of the manual statuses (In Transit, Not Dispatched,
// Not Received). No date is stamped.
func (s *BookingService) SetStatus(ctx context.Context, id string, status models.Status) (*models.Booking, error) {
	if !status.IsOutOfBand() {
		return nil, apperr.Validation("status", "only In Transit, Not Dispatched or Not Received can be set manually")
	}
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, apperr.InvalidTransition("booking %s is already %s", id, b.Status)
	}
	patch := repository.TransitionPatch{To: status, UpdatedAt: s.now()}
	if err := s.apply(ctx, b, patch); err != nil {
		return nil, err
	}
	return b, nil
}

// apply writes patch conditionally on b's current status and updates b.
func (s *BookingService) apply(ctx context.Context, b *models.Booking, patch repository.TransitionPatch) error {
	from := b.Status
	ok, err := s.Repo.ApplyTransition(ctx, b.ID, from, patch)
	if err != nil {
		return apperr.TransientIO("update booking status", err)
	}
	if !ok {
		current, err := s.Repo.GetBooking(ctx, b.ID)
		if err != nil {
			return apperr.TransientIO("load booking", err)
		}
		if current == nil {
			return apperr.NotFound("booking %s not found", b.ID)
		}
		return apperr.InvalidTransition("booking %s changed to %s concurrently", b.ID, current.Status)
	}
	patch.Apply(b)

	s.Metrics.Transition(string(patch.To))
	logger.FromContext(ctx, s.Logger).Infow("booking status changed", "id", b.ID, "from", from, "to", patch.To)
	return nil
}

// Remove deletes a booking and then its stored invoice. A failed file
// delete is logged and does not fail the request.
func (s *BookingService) Remove(ctx context.Context, id string) error {
	b, err := s.Repo.DeleteBooking(ctx, id)
	if err != nil {
		return apperr.TransientIO("delete booking", err)
	}
	if b == nil {
		return apperr.NotFound("booking %s not found", id)
	}
	log := logger.FromContext(ctx, s.Logger)
	log.Infow("booking removed", "id", id)

	if b.PDFURL != "" && s.Files != nil {
		if err := s.Files.Delete(ctx, b.PDFURL); err != nil {
			log.Warnw("invoice file not deleted", "id", id, "pdfUrl", b.PDFURL, "error", err)
		}
	}
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetBooking(ctx, id)
	if err != nil {
		return nil, apperr.TransientIO("load booking", err)
	}
	if b == nil {
		return nil, apperr.NotFound("booking %s not found", id)
	}
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	list, err := s.Repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, apperr.TransientIO("list bookings", err)
	}
	return list, nil
}
