package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrbooking/apperr"
	"lrbooking/models"
	"lrbooking/repository"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*BookingService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, store, store, store, nil)
	svc.Location = time.UTC
	svc.Now = func() time.Time { return fixedNow }
	return svc, store
}

func validDraft() BookingDraft {
	return BookingDraft{
		Destination: "Pune",
		Consignor:   models.Party{Name: "Ravi Traders", Mobile: "9876500000"},
		Consignee:   models.Party{Name: "Sai Stores", Mobile: "9822000000", Address: "MG Road"},
		Articles: []models.Article{
			{Name: "Box", ArticleType: "Carton", Quantity: 2, ActualWeight: 10, WeightRate: 5},
		},
		BookingType: models.BookingPaid,
	}
}

// countingRepo records whether any write reached the store.
type countingRepo struct {
	repository.BookingRepository
	mu     sync.Mutex
	writes int
}

func (c *countingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
	return c.BookingRepository.CreateBooking(ctx, b)
}

// editRaceRepo runs beforeEdit between the service's edit and the store write.
type editRaceRepo struct {
	repository.BookingRepository
	beforeEdit func()
}

func (r *editRaceRepo) UpdateBooking(ctx context.Context, id string, patch repository.EditPatch) (*models.Booking, error) {
	if r.beforeEdit != nil {
		r.beforeEdit()
		r.beforeEdit = nil
	}
	return r.BookingRepository.UpdateBooking(ctx, id, patch)
}

type failingSequencer struct{}

func (failingSequencer) NextSequence(context.Context) (int64, error) {
	return 0, errors.New("counter unavailable")
}

func TestCreateBookingAssignsFirstID(t *testing.T) {
	svc, _ := newTestService(t)

	b, err := svc.CreateBooking(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, "PT100", b.ID)
	assert.Equal(t, models.StatusBooked, b.Status)
	assert.Equal(t, "2024-03-15", b.BookingDate)
	assert.Equal(t, 50.0, b.ArticleAmount)
	assert.Equal(t, 50.0, b.TotalAmount)
	assert.Equal(t, 52.5, b.Charges.GrandTotal)
	assert.Equal(t, 1.25, b.Charges.SGST)
	assert.Zero(t, b.Charges.IGST)

	second, err := svc.CreateBooking(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, "PT101", second.ID)
}

func TestCreateBookingKeepsGivenDate(t *testing.T) {
	svc, _ := newTestService(t)
	d := validDraft()
	d.BookingDate = "2024-01-02"

	b, err := svc.CreateBooking(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", b.BookingDate)
}

func TestCreateBookingDefaultsToPay(t *testing.T) {
	svc, _ := newTestService(t)
	d := validDraft()
	d.BookingType = ""

	b, err := svc.CreateBooking(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, models.BookingToPay, b.BookingType)
}

func TestCreateBookingValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *BookingDraft)
		field string
	}{
		{"destination first", func(d *BookingDraft) { d.Destination = " "; d.Consignor.Name = "" }, "destination"},
		{"consignor name", func(d *BookingDraft) { d.Consignor.Name = ""; d.Consignee.Mobile = "" }, "consignor.name"},
		{"consignor mobile", func(d *BookingDraft) { d.Consignor.Mobile = "" }, "consignor.mobile"},
		{"consignee name", func(d *BookingDraft) { d.Consignee.Name = "" }, "consignee.name"},
		{"consignee mobile", func(d *BookingDraft) { d.Consignee.Mobile = "" }, "consignee.mobile"},
		{"no articles", func(d *BookingDraft) { d.Articles = nil }, "articles"},
		{"article name", func(d *BookingDraft) { d.Articles[0].Name = "" }, "articles[0].name"},
		{"article weight", func(d *BookingDraft) { d.Articles[0].ActualWeight = 0 }, "articles[0].actualWeight"},
		{"article rate", func(d *BookingDraft) { d.Articles[0].WeightRate = 0 }, "articles[0].weightRate"},
		{"booking type", func(d *BookingDraft) { d.BookingType = "CASH" }, "bookingType"},
		{"booking date", func(d *BookingDraft) { d.BookingDate = "15/03/2024" }, "bookingDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			repo := &countingRepo{BookingRepository: store}
			svc := NewBookingService(repo, store, store, store, nil)

			d := validDraft()
			tt.edit(&d)
			_, err := svc.CreateBooking(context.Background(), d)

			require.ErrorIs(t, err, apperr.ErrValidation)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Zero(t, repo.writes)
		})
	}
}

func TestCreateBookingSequencerFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, failingSequencer{}, store, store, nil)

	_, err := svc.CreateBooking(context.Background(), validDraft())
	assert.ErrorIs(t, err, apperr.ErrTransientIO)

	list, err := store.ListBookings(context.Background(), models.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateBookingConcurrentIDsAreUnique(t *testing.T) {
	svc, _ := newTestService(t)

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := svc.CreateBooking(context.Background(), validDraft())
			if assert.NoError(t, err) {
				ids <- b.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestCreateBookingRemembersOptions(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	dests, err := svc.ListOptions(ctx, models.OptionDestinations)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pune"}, dests)

	types, err := svc.ListOptions(ctx, models.OptionArticleTypes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Carton"}, types)

	names, err := svc.History(ctx, models.HistoryConsigneeName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sai Stores"}, names)

	consignees, err := store.Consignees(ctx, "Pune")
	require.NoError(t, err)
	assert.Len(t, consignees, 1)

	addr, err := svc.Address(ctx, "Pune")
	require.NoError(t, err)
	assert.Equal(t, "MG Road", addr)
}

func TestUpdateBookingRecomputes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, b.ID)
	require.NoError(t, err)

	d := validDraft()
	d.IsInterstate = true
	updated, err := svc.UpdateBooking(ctx, b.ID, d)
	require.NoError(t, err)

	assert.Equal(t, b.ID, updated.ID)
	assert.Equal(t, models.StatusDispatched, updated.Status)
	assert.Equal(t, "2024-03-15", updated.DispatchDate)
	assert.Equal(t, 2.5, updated.Charges.IGST)
	assert.Zero(t, updated.Charges.SGST)
	assert.Zero(t, updated.Charges.CGST)
	assert.Equal(t, 52.5, updated.Charges.GrandTotal)

	_, err = svc.UpdateBooking(ctx, "PT999", validDraft())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateBookingKeepsConcurrentDispatch(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	race := &editRaceRepo{BookingRepository: store}
	race.beforeEdit = func() {
		_, err := svc.Dispatch(ctx, b.ID)
		require.NoError(t, err)
	}
	svc.Repo = race

	d := validDraft()
	d.Remarks = "fragile"
	updated, err := svc.UpdateBooking(ctx, b.ID, d)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, updated.Status)
	assert.Equal(t, "2024-03-15", updated.DispatchDate)
	assert.Equal(t, "fragile", updated.Remarks)

	stored, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, stored.Status)
	assert.Equal(t, "2024-03-15", stored.DispatchDate)
	assert.Equal(t, "fragile", stored.Remarks)
	assert.Equal(t, b.BookingDate, stored.BookingDate)
}

func TestLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	b, err = svc.Transition(ctx, b.ID, models.StatusDispatched, models.DateDispatch)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDispatched, b.Status)
	assert.Equal(t, "2024-03-15", b.DispatchDate)

	b, err = svc.Receive(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", b.ReceiveDate)

	b, err = svc.Deliver(ctx, b.ID, DeliveryRequest{DeliveryDiscount: 10})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, b.Status)
	assert.Equal(t, "2024-03-15", b.DeliveryDate)
	assert.Equal(t, 10.0, b.DeliveryDiscount)
	require.NotNil(t, b.Receiver)
	assert.Equal(t, "Sai Stores", b.Receiver.Name)

	stored, err := svc.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, stored.Status)
	assert.Equal(t, "Sai Stores", stored.Receiver.Name)
}

func TestDeliverWithReceiver(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, b.ID)
	require.NoError(t, err)

	b, err = svc.Deliver(ctx, b.ID, DeliveryRequest{Receiver: &models.Party{Name: " Anil ", Mobile: "9000000000"}})
	require.NoError(t, err)
	assert.Equal(t, "Anil", b.Receiver.Name)
	assert.Empty(t, b.ReceiveDate)

	_, err = svc.Deliver(ctx, b.ID, DeliveryRequest{DeliveryDiscount: -1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTransitionRejections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, b.ID, models.StatusDelivered, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = svc.Transition(ctx, b.ID, models.StatusDispatched, models.DateReceive)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Transition(ctx, b.ID, "Lost", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Transition(ctx, "PT999", models.StatusDispatched, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Dispatch(ctx, b.ID)
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, b.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = svc.Deliver(ctx, b.ID, DeliveryRequest{})
	require.NoError(t, err)
	_, err = svc.Receive(ctx, b.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestConcurrentTransitionsApplyOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Dispatch(ctx, b.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestSetStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	b, err = svc.SetStatus(ctx, b.ID, models.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInTransit, b.Status)
	assert.Empty(t, b.DispatchDate)

	_, err = svc.SetStatus(ctx, b.ID, models.StatusDelivered)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Dispatch(ctx, b.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, b.ID))
	_, err = svc.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, b.ID), apperr.ErrNotFound)
}

func TestRemoveDeletesInvoiceFile(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	files := &memFiles{}
	svc.Files = files

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)
	url, err := files.Save(ctx, "PT100_invoice.pdf", []byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, store.UpdatePDFURL(ctx, b.ID, url, fixedNow))

	require.NoError(t, svc.Remove(ctx, b.ID))
	assert.Empty(t, files.files)
}

func TestRemoveSucceedsWhenFileDeleteFails(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	svc.Files = &memFiles{err: errors.New("bucket down")}

	b, err := svc.CreateBooking(ctx, validDraft())
	require.NoError(t, err)
	require.NoError(t, store.UpdatePDFURL(ctx, b.ID, "https://files.example/PT100_invoice.pdf", fixedNow))

	require.NoError(t, svc.Remove(ctx, b.ID))
	_, err = svc.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestHistoryRejectsUnknownField(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.History(context.Background(), "password")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
