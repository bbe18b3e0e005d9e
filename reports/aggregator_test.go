package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrbooking/apperr"
	"lrbooking/models"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func booking(id string, t models.BookingType, dest, date string, amount float64) *models.Booking {
	return &models.Booking{
		ID:          id,
		BookingType: t,
		Status:      models.StatusBooked,
		Destination: dest,
		BookingDate: date,
		TotalAmount: amount,
		Articles:    []models.Article{{Name: "Box", Quantity: 2}},
	}
}

func assertDecimal(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromFloat(want).Equal(got), "want %v, got %s", want, got)
}

func TestBookingStatsTotals(t *testing.T) {
	rep := Build([]*models.Booking{
		booking("PT100", models.BookingPaid, "Pune", "2024-03-01", 100),
		booking("PT101", models.BookingToPay, "Nagpur", "2024-03-01", 50),
	}, Filter{}, ist)

	assert.Equal(t, 2, rep.Booking.Total.Count)
	assertDecimal(t, 150, rep.Booking.Total.Amount)
	assert.Equal(t, 1, rep.Booking.Paid.Count)
	assertDecimal(t, 100, rep.Booking.Paid.Amount)
	assertDecimal(t, 50, rep.Booking.ToPay.Amount)
	assert.Equal(t, 4, rep.Booking.Total.Packages)
}

func TestPackagesCountEachArticleAtLeastOnce(t *testing.T) {
	b := booking("PT100", models.BookingPaid, "Pune", "2024-03-01", 0)
	b.Articles = []models.Article{{Quantity: 0}, {Quantity: 3}}

	s := BookingStats([]*models.Booking{b})
	assert.Equal(t, 4, s.Total.Packages)
}

func TestCityStats(t *testing.T) {
	rows := CityStats([]*models.Booking{
		booking("PT100", models.BookingPaid, "Pune", "2024-03-01", 200),
		booking("PT101", models.BookingToPay, "Pune", "2024-03-01", 80),
		booking("PT102", models.BookingToPay, "Mumbai", "2024-03-01", 20),
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "Mumbai", rows[0].Destination)
	assert.Equal(t, "Pune", rows[1].Destination)
	assertDecimal(t, 200, rows[1].Paid)
	assertDecimal(t, 80, rows[1].ToPay)
	assertDecimal(t, 280, rows[1].Total)

	total := rows[2]
	assert.Equal(t, TotalLabel, total.Destination)
	assertDecimal(t, 200, total.Paid)
	assertDecimal(t, 100, total.ToPay)
	assertDecimal(t, 300, total.Total)
}

func TestCityStatsEmpty(t *testing.T) {
	rows := CityStats(nil)
	require.Len(t, rows, 1)
	assert.Equal(t, TotalLabel, rows[0].Destination)
	assert.True(t, rows[0].Total.IsZero())
}

func TestDeliveryStats(t *testing.T) {
	delivered := booking("PT100", models.BookingToPay, "Pune", "2024-03-01", 500)
	delivered.Status = models.StatusDelivered
	delivered.Charges.Freight = 300
	delivered.DeliveryDiscount = 25

	received := booking("PT101", models.BookingPaid, "Pune", "2024-03-01", 500)
	received.Status = models.StatusReceived
	received.Charges.Freight = 100

	dispatched := booking("PT102", models.BookingPaid, "Pune", "2024-03-01", 500)
	dispatched.Status = models.StatusDispatched
	dispatched.Charges.Freight = 999

	s := DeliveryStats([]*models.Booking{delivered, received, dispatched})
	assert.Equal(t, 2, s.Total.Count)
	assertDecimal(t, 275, s.ToPay.Amount)
	assertDecimal(t, 100, s.Paid.Amount)
	assertDecimal(t, 375, s.Total.Amount)
	assertDecimal(t, 400, s.Total.Freight)
}

func TestDateRangeIsInclusive(t *testing.T) {
	list := []*models.Booking{
		booking("PT100", models.BookingPaid, "Pune", "2024-02-29", 1),
		booking("PT101", models.BookingPaid, "Pune", "2024-03-01", 2),
		booking("PT102", models.BookingPaid, "Pune", "2024-03-31", 4),
		booking("PT103", models.BookingPaid, "Pune", "2024-04-01", 8),
	}
	f, err := ParseFilter("2024-03-01", "2024-03-31", "", "", ist)
	require.NoError(t, err)

	rep := Build(list, f, ist)
	assert.Equal(t, 2, rep.Booking.Total.Count)
	assertDecimal(t, 6, rep.Booking.Total.Amount)
}

func TestFilterOrder(t *testing.T) {
	list := []*models.Booking{
		booking("PT105", models.BookingPaid, "Pune", "2024-03-02", 10),
		booking("PT101", models.BookingToPay, "Pune", "2024-03-02", 20),
		booking("PT102", models.BookingPaid, "Nagpur", "2024-03-02", 40),
		booking("PT103", models.BookingPaid, "Pune", "2024-01-02", 80),
	}
	f, err := ParseFilter("2024-03-01", "2024-03-31", "pune", "PAID", ist)
	require.NoError(t, err)

	rep := Build(list, f, ist)

	// Stats cover both types; only the detail list honours the type filter.
	assert.Equal(t, 2, rep.Booking.Total.Count)
	assertDecimal(t, 30, rep.Booking.Total.Amount)
	require.Len(t, rep.Cities, 2)
	assertDecimal(t, 30, rep.Cities[0].Total)

	require.Len(t, rep.Bookings, 1)
	assert.Equal(t, "PT105", rep.Bookings[0].ID)
}

func TestDetailListOrderedByID(t *testing.T) {
	rep := Build([]*models.Booking{
		booking("PT110", models.BookingPaid, "Pune", "2024-03-02", 1),
		booking("PT99", models.BookingPaid, "Pune", "2024-03-02", 1),
		booking("PT101", models.BookingPaid, "Pune", "2024-03-02", 1),
	}, Filter{}, ist)

	var ids []string
	for _, b := range rep.Bookings {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"PT99", "PT101", "PT110"}, ids)
}

func TestParseFilterErrors(t *testing.T) {
	_, err := ParseFilter("03/01/2024", "", "", "", ist)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = ParseFilter("2024-03-05", "2024-03-01", "", "", ist)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = ParseFilter("", "", "", "CASH", ist)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDispatch(t *testing.T) {
	a := booking("PT100", models.BookingPaid, "Pune", "2024-02-20", 1)
	a.DispatchDate = "2024-03-04"
	b := booking("PT101", models.BookingToPay, "Pune", "2024-02-21", 1)
	b.DispatchDate = "2024-03-02"
	notYet := booking("PT102", models.BookingPaid, "Pune", "2024-03-01", 1)
	late := booking("PT103", models.BookingPaid, "Pune", "2024-03-01", 1)
	late.DispatchDate = "2024-04-10"

	f, err := ParseFilter("2024-03-01", "2024-03-31", "", "", ist)
	require.NoError(t, err)

	out := Dispatch([]*models.Booking{a, b, notYet, late}, f, ist)
	require.Len(t, out, 2)
	assert.Equal(t, "PT101", out[0].ID)
	assert.Equal(t, "PT100", out[1].ID)
}
