// Package reports derives booking, delivery and citywise summaries from a
// fetched list of bookings. Nothing here is persisted.
package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lrbooking/apperr"
	"lrbooking/models"
)

// TotalLabel names the synthetic row that sums every group.
const TotalLabel = "Total"

// Filter selects bookings by booking date. From and To are inclusive local
// days; zero values leave that side open.
type Filter struct {
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	Destination string             `json:"destination,omitempty"`
	BookingType models.BookingType `json:"bookingType,omitempty"`
}

// ParseFilter reads YYYY-MM-DD bounds in loc.
func ParseFilter(from, to, destination, bookingType string, loc *time.Location) (Filter, error) {
	f := Filter{
		Destination: strings.TrimSpace(destination),
		BookingType: models.BookingType(strings.ToUpper(strings.TrimSpace(bookingType))),
	}
	if f.BookingType != "" && !f.BookingType.IsValid() {
		return f, apperr.Validation("bookingType", "must be PAID or TO_PAY")
	}
	var err error
	if from != "" {
		if f.From, err = time.ParseInLocation(models.DateLayout, from, loc); err != nil {
			return f, apperr.Validation("from", "must be a YYYY-MM-DD date")
		}
	}
	if to != "" {
		if f.To, err = time.ParseInLocation(models.DateLayout, to, loc); err != nil {
			return f, apperr.Validation("to", "must be a YYYY-MM-DD date")
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, apperr.Validation("to", "must not be before from")
	}
	return f, nil
}

// bounds returns the range widened to local midnight and 23:59:59.999.
func (f Filter) bounds(loc *time.Location) (start, end time.Time) {
	if !f.From.IsZero() {
		y, m, d := f.From.In(loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	if !f.To.IsZero() {
		y, m, d := f.To.In(loc).Date()
		end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	}
	return start, end
}

type dateRange struct {
	start, end time.Time
	loc        *time.Location
}

func (r dateRange) contains(date string, fallback time.Time) bool {
	t, err := time.ParseInLocation(models.DateLayout, date, r.loc)
	if err != nil {
		if fallback.IsZero() {
			return r.start.IsZero() && r.end.IsZero()
		}
		t = fallback.In(r.loc)
	}
	if !r.start.IsZero() && t.Before(r.start) {
		return false
	}
	if !r.end.IsZero() && t.After(r.end) {
		return false
	}
	return true
}

// StatRow is one line of booking or delivery stats.
type StatRow struct {
	Label       string          `json:"label"`
	Count       int             `json:"count"`
	Packages    int             `json:"packages"`
	Freight     decimal.Decimal `json:"freight"`
	Pickup      decimal.Decimal `json:"pickup"`
	DropCartage decimal.Decimal `json:"dropCartage"`
	Loading     decimal.Decimal `json:"loading"`
	LRCharge    decimal.Decimal `json:"lrCharge"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r *StatRow) add(b *models.Booking, amount decimal.Decimal) {
	r.Count++
	r.Packages += b.PackageCount()
	r.Freight = r.Freight.Add(decimal.NewFromFloat(b.Charges.Freight))
	r.Pickup = r.Pickup.Add(decimal.NewFromFloat(b.Charges.Pickup))
	r.DropCartage = r.DropCartage.Add(decimal.NewFromFloat(b.Charges.DropCartage))
	r.Loading = r.Loading.Add(decimal.NewFromFloat(b.Charges.Loading))
	r.LRCharge = r.LRCharge.Add(decimal.NewFromFloat(b.Charges.LRCharge))
	r.Amount = r.Amount.Add(amount)
}

// Stats holds the per-type rows and their combined total.
type Stats struct {
	ToPay StatRow `json:"toPay"`
	Paid  StatRow `json:"paid"`
	Total StatRow `json:"total"`
}

// Rows returns the rows in print order.
func (s Stats) Rows() []StatRow {
	return []StatRow{s.ToPay, s.Paid, s.Total}
}

func newStats() Stats {
	return Stats{
		ToPay: StatRow{Label: string(models.BookingToPay)},
		Paid:  StatRow{Label: string(models.BookingPaid)},
		Total: StatRow{Label: TotalLabel},
	}
}

func (s *Stats) add(b *models.Booking, amount decimal.Decimal) {
	switch b.BookingType {
	case models.BookingPaid:
		s.Paid.add(b, amount)
	case models.BookingToPay:
		s.ToPay.add(b, amount)
	}
	s.Total.add(b, amount)
}

// CityRow is one destination of the citywise view.
type CityRow struct {
	Destination string          `json:"destination"`
	Paid        decimal.Decimal `json:"paid"`
	ToPay       decimal.Decimal `json:"toPay"`
	Total       decimal.Decimal `json:"total"`
}

// Report is the full set of views over one filtered booking list.
type Report struct {
	Filter   Filter            `json:"filter"`
	Booking  Stats             `json:"bookingStats"`
	Delivery Stats             `json:"deliveryStats"`
	Cities   []CityRow         `json:"cityStats"`
	Bookings []*models.Booking `json:"bookings"`
}

// Build filters by date range, then destination, and computes every view.
// The booking type filter narrows only the detail list.
func Build(bookings []*models.Booking, f Filter, loc *time.Location) Report {
	if loc == nil {
		loc = time.Local
	}
	filtered := byDestination(byBookingDate(bookings, f, loc), f.Destination)

	rep := Report{
		Filter:   f,
		Booking:  BookingStats(filtered),
		Delivery: DeliveryStats(filtered),
		Cities:   CityStats(filtered),
		Bookings: byType(filtered, f.BookingType),
	}
	sortByID(rep.Bookings)
	return rep
}

// BookingStats sums every booking, amount being totalAmount.
func BookingStats(bookings []*models.Booking) Stats {
	s := newStats()
	for _, b := range bookings {
		s.add(b, decimal.NewFromFloat(b.TotalAmount))
	}
	return s
}

// DeliveryStats covers Delivered and Received bookings, amount being
// freight less the delivery discount.
func DeliveryStats(bookings []*models.Booking) Stats {
	s := newStats()
	for _, b := range bookings {
		if !b.Status.CountsAsDelivered() {
			continue
		}
		amount := decimal.NewFromFloat(b.Charges.Freight).Sub(decimal.NewFromFloat(b.DeliveryDiscount))
		s.add(b, amount)
	}
	return s
}

// CityStats groups by destination, sorted by name, with a final Total row.
func CityStats(bookings []*models.Booking) []CityRow {
	index := map[string]int{}
	var rows []CityRow
	for _, b := range bookings {
		i, ok := index[b.Destination]
		if !ok {
			i = len(rows)
			index[b.Destination] = i
			rows = append(rows, CityRow{Destination: b.Destination})
		}
		amount := decimal.NewFromFloat(b.TotalAmount)
		switch b.BookingType {
		case models.BookingPaid:
			rows[i].Paid = rows[i].Paid.Add(amount)
		case models.BookingToPay:
			rows[i].ToPay = rows[i].ToPay.Add(amount)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Destination < rows[j].Destination
	})

	total := CityRow{Destination: TotalLabel}
	for i := range rows {
		rows[i].Total = rows[i].Paid.Add(rows[i].ToPay)
		total.Paid = total.Paid.Add(rows[i].Paid)
		total.ToPay = total.ToPay.Add(rows[i].ToPay)
	}
	total.Total = total.Paid.Add(total.ToPay)
	return append(rows, total)
}

// Dispatch lists bookings whose dispatch date falls in the range, oldest
// dispatch first. The type filter applies here as well.
func Dispatch(bookings []*models.Booking, f Filter, loc *time.Location) []*models.Booking {
	if loc == nil {
		loc = time.Local
	}
	start, end := f.bounds(loc)
	r := dateRange{start: start, end: end, loc: loc}

	var out []*models.Booking
	for _, b := range bookings {
		if b.DispatchDate == "" || !r.contains(b.DispatchDate, time.Time{}) {
			continue
		}
		out = append(out, b)
	}
	out = byType(byDestination(out, f.Destination), f.BookingType)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DispatchDate != out[j].DispatchDate {
			return out[i].DispatchDate < out[j].DispatchDate
		}
		return idNumber(out[i]) < idNumber(out[j])
	})
	return out
}

func byBookingDate(bookings []*models.Booking, f Filter, loc *time.Location) []*models.Booking {
	start, end := f.bounds(loc)
	r := dateRange{start: start, end: end, loc: loc}
	out := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && r.contains(b.BookingDate, b.CreatedAt) {
			out = append(out, b)
		}
	}
	return out
}

func byDestination(bookings []*models.Booking, destination string) []*models.Booking {
	if destination == "" {
		return bookings
	}
	out := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if strings.EqualFold(b.Destination, destination) {
			out = append(out, b)
		}
	}
	return out
}

func byType(bookings []*models.Booking, t models.BookingType) []*models.Booking {
	out := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if t == "" || b.BookingType == t {
			out = append(out, b)
		}
	}
	return out
}

func idNumber(b *models.Booking) int64 {
	n, _ := models.ParseID(b.ID)
	return n
}

func sortByID(bookings []*models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return idNumber(bookings[i]) < idNumber(bookings[j])
	})
}
