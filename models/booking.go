package models

import "time"

// DateLayout is the ISO date-only format used by every lifecycle date.
const DateLayout = "2006-01-02"

// IDPrefix prefixes every LR number, e.g. PT100.
const IDPrefix = "PT"

type BookingType string

const (
	BookingPaid  BookingType = "PAID"
	BookingToPay BookingType = "TO_PAY"
)

func (t BookingType) IsValid() bool {
	return t == BookingPaid || t == BookingToPay
}

type Booking struct {
	ID               string      `json:"id" bson:"_id"`
	BookingType      BookingType `json:"bookingType" bson:"bookingType"`
	Status           Status      `json:"status" bson:"status"`
	Consignor        Party       `json:"consignor" bson:"consignor"`
	Consignee        Party       `json:"consignee" bson:"consignee"`
	Receiver         *Party      `json:"receiver,omitempty" bson:"receiver,omitempty"`
	Destination      string      `json:"destination" bson:"destination"`
	IsInterstate     bool        `json:"isInterstate" bson:"isInterstate"`
	Articles         []Article   `json:"articles" bson:"articles"`
	Charges          Charges     `json:"charges" bson:"charges"`
	DeclaredValue    float64     `json:"declaredValue" bson:"declaredValue"`
	FixAmount        float64     `json:"fixAmount" bson:"fixAmount"`
	ArticleAmount    float64     `json:"articleAmount" bson:"articleAmount"`
	TotalAmount      float64     `json:"totalAmount" bson:"totalAmount"`
	DeliveryDiscount float64     `json:"deliveryDiscount" bson:"deliveryDiscount"`
	Remarks          string      `json:"remarks,omitempty" bson:"remarks,omitempty"`

	BookingDate  string `json:"bookingDate" bson:"bookingDate"`
	DispatchDate string `json:"dispatchDate,omitempty" bson:"dispatchDate,omitempty"`
	ReceiveDate  string `json:"receiveDate,omitempty" bson:"receiveDate,omitempty"`
	DeliveryDate string `json:"deliveryDate,omitempty" bson:"deliveryDate,omitempty"`

	PDFURL    string     `json:"pdfUrl,omitempty" bson:"pdfUrl,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PackageCount sums article quantities, counting each article as at least one package.
func (b *Booking) PackageCount() int {
	total := 0
	for _, a := range b.Articles {
		if a.Quantity < 1 {
			total++
			continue
		}
		total += a.Quantity
	}
	return total
}

// BookingFilter narrows ListBookings. Empty fields match everything.
type BookingFilter struct {
	Status      Status      `json:"status,omitempty"`
	BookingType BookingType `json:"bookingType,omitempty"`
	Destination string      `json:"destination,omitempty"`
}

// Match reports whether b satisfies every set field of f.
func (f BookingFilter) Match(b *Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.BookingType != "" && b.BookingType != f.BookingType {
		return false
	}
	if f.Destination != "" && b.Destination != f.Destination {
		return false
	}
	return true
}
