package models

// Status is the booking lifecycle state.
type Status string

const (
	StatusBooked        Status = "Booked"
	StatusDispatched    Status = "Dispatched"
	StatusInTransit     Status = "In Transit"
	StatusReceived      Status = "Received"
	StatusDelivered     Status = "Delivered"
	StatusNotReceived   Status = "Not Received"
	StatusNotDispatched Status = "Not Dispatched"
)

// DateField names the lifecycle date stamped by a transition.
type DateField string

const (
	DateBooking  DateField = "bookingDate"
	DateDispatch DateField = "dispatchDate"
	DateReceive  DateField = "receiveDate"
	DateDelivery DateField = "deliveryDate"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusDispatched, StatusInTransit, StatusReceived,
		StatusDelivered, StatusNotReceived, StatusNotDispatched:
		return true
	default:
		return false
	}
}

// IsOutOfBand reports statuses that are set manually and carry no transition contract.
func (s Status) IsOutOfBand() bool {
	return s == StatusInTransit || s == StatusNotDispatched || s == StatusNotReceived
}

// IsTerminal reports whether no forward transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// CountsAsDelivered is used by delivery reports.
func (s Status) CountsAsDelivered() bool {
	return s == StatusDelivered || s == StatusReceived
}
