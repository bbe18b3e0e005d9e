package services

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"lrbooking/apperr"
	"lrbooking/models"
)

// BookingDraft is the client input for create and edit. Field order is the
// order in which validation failures are reported.
type BookingDraft struct {
	Destination   string             `json:"destination" validate:"required"`
	Consignor     models.Party       `json:"consignor"`
	Consignee     models.Party       `json:"consignee"`
	Articles      []models.Article   `json:"articles" validate:"required,min=1,dive"`
	BookingType   models.BookingType `json:"bookingType" validate:"omitempty,oneof=PAID TO_PAY"`
	BookingDate   string             `json:"bookingDate" validate:"omitempty,datetime=2006-01-02"`
	IsInterstate  bool               `json:"isInterstate"`
	Charges       models.Charges     `json:"charges"`
	DeclaredValue float64            `json:"declaredValue"`
	FixAmount     float64            `json:"fixAmount"`
	Remarks       string             `json:"remarks"`
}

func (d *BookingDraft) normalize() {
	d.Destination = strings.TrimSpace(d.Destination)
	trimParty(&d.Consignor)
	trimParty(&d.Consignee)
	for i := range d.Articles {
		d.Articles[i].Name = strings.TrimSpace(d.Articles[i].Name)
		d.Articles[i].ArticleType = strings.TrimSpace(d.Articles[i].ArticleType)
	}
	d.BookingType = models.BookingType(strings.ToUpper(strings.TrimSpace(string(d.BookingType))))
	if d.BookingType == "" {
		d.BookingType = models.BookingToPay
	}
	d.BookingDate = strings.TrimSpace(d.BookingDate)
	d.Remarks = strings.TrimSpace(d.Remarks)
}

func trimParty(p *models.Party) {
	p.Name = strings.TrimSpace(p.Name)
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Address = strings.TrimSpace(p.Address)
	p.GSTIN = strings.TrimSpace(p.GSTIN)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into an apperr
// validation error named by its json path, e.g. "articles[0].weightRate".
func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperr.Validation("", err.Error())
	}
	fe := errs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	return apperr.Validation(field, message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must be a YYYY-MM-DD date"
	default:
		return "is invalid"
	}
}
