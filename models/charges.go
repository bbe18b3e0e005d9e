package models

// Charges holds the user-entered charge fields and the derived tax split.
type Charges struct {
	Freight     float64 `json:"freight" bson:"freight"`
	Pickup      float64 `json:"pickup" bson:"pickup"`
	DropCartage float64 `json:"dropCartage" bson:"dropCartage"`
	Loading     float64 `json:"loading" bson:"loading"`
	LRCharge    float64 `json:"lrCharge" bson:"lrCharge"`

	SGST       float64 `json:"sgst" bson:"sgst"`
	CGST       float64 `json:"cgst" bson:"cgst"`
	IGST       float64 `json:"igst" bson:"igst"`
	GrandTotal float64 `json:"grandTotal" bson:"grandTotal"`
}
