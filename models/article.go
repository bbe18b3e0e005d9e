package models

type Article struct {
	Name          string  `json:"name" bson:"name" validate:"required"`
	ArticleType   string  `json:"articleType,omitempty" bson:"articleType,omitempty"`
	Quantity      int     `json:"quantity" bson:"quantity"`
	ActualWeight  float64 `json:"actualWeight" bson:"actualWeight" validate:"gt=0"`
	ChargedWeight float64 `json:"chargedWeight,omitempty" bson:"chargedWeight,omitempty"`
	WeightRate    float64 `json:"weightRate" bson:"weightRate" validate:"gt=0"`

	// Derived by the calculator; client values are overwritten.
	WeightAmount  float64 `json:"weightAmount" bson:"weightAmount"`
	ArticleAmount float64 `json:"articleAmount" bson:"articleAmount"`
}
