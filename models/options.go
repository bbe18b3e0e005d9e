package models

// Option list keys.
const (
	OptionDestinations = "destinations"
	OptionArticleTypes = "articleTypes"
)

// History fields recorded for autocomplete.
const (
	HistoryConsignorName = "consignorName"
	HistoryConsigneeName = "consigneeName"
	HistoryConsignorMob  = "consignorMobile"
	HistoryConsigneeMob  = "consigneeMobile"
)
