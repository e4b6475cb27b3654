package entity

import "github.com/shopspring/decimal"

func init() {
	// money travels as plain JSON numbers, matching the stored records
	decimal.MarshalJSONWithoutQuotes = true
}
