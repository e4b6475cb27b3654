package enum

import (
	"encoding/json"
	"strings"
)

// PaymentMethod represents how the customer settled a sale
type PaymentMethod int

const (
	PaymentMethodPending PaymentMethod = 0
	PaymentMethodCash    PaymentMethod = 1
	PaymentMethodUPI     PaymentMethod = 2
	PaymentMethodCard    PaymentMethod = 3
)

func (p PaymentMethod) String() string {
	names := [...]string{"Pending", "Cash", "UPI", "Card"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Pending"
	}
	return names[p]
}

// ParsePaymentMethod is case-insensitive; unknown names map to Pending
func ParsePaymentMethod(s string) PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash
	case "upi":
		return PaymentMethodUPI
	case "card":
		return PaymentMethodCard
	default:
		return PaymentMethodPending
	}
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentMethod(i)
		return nil
	}
	*p = ParsePaymentMethod(str)
	return nil
}
