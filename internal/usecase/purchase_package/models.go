package purchase_package

import "time"

// Request purchases one Breathe & Move class package.
type Request struct {
	PatientID int64
	// Tier is a key of the package table, e.g. "x4" or "ilimitado".
	Tier          string
	PaymentMethod string
	// UseCredit applies the patient's available credit to the price.
	UseCredit bool
}

// Response is the completed purchase.
type Response struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patient_id"`
	Tier      string `json:"tier"`
	// ClassesLeft is -1 for unlimited packages.
	ClassesLeft   int       `json:"classes_left"`
	PriceList     int64     `json:"price_list"`
	CreditApplied int64     `json:"credit_applied"`
	AmountCharged int64     `json:"amount_charged"`
	PaymentMethod string    `json:"payment_method"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}
