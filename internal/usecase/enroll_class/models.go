package enroll_class

import "time"

// Request enrolls a patient in a class session.
type Request struct {
	SessionID int64
	PatientID int64
}

// Response reports the enrollment and the package that paid for it.
type Response struct {
	EnrollmentID int64 `json:"enrollment_id"`
	SessionID    int64 `json:"session_id"`
	PatientID    int64 `json:"patient_id"`
	// PurchaseID is the package charged for the spot.
	PurchaseID int64 `json:"purchase_id"`
	// ClassesLeft is the package balance after the charge;
	// -1 for unlimited packages.
	ClassesLeft int       `json:"classes_left"`
	SpotsLeft   int       `json:"spots_left"`
	CreatedAt   time.Time `json:"created_at"`
}
