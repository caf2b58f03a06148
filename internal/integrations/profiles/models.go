package profiles

// Patient is a patient record from the profiles directory.
type Patient struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

// Professional is a clinician or instructor from the profiles directory.
type Professional struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	// Staff marks users allowed to manage clinic-wide resources
	// (schedule classes, cancel on behalf of the clinic).
	Staff  bool `json:"staff"`
	Active bool `json:"active"`
}

// ErrorResponse is the directory's error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
