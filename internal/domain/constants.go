package domain

// MainRoom names the clinic's only physical room. Appointments and classes
// all compete for it.
const MainRoom = "principal"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Field length limits enforced at the validation layer.
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// InactiveStatuses no longer occupy a slot and are excluded from
// conflict detection and availability counting.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByPatient,
	StatusCancelledByClinic,
	StatusNoShow,
}

// ActiveStatuses occupy their slot.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
