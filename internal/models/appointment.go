package models

import "gorm.io/datatypes"

// Well-known appointment statuses. Status stays a free-form string, so any
// other value a caller stores is kept as is.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment links a patient and a doctor by id. The references are not
// resolved here.
type Appointment struct {
	ID        string                      `json:"id" gorm:"primaryKey"`
	PatientID string                      `json:"patient_id" gorm:"index"`
	DoctorID  string                      `json:"doctor_id" gorm:"index"`
	Date      string                      `json:"date"` // unvalidated
	Reason    string                      `json:"reason"`
	Status    string                      `json:"status" gorm:"index"`
	Notes     datatypes.JSONSlice[string] `json:"notes"`
	InvoiceID *string                     `json:"invoice_id"`
}

// NewAppointment creates a Pending appointment with no notes and no invoice.
func NewAppointment(id, patientID, doctorID, date, reason string) *Appointment {
	return &Appointment{
		ID:        id,
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Reason:    reason,
		Status:    StatusPending,
		Notes:     datatypes.JSONSlice[string]{},
	}
}

// SetStatus overwrites the status. There is no transition table.
func (a *Appointment) SetStatus(status string) {
	a.Status = status
}

// AddNote appends a free-text note.
func (a *Appointment) AddNote(note string) {
	a.Notes = append(a.Notes, note)
}

// AssignInvoice links the appointment to an invoice, replacing any earlier one.
func (a *Appointment) AssignInvoice(invoiceID string) {
	a.InvoiceID = &invoiceID
}

// ToMap returns all eight appointment fields.
func (a *Appointment) ToMap() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"patient_id": a.PatientID,
		"doctor_id":  a.DoctorID,
		"date":       a.Date,
		"reason":     a.Reason,
		"status":     a.Status,
		"notes":      []string(a.Notes),
		"invoice_id": a.InvoiceID,
	}
}
