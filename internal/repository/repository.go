package repository

import (
	"context"
	"errors"

	"hospital-records/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("id already exists")
)

// AppointmentFilter narrows ListAppointments. Empty fields match everything.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    string
}

func (f AppointmentFilter) matches(a *models.Appointment) bool {
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.DoctorID != "" && a.DoctorID != f.DoctorID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

// Repository is the hospital-wide registry of people and appointments, keyed by id.
// Lists are ordered by id. AppendPatientRecord and UpdateAppointment read and
// write the row as one step, so concurrent callers never lose each other's
// changes; both return ErrNotFound when the id is unknown.
type Repository interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
	ListPatients(ctx context.Context) ([]*models.Patient, error)
	AppendPatientRecord(ctx context.Context, id string, record models.MedicalRecord) (*models.Patient, error)

	CreateDoctor(ctx context.Context, d *models.Doctor) error
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]*models.Doctor, error)

	CreateNurse(ctx context.Context, n *models.Nurse) error
	GetNurse(ctx context.Context, id string) (*models.Nurse, error)
	ListNurses(ctx context.Context) ([]*models.Nurse, error)

	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, mutate func(*models.Appointment)) (*models.Appointment, error)
}

var (
	_ Repository = (*MemoryRepository)(nil)
	_ Repository = (*GormRepository)(nil)
)
