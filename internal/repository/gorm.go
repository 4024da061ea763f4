package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hospital-records/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository stores the registry in PostgreSQL. Record histories, schedules
// and notes live in JSON columns on their owning row.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates or updates the tables for every entity.
func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&models.Patient{}, &models.Doctor{}, &models.Nurse{}, &models.Appointment{})
}

func translateError(kind, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return fmt.Errorf("%s %s: %w", kind, id, ErrDuplicateID)
	}
	return fmt.Errorf("%s %s: %w", kind, id, err)
}

func (r *GormRepository) create(ctx context.Context, kind, id string, value any) error {
	if err := r.db.WithContext(ctx).Create(value).Error; err != nil {
		return translateError(kind, id, err)
	}
	return nil
}

func (r *GormRepository) get(ctx context.Context, kind, id string, out any) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(out).Error; err != nil {
		return translateError(kind, id, err)
	}
	return nil
}

// getForUpdate loads a row inside tx and holds its lock until tx ends.
func getForUpdate(tx *gorm.DB, kind, id string, out any) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(out).Error; err != nil {
		return translateError(kind, id, err)
	}
	return nil
}

func (r *GormRepository) CreatePatient(ctx context.Context, p *models.Patient) error {
	return r.create(ctx, "patient", p.ID, p)
}

func (r *GormRepository) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	if err := r.get(ctx, "patient", id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) ListPatients(ctx context.Context) ([]*models.Patient, error) {
	var patients []*models.Patient
	if err := r.db.WithContext(ctx).Order("id").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *GormRepository) AppendPatientRecord(ctx context.Context, id string, record models.MedicalRecord) (*models.Patient, error) {
	var p models.Patient
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getForUpdate(tx, "patient", id, &p); err != nil {
			return err
		}
		p.AddRecord(record)
		if err := tx.Model(&p).Update("medical_records", p.MedicalRecords).Error; err != nil {
			return translateError("patient", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	return r.create(ctx, "doctor", d.ID, d)
}

func (r *GormRepository) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.get(ctx, "doctor", id, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormRepository) ListDoctors(ctx context.Context) ([]*models.Doctor, error) {
	var doctors []*models.Doctor
	if err := r.db.WithContext(ctx).Order("id").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (r *GormRepository) CreateNurse(ctx context.Context, n *models.Nurse) error {
	return r.create(ctx, "nurse", n.ID, n)
}

func (r *GormRepository) GetNurse(ctx context.Context, id string) (*models.Nurse, error) {
	var n models.Nurse
	if err := r.get(ctx, "nurse", id, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *GormRepository) ListNurses(ctx context.Context) ([]*models.Nurse, error) {
	var nurses []*models.Nurse
	if err := r.db.WithContext(ctx).Order("id").Find(&nurses).Error; err != nil {
		return nil, fmt.Errorf("list nurses: %w", err)
	}
	return nurses, nil
}

func (r *GormRepository) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return r.create(ctx, "appointment", a.ID, a)
}

func (r *GormRepository) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	if err := r.get(ctx, "appointment", id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepository) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*models.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	appointments := []*models.Appointment{}
	if err := query.Order("id").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment locks the row, applies mutate and writes every column back.
func (r *GormRepository) UpdateAppointment(ctx context.Context, id string, mutate func(*models.Appointment)) (*models.Appointment, error) {
	var a models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getForUpdate(tx, "appointment", id, &a); err != nil {
			return err
		}
		mutate(&a)
		a.ID = id
		if err := tx.Model(&a).Select("*").Updates(&a).Error; err != nil {
			return translateError("appointment", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
