package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hospital-records/internal/models"
)

// MemoryRepository keeps the registry in process memory. It is used when no
// database is configured. Values are deep-copied on the way in and out, so
// callers never share records, or anything nested in them, with the store.
type MemoryRepository struct {
	mu           sync.RWMutex
	patients     map[string]*models.Patient
	doctors      map[string]*models.Doctor
	nurses       map[string]*models.Nurse
	appointments map[string]*models.Appointment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		patients:     map[string]*models.Patient{},
		doctors:      map[string]*models.Doctor{},
		nurses:       map[string]*models.Nurse{},
		appointments: map[string]*models.Appointment{},
	}
}

func clonePatient(p *models.Patient) *models.Patient {
	cp := *p
	cp.Insurance = cloneString(p.Insurance)
	cp.MedicalRecords = models.CloneRecords(p.MedicalRecords)
	return &cp
}

func cloneDoctor(d *models.Doctor) *models.Doctor {
	cp := *d
	if d.Schedule != nil {
		cp.Schedule = append(d.Schedule[:0:0], d.Schedule...)
	}
	return &cp
}

func cloneNurse(n *models.Nurse) *models.Nurse {
	cp := *n
	cp.Ward = cloneString(n.Ward)
	return &cp
}

func cloneAppointment(a *models.Appointment) *models.Appointment {
	cp := *a
	cp.InvoiceID = cloneString(a.InvoiceID)
	if a.Notes != nil {
		cp.Notes = append(a.Notes[:0:0], a.Notes...)
	}
	return &cp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *MemoryRepository) CreatePatient(_ context.Context, p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[p.ID]; ok {
		return fmt.Errorf("patient %s: %w", p.ID, ErrDuplicateID)
	}
	r.patients[p.ID] = clonePatient(p)
	return nil
}

func (r *MemoryRepository) GetPatient(_ context.Context, id string) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	return clonePatient(p), nil
}

func (r *MemoryRepository) ListPatients(_ context.Context) ([]*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Patient, 0, len(r.patients))
	for _, id := range sortedKeys(r.patients) {
		out = append(out, clonePatient(r.patients[id]))
	}
	return out, nil
}

func (r *MemoryRepository) AppendPatientRecord(_ context.Context, id string, record models.MedicalRecord) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	p.AddRecord(models.CloneRecord(record))
	return clonePatient(p), nil
}

func (r *MemoryRepository) CreateDoctor(_ context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[d.ID]; ok {
		return fmt.Errorf("doctor %s: %w", d.ID, ErrDuplicateID)
	}
	r.doctors[d.ID] = cloneDoctor(d)
	return nil
}

func (r *MemoryRepository) GetDoctor(_ context.Context, id string) (*models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, fmt.Errorf("doctor %s: %w", id, ErrNotFound)
	}
	return cloneDoctor(d), nil
}

func (r *MemoryRepository) ListDoctors(_ context.Context) ([]*models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Doctor, 0, len(r.doctors))
	for _, id := range sortedKeys(r.doctors) {
		out = append(out, cloneDoctor(r.doctors[id]))
	}
	return out, nil
}

func (r *MemoryRepository) CreateNurse(_ context.Context, n *models.Nurse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nurses[n.ID]; ok {
		return fmt.Errorf("nurse %s: %w", n.ID, ErrDuplicateID)
	}
	r.nurses[n.ID] = cloneNurse(n)
	return nil
}

func (r *MemoryRepository) GetNurse(_ context.Context, id string) (*models.Nurse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nurses[id]
	if !ok {
		return nil, fmt.Errorf("nurse %s: %w", id, ErrNotFound)
	}
	return cloneNurse(n), nil
}

func (r *MemoryRepository) ListNurses(_ context.Context) ([]*models.Nurse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Nurse, 0, len(r.nurses))
	for _, id := range sortedKeys(r.nurses) {
		out = append(out, cloneNurse(r.nurses[id]))
	}
	return out, nil
}

func (r *MemoryRepository) CreateAppointment(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[a.ID]; ok {
		return fmt.Errorf("appointment %s: %w", a.ID, ErrDuplicateID)
	}
	r.appointments[a.ID] = cloneAppointment(a)
	return nil
}

func (r *MemoryRepository) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	return cloneAppointment(a), nil
}

func (r *MemoryRepository) ListAppointments(_ context.Context, filter AppointmentFilter) ([]*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Appointment{}
	for _, id := range sortedKeys(r.appointments) {
		if a := r.appointments[id]; filter.matches(a) {
			out = append(out, cloneAppointment(a))
		}
	}
	return out, nil
}

// UpdateAppointment runs mutate on a copy under the write lock and stores the
// result. The id cannot be changed by mutate.
func (r *MemoryRepository) UpdateAppointment(_ context.Context, id string, mutate func(*models.Appointment)) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	a := cloneAppointment(stored)
	mutate(a)
	a.ID = id
	r.appointments[id] = a
	return cloneAppointment(a), nil
}
