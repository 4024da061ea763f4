package service

import (
	"context"
	"fmt"
	"strings"

	"hospital-records/internal/logger"
	"hospital-records/internal/models"
	"hospital-records/internal/repository"
	"hospital-records/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Id prefixes follow the hospital's paper forms.
const (
	PatientPrefix     = "BN"
	DoctorPrefix      = "BS"
	NursePrefix       = "YT"
	AppointmentPrefix = "LH"
	InvoicePrefix     = "INV-"
)

// HospitalService resolves id references between entities and prices visits.
type HospitalService struct {
	repo repository.Repository
	fees models.FeeTable
}

func NewHospitalService(repo repository.Repository, fees models.FeeTable) *HospitalService {
	if fees == nil {
		fees = models.DefaultFeeTable()
	}
	return &HospitalService{repo: repo, fees: fees}
}

func newID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func (s *HospitalService) RegisterPatient(ctx context.Context, p *models.Patient) error {
	if p.ID == "" {
		p.ID = newID(PatientPrefix)
	}
	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return err
	}
	logger.WithField("patient_id", p.ID).Info("patient registered")
	return nil
}

func (s *HospitalService) RegisterDoctor(ctx context.Context, d *models.Doctor) error {
	if d.ID == "" {
		d.ID = newID(DoctorPrefix)
	}
	if err := s.repo.CreateDoctor(ctx, d); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"doctor_id": d.ID, "specialty": d.Specialty}).Info("doctor registered")
	return nil
}

func (s *HospitalService) RegisterNurse(ctx context.Context, n *models.Nurse) error {
	if n.ID == "" {
		n.ID = newID(NursePrefix)
	}
	if err := s.repo.CreateNurse(ctx, n); err != nil {
		return err
	}
	logger.WithField("nurse_id", n.ID).Info("nurse registered")
	return nil
}

func (s *HospitalService) Patient(ctx context.Context, id string) (*models.Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *HospitalService) Patients(ctx context.Context) ([]*models.Patient, error) {
	return s.repo.ListPatients(ctx)
}

func (s *HospitalService) Doctor(ctx context.Context, id string) (*models.Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}

func (s *HospitalService) Doctors(ctx context.Context) ([]*models.Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *HospitalService) Nurse(ctx context.Context, id string) (*models.Nurse, error) {
	return s.repo.GetNurse(ctx, id)
}

func (s *HospitalService) Nurses(ctx context.Context) ([]*models.Nurse, error) {
	return s.repo.ListNurses(ctx)
}

// AddMedicalRecord appends an opaque record to the patient's history.
func (s *HospitalService) AddMedicalRecord(ctx context.Context, patientID string, record models.MedicalRecord) (*models.Patient, error) {
	p, err := s.repo.AppendPatientRecord(ctx, patientID, record)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"patient_id": p.ID, "records": len(p.MedicalRecords)}).Debug("medical record added")
	return p, nil
}

// VisitInput describes a consultation to be priced and recorded.
type VisitInput struct {
	Date          string
	Diagnosis     string
	Procedures    []string
	TreatmentCost float64
}

// RecordVisit prices the visit with the doctor's fee settings and appends the
// result to the patient's history.
func (s *HospitalService) RecordVisit(ctx context.Context, patientID, doctorID string, in VisitInput) (*models.Patient, models.MedicalRecord, error) {
	d, err := s.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	procedures := in.Procedures
	if procedures == nil {
		procedures = []string{}
	}
	record := models.MedicalRecord{
		"date":           in.Date,
		"doctor":         d.ID,
		"diagnosis":      in.Diagnosis,
		"procedures":     procedures,
		"treatment_cost": in.TreatmentCost,
		"doctor_fee":     s.fees.Calculate(d, in.TreatmentCost),
	}
	p, err := s.AddMedicalRecord(ctx, patientID, record)
	if err != nil {
		return nil, nil, err
	}
	return p, record, nil
}

// QuoteFee prices a treatment cost for a doctor without recording anything.
func (s *HospitalService) QuoteFee(ctx context.Context, doctorID string, treatmentCost float64) (float64, error) {
	d, err := s.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}
	return s.fees.Calculate(d, treatmentCost), nil
}

// FeeSummary aggregates doctor_fee over a patient's records.
type FeeSummary struct {
	PatientID string  `json:"patient_id"`
	Count     int     `json:"count"`
	Total     float64 `json:"total"`
	Average   float64 `json:"average"`
	StdDev    float64 `json:"std_dev"`
}

func (s *HospitalService) FeeSummary(ctx context.Context, patientID string) (*FeeSummary, error) {
	p, err := s.repo.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	fees := make([]float64, 0, len(p.MedicalRecords))
	var total float64
	for _, rec := range p.MedicalRecords {
		// records added without a visit may carry no fee
		if fee, ok := numeric(rec["doctor_fee"]); ok {
			fees = append(fees, fee)
			total += fee
		}
	}

	summary := &FeeSummary{
		PatientID: p.ID,
		Count:     len(fees),
		Total:     utils.RoundFloat(total, 2),
	}
	summary.Average, summary.StdDev = utils.SampleStats(fees)
	return summary, nil
}

// numeric accepts the number types a record may hold before and after a trip
// through JSON storage.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// BookAppointment stores a Pending appointment after checking that both
// referenced people exist.
func (s *HospitalService) BookAppointment(ctx context.Context, a *models.Appointment) error {
	if _, err := s.repo.GetPatient(ctx, a.PatientID); err != nil {
		return err
	}
	if _, err := s.repo.GetDoctor(ctx, a.DoctorID); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = newID(AppointmentPrefix)
	}
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"appointment_id": a.ID,
		"patient_id":     a.PatientID,
		"doctor_id":      a.DoctorID,
	}).Info("appointment booked")
	return nil
}

func (s *HospitalService) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *HospitalService) Appointments(ctx context.Context, filter repository.AppointmentFilter) ([]*models.Appointment, error) {
	return s.repo.ListAppointments(ctx, filter)
}

func (s *HospitalService) updateAppointment(ctx context.Context, id string, mutate func(*models.Appointment)) (*models.Appointment, error) {
	a, err := s.repo.UpdateAppointment(ctx, id, mutate)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

// UpdateAppointmentStatus overwrites the status with any value.
func (s *HospitalService) UpdateAppointmentStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	a, err := s.updateAppointment(ctx, id, func(a *models.Appointment) { a.SetStatus(status) })
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"appointment_id": id, "status": status}).Info("appointment status changed")
	return a, nil
}

func (s *HospitalService) AddAppointmentNote(ctx context.Context, id, note string) (*models.Appointment, error) {
	return s.updateAppointment(ctx, id, func(a *models.Appointment) { a.AddNote(note) })
}

// AssignInvoice links an invoice to the appointment, generating an id when
// invoiceID is empty.
func (s *HospitalService) AssignInvoice(ctx context.Context, id, invoiceID string) (*models.Appointment, error) {
	if invoiceID == "" {
		invoiceID = InvoicePrefix + uuid.NewString()
	}
	a, err := s.updateAppointment(ctx, id, func(a *models.Appointment) { a.AssignInvoice(invoiceID) })
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"appointment_id": id, "invoice_id": invoiceID}).Info("invoice assigned")
	return a, nil
}
