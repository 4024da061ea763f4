package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"hospital-records/internal/models"
	"hospital-records/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*HospitalService, context.Context) {
	t.Helper()
	ctx := context.Background()
	svc := NewHospitalService(repository.NewMemoryRepository(), nil)

	require.NoError(t, svc.RegisterPatient(ctx, models.NewPatient(models.NewPerson("BN001", "Nguyen Van A", 40, "Male", ""), nil)))
	require.NoError(t, svc.RegisterDoctor(ctx, models.NewDoctor(models.NewPerson("BS001", "Tran Thi B", 50, "Female", ""), "Neurology", 50, 10)))
	require.NoError(t, svc.RegisterDoctor(ctx, models.NewDoctor(models.NewPerson("BS002", "Le C", 45, "Male", ""), "Cardiology", 100, 0)))
	return svc, ctx
}

func TestRegister_GeneratesIDs(t *testing.T) {
	svc, ctx := setup(t)

	p := models.NewPatient(models.Person{Name: "No Id"}, nil)
	require.NoError(t, svc.RegisterPatient(ctx, p))
	assert.True(t, strings.HasPrefix(p.ID, PatientPrefix))

	d := models.NewGeneralDoctor(models.Person{Name: "No Id"})
	require.NoError(t, svc.RegisterDoctor(ctx, d))
	assert.True(t, strings.HasPrefix(d.ID, DoctorPrefix))

	n := models.NewNurse(models.Person{Name: "No Id"}, nil)
	require.NoError(t, svc.RegisterNurse(ctx, n))
	assert.True(t, strings.HasPrefix(n.ID, NursePrefix))

	got, err := svc.Nurse(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "No Id", got.Name)

	err = svc.RegisterPatient(ctx, models.NewPatient(models.Person{ID: "BN001"}, nil))
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestAddMedicalRecord_AppendsInOrder(t *testing.T) {
	svc, ctx := setup(t)

	for _, diag := range []string{"cold", "flu", "fever"} {
		_, err := svc.AddMedicalRecord(ctx, "BN001", models.MedicalRecord{"diagnosis": diag})
		require.NoError(t, err)
	}

	p, err := svc.Patient(ctx, "BN001")
	require.NoError(t, err)
	require.Len(t, p.MedicalRecords, 3)
	assert.Equal(t, "cold", p.MedicalRecords[0]["diagnosis"])
	assert.Equal(t, "fever", p.MedicalRecords[2]["diagnosis"])

	_, err = svc.AddMedicalRecord(ctx, "BN404", models.MedicalRecord{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordVisit_PricesWithDoctorFee(t *testing.T) {
	svc, ctx := setup(t)

	p, record, err := svc.RecordVisit(ctx, "BN001", "BS001", VisitInput{
		Date:          "2024-05-01",
		Diagnosis:     "migraine",
		Procedures:    []string{"MRI"},
		TreatmentCost: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 231.0, record["doctor_fee"])
	assert.Equal(t, "BS001", record["doctor"])
	require.Len(t, p.MedicalRecords, 1)
	assert.Equal(t, 231.0, p.MedicalRecords[0]["doctor_fee"])

	_, _, err = svc.RecordVisit(ctx, "BN001", "BS404", VisitInput{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQuoteFee(t *testing.T) {
	svc, ctx := setup(t)

	fee, err := svc.QuoteFee(ctx, "BS002", 200)
	require.NoError(t, err)
	assert.Equal(t, 400.0, fee)

	custom := NewHospitalService(repository.NewMemoryRepository(), models.FeeTable{"Cardiology": 2})
	require.NoError(t, custom.RegisterDoctor(ctx, models.NewDoctor(models.Person{ID: "BS009"}, "Cardiology", 100, 0)))
	fee, err = custom.QuoteFee(ctx, "BS009", 200)
	require.NoError(t, err)
	assert.Equal(t, 500.0, fee)
}

func TestFeeSummary(t *testing.T) {
	svc, ctx := setup(t)

	_, _, err := svc.RecordVisit(ctx, "BN001", "BS002", VisitInput{TreatmentCost: 200}) // 400
	require.NoError(t, err)
	_, _, err = svc.RecordVisit(ctx, "BN001", "BS002", VisitInput{TreatmentCost: 0}) // 100
	require.NoError(t, err)
	_, err = svc.AddMedicalRecord(ctx, "BN001", models.MedicalRecord{"diagnosis": "no fee"})
	require.NoError(t, err)

	summary, err := svc.FeeSummary(ctx, "BN001")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 500.0, summary.Total)
	assert.Equal(t, 250.0, summary.Average)
	assert.Equal(t, 212.132, summary.StdDev)
}

func TestBookAppointment(t *testing.T) {
	svc, ctx := setup(t)

	a := models.NewAppointment("", "BN001", "BS001", "2024-05-01 09:00", "headache")
	require.NoError(t, svc.BookAppointment(ctx, a))
	assert.True(t, strings.HasPrefix(a.ID, AppointmentPrefix))

	stored, err := svc.Appointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.InvoiceID)

	err = svc.BookAppointment(ctx, models.NewAppointment("", "BN404", "BS001", "", ""))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	err = svc.BookAppointment(ctx, models.NewAppointment("", "BN001", "BS404", "", ""))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := svc.Appointments(ctx, repository.AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAppointmentUpdates(t *testing.T) {
	svc, ctx := setup(t)
	require.NoError(t, svc.BookAppointment(ctx, models.NewAppointment("LH001", "BN001", "BS001", "2024-05-01", "")))

	a, err := svc.UpdateAppointmentStatus(ctx, "LH001", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, a.Status)

	// no transition table: a completed appointment can go back to pending
	a, err = svc.UpdateAppointmentStatus(ctx, "LH001", models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, a.Status)

	a, err = svc.AddAppointmentNote(ctx, "LH001", "fasting required")
	require.NoError(t, err)
	assert.Equal(t, []string{"fasting required"}, []string(a.Notes))

	a, err = svc.AssignInvoice(ctx, "LH001", "")
	require.NoError(t, err)
	require.NotNil(t, a.InvoiceID)
	assert.True(t, strings.HasPrefix(*a.InvoiceID, InvoicePrefix))

	a, err = svc.AssignInvoice(ctx, "LH001", "INV-7")
	require.NoError(t, err)
	assert.Equal(t, "INV-7", *a.InvoiceID)

	_, err = svc.UpdateAppointmentStatus(ctx, "LH404", models.StatusCancelled)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConcurrentRecordsAndNotes(t *testing.T) {
	svc, ctx := setup(t)
	require.NoError(t, svc.BookAppointment(ctx, models.NewAppointment("LH001", "BN001", "BS001", "2024-05-01", "")))

	const workers = 200
	var wg sync.WaitGroup
	errs := make(chan error, 3*workers)
	for i := 0; i < workers; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddMedicalRecord(ctx, "BN001", models.MedicalRecord{"seq": i})
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.RecordVisit(ctx, "BN001", "BS002", VisitInput{TreatmentCost: float64(i)})
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddAppointmentNote(ctx, "LH001", fmt.Sprintf("note %d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := svc.Patient(ctx, "BN001")
	require.NoError(t, err)
	assert.Len(t, p.MedicalRecords, 2*workers)

	summary, err := svc.FeeSummary(ctx, "BN001")
	require.NoError(t, err)
	assert.Equal(t, workers, summary.Count)

	a, err := svc.Appointment(ctx, "LH001")
	require.NoError(t, err)
	assert.Len(t, a.Notes, workers)
}
