package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hospital-records/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatient(id string) *models.Patient {
	return models.NewPatient(models.NewPerson(id, "Patient "+id, 30, "Female", ""), nil)
}

func TestMemoryRepository_PatientLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	p := newPatient("BN001")
	require.NoError(t, repo.CreatePatient(ctx, p))

	err := repo.CreatePatient(ctx, newPatient("BN001"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	got, err := repo.GetPatient(ctx, "BN001")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got.AddRecord(models.MedicalRecord{"diagnosis": "flu"})
	stored, err := repo.GetPatient(ctx, "BN001")
	require.NoError(t, err)
	assert.Empty(t, stored.MedicalRecords, "mutating a returned patient must not touch the store")

	procedures := []string{"exam"}
	updated, err := repo.AppendPatientRecord(ctx, "BN001", models.MedicalRecord{"diagnosis": "flu", "procedures": procedures})
	require.NoError(t, err)
	require.Len(t, updated.MedicalRecords, 1)

	procedures[0] = "surgery"
	updated.MedicalRecords[0]["procedures"].([]string)[0] = "x-ray"

	stored, err = repo.GetPatient(ctx, "BN001")
	require.NoError(t, err)
	require.Len(t, stored.MedicalRecords, 1)
	assert.Equal(t, "flu", stored.MedicalRecords[0]["diagnosis"])
	assert.Equal(t, []string{"exam"}, stored.MedicalRecords[0]["procedures"], "nested values must not be shared with callers")

	_, err = repo.GetPatient(ctx, "BN404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.AppendPatientRecord(ctx, "BN404", models.MedicalRecord{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ListsAreSortedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, id := range []string{"BN003", "BN001", "BN002"} {
		require.NoError(t, repo.CreatePatient(ctx, newPatient(id)))
	}
	for _, id := range []string{"BS002", "BS001"} {
		require.NoError(t, repo.CreateDoctor(ctx, models.NewGeneralDoctor(models.Person{ID: id})))
	}
	for _, id := range []string{"YT002", "YT001"} {
		require.NoError(t, repo.CreateNurse(ctx, models.NewNurse(models.Person{ID: id}, nil)))
	}

	patients, err := repo.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, []string{"BN001", "BN002", "BN003"}, []string{patients[0].ID, patients[1].ID, patients[2].ID})

	doctors, err := repo.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "BS001", doctors[0].ID)

	nurses, err := repo.ListNurses(ctx)
	require.NoError(t, err)
	require.Len(t, nurses, 2)
	assert.Equal(t, "YT001", nurses[0].ID)
}

func TestMemoryRepository_DoctorAndNurse(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	d := models.NewDoctor(models.Person{ID: "BS001"}, "Cardiology", 120, 5)
	require.NoError(t, repo.CreateDoctor(ctx, d))
	assert.ErrorIs(t, repo.CreateDoctor(ctx, d), ErrDuplicateID)

	gotDoctor, err := repo.GetDoctor(ctx, "BS001")
	require.NoError(t, err)
	assert.Equal(t, d, gotDoctor)

	ward := "ICU"
	n := models.NewNurse(models.Person{ID: "YT001"}, &ward)
	require.NoError(t, repo.CreateNurse(ctx, n))
	ward = "ER"

	gotNurse, err := repo.GetNurse(ctx, "YT001")
	require.NoError(t, err)
	require.NotNil(t, gotNurse.Ward)
	assert.Equal(t, "ICU", *gotNurse.Ward)

	_, err = repo.GetDoctor(ctx, "BS404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetNurse(ctx, "YT404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_Appointments(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.CreateAppointment(ctx, models.NewAppointment("LH001", "BN001", "BS001", "2024-05-01", "")))
	require.NoError(t, repo.CreateAppointment(ctx, models.NewAppointment("LH002", "BN002", "BS001", "2024-05-02", "")))
	require.NoError(t, repo.CreateAppointment(ctx, models.NewAppointment("LH003", "BN001", "BS002", "2024-05-03", "")))
	assert.ErrorIs(t, repo.CreateAppointment(ctx, models.NewAppointment("LH001", "", "", "", "")), ErrDuplicateID)

	a, err := repo.UpdateAppointment(ctx, "LH003", func(a *models.Appointment) {
		a.SetStatus(models.StatusCancelled)
		a.AddNote("patient travelling")
		a.ID = "LH999"
	})
	require.NoError(t, err)
	assert.Equal(t, "LH003", a.ID)

	all, err := repo.ListAppointments(ctx, AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byPatient, err := repo.ListAppointments(ctx, AppointmentFilter{PatientID: "BN001"})
	require.NoError(t, err)
	require.Len(t, byPatient, 2)
	assert.Equal(t, "LH001", byPatient[0].ID)
	assert.Equal(t, "LH003", byPatient[1].ID)

	byDoctor, err := repo.ListAppointments(ctx, AppointmentFilter{DoctorID: "BS001"})
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	cancelled, err := repo.ListAppointments(ctx, AppointmentFilter{Status: models.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, []string{"patient travelling"}, []string(cancelled[0].Notes))

	none, err := repo.ListAppointments(ctx, AppointmentFilter{PatientID: "BN001", Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.UpdateAppointment(ctx, "LH404", func(*models.Appointment) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.CreatePatient(ctx, newPatient("BN001")))
	require.NoError(t, repo.CreateAppointment(ctx, models.NewAppointment("LH001", "BN001", "BS001", "2024-05-01", "")))

	const workers = 200
	var wg sync.WaitGroup
	errs := make(chan error, 2*workers)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AppendPatientRecord(ctx, "BN001", models.MedicalRecord{"seq": i})
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateAppointment(ctx, "LH001", func(a *models.Appointment) {
				a.AddNote(fmt.Sprintf("note %d", i))
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := repo.GetPatient(ctx, "BN001")
	require.NoError(t, err)
	assert.Len(t, p.MedicalRecords, workers)

	seen := map[int]bool{}
	for _, rec := range p.MedicalRecords {
		seen[rec["seq"].(int)] = true
	}
	assert.Len(t, seen, workers)

	a, err := repo.GetAppointment(ctx, "LH001")
	require.NoError(t, err)
	assert.Len(t, a.Notes, workers)
}
