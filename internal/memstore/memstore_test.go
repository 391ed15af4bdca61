package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

func mustDate(t *testing.T, s string) clinic.Date {
	t.Helper()
	d, err := clinic.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seed(t *testing.T, s *Store) (clinic.Patient, clinic.Doctor, clinic.Appointment) {
	t.Helper()
	ctx := context.Background()

	p, err := s.Patients().Save(ctx, &clinic.Patient{Name: "Ana", Surname: "López", Email: "ana@example.com"})
	require.NoError(t, err)
	d, err := s.Doctors().Save(ctx, &clinic.Doctor{Name: "Gregory", Surname: "House"})
	require.NoError(t, err)
	a, err := s.Appointments().Save(ctx, &clinic.Appointment{
		Date:            mustDate(t, "2025-03-01"),
		Cost:            80,
		DurationMinutes: 30,
		PatientID:       p.ID,
		DoctorID:        d.ID,
	})
	require.NoError(t, err)
	return *p, *d, *a
}

func TestSaveAssignsSequentialIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.Patients().Save(ctx, &clinic.Patient{Name: "Ana"})
	require.NoError(t, err)
	second, err := s.Patients().Save(ctx, &clinic.Patient{Name: "Luis"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	all, err := s.Patients().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, "Luis", all[1].Name)
}

func TestFindersReturnEmptySlice(t *testing.T) {
	s := New()
	got, err := s.Doctors().FindBySpecialty(context.Background(), "Cardiología")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx clinic.Store) error {
		if _, err := tx.Patients().Save(ctx, &clinic.Patient{Name: "Ana"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := s.Patients().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, s.EventLog())
}

func TestWithTxCommits(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx clinic.Store) error {
		p, err := tx.Patients().Save(ctx, &clinic.Patient{Name: "Ana"})
		if err != nil {
			return err
		}
		// nested calls join the outer transaction
		return tx.WithTx(ctx, func(inner clinic.Store) error {
			return inner.Events().InsertEvent(ctx, clinic.EventLog{EventType: "PATIENT_CREATED", EntityID: p.ID})
		})
	})
	require.NoError(t, err)

	got, err := s.Patients().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	require.Len(t, s.EventLog(), 1)
	assert.Equal(t, "PATIENT_CREATED", s.EventLog()[0].EventType)
}

func TestDeleteRestrictsReferencedRows(t *testing.T) {
	s := New()
	ctx := context.Background()
	p, d, a := seed(t, s)

	assert.ErrorIs(t, s.Patients().DeleteByID(ctx, p.ID), clinic.ErrHasDependents)
	assert.ErrorIs(t, s.Doctors().DeleteByID(ctx, d.ID), clinic.ErrHasDependents)

	m, err := s.Medicines().Save(ctx, &clinic.Medicine{Name: "Ibuprofeno", Price: 3.5})
	require.NoError(t, err)
	_, err = s.Prescriptions().Save(ctx, &clinic.Prescription{Notes: "n", AppointmentID: a.ID, MedicineID: m.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Appointments().DeleteByID(ctx, a.ID), clinic.ErrHasDependents)
	assert.ErrorIs(t, s.Medicines().DeleteByID(ctx, m.ID), clinic.ErrHasDependents)
}

func TestDeleteUnknownIsNotFound(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Prescriptions().DeleteByID(context.Background(), 42), clinic.ErrPrescriptionNotFound)
}

func TestOnePrescriptionPerAppointment(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _, a := seed(t, s)

	m, err := s.Medicines().Save(ctx, &clinic.Medicine{Name: "Paracetamol"})
	require.NoError(t, err)

	_, err = s.Prescriptions().Save(ctx, &clinic.Prescription{Notes: "first", AppointmentID: a.ID, MedicineID: m.ID})
	require.NoError(t, err)
	_, err = s.Prescriptions().Save(ctx, &clinic.Prescription{Notes: "second", AppointmentID: a.ID, MedicineID: m.ID})
	assert.ErrorIs(t, err, clinic.ErrPrescriptionExists)
}

func TestAppointmentUpdateKeepsReferences(t *testing.T) {
	s := New()
	ctx := context.Background()
	p, d, a := seed(t, s)

	a.PatientID = 999
	a.DoctorID = 999
	a.Reason = "control"
	saved, err := s.Appointments().Save(ctx, &a)
	require.NoError(t, err)

	assert.Equal(t, p.ID, saved.PatientID)
	assert.Equal(t, d.ID, saved.DoctorID)
	assert.Equal(t, "control", saved.Reason)
}

func TestLookupsThroughRelatedRows(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _, a := seed(t, s)

	byEmail, err := s.Appointments().FindByPatientEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, a.ID, byEmail[0].ID)

	byDoctor, err := s.Appointments().FindByDoctorName(ctx, "Gregory")
	require.NoError(t, err)
	assert.Len(t, byDoctor, 1)

	byCost, err := s.Appointments().FindByCostGreaterThan(ctx, 80)
	require.NoError(t, err)
	assert.Empty(t, byCost, "cost comparison is strict")
}

func TestFindExpiringBefore(t *testing.T) {
	s := New()
	ctx := context.Background()

	soon := mustDate(t, "2025-01-10")
	later := mustDate(t, "2026-01-10")
	_, err := s.Medicines().Save(ctx, &clinic.Medicine{Name: "A", ExpiryDate: &soon})
	require.NoError(t, err)
	_, err = s.Medicines().Save(ctx, &clinic.Medicine{Name: "B", ExpiryDate: &later})
	require.NoError(t, err)
	_, err = s.Medicines().Save(ctx, &clinic.Medicine{Name: "C"})
	require.NoError(t, err)

	got, err := s.Medicines().FindExpiringBefore(ctx, mustDate(t, "2025-06-01"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}

func TestMedicineExpiryIsCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	expiry := mustDate(t, "2025-01-10")
	saved, err := s.Medicines().Save(ctx, &clinic.Medicine{Name: "A", ExpiryDate: &expiry})
	require.NoError(t, err)

	*saved.ExpiryDate = mustDate(t, "1999-01-01")

	got, err := s.Medicines().FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", got.ExpiryDate.String())
}

func TestNameFiltersMatchExactly(t *testing.T) {
	s := New()
	ctx := context.Background()
	faker := gofakeit.New(42)

	want := map[string]int{}
	for i := 0; i < 50; i++ {
		name := faker.FirstName()
		_, err := s.Patients().Save(ctx, &clinic.Patient{Name: name, Surname: faker.LastName(), Email: faker.Email()})
		require.NoError(t, err)
		want[name]++
	}

	for name, count := range want {
		got, err := s.Patients().FindByName(ctx, name)
		require.NoError(t, err)
		assert.Len(t, got, count, name)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1].ID, got[i].ID, "results are ordered by id")
		}
	}
}
