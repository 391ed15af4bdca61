package clinic

import (
	"context"
	"time"
)

// PatientRepository is the persistence contract for patients. FindByID returns
// ErrPatientNotFound when the id is unknown; list finders return an empty
// slice, never an error, when nothing matches.
type PatientRepository interface {
	FindByID(ctx context.Context, id int64) (*Patient, error)
	FindAll(ctx context.Context) ([]Patient, error)
	FindByName(ctx context.Context, name string) ([]Patient, error)
	FindBySurname(ctx context.Context, surname string) ([]Patient, error)
	FindByNameAndSurname(ctx context.Context, name, surname string) ([]Patient, error)
	Save(ctx context.Context, p *Patient) (*Patient, error)
	DeleteByID(ctx context.Context, id int64) error
}

type DoctorRepository interface {
	FindByID(ctx context.Context, id int64) (*Doctor, error)
	FindAll(ctx context.Context) ([]Doctor, error)
	FindByName(ctx context.Context, name string) ([]Doctor, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]Doctor, error)
	FindByNameAndSpecialty(ctx context.Context, name, specialty string) ([]Doctor, error)
	Save(ctx context.Context, d *Doctor) (*Doctor, error)
	DeleteByID(ctx context.Context, id int64) error
}

type MedicineRepository interface {
	FindByID(ctx context.Context, id int64) (*Medicine, error)
	FindAll(ctx context.Context) ([]Medicine, error)
	FindByName(ctx context.Context, name string) ([]Medicine, error)
	FindByManufacturer(ctx context.Context, manufacturer string) ([]Medicine, error)
	FindByNameAndManufacturer(ctx context.Context, name, manufacturer string) ([]Medicine, error)
	// Expiry worker
	FindExpiringBefore(ctx context.Context, day Date) ([]Medicine, error)
	Save(ctx context.Context, m *Medicine) (*Medicine, error)
	DeleteByID(ctx context.Context, id int64) error
}

type AppointmentRepository interface {
	FindByID(ctx context.Context, id int64) (*Appointment, error)
	FindAll(ctx context.Context) ([]Appointment, error)
	FindByDate(ctx context.Context, day Date) ([]Appointment, error)
	FindByConfirmed(ctx context.Context, confirmed bool) ([]Appointment, error)
	FindByDateAndConfirmed(ctx context.Context, day Date, confirmed bool) ([]Appointment, error)

	// Lookups through the related patient / doctor
	FindByPatientEmail(ctx context.Context, email string) ([]Appointment, error)
	FindByDoctorName(ctx context.Context, name string) ([]Appointment, error)
	FindByCostGreaterThan(ctx context.Context, cost float64) ([]Appointment, error)

	// Children views
	FindByPatientID(ctx context.Context, patientID int64) ([]Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID int64) ([]Appointment, error)

	Save(ctx context.Context, a *Appointment) (*Appointment, error)
	DeleteByID(ctx context.Context, id int64) error
}

type PrescriptionRepository interface {
	FindByID(ctx context.Context, id int64) (*Prescription, error)
	FindAll(ctx context.Context) ([]Prescription, error)
	FindByActive(ctx context.Context, active bool) ([]Prescription, error)
	FindByDurationDays(ctx context.Context, days int) ([]Prescription, error)
	FindByActiveAndDurationDays(ctx context.Context, active bool, days int) ([]Prescription, error)

	// Children views
	FindByAppointmentID(ctx context.Context, appointmentID int64) (*Prescription, error)
	FindByMedicineID(ctx context.Context, medicineID int64) ([]Prescription, error)

	Save(ctx context.Context, p *Prescription) (*Prescription, error)
	DeleteByID(ctx context.Context, id int64) error
}

type EventRepository interface {
	InsertEvent(ctx context.Context, ev EventLog) error
}

// Store groups the repositories that share one storage transaction. WithTx
// runs fn against a Store bound to a single transaction, committing when fn
// returns nil and rolling back otherwise. Calling WithTx on a Store that is
// already transactional runs fn in the same transaction.
type Store interface {
	Patients() PatientRepository
	Doctors() DoctorRepository
	Medicines() MedicineRepository
	Appointments() AppointmentRepository
	Prescriptions() PrescriptionRepository
	Events() EventRepository

	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// Cache stores output projections keyed by entity and id. Every key carries a
// version that Invalidate bumps; SetIfVersion stores a value only while the
// version still equals the one the caller read before loading it.
// Implementations must treat a miss as (false, nil) and a key that was never
// invalidated as version 0.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetIfVersion(ctx context.Context, key string, version int64, value any, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (NopCache) Version(context.Context, string) (int64, error) { return 0, nil }

func (NopCache) SetIfVersion(context.Context, string, int64, any, time.Duration) (bool, error) {
	return false, nil
}

func (NopCache) Invalidate(context.Context, string) error { return nil }
