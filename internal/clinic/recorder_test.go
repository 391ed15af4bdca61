package clinic_test

import (
	"context"
	"sync"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

// recorder notes which repository methods a service operation reached.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) note(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// recordingStore wraps a Store and records finder and lookup calls.
type recordingStore struct {
	clinic.Store
	rec *recorder
}

func (s *recordingStore) WithTx(ctx context.Context, fn func(tx clinic.Store) error) error {
	return s.Store.WithTx(ctx, func(tx clinic.Store) error {
		return fn(&recordingStore{Store: tx, rec: s.rec})
	})
}

func (s *recordingStore) Patients() clinic.PatientRepository {
	return recPatients{s.Store.Patients(), s.rec}
}

func (s *recordingStore) Doctors() clinic.DoctorRepository {
	return recDoctors{s.Store.Doctors(), s.rec}
}

func (s *recordingStore) Medicines() clinic.MedicineRepository {
	return recMedicines{s.Store.Medicines(), s.rec}
}

func (s *recordingStore) Appointments() clinic.AppointmentRepository {
	return recAppointments{s.Store.Appointments(), s.rec}
}

func (s *recordingStore) Prescriptions() clinic.PrescriptionRepository {
	return recPrescriptions{s.Store.Prescriptions(), s.rec}
}

type recPatients struct {
	clinic.PatientRepository
	rec *recorder
}

func (r recPatients) FindByID(ctx context.Context, id int64) (*clinic.Patient, error) {
	r.rec.note("Patients.FindByID")
	return r.PatientRepository.FindByID(ctx, id)
}

func (r recPatients) FindAll(ctx context.Context) ([]clinic.Patient, error) {
	r.rec.note("Patients.FindAll")
	return r.PatientRepository.FindAll(ctx)
}

func (r recPatients) FindByName(ctx context.Context, name string) ([]clinic.Patient, error) {
	r.rec.note("Patients.FindByName")
	return r.PatientRepository.FindByName(ctx, name)
}

func (r recPatients) FindBySurname(ctx context.Context, surname string) ([]clinic.Patient, error) {
	r.rec.note("Patients.FindBySurname")
	return r.PatientRepository.FindBySurname(ctx, surname)
}

func (r recPatients) FindByNameAndSurname(ctx context.Context, name, surname string) ([]clinic.Patient, error) {
	r.rec.note("Patients.FindByNameAndSurname")
	return r.PatientRepository.FindByNameAndSurname(ctx, name, surname)
}

type recDoctors struct {
	clinic.DoctorRepository
	rec *recorder
}

func (r recDoctors) FindByID(ctx context.Context, id int64) (*clinic.Doctor, error) {
	r.rec.note("Doctors.FindByID")
	return r.DoctorRepository.FindByID(ctx, id)
}

func (r recDoctors) FindAll(ctx context.Context) ([]clinic.Doctor, error) {
	r.rec.note("Doctors.FindAll")
	return r.DoctorRepository.FindAll(ctx)
}

func (r recDoctors) FindByName(ctx context.Context, name string) ([]clinic.Doctor, error) {
	r.rec.note("Doctors.FindByName")
	return r.DoctorRepository.FindByName(ctx, name)
}

func (r recDoctors) FindBySpecialty(ctx context.Context, specialty string) ([]clinic.Doctor, error) {
	r.rec.note("Doctors.FindBySpecialty")
	return r.DoctorRepository.FindBySpecialty(ctx, specialty)
}

func (r recDoctors) FindByNameAndSpecialty(ctx context.Context, name, specialty string) ([]clinic.Doctor, error) {
	r.rec.note("Doctors.FindByNameAndSpecialty")
	return r.DoctorRepository.FindByNameAndSpecialty(ctx, name, specialty)
}

type recMedicines struct {
	clinic.MedicineRepository
	rec *recorder
}

func (r recMedicines) FindByID(ctx context.Context, id int64) (*clinic.Medicine, error) {
	r.rec.note("Medicines.FindByID")
	return r.MedicineRepository.FindByID(ctx, id)
}

func (r recMedicines) FindAll(ctx context.Context) ([]clinic.Medicine, error) {
	r.rec.note("Medicines.FindAll")
	return r.MedicineRepository.FindAll(ctx)
}

func (r recMedicines) FindByName(ctx context.Context, name string) ([]clinic.Medicine, error) {
	r.rec.note("Medicines.FindByName")
	return r.MedicineRepository.FindByName(ctx, name)
}

func (r recMedicines) FindByManufacturer(ctx context.Context, manufacturer string) ([]clinic.Medicine, error) {
	r.rec.note("Medicines.FindByManufacturer")
	return r.MedicineRepository.FindByManufacturer(ctx, manufacturer)
}

func (r recMedicines) FindByNameAndManufacturer(ctx context.Context, name, manufacturer string) ([]clinic.Medicine, error) {
	r.rec.note("Medicines.FindByNameAndManufacturer")
	return r.MedicineRepository.FindByNameAndManufacturer(ctx, name, manufacturer)
}

type recAppointments struct {
	clinic.AppointmentRepository
	rec *recorder
}

func (r recAppointments) FindByID(ctx context.Context, id int64) (*clinic.Appointment, error) {
	r.rec.note("Appointments.FindByID")
	return r.AppointmentRepository.FindByID(ctx, id)
}

func (r recAppointments) FindAll(ctx context.Context) ([]clinic.Appointment, error) {
	r.rec.note("Appointments.FindAll")
	return r.AppointmentRepository.FindAll(ctx)
}

func (r recAppointments) FindByDate(ctx context.Context, day clinic.Date) ([]clinic.Appointment, error) {
	r.rec.note("Appointments.FindByDate")
	return r.AppointmentRepository.FindByDate(ctx, day)
}

func (r recAppointments) FindByConfirmed(ctx context.Context, confirmed bool) ([]clinic.Appointment, error) {
	r.rec.note("Appointments.FindByConfirmed")
	return r.AppointmentRepository.FindByConfirmed(ctx, confirmed)
}

func (r recAppointments) FindByDateAndConfirmed(ctx context.Context, day clinic.Date, confirmed bool) ([]clinic.Appointment, error) {
	r.rec.note("Appointments.FindByDateAndConfirmed")
	return r.AppointmentRepository.FindByDateAndConfirmed(ctx, day, confirmed)
}

func (r recAppointments) Save(ctx context.Context, a *clinic.Appointment) (*clinic.Appointment, error) {
	r.rec.note("Appointments.Save")
	return r.AppointmentRepository.Save(ctx, a)
}

type recPrescriptions struct {
	clinic.PrescriptionRepository
	rec *recorder
}

func (r recPrescriptions) FindAll(ctx context.Context) ([]clinic.Prescription, error) {
	r.rec.note("Prescriptions.FindAll")
	return r.PrescriptionRepository.FindAll(ctx)
}

func (r recPrescriptions) FindByActive(ctx context.Context, active bool) ([]clinic.Prescription, error) {
	r.rec.note("Prescriptions.FindByActive")
	return r.PrescriptionRepository.FindByActive(ctx, active)
}

func (r recPrescriptions) FindByDurationDays(ctx context.Context, days int) ([]clinic.Prescription, error) {
	r.rec.note("Prescriptions.FindByDurationDays")
	return r.PrescriptionRepository.FindByDurationDays(ctx, days)
}

func (r recPrescriptions) FindByActiveAndDurationDays(ctx context.Context, active bool, days int) ([]clinic.Prescription, error) {
	r.rec.note("Prescriptions.FindByActiveAndDurationDays")
	return r.PrescriptionRepository.FindByActiveAndDurationDays(ctx, active, days)
}

func (r recPrescriptions) Save(ctx context.Context, p *clinic.Prescription) (*clinic.Prescription, error) {
	r.rec.note("Prescriptions.Save")
	return r.PrescriptionRepository.Save(ctx, p)
}
