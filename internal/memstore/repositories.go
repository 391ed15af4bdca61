package memstore

import (
	"context"
	"fmt"

	"github.com/hackgods/clinic-records-api/internal/clinic"
)

type patients struct{ s *Store }

func (r patients) FindByID(_ context.Context, id int64) (*clinic.Patient, error) {
	var out *clinic.Patient
	err := r.s.read(func(st *state) error {
		p, ok := st.patients[id]
		if !ok {
			return clinic.ErrPatientNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r patients) list(keep func(clinic.Patient) bool) ([]clinic.Patient, error) {
	var out []clinic.Patient
	err := r.s.read(func(st *state) error {
		out = filter(st.patients, keep)
		return nil
	})
	return out, err
}

func (r patients) FindAll(context.Context) ([]clinic.Patient, error) {
	return r.list(all[clinic.Patient])
}

func (r patients) FindByName(_ context.Context, name string) ([]clinic.Patient, error) {
	return r.list(func(p clinic.Patient) bool { return p.Name == name })
}

func (r patients) FindBySurname(_ context.Context, surname string) ([]clinic.Patient, error) {
	return r.list(func(p clinic.Patient) bool { return p.Surname == surname })
}

func (r patients) FindByNameAndSurname(_ context.Context, name, surname string) ([]clinic.Patient, error) {
	return r.list(func(p clinic.Patient) bool { return p.Name == name && p.Surname == surname })
}

func (r patients) Save(_ context.Context, p *clinic.Patient) (*clinic.Patient, error) {
	saved := *p
	err := r.s.write(func(st *state) error {
		if saved.ID == 0 {
			saved.ID = st.nextID("patients")
		} else if _, ok := st.patients[saved.ID]; !ok {
			return clinic.ErrPatientNotFound
		}
		st.patients[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r patients) DeleteByID(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.patients[id]; !ok {
			return clinic.ErrPatientNotFound
		}
		for _, a := range st.appointments {
			if a.PatientID == id {
				return restrict("appointments_patient_id_fkey")
			}
		}
		delete(st.patients, id)
		return nil
	})
}

type doctors struct{ s *Store }

func (r doctors) FindByID(_ context.Context, id int64) (*clinic.Doctor, error) {
	var out *clinic.Doctor
	err := r.s.read(func(st *state) error {
		d, ok := st.doctors[id]
		if !ok {
			return clinic.ErrDoctorNotFound
		}
		out = &d
		return nil
	})
	return out, err
}

func (r doctors) list(keep func(clinic.Doctor) bool) ([]clinic.Doctor, error) {
	var out []clinic.Doctor
	err := r.s.read(func(st *state) error {
		out = filter(st.doctors, keep)
		return nil
	})
	return out, err
}

func (r doctors) FindAll(context.Context) ([]clinic.Doctor, error) {
	return r.list(all[clinic.Doctor])
}

func (r doctors) FindByName(_ context.Context, name string) ([]clinic.Doctor, error) {
	return r.list(func(d clinic.Doctor) bool { return d.Name == name })
}

func (r doctors) FindBySpecialty(_ context.Context, specialty string) ([]clinic.Doctor, error) {
	return r.list(func(d clinic.Doctor) bool { return d.Specialty == specialty })
}

func (r doctors) FindByNameAndSpecialty(_ context.Context, name, specialty string) ([]clinic.Doctor, error) {
	return r.list(func(d clinic.Doctor) bool { return d.Name == name && d.Specialty == specialty })
}

func (r doctors) Save(_ context.Context, d *clinic.Doctor) (*clinic.Doctor, error) {
	saved := *d
	err := r.s.write(func(st *state) error {
		if saved.ID == 0 {
			saved.ID = st.nextID("doctors")
		} else if _, ok := st.doctors[saved.ID]; !ok {
			return clinic.ErrDoctorNotFound
		}
		st.doctors[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r doctors) DeleteByID(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.doctors[id]; !ok {
			return clinic.ErrDoctorNotFound
		}
		for _, a := range st.appointments {
			if a.DoctorID == id {
				return restrict("appointments_doctor_id_fkey")
			}
		}
		delete(st.doctors, id)
		return nil
	})
}

type medicines struct{ s *Store }

func (r medicines) FindByID(_ context.Context, id int64) (*clinic.Medicine, error) {
	var out *clinic.Medicine
	err := r.s.read(func(st *state) error {
		m, ok := st.medicines[id]
		if !ok {
			return clinic.ErrMedicineNotFound
		}
		m = cloneMedicine(m)
		out = &m
		return nil
	})
	return out, err
}

func (r medicines) list(keep func(clinic.Medicine) bool) ([]clinic.Medicine, error) {
	var out []clinic.Medicine
	err := r.s.read(func(st *state) error {
		out = filter(st.medicines, keep)
		for i := range out {
			out[i] = cloneMedicine(out[i])
		}
		return nil
	})
	return out, err
}

func (r medicines) FindAll(context.Context) ([]clinic.Medicine, error) {
	return r.list(all[clinic.Medicine])
}

func (r medicines) FindByName(_ context.Context, name string) ([]clinic.Medicine, error) {
	return r.list(func(m clinic.Medicine) bool { return m.Name == name })
}

func (r medicines) FindByManufacturer(_ context.Context, manufacturer string) ([]clinic.Medicine, error) {
	return r.list(func(m clinic.Medicine) bool { return m.Manufacturer == manufacturer })
}

func (r medicines) FindByNameAndManufacturer(_ context.Context, name, manufacturer string) ([]clinic.Medicine, error) {
	return r.list(func(m clinic.Medicine) bool { return m.Name == name && m.Manufacturer == manufacturer })
}

func (r medicines) FindExpiringBefore(_ context.Context, day clinic.Date) ([]clinic.Medicine, error) {
	return r.list(func(m clinic.Medicine) bool {
		return m.ExpiryDate != nil && m.ExpiryDate.Before(day.Time)
	})
}

func (r medicines) Save(_ context.Context, m *clinic.Medicine) (*clinic.Medicine, error) {
	saved := cloneMedicine(*m)
	err := r.s.write(func(st *state) error {
		if saved.ID == 0 {
			saved.ID = st.nextID("medicines")
		} else if _, ok := st.medicines[saved.ID]; !ok {
			return clinic.ErrMedicineNotFound
		}
		st.medicines[saved.ID] = cloneMedicine(saved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r medicines) DeleteByID(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.medicines[id]; !ok {
			return clinic.ErrMedicineNotFound
		}
		for _, p := range st.prescriptions {
			if p.MedicineID == id {
				return restrict("prescriptions_medicine_id_fkey")
			}
		}
		delete(st.medicines, id)
		return nil
	})
}

type appointments struct{ s *Store }

func (r appointments) FindByID(_ context.Context, id int64) (*clinic.Appointment, error) {
	var out *clinic.Appointment
	err := r.s.read(func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return clinic.ErrAppointmentNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r appointments) list(keep func(st *state, a clinic.Appointment) bool) ([]clinic.Appointment, error) {
	var out []clinic.Appointment
	err := r.s.read(func(st *state) error {
		out = filter(st.appointments, func(a clinic.Appointment) bool { return keep(st, a) })
		return nil
	})
	return out, err
}

func (r appointments) FindAll(context.Context) ([]clinic.Appointment, error) {
	return r.list(func(*state, clinic.Appointment) bool { return true })
}

func (r appointments) FindByDate(_ context.Context, day clinic.Date) ([]clinic.Appointment, error) {
	return r.list(func(_ *state, a clinic.Appointment) bool { return a.Date.Equal(day) })
}

func (r appointments) FindByConfirmed(_ context.Context, confirmed bool) ([]clinic.Appointment, error) {
	return r.list(func(_ *state, a clinic.Appointment) bool { return a.Confirmed == confirmed })
}

func (r appointments) FindByDateAndConfirmed(_ context.Context, day clinic.Date, confirmed bool) ([]clinic.Appointment, error) {
	return r.list(func(_ *state, a clinic.Appointment) bool {
		return a.Date.Equal(day) && a.Confirmed == confirmed
	})
}

func (r appointments) FindByPatientEmail(_ context.Context, email string) ([]clinic.Appointment, error) {
	return r.list(func(st *state, a clinic.Appointment) bool {
		p, ok := st.patients[a.PatientID]
		return ok && p.Email == email
	})
}

func (r appointments) FindByDoctorName(_ context.Context, name string) ([]clinic.Appointment, error) {
	return r.list(func(st *state, a clinic.Appointment) bool {
		d, ok := st.doctors[a.DoctorID]
		return ok && d.Name == name
	})
}

func (r appointments) FindByCostGreaterThan(_ context.Context, cost float64) ([]clinic.Appointment, error) {
	return r.list(func(_ *state, a clinic.Appointment) bool { return a.Cost > cost })
}

func (r appointments) FindByPatientID(_ context.Context, patientID int64) ([]clinic.Appointment, error) {
	return r.list(func(_ *state, a clinic.Appointment) bool { return a.PatientID == patientID })
}

func (r appointments) FindByDoctorID(_ context.Context, doctorID int64) ([]clinic.Appointment, error) {
	return r.list(func(_ *state, a clinic.Appointment) bool { return a.DoctorID == doctorID })
}

// Save keeps the stored patient and doctor on update.
func (r appointments) Save(_ context.Context, a *clinic.Appointment) (*clinic.Appointment, error) {
	saved := *a
	err := r.s.write(func(st *state) error {
		if saved.ID == 0 {
			if _, ok := st.patients[saved.PatientID]; !ok {
				return fmt.Errorf("insert appointment: %w", clinic.ErrPatientNotFound)
			}
			if _, ok := st.doctors[saved.DoctorID]; !ok {
				return fmt.Errorf("insert appointment: %w", clinic.ErrDoctorNotFound)
			}
			saved.ID = st.nextID("appointments")
		} else {
			stored, ok := st.appointments[saved.ID]
			if !ok {
				return clinic.ErrAppointmentNotFound
			}
			saved.PatientID = stored.PatientID
			saved.DoctorID = stored.DoctorID
		}
		st.appointments[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r appointments) DeleteByID(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.appointments[id]; !ok {
			return clinic.ErrAppointmentNotFound
		}
		for _, p := range st.prescriptions {
			if p.AppointmentID == id {
				return restrict("prescriptions_appointment_id_fkey")
			}
		}
		delete(st.appointments, id)
		return nil
	})
}

type prescriptions struct{ s *Store }

func (r prescriptions) FindByID(_ context.Context, id int64) (*clinic.Prescription, error) {
	var out *clinic.Prescription
	err := r.s.read(func(st *state) error {
		p, ok := st.prescriptions[id]
		if !ok {
			return clinic.ErrPrescriptionNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r prescriptions) list(keep func(clinic.Prescription) bool) ([]clinic.Prescription, error) {
	var out []clinic.Prescription
	err := r.s.read(func(st *state) error {
		out = filter(st.prescriptions, keep)
		return nil
	})
	return out, err
}

func (r prescriptions) FindAll(context.Context) ([]clinic.Prescription, error) {
	return r.list(all[clinic.Prescription])
}

func (r prescriptions) FindByActive(_ context.Context, active bool) ([]clinic.Prescription, error) {
	return r.list(func(p clinic.Prescription) bool { return p.Active == active })
}

func (r prescriptions) FindByDurationDays(_ context.Context, days int) ([]clinic.Prescription, error) {
	return r.list(func(p clinic.Prescription) bool { return p.DurationDays == days })
}

func (r prescriptions) FindByActiveAndDurationDays(_ context.Context, active bool, days int) ([]clinic.Prescription, error) {
	return r.list(func(p clinic.Prescription) bool { return p.Active == active && p.DurationDays == days })
}

func (r prescriptions) FindByAppointmentID(_ context.Context, appointmentID int64) (*clinic.Prescription, error) {
	var out *clinic.Prescription
	err := r.s.read(func(st *state) error {
		for _, p := range st.prescriptions {
			if p.AppointmentID == appointmentID {
				out = &p
				return nil
			}
		}
		return clinic.ErrPrescriptionNotFound
	})
	return out, err
}

func (r prescriptions) FindByMedicineID(_ context.Context, medicineID int64) ([]clinic.Prescription, error) {
	return r.list(func(p clinic.Prescription) bool { return p.MedicineID == medicineID })
}

func (r prescriptions) Save(_ context.Context, p *clinic.Prescription) (*clinic.Prescription, error) {
	saved := *p
	err := r.s.write(func(st *state) error {
		if saved.ID == 0 {
			if _, ok := st.appointments[saved.AppointmentID]; !ok {
				return fmt.Errorf("insert prescription: %w", clinic.ErrAppointmentNotFound)
			}
			if _, ok := st.medicines[saved.MedicineID]; !ok {
				return fmt.Errorf("insert prescription: %w", clinic.ErrMedicineNotFound)
			}
			for _, existing := range st.prescriptions {
				if existing.AppointmentID == saved.AppointmentID {
					return clinic.ErrPrescriptionExists
				}
			}
			saved.ID = st.nextID("prescriptions")
		} else {
			stored, ok := st.prescriptions[saved.ID]
			if !ok {
				return clinic.ErrPrescriptionNotFound
			}
			saved.AppointmentID = stored.AppointmentID
			saved.MedicineID = stored.MedicineID
		}
		st.prescriptions[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r prescriptions) DeleteByID(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.prescriptions[id]; !ok {
			return clinic.ErrPrescriptionNotFound
		}
		delete(st.prescriptions, id)
		return nil
	})
}

func restrict(constraint string) error {
	return fmt.Errorf("%s: %w", constraint, clinic.ErrHasDependents)
}
