package clinic

import (
	"context"
	"fmt"
)

func (s *Service) ListAppointments(ctx context.Context, f AppointmentFilter) ([]AppointmentOutput, error) {
	repo := s.store.Appointments()

	var (
		appts []Appointment
		err   error
	)
	switch {
	case f.Date == nil && f.Confirmed == nil:
		appts, err = repo.FindAll(ctx)
	case f.Date == nil:
		appts, err = repo.FindByConfirmed(ctx, *f.Confirmed)
	case f.Confirmed == nil:
		appts, err = repo.FindByDate(ctx, *f.Date)
	default:
		appts, err = repo.FindByDateAndConfirmed(ctx, *f.Date, *f.Confirmed)
	}
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return mapAll(appts, toAppointmentOutput), nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*AppointmentOutput, error) {
	return readThrough(ctx, s, cacheKey(EntityAppointment, id), func() (AppointmentOutput, error) {
		a, err := s.store.Appointments().FindByID(ctx, id)
		if err != nil {
			return AppointmentOutput{}, fmt.Errorf("get appointment: %w", err)
		}
		return toAppointmentOutput(*a), nil
	})
}

// AddAppointment books an appointment for an existing patient with an existing
// doctor. The patient is resolved first; if either lookup fails nothing is
// written and the doctor lookup is skipped when the patient is missing.
func (s *Service) AddAppointment(ctx context.Context, patientID, doctorID int64, in AppointmentRegistration) (*AppointmentOutput, error) {
	var out AppointmentOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		patient, err := tx.Patients().FindByID(ctx, patientID)
		if err != nil {
			return fmt.Errorf("load patient: %w", err)
		}
		doctor, err := tx.Doctors().FindByID(ctx, doctorID)
		if err != nil {
			return fmt.Errorf("load doctor: %w", err)
		}

		a := newAppointment(in, patient.ID, doctor.ID)
		saved, err := tx.Appointments().Save(ctx, &a)
		if err != nil {
			return fmt.Errorf("save appointment: %w", err)
		}
		out = toAppointmentOutput(*saved)
		return s.logEvent(ctx, tx, EntityAppointment, saved.ID, ActionCreated, out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ModifyAppointment merges the update; patient and doctor stay as booked.
func (s *Service) ModifyAppointment(ctx context.Context, id int64, in AppointmentUpdate) (*AppointmentOutput, error) {
	var out AppointmentOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		a, err := tx.Appointments().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load appointment: %w", err)
		}

		in.applyTo(a)

		saved, err := tx.Appointments().Save(ctx, a)
		if err != nil {
			return fmt.Errorf("save appointment: %w", err)
		}
		out = toAppointmentOutput(*saved)
		return s.logEvent(ctx, tx, EntityAppointment, id, ActionUpdated, out)
	})
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityAppointment, id))
	return &out, nil
}

// RemoveAppointment refuses to delete an appointment that has a prescription.
func (s *Service) RemoveAppointment(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.Appointments().FindByID(ctx, id); err != nil {
			return fmt.Errorf("load appointment: %w", err)
		}

		_, err := tx.Prescriptions().FindByAppointmentID(ctx, id)
		switch {
		case err == nil:
			return &DependentsError{Entity: EntityAppointment, ID: id, Dependent: EntityPrescription, Count: 1}
		case !isNotFound(err, EntityPrescription):
			return fmt.Errorf("check appointment prescription: %w", err)
		}

		if err := tx.Appointments().DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		return s.logEvent(ctx, tx, EntityAppointment, id, ActionDeleted, map[string]any{"id": id})
	})
	if err != nil {
		return err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityAppointment, id))
	return nil
}

// The three lookups below back both the /jpql and the /native routes, which
// therefore always agree.

func (s *Service) FindAppointmentsByPatientEmail(ctx context.Context, email string) ([]AppointmentOutput, error) {
	appts, err := s.store.Appointments().FindByPatientEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find appointments by patient email: %w", err)
	}
	return mapAll(appts, toAppointmentOutput), nil
}

func (s *Service) FindAppointmentsByDoctorName(ctx context.Context, name string) ([]AppointmentOutput, error) {
	appts, err := s.store.Appointments().FindByDoctorName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find appointments by doctor name: %w", err)
	}
	return mapAll(appts, toAppointmentOutput), nil
}

func (s *Service) FindAppointmentsWithCostGreaterThan(ctx context.Context, cost float64) ([]AppointmentOutput, error) {
	appts, err := s.store.Appointments().FindByCostGreaterThan(ctx, cost)
	if err != nil {
		return nil, fmt.Errorf("find appointments by cost: %w", err)
	}
	return mapAll(appts, toAppointmentOutput), nil
}

// GetAppointmentPrescription returns the prescription attached to the
// appointment, or ErrPrescriptionNotFound when there is none.
func (s *Service) GetAppointmentPrescription(ctx context.Context, appointmentID int64) (*PrescriptionOutput, error) {
	if _, err := s.store.Appointments().FindByID(ctx, appointmentID); err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	p, err := s.store.Prescriptions().FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment prescription: %w", err)
	}
	out := toPrescriptionOutput(*p)
	return &out, nil
}
