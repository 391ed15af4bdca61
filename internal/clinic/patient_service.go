package clinic

import (
	"context"
	"fmt"
)

// ListPatients picks the finder matching the filters that are set.
func (s *Service) ListPatients(ctx context.Context, f PatientFilter) ([]PatientOutput, error) {
	repo := s.store.Patients()

	var (
		patients []Patient
		err      error
	)
	switch {
	case f.Name == "" && f.Surname == "":
		patients, err = repo.FindAll(ctx)
	case f.Name == "":
		patients, err = repo.FindBySurname(ctx, f.Surname)
	case f.Surname == "":
		patients, err = repo.FindByName(ctx, f.Name)
	default:
		patients, err = repo.FindByNameAndSurname(ctx, f.Name, f.Surname)
	}
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return mapAll(patients, toPatientOutput), nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*PatientOutput, error) {
	return readThrough(ctx, s, cacheKey(EntityPatient, id), func() (PatientOutput, error) {
		p, err := s.store.Patients().FindByID(ctx, id)
		if err != nil {
			return PatientOutput{}, fmt.Errorf("get patient: %w", err)
		}
		return toPatientOutput(*p), nil
	})
}

func (s *Service) AddPatient(ctx context.Context, in PatientRegistration) (*PatientOutput, error) {
	var out PatientOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		p := newPatient(in)
		saved, err := tx.Patients().Save(ctx, &p)
		if err != nil {
			return fmt.Errorf("save patient: %w", err)
		}
		out = toPatientOutput(*saved)
		return s.logEvent(ctx, tx, EntityPatient, saved.ID, ActionCreated, out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ModifyPatient(ctx context.Context, id int64, in PatientUpdate) (*PatientOutput, error) {
	var out PatientOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		p, err := tx.Patients().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load patient: %w", err)
		}

		in.applyTo(p)

		saved, err := tx.Patients().Save(ctx, p)
		if err != nil {
			return fmt.Errorf("save patient: %w", err)
		}
		out = toPatientOutput(*saved)
		return s.logEvent(ctx, tx, EntityPatient, id, ActionUpdated, out)
	})
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityPatient, id))
	return &out, nil
}

// RemovePatient refuses to delete a patient that still has appointments.
func (s *Service) RemovePatient(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.Patients().FindByID(ctx, id); err != nil {
			return fmt.Errorf("load patient: %w", err)
		}

		appts, err := tx.Appointments().FindByPatientID(ctx, id)
		if err != nil {
			return fmt.Errorf("check patient appointments: %w", err)
		}
		if len(appts) > 0 {
			return &DependentsError{Entity: EntityPatient, ID: id, Dependent: EntityAppointment, Count: len(appts)}
		}

		if err := tx.Patients().DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("delete patient: %w", err)
		}
		return s.logEvent(ctx, tx, EntityPatient, id, ActionDeleted, map[string]any{"id": id})
	})
	if err != nil {
		return err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityPatient, id))
	return nil
}

// ListPatientAppointments returns the appointments that reference the patient.
func (s *Service) ListPatientAppointments(ctx context.Context, patientID int64) ([]AppointmentOutput, error) {
	if _, err := s.store.Patients().FindByID(ctx, patientID); err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	appts, err := s.store.Appointments().FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return mapAll(appts, toAppointmentOutput), nil
}
