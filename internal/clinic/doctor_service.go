package clinic

import (
	"context"
	"fmt"
)

func (s *Service) ListDoctors(ctx context.Context, f DoctorFilter) ([]DoctorOutput, error) {
	repo := s.store.Doctors()

	var (
		doctors []Doctor
		err     error
	)
	switch {
	case f.Name == "" && f.Specialty == "":
		doctors, err = repo.FindAll(ctx)
	case f.Name == "":
		doctors, err = repo.FindBySpecialty(ctx, f.Specialty)
	case f.Specialty == "":
		doctors, err = repo.FindByName(ctx, f.Name)
	default:
		doctors, err = repo.FindByNameAndSpecialty(ctx, f.Name, f.Specialty)
	}
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return mapAll(doctors, toDoctorOutput), nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*DoctorOutput, error) {
	return readThrough(ctx, s, cacheKey(EntityDoctor, id), func() (DoctorOutput, error) {
		d, err := s.store.Doctors().FindByID(ctx, id)
		if err != nil {
			return DoctorOutput{}, fmt.Errorf("get doctor: %w", err)
		}
		return toDoctorOutput(*d), nil
	})
}

// AddDoctor registers a doctor; a missing hiring date becomes today.
func (s *Service) AddDoctor(ctx context.Context, in DoctorRegistration) (*DoctorOutput, error) {
	var out DoctorOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		d := newDoctor(in, s.today())
		saved, err := tx.Doctors().Save(ctx, &d)
		if err != nil {
			return fmt.Errorf("save doctor: %w", err)
		}
		out = toDoctorOutput(*saved)
		return s.logEvent(ctx, tx, EntityDoctor, saved.ID, ActionCreated, out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ModifyDoctor(ctx context.Context, id int64, in DoctorUpdate) (*DoctorOutput, error) {
	var out DoctorOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		d, err := tx.Doctors().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load doctor: %w", err)
		}

		in.applyTo(d)

		saved, err := tx.Doctors().Save(ctx, d)
		if err != nil {
			return fmt.Errorf("save doctor: %w", err)
		}
		out = toDoctorOutput(*saved)
		return s.logEvent(ctx, tx, EntityDoctor, id, ActionUpdated, out)
	})
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityDoctor, id))
	return &out, nil
}

func (s *Service) RemoveDoctor(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.Doctors().FindByID(ctx, id); err != nil {
			return fmt.Errorf("load doctor: %w", err)
		}

		appts, err := tx.Appointments().FindByDoctorID(ctx, id)
		if err != nil {
			return fmt.Errorf("check doctor appointments: %w", err)
		}
		if len(appts) > 0 {
			return &DependentsError{Entity: EntityDoctor, ID: id, Dependent: EntityAppointment, Count: len(appts)}
		}

		if err := tx.Doctors().DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("delete doctor: %w", err)
		}
		return s.logEvent(ctx, tx, EntityDoctor, id, ActionDeleted, map[string]any{"id": id})
	})
	if err != nil {
		return err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityDoctor, id))
	return nil
}

func (s *Service) ListDoctorAppointments(ctx context.Context, doctorID int64) ([]AppointmentOutput, error) {
	if _, err := s.store.Doctors().FindByID(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	appts, err := s.store.Appointments().FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	return mapAll(appts, toAppointmentOutput), nil
}
