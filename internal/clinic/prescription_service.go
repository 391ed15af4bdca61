package clinic

import (
	"context"
	"errors"
	"fmt"
)

func (s *Service) ListPrescriptions(ctx context.Context, f PrescriptionFilter) ([]PrescriptionOutput, error) {
	repo := s.store.Prescriptions()

	var (
		prescriptions []Prescription
		err           error
	)
	switch {
	case f.Active == nil && f.DurationDays == nil:
		prescriptions, err = repo.FindAll(ctx)
	case f.Active == nil:
		prescriptions, err = repo.FindByDurationDays(ctx, *f.DurationDays)
	case f.DurationDays == nil:
		prescriptions, err = repo.FindByActive(ctx, *f.Active)
	default:
		prescriptions, err = repo.FindByActiveAndDurationDays(ctx, *f.Active, *f.DurationDays)
	}
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return mapAll(prescriptions, toPrescriptionOutput), nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*PrescriptionOutput, error) {
	return readThrough(ctx, s, cacheKey(EntityPrescription, id), func() (PrescriptionOutput, error) {
		p, err := s.store.Prescriptions().FindByID(ctx, id)
		if err != nil {
			return PrescriptionOutput{}, fmt.Errorf("get prescription: %w", err)
		}
		return toPrescriptionOutput(*p), nil
	})
}

// AddPrescription attaches a prescription to an appointment. The appointment
// is resolved before the medicine, and an appointment that already carries a
// prescription is rejected with ErrPrescriptionExists.
func (s *Service) AddPrescription(ctx context.Context, appointmentID, medicineID int64, in PrescriptionRegistration) (*PrescriptionOutput, error) {
	var out PrescriptionOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		appt, err := tx.Appointments().FindByID(ctx, appointmentID)
		if err != nil {
			return fmt.Errorf("load appointment: %w", err)
		}
		medicine, err := tx.Medicines().FindByID(ctx, medicineID)
		if err != nil {
			return fmt.Errorf("load medicine: %w", err)
		}

		_, err = tx.Prescriptions().FindByAppointmentID(ctx, appt.ID)
		switch {
		case err == nil:
			return ErrPrescriptionExists
		case !isNotFound(err, EntityPrescription):
			return fmt.Errorf("check existing prescription: %w", err)
		}

		p := newPrescription(in, appt.ID, medicine.ID)
		saved, err := tx.Prescriptions().Save(ctx, &p)
		if err != nil {
			return fmt.Errorf("save prescription: %w", err)
		}
		out = toPrescriptionOutput(*saved)
		return s.logEvent(ctx, tx, EntityPrescription, saved.ID, ActionCreated, out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ModifyPrescription(ctx context.Context, id int64, in PrescriptionUpdate) (*PrescriptionOutput, error) {
	var out PrescriptionOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		p, err := tx.Prescriptions().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load prescription: %w", err)
		}

		in.applyTo(p)

		saved, err := tx.Prescriptions().Save(ctx, p)
		if err != nil {
			return fmt.Errorf("save prescription: %w", err)
		}
		out = toPrescriptionOutput(*saved)
		return s.logEvent(ctx, tx, EntityPrescription, id, ActionUpdated, out)
	})
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityPrescription, id))
	return &out, nil
}

func (s *Service) RemovePrescription(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.Prescriptions().FindByID(ctx, id); err != nil {
			return fmt.Errorf("load prescription: %w", err)
		}
		if err := tx.Prescriptions().DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("delete prescription: %w", err)
		}
		return s.logEvent(ctx, tx, EntityPrescription, id, ActionDeleted, map[string]any{"id": id})
	})
	if err != nil {
		return err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityPrescription, id))
	return nil
}

func isNotFound(err error, entity string) bool {
	return errors.Is(err, &NotFoundError{Entity: entity})
}
