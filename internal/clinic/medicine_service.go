package clinic

import (
	"context"
	"fmt"
)

func (s *Service) ListMedicines(ctx context.Context, f MedicineFilter) ([]MedicineOutput, error) {
	repo := s.store.Medicines()

	var (
		medicines []Medicine
		err       error
	)
	switch {
	case f.Name == "" && f.Manufacturer == "":
		medicines, err = repo.FindAll(ctx)
	case f.Name == "":
		medicines, err = repo.FindByManufacturer(ctx, f.Manufacturer)
	case f.Manufacturer == "":
		medicines, err = repo.FindByName(ctx, f.Name)
	default:
		medicines, err = repo.FindByNameAndManufacturer(ctx, f.Name, f.Manufacturer)
	}
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return mapAll(medicines, toMedicineOutput), nil
}

func (s *Service) GetMedicine(ctx context.Context, id int64) (*MedicineOutput, error) {
	return readThrough(ctx, s, cacheKey(EntityMedicine, id), func() (MedicineOutput, error) {
		m, err := s.store.Medicines().FindByID(ctx, id)
		if err != nil {
			return MedicineOutput{}, fmt.Errorf("get medicine: %w", err)
		}
		return toMedicineOutput(*m), nil
	})
}

func (s *Service) AddMedicine(ctx context.Context, in MedicineRegistration) (*MedicineOutput, error) {
	var out MedicineOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		m := newMedicine(in)
		saved, err := tx.Medicines().Save(ctx, &m)
		if err != nil {
			return fmt.Errorf("save medicine: %w", err)
		}
		out = toMedicineOutput(*saved)
		return s.logEvent(ctx, tx, EntityMedicine, saved.ID, ActionCreated, out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ModifyMedicine(ctx context.Context, id int64, in MedicineUpdate) (*MedicineOutput, error) {
	var out MedicineOutput
	err := s.store.WithTx(ctx, func(tx Store) error {
		m, err := tx.Medicines().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load medicine: %w", err)
		}

		in.applyTo(m)

		saved, err := tx.Medicines().Save(ctx, m)
		if err != nil {
			return fmt.Errorf("save medicine: %w", err)
		}
		out = toMedicineOutput(*saved)
		return s.logEvent(ctx, tx, EntityMedicine, id, ActionUpdated, out)
	})
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityMedicine, id))
	return &out, nil
}

// RemoveMedicine refuses to delete a medicine that is still prescribed.
func (s *Service) RemoveMedicine(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.Medicines().FindByID(ctx, id); err != nil {
			return fmt.Errorf("load medicine: %w", err)
		}

		prescriptions, err := tx.Prescriptions().FindByMedicineID(ctx, id)
		if err != nil {
			return fmt.Errorf("check medicine prescriptions: %w", err)
		}
		if len(prescriptions) > 0 {
			return &DependentsError{Entity: EntityMedicine, ID: id, Dependent: EntityPrescription, Count: len(prescriptions)}
		}

		if err := tx.Medicines().DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("delete medicine: %w", err)
		}
		return s.logEvent(ctx, tx, EntityMedicine, id, ActionDeleted, map[string]any{"id": id})
	})
	if err != nil {
		return err
	}

	s.cacheInvalidate(ctx, cacheKey(EntityMedicine, id))
	return nil
}

func (s *Service) ListMedicinePrescriptions(ctx context.Context, medicineID int64) ([]PrescriptionOutput, error) {
	if _, err := s.store.Medicines().FindByID(ctx, medicineID); err != nil {
		return nil, fmt.Errorf("load medicine: %w", err)
	}

	prescriptions, err := s.store.Prescriptions().FindByMedicineID(ctx, medicineID)
	if err != nil {
		return nil, fmt.Errorf("list medicine prescriptions: %w", err)
	}
	return mapAll(prescriptions, toPrescriptionOutput), nil
}

// ListMedicinesExpiringBefore is used by the expiry worker. Medicines without
// an expiry date are never reported.
func (s *Service) ListMedicinesExpiringBefore(ctx context.Context, day Date) ([]MedicineOutput, error) {
	medicines, err := s.store.Medicines().FindExpiringBefore(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("find expiring medicines: %w", err)
	}
	return mapAll(medicines, toMedicineOutput), nil
}
