package clinic

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const prescriptionColumns = `id, notes, active, duration_days, total_cost, dosage_instructions, appointment_id, medicine_id`

type pgPrescriptions struct {
	q querier
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription

	err := row.Scan(
		&p.ID,
		&p.Notes,
		&p.Active,
		&p.DurationDays,
		&p.TotalCost,
		&p.DosageInstructions,
		&p.AppointmentID,
		&p.MedicineID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *pgPrescriptions) FindByID(ctx context.Context, id int64) (*Prescription, error) {
	row := r.q.QueryRow(ctx, `SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id)
	return scanPrescription(row)
}

func (r *pgPrescriptions) FindAll(ctx context.Context) ([]Prescription, error) {
	return queryAll(ctx, r.q, scanPrescription, `SELECT `+prescriptionColumns+` FROM prescriptions ORDER BY id`)
}

func (r *pgPrescriptions) FindByActive(ctx context.Context, active bool) ([]Prescription, error) {
	return queryAll(ctx, r.q, scanPrescription, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE active = $1
		ORDER BY id
	`, active)
}

func (r *pgPrescriptions) FindByDurationDays(ctx context.Context, days int) ([]Prescription, error) {
	return queryAll(ctx, r.q, scanPrescription, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE duration_days = $1
		ORDER BY id
	`, days)
}

func (r *pgPrescriptions) FindByActiveAndDurationDays(ctx context.Context, active bool, days int) ([]Prescription, error) {
	return queryAll(ctx, r.q, scanPrescription, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE active = $1 AND duration_days = $2
		ORDER BY id
	`, active, days)
}

func (r *pgPrescriptions) FindByAppointmentID(ctx context.Context, appointmentID int64) (*Prescription, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE appointment_id = $1
	`, appointmentID)
	return scanPrescription(row)
}

func (r *pgPrescriptions) FindByMedicineID(ctx context.Context, medicineID int64) ([]Prescription, error) {
	return queryAll(ctx, r.q, scanPrescription, `
		SELECT `+prescriptionColumns+`
		FROM prescriptions
		WHERE medicine_id = $1
		ORDER BY id
	`, medicineID)
}

func (r *pgPrescriptions) Save(ctx context.Context, p *Prescription) (*Prescription, error) {
	if p.ID == 0 {
		row := r.q.QueryRow(ctx, `
			INSERT INTO prescriptions (notes, active, duration_days, total_cost, dosage_instructions, appointment_id, medicine_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+prescriptionColumns,
			p.Notes, p.Active, p.DurationDays, p.TotalCost, p.DosageInstructions, p.AppointmentID, p.MedicineID)
		saved, err := scanPrescription(row)
		if pgErr, ok := pgCode(err); ok && pgErr.Code == pgUniqueViolation {
			return nil, ErrPrescriptionExists
		}
		return saved, err
	}

	row := r.q.QueryRow(ctx, `
		UPDATE prescriptions
		SET notes = $2,
		    active = $3,
		    duration_days = $4,
		    total_cost = $5,
		    dosage_instructions = $6
		WHERE id = $1
		RETURNING `+prescriptionColumns,
		p.ID, p.Notes, p.Active, p.DurationDays, p.TotalCost, p.DosageInstructions)
	return scanPrescription(row)
}

func (r *pgPrescriptions) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "prescriptions", id, ErrPrescriptionNotFound)
}
