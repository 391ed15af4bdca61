package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const patientColumns = `id, name, surname, email, birth_date, active, weight_kg`

type pgPatients struct {
	q querier
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var birthDate *time.Time

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Surname,
		&p.Email,
		&birthDate,
		&p.Active,
		&p.WeightKg,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p.BirthDate = dateFrom(birthDate)
	return &p, nil
}

func (r *pgPatients) FindByID(ctx context.Context, id int64) (*Patient, error) {
	row := r.q.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *pgPatients) FindAll(ctx context.Context) ([]Patient, error) {
	return queryAll(ctx, r.q, scanPatient, `SELECT `+patientColumns+` FROM patients ORDER BY id`)
}

func (r *pgPatients) FindByName(ctx context.Context, name string) ([]Patient, error) {
	return queryAll(ctx, r.q, scanPatient, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE name = $1
		ORDER BY id
	`, name)
}

func (r *pgPatients) FindBySurname(ctx context.Context, surname string) ([]Patient, error) {
	return queryAll(ctx, r.q, scanPatient, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE surname = $1
		ORDER BY id
	`, surname)
}

func (r *pgPatients) FindByNameAndSurname(ctx context.Context, name, surname string) ([]Patient, error) {
	return queryAll(ctx, r.q, scanPatient, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE name = $1 AND surname = $2
		ORDER BY id
	`, name, surname)
}

// Save inserts when p.ID is zero and updates otherwise.
func (r *pgPatients) Save(ctx context.Context, p *Patient) (*Patient, error) {
	if p.ID == 0 {
		row := r.q.QueryRow(ctx, `
			INSERT INTO patients (name, surname, email, birth_date, active, weight_kg)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+patientColumns,
			p.Name, p.Surname, p.Email, dateArg(p.BirthDate), p.Active, p.WeightKg)
		return scanPatient(row)
	}

	row := r.q.QueryRow(ctx, `
		UPDATE patients
		SET name = $2,
		    surname = $3,
		    email = $4,
		    birth_date = $5,
		    active = $6,
		    weight_kg = $7
		WHERE id = $1
		RETURNING `+patientColumns,
		p.ID, p.Name, p.Surname, p.Email, dateArg(p.BirthDate), p.Active, p.WeightKg)
	return scanPatient(row)
}

func (r *pgPatients) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "patients", id, ErrPatientNotFound)
}
