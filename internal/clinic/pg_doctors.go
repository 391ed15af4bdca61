package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const doctorColumns = `id, name, surname, license_number, specialty, hiring_date, active`

type pgDoctors struct {
	q querier
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var hiringDate *time.Time

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Surname,
		&d.LicenseNumber,
		&d.Specialty,
		&hiringDate,
		&d.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	d.HiringDate = dateFrom(hiringDate)
	return &d, nil
}

func (r *pgDoctors) FindByID(ctx context.Context, id int64) (*Doctor, error) {
	row := r.q.QueryRow(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	return scanDoctor(row)
}

func (r *pgDoctors) FindAll(ctx context.Context) ([]Doctor, error) {
	return queryAll(ctx, r.q, scanDoctor, `SELECT `+doctorColumns+` FROM doctors ORDER BY id`)
}

func (r *pgDoctors) FindByName(ctx context.Context, name string) ([]Doctor, error) {
	return queryAll(ctx, r.q, scanDoctor, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE name = $1
		ORDER BY id
	`, name)
}

func (r *pgDoctors) FindBySpecialty(ctx context.Context, specialty string) ([]Doctor, error) {
	return queryAll(ctx, r.q, scanDoctor, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE specialty = $1
		ORDER BY id
	`, specialty)
}

func (r *pgDoctors) FindByNameAndSpecialty(ctx context.Context, name, specialty string) ([]Doctor, error) {
	return queryAll(ctx, r.q, scanDoctor, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE name = $1 AND specialty = $2
		ORDER BY id
	`, name, specialty)
}

func (r *pgDoctors) Save(ctx context.Context, d *Doctor) (*Doctor, error) {
	if d.ID == 0 {
		row := r.q.QueryRow(ctx, `
			INSERT INTO doctors (name, surname, license_number, specialty, hiring_date, active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+doctorColumns,
			d.Name, d.Surname, d.LicenseNumber, d.Specialty, dateArg(d.HiringDate), d.Active)
		return scanDoctor(row)
	}

	row := r.q.QueryRow(ctx, `
		UPDATE doctors
		SET name = $2,
		    surname = $3,
		    license_number = $4,
		    specialty = $5,
		    hiring_date = $6,
		    active = $7
		WHERE id = $1
		RETURNING `+doctorColumns,
		d.ID, d.Name, d.Surname, d.LicenseNumber, d.Specialty, dateArg(d.HiringDate), d.Active)
	return scanDoctor(row)
}

func (r *pgDoctors) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "doctors", id, ErrDoctorNotFound)
}
