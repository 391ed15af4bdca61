package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const medicineColumns = `id, name, manufacturer, price, prescription_required, expiry_date, stock`

type pgMedicines struct {
	q querier
}

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	var expiry *time.Time

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Manufacturer,
		&m.Price,
		&m.PrescriptionRequired,
		&expiry,
		&m.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMedicineNotFound
		}
		return nil, err
	}

	if expiry != nil {
		d := NewDate(*expiry)
		m.ExpiryDate = &d
	}
	return &m, nil
}

func expiryArg(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	return dateArg(*d)
}

func (r *pgMedicines) FindByID(ctx context.Context, id int64) (*Medicine, error) {
	row := r.q.QueryRow(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE id = $1`, id)
	return scanMedicine(row)
}

func (r *pgMedicines) FindAll(ctx context.Context) ([]Medicine, error) {
	return queryAll(ctx, r.q, scanMedicine, `SELECT `+medicineColumns+` FROM medicines ORDER BY id`)
}

func (r *pgMedicines) FindByName(ctx context.Context, name string) ([]Medicine, error) {
	return queryAll(ctx, r.q, scanMedicine, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE name = $1
		ORDER BY id
	`, name)
}

func (r *pgMedicines) FindByManufacturer(ctx context.Context, manufacturer string) ([]Medicine, error) {
	return queryAll(ctx, r.q, scanMedicine, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE manufacturer = $1
		ORDER BY id
	`, manufacturer)
}

func (r *pgMedicines) FindByNameAndManufacturer(ctx context.Context, name, manufacturer string) ([]Medicine, error) {
	return queryAll(ctx, r.q, scanMedicine, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE name = $1 AND manufacturer = $2
		ORDER BY id
	`, name, manufacturer)
}

func (r *pgMedicines) FindExpiringBefore(ctx context.Context, day Date) ([]Medicine, error) {
	return queryAll(ctx, r.q, scanMedicine, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE expiry_date IS NOT NULL
		  AND expiry_date < $1
		ORDER BY expiry_date, id
	`, day.Time)
}

func (r *pgMedicines) Save(ctx context.Context, m *Medicine) (*Medicine, error) {
	if m.ID == 0 {
		row := r.q.QueryRow(ctx, `
			INSERT INTO medicines (name, manufacturer, price, prescription_required, expiry_date, stock)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+medicineColumns,
			m.Name, m.Manufacturer, m.Price, m.PrescriptionRequired, expiryArg(m.ExpiryDate), m.Stock)
		return scanMedicine(row)
	}

	row := r.q.QueryRow(ctx, `
		UPDATE medicines
		SET name = $2,
		    manufacturer = $3,
		    price = $4,
		    prescription_required = $5,
		    expiry_date = $6,
		    stock = $7
		WHERE id = $1
		RETURNING `+medicineColumns,
		m.ID, m.Name, m.Manufacturer, m.Price, m.PrescriptionRequired, expiryArg(m.ExpiryDate), m.Stock)
	return scanMedicine(row)
}

func (r *pgMedicines) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.q, "medicines", id, ErrMedicineNotFound)
}
