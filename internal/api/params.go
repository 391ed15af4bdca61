package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/validation"
)

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return validation.Struct(dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.Errors{name: fmt.Sprintf("El identificador %s no es válido", name)}
	}
	return id, nil
}

// queryParams collects query parsing failures so every bad parameter is
// reported in one response.
type queryParams struct {
	r    *http.Request
	errs validation.Errors
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{r: r, errs: validation.Errors{}}
}

func (q *queryParams) fail(name, msg string) {
	if _, seen := q.errs[name]; !seen {
		q.errs[name] = msg
	}
}

func (q *queryParams) raw(name string) string {
	return strings.TrimSpace(q.r.URL.Query().Get(name))
}

// String returns the parameter, "" when absent.
func (q *queryParams) String(name string) string {
	return q.raw(name)
}

func (q *queryParams) RequiredString(name string) string {
	v := q.raw(name)
	if v == "" {
		q.fail(name, fmt.Sprintf("El parámetro %s es obligatorio", name))
	}
	return v
}

func (q *queryParams) Bool(name string) *bool {
	v := q.raw(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, fmt.Sprintf("El parámetro %s debe ser true o false", name))
		return nil
	}
	return &b
}

func (q *queryParams) Int(name string) *int {
	v := q.raw(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, fmt.Sprintf("El parámetro %s debe ser un número entero", name))
		return nil
	}
	return &n
}

func (q *queryParams) Date(name string) *clinic.Date {
	v := q.raw(name)
	if v == "" {
		return nil
	}
	d, err := clinic.ParseDate(v)
	if err != nil {
		q.fail(name, fmt.Sprintf("El parámetro %s debe tener el formato yyyy-MM-dd", name))
		return nil
	}
	return &d
}

func (q *queryParams) RequiredFloat(name string) float64 {
	v := q.raw(name)
	if v == "" {
		q.fail(name, fmt.Sprintf("El parámetro %s es obligatorio", name))
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, fmt.Sprintf("El parámetro %s debe ser un número", name))
		return 0
	}
	return f
}

func (q *queryParams) Err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return q.errs
}
