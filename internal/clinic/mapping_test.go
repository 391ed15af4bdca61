package clinic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDoctorHiringDate(t *testing.T) {
	today := NewDate(time.Date(2024, 5, 17, 15, 4, 0, 0, time.UTC))

	d := newDoctor(DoctorRegistration{}, today)
	assert.Equal(t, "2024-05-17", d.HiringDate.String())

	// explicit null decodes to a zero Date and still gets the default
	d = newDoctor(DoctorRegistration{HiringDate: &Date{}}, today)
	assert.Equal(t, "2024-05-17", d.HiringDate.String())

	given, err := ParseDate("2001-02-03")
	require.NoError(t, err)
	d = newDoctor(DoctorRegistration{HiringDate: &given}, today)
	assert.Equal(t, "2001-02-03", d.HiringDate.String())
}

func TestApplyToKeepsAbsentFields(t *testing.T) {
	p := Patient{ID: 7, Name: "Ana", Surname: "López", Email: "ana@example.com", Active: true, WeightKg: 60}

	name := "Anabel"
	weight := 0.0
	PatientUpdate{Name: &name, WeightKg: &weight, BirthDate: &Date{}}.applyTo(&p)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "Anabel", p.Name)
	assert.Equal(t, "López", p.Surname)
	assert.True(t, p.Active)
	assert.Zero(t, p.WeightKg)
	assert.True(t, p.BirthDate.IsZero())
}

func TestApplyToAppointmentLeavesReferences(t *testing.T) {
	a := Appointment{ID: 1, PatientID: 2, DoctorID: 3, DurationMinutes: 15}
	minutes := 45
	AppointmentUpdate{DurationMinutes: &minutes}.applyTo(&a)

	assert.Equal(t, 45, a.DurationMinutes)
	assert.Equal(t, int64(2), a.PatientID)
	assert.Equal(t, int64(3), a.DoctorID)
}

func TestMedicineOutputCopiesExpiry(t *testing.T) {
	expiry, err := ParseDate("2026-01-31")
	require.NoError(t, err)
	m := Medicine{Name: "Ibuprofeno", ExpiryDate: &expiry}

	out := toMedicineOutput(m)
	require.NotNil(t, out.ExpiryDate)
	assert.NotSame(t, m.ExpiryDate, out.ExpiryDate)

	assert.Nil(t, toMedicineOutput(Medicine{}).ExpiryDate)
}

func TestDateJSON(t *testing.T) {
	var body struct {
		Day  Date  `json:"day"`
		Opt  *Date `json:"opt"`
		Null *Date `json:"null"`
	}
	err := json.Unmarshal([]byte(`{"day":"2025-03-01","opt":"2025-12-24","null":null}`), &body)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", body.Day.String())
	require.NotNil(t, body.Opt)
	assert.Equal(t, "2025-12-24", body.Opt.String())
	assert.Nil(t, body.Null)

	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2025-03-01","opt":"2025-12-24","null":null}`, string(data))

	zero, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(zero))
}

func TestDateJSONRejectsBadInput(t *testing.T) {
	for _, in := range []string{`"01/03/2025"`, `"2025-13-01"`, `20250301`, `""`} {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}
}

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC))
	assert.True(t, d.Equal(NewDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, 0, d.Hour())
}
