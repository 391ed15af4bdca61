package clinic

// Registration -> entity. Absent optional fields take the entity's zero value
// unless a default is listed here.

func newPatient(in PatientRegistration) Patient {
	return Patient{
		Name:      deref(in.Name),
		Surname:   deref(in.Surname),
		Email:     deref(in.Email),
		BirthDate: deref(in.BirthDate),
		Active:    deref(in.Active),
		WeightKg:  deref(in.WeightKg),
	}
}

// newDoctor defaults the hiring date to today.
func newDoctor(in DoctorRegistration, today Date) Doctor {
	d := Doctor{
		Name:          deref(in.Name),
		Surname:       deref(in.Surname),
		LicenseNumber: deref(in.LicenseNumber),
		Specialty:     deref(in.Specialty),
		HiringDate:    today,
		Active:        deref(in.Active),
	}
	if in.HiringDate != nil && !in.HiringDate.IsZero() {
		d.HiringDate = *in.HiringDate
	}
	return d
}

func newMedicine(in MedicineRegistration) Medicine {
	m := Medicine{
		Name:                 deref(in.Name),
		Manufacturer:         deref(in.Manufacturer),
		Price:                deref(in.Price),
		PrescriptionRequired: deref(in.PrescriptionRequired),
		Stock:                deref(in.Stock),
	}
	if in.ExpiryDate != nil && !in.ExpiryDate.IsZero() {
		expiry := *in.ExpiryDate
		m.ExpiryDate = &expiry
	}
	return m
}

// newAppointment leaves confirmed false when absent.
func newAppointment(in AppointmentRegistration, patientID, doctorID int64) Appointment {
	return Appointment{
		Date:            deref(in.Date),
		Reason:          deref(in.Reason),
		Confirmed:       deref(in.Confirmed),
		Cost:            deref(in.Cost),
		DurationMinutes: deref(in.DurationMinutes),
		PatientID:       patientID,
		DoctorID:        doctorID,
	}
}

func newPrescription(in PrescriptionRegistration, appointmentID, medicineID int64) Prescription {
	return Prescription{
		Notes:              deref(in.Notes),
		Active:             deref(in.Active),
		DurationDays:       deref(in.DurationDays),
		TotalCost:          deref(in.TotalCost),
		DosageInstructions: deref(in.DosageInstructions),
		AppointmentID:      appointmentID,
		MedicineID:         medicineID,
	}
}

// Update merge. Only non-nil fields overwrite; ids and foreign keys are never
// touched.

func (in PatientUpdate) applyTo(p *Patient) {
	assign(&p.Name, in.Name)
	assign(&p.Surname, in.Surname)
	assign(&p.Email, in.Email)
	assignDate(&p.BirthDate, in.BirthDate)
	assign(&p.Active, in.Active)
	assign(&p.WeightKg, in.WeightKg)
}

func (in DoctorUpdate) applyTo(d *Doctor) {
	assign(&d.Name, in.Name)
	assign(&d.Surname, in.Surname)
	assign(&d.LicenseNumber, in.LicenseNumber)
	assign(&d.Specialty, in.Specialty)
	assignDate(&d.HiringDate, in.HiringDate)
	assign(&d.Active, in.Active)
}

func (in MedicineUpdate) applyTo(m *Medicine) {
	assign(&m.Name, in.Name)
	assign(&m.Manufacturer, in.Manufacturer)
	assign(&m.Price, in.Price)
	assign(&m.PrescriptionRequired, in.PrescriptionRequired)
	if in.ExpiryDate != nil && !in.ExpiryDate.IsZero() {
		expiry := *in.ExpiryDate
		m.ExpiryDate = &expiry
	}
	assign(&m.Stock, in.Stock)
}

func (in AppointmentUpdate) applyTo(a *Appointment) {
	assignDate(&a.Date, in.Date)
	assign(&a.Reason, in.Reason)
	assign(&a.Confirmed, in.Confirmed)
	assign(&a.Cost, in.Cost)
	assign(&a.DurationMinutes, in.DurationMinutes)
}

func (in PrescriptionUpdate) applyTo(p *Prescription) {
	assign(&p.Notes, in.Notes)
	assign(&p.Active, in.Active)
	assign(&p.DurationDays, in.DurationDays)
	assign(&p.TotalCost, in.TotalCost)
	assign(&p.DosageInstructions, in.DosageInstructions)
}

// Entity -> output projection.

func toPatientOutput(p Patient) PatientOutput {
	return PatientOutput{
		ID:        p.ID,
		Name:      p.Name,
		Surname:   p.Surname,
		Email:     p.Email,
		BirthDate: p.BirthDate,
		Active:    p.Active,
		WeightKg:  p.WeightKg,
	}
}

func toDoctorOutput(d Doctor) DoctorOutput {
	return DoctorOutput{
		ID:            d.ID,
		Name:          d.Name,
		Surname:       d.Surname,
		LicenseNumber: d.LicenseNumber,
		Specialty:     d.Specialty,
		HiringDate:    d.HiringDate,
		Active:        d.Active,
	}
}

func toMedicineOutput(m Medicine) MedicineOutput {
	out := MedicineOutput{
		ID:                   m.ID,
		Name:                 m.Name,
		Manufacturer:         m.Manufacturer,
		Price:                m.Price,
		PrescriptionRequired: m.PrescriptionRequired,
		Stock:                m.Stock,
	}
	if m.ExpiryDate != nil {
		expiry := *m.ExpiryDate
		out.ExpiryDate = &expiry
	}
	return out
}

func toAppointmentOutput(a Appointment) AppointmentOutput {
	return AppointmentOutput{
		ID:              a.ID,
		Date:            a.Date,
		Reason:          a.Reason,
		Confirmed:       a.Confirmed,
		Cost:            a.Cost,
		DurationMinutes: a.DurationMinutes,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
	}
}

func toPrescriptionOutput(p Prescription) PrescriptionOutput {
	return PrescriptionOutput{
		ID:                 p.ID,
		Notes:              p.Notes,
		Active:             p.Active,
		DurationDays:       p.DurationDays,
		TotalCost:          p.TotalCost,
		DosageInstructions: p.DosageInstructions,
		AppointmentID:      p.AppointmentID,
		MedicineID:         p.MedicineID,
	}
}

func mapAll[E, O any](items []E, fn func(E) O) []O {
	out := make([]O, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// assignDate treats an explicit JSON null, which decodes to a zero Date, as
// absent.
func assignDate(dst *Date, src *Date) {
	if src != nil && !src.IsZero() {
		*dst = *src
	}
}
