package clinic

// Registration shapes are decoded from create requests. Pointer fields
// distinguish "absent" from the zero value so that required checks and
// defaults can be applied.

type PatientRegistration struct {
	Name      *string  `json:"name" validate:"required,notblank"`
	Surname   *string  `json:"surname" validate:"required,notblank"`
	Email     *string  `json:"email" validate:"required,notblank,email"`
	BirthDate *Date    `json:"birthDate" validate:"required"`
	Active    *bool    `json:"active" validate:"required"`
	WeightKg  *float64 `json:"weightKg" validate:"omitnil,gte=0"`
}

func (PatientRegistration) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":      "El campo name es obligatorio",
		"name.notblank":      "El campo name es obligatorio",
		"surname.required":   "El campo surname es obligatorio",
		"surname.notblank":   "El campo surname es obligatorio",
		"email.required":     "El email es obligatorio",
		"email.notblank":     "El email es obligatorio",
		"email.email":        "Formato de email inválido",
		"birthDate.required": "La fecha de nacimiento es obligatoria",
		"active.required":    "El campo active es obligatorio",
		"weightKg.gte":       "El peso no puede ser negativo",
	}
}

// PatientUpdate carries a partial patient; nil fields keep the stored value.
type PatientUpdate struct {
	Name      *string  `json:"name"`
	Surname   *string  `json:"surname"`
	Email     *string  `json:"email" validate:"omitnil,email"`
	BirthDate *Date    `json:"birthDate"`
	Active    *bool    `json:"active"`
	WeightKg  *float64 `json:"weightKg" validate:"omitnil,gte=0"`
}

func (PatientUpdate) ValidationMessages() map[string]string {
	return map[string]string{
		"email.email":  "Formato de email inválido",
		"weightKg.gte": "El peso no puede ser negativo",
	}
}

type PatientOutput struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Email     string  `json:"email"`
	BirthDate Date    `json:"birthDate"`
	Active    bool    `json:"active"`
	WeightKg  float64 `json:"weightKg"`
}

type DoctorRegistration struct {
	Name          *string `json:"name" validate:"required,notblank"`
	Surname       *string `json:"surname" validate:"required,notblank"`
	LicenseNumber *string `json:"licenseNumber" validate:"required,notblank"`
	Specialty     *string `json:"specialty"`
	HiringDate    *Date   `json:"hiringDate"`
	Active        *bool   `json:"active"`
}

func (DoctorRegistration) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":          "El campo name es obligatorio",
		"name.notblank":          "El campo name es obligatorio",
		"surname.required":       "El campo surname es obligatorio",
		"surname.notblank":       "El campo surname es obligatorio",
		"licenseNumber.required": "El número de licencia es obligatorio",
		"licenseNumber.notblank": "El número de licencia es obligatorio",
	}
}

type DoctorUpdate struct {
	Name          *string `json:"name"`
	Surname       *string `json:"surname"`
	LicenseNumber *string `json:"licenseNumber"`
	Specialty     *string `json:"specialty"`
	HiringDate    *Date   `json:"hiringDate"`
	Active        *bool   `json:"active"`
}

type DoctorOutput struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	LicenseNumber string `json:"licenseNumber"`
	Specialty     string `json:"specialty"`
	HiringDate    Date   `json:"hiringDate"`
	Active        bool   `json:"active"`
}

type MedicineRegistration struct {
	Name                 *string  `json:"name" validate:"required,notblank"`
	Manufacturer         *string  `json:"manufacturer"`
	Price                *float64 `json:"price" validate:"required,gte=0"`
	PrescriptionRequired *bool    `json:"prescriptionRequired"`
	ExpiryDate           *Date    `json:"expiryDate"`
	Stock                *int     `json:"stock" validate:"omitnil,gte=0"`
}

func (MedicineRegistration) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":  "El nombre es obligatorio",
		"name.notblank":  "El nombre es obligatorio",
		"price.required": "El precio es obligatorio",
		"price.gte":      "El precio no puede ser negativo",
		"stock.gte":      "El stock no puede ser negativo",
	}
}

type MedicineUpdate struct {
	Name                 *string  `json:"name"`
	Manufacturer         *string  `json:"manufacturer"`
	Price                *float64 `json:"price" validate:"omitnil,gte=0"`
	PrescriptionRequired *bool    `json:"prescriptionRequired"`
	ExpiryDate           *Date    `json:"expiryDate"`
	Stock                *int     `json:"stock" validate:"omitnil,gte=0"`
}

func (MedicineUpdate) ValidationMessages() map[string]string {
	return map[string]string{
		"price.gte": "El precio no puede ser negativo",
		"stock.gte": "El stock no puede ser negativo",
	}
}

type MedicineOutput struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Manufacturer         string  `json:"manufacturer"`
	Price                float64 `json:"price"`
	PrescriptionRequired bool    `json:"prescriptionRequired"`
	ExpiryDate           *Date   `json:"expiryDate"`
	Stock                int     `json:"stock"`
}

type AppointmentRegistration struct {
	Date            *Date    `json:"date" validate:"required"`
	Reason          *string  `json:"reason"`
	Confirmed       *bool    `json:"confirmed"`
	Cost            *float64 `json:"cost" validate:"omitnil,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" validate:"omitnil,gte=1"`
}

func (AppointmentRegistration) ValidationMessages() map[string]string {
	return map[string]string{
		"date.required":       "La fecha de la cita es obligatoria",
		"cost.gte":            "El coste no puede ser negativo",
		"durationMinutes.gte": "La duración debe ser mayor que 0",
	}
}

// AppointmentUpdate has no patient or doctor field: modify never re-targets
// an appointment.
type AppointmentUpdate struct {
	Date            *Date    `json:"date"`
	Reason          *string  `json:"reason"`
	Confirmed       *bool    `json:"confirmed"`
	Cost            *float64 `json:"cost" validate:"omitnil,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" validate:"omitnil,gte=1"`
}

func (AppointmentUpdate) ValidationMessages() map[string]string {
	return map[string]string{
		"cost.gte":            "El coste no puede ser negativo",
		"durationMinutes.gte": "La duración debe ser mayor que 0",
	}
}

type AppointmentOutput struct {
	ID              int64   `json:"id"`
	Date            Date    `json:"date"`
	Reason          string  `json:"reason"`
	Confirmed       bool    `json:"confirmed"`
	Cost            float64 `json:"cost"`
	DurationMinutes int     `json:"durationMinutes"`
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
}

type PrescriptionRegistration struct {
	Notes              *string  `json:"notes" validate:"required,notblank"`
	Active             *bool    `json:"active"`
	DurationDays       *int     `json:"durationDays" validate:"omitnil,gte=0"`
	TotalCost          *float64 `json:"totalCost" validate:"omitnil,gte=0"`
	DosageInstructions *string  `json:"dosageInstructions"`
}

func (PrescriptionRegistration) ValidationMessages() map[string]string {
	return map[string]string{
		"notes.required":   "Las notas son obligatorias",
		"notes.notblank":   "Las notas son obligatorias",
		"durationDays.gte": "La duración no puede ser negativa",
		"totalCost.gte":    "El coste total no puede ser negativo",
	}
}

type PrescriptionUpdate struct {
	Notes              *string  `json:"notes"`
	Active             *bool    `json:"active"`
	DurationDays       *int     `json:"durationDays" validate:"omitnil,gte=0"`
	TotalCost          *float64 `json:"totalCost" validate:"omitnil,gte=0"`
	DosageInstructions *string  `json:"dosageInstructions"`
}

func (PrescriptionUpdate) ValidationMessages() map[string]string {
	return map[string]string{
		"durationDays.gte": "La duración no puede ser negativa",
		"totalCost.gte":    "El coste total no puede ser negativo",
	}
}

type PrescriptionOutput struct {
	ID                 int64   `json:"id"`
	Notes              string  `json:"notes"`
	Active             bool    `json:"active"`
	DurationDays       int     `json:"durationDays"`
	TotalCost          float64 `json:"totalCost"`
	DosageInstructions string  `json:"dosageInstructions"`
	AppointmentID      int64   `json:"appointmentId"`
	MedicineID         int64   `json:"medicineId"`
}

// Filters. Empty strings and nil pointers mean "not provided".

type PatientFilter struct {
	Name    string
	Surname string
}

type DoctorFilter struct {
	Name      string
	Specialty string
}

type MedicineFilter struct {
	Name         string
	Manufacturer string
}

type AppointmentFilter struct {
	Date      *Date
	Confirmed *bool
}

type PrescriptionFilter struct {
	Active       *bool
	DurationDays *int
}
