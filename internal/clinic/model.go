package clinic

import "time"

type Patient struct {
	ID        int64
	Name      string
	Surname   string
	Email     string
	BirthDate Date
	Active    bool
	WeightKg  float64
}

type Doctor struct {
	ID            int64
	Name          string
	Surname       string
	LicenseNumber string
	Specialty     string
	HiringDate    Date
	Active        bool
}

type Medicine struct {
	ID                   int64
	Name                 string
	Manufacturer         string
	Price                float64
	PrescriptionRequired bool
	ExpiryDate           *Date
	Stock                int
}

// Appointment references its patient and doctor by id only. Both are set at
// creation and never re-targeted.
type Appointment struct {
	ID              int64
	Date            Date
	Reason          string
	Confirmed       bool
	Cost            float64
	DurationMinutes int
	PatientID       int64
	DoctorID        int64
}

// Prescription belongs to exactly one appointment and one medicine. An
// appointment carries at most one prescription.
type Prescription struct {
	ID                 int64
	Notes              string
	Active             bool
	DurationDays       int
	TotalCost          float64
	DosageInstructions string
	AppointmentID      int64
	MedicineID         int64
}

type EventLog struct {
	ID         int64
	EventType  string
	EntityType string
	EntityID   int64
	Payload    []byte
	CreatedAt  time.Time
}
