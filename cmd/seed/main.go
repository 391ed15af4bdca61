package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/config"
	"github.com/hackgods/clinic-records-api/internal/db"
	"github.com/hackgods/clinic-records-api/internal/logging"
)

type seedOptions struct {
	patients      int
	doctors       int
	medicines     int
	appointments  int
	prescriptions float64
	seed          uint64
	timeout       time.Duration
}

var specialties = []string{
	"Cardiología",
	"Dermatología",
	"Medicina General",
	"Traumatología",
	"Endocrinología",
	"Neurología",
	"Pediatría",
	"Psiquiatría",
	"Oftalmología",
	"Diagnóstico",
}

var manufacturers = []string{"Bayer", "Pfizer", "Cinfa", "Normon", "Sanofi", "Novartis"}

var reasons = []string{
	"Revisión anual",
	"Dolor de cabeza",
	"Control de tensión",
	"Fiebre persistente",
	"Dolor lumbar",
	"Resultados de análisis",
	"Consulta de seguimiento",
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Populate the clinic database with fake records",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), opts)
			if err != nil {
				log.Error().Err(err).Msg("seed failed")
			}
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.patients, "patients", 200, "number of patients")
	f.IntVar(&opts.doctors, "doctors", 20, "number of doctors")
	f.IntVar(&opts.medicines, "medicines", 50, "number of medicines")
	f.IntVar(&opts.appointments, "appointments", 500, "number of appointments")
	f.Float64Var(&opts.prescriptions, "prescription-ratio", 0.4, "share of appointments that get a prescription")
	f.Uint64Var(&opts.seed, "seed", 0, "fake data seed, 0 picks a random one")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline")

	return cmd
}

func run(ctx context.Context, opts seedOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	logging.Setup(cfg.Env, cfg.LogLevel, "seed")

	if cfg.Storage != config.StoragePostgres {
		return errors.New("seeding needs STORAGE=postgres")
	}
	if opts.appointments > 0 && (opts.patients == 0 || opts.doctors == 0) {
		return errors.New("appointments need at least one patient and one doctor")
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	faker := gofakeit.New(opts.seed)
	svc := clinic.NewService(clinic.NewPgStore(pool), nil, cfg)
	s := &seeder{svc: svc, faker: faker}

	log.Info().
		Int("patients", opts.patients).
		Int("doctors", opts.doctors).
		Int("medicines", opts.medicines).
		Int("appointments", opts.appointments).
		Msg("seed starting")

	patients, err := s.patients(ctx, opts.patients)
	if err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}
	doctors, err := s.doctors(ctx, opts.doctors)
	if err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}
	medicines, err := s.medicines(ctx, opts.medicines)
	if err != nil {
		return fmt.Errorf("seed medicines: %w", err)
	}
	appointments, err := s.appointments(ctx, opts.appointments, patients, doctors)
	if err != nil {
		return fmt.Errorf("seed appointments: %w", err)
	}
	written, err := s.prescriptions(ctx, opts.prescriptions, appointments, medicines)
	if err != nil {
		return fmt.Errorf("seed prescriptions: %w", err)
	}

	log.Info().Int("prescriptions", written).Msg("seed complete")
	return nil
}

type seeder struct {
	svc   *clinic.Service
	faker *gofakeit.Faker
}

func (s *seeder) patients(ctx context.Context, count int) ([]int64, error) {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		birth := clinic.NewDate(s.faker.DateRange(time.Now().AddDate(-90, 0, 0), time.Now().AddDate(-1, 0, 0)))
		out, err := s.svc.AddPatient(ctx, clinic.PatientRegistration{
			Name:      ptr(s.faker.FirstName()),
			Surname:   ptr(s.faker.LastName()),
			Email:     ptr(s.faker.Email()),
			BirthDate: &birth,
			Active:    ptr(s.faker.Float64Range(0, 1) < 0.9),
			WeightKg:  ptr(roundTo(s.faker.Float64Range(3, 140), 1)),
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, out.ID)
	}
	log.Info().Int("count", len(ids)).Msg("patients seeded")
	return ids, nil
}

func (s *seeder) doctors(ctx context.Context, count int) ([]int64, error) {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		hired := clinic.NewDate(s.faker.DateRange(time.Now().AddDate(-30, 0, 0), time.Now()))
		out, err := s.svc.AddDoctor(ctx, clinic.DoctorRegistration{
			Name:          ptr(s.faker.FirstName()),
			Surname:       ptr(s.faker.LastName()),
			LicenseNumber: ptr(s.faker.Regex(`LIC[0-9]{6}`)),
			Specialty:     ptr(s.faker.RandomString(specialties)),
			HiringDate:    &hired,
			Active:        ptr(true),
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, out.ID)
	}
	log.Info().Int("count", len(ids)).Msg("doctors seeded")
	return ids, nil
}

func (s *seeder) medicines(ctx context.Context, count int) ([]int64, error) {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		in := clinic.MedicineRegistration{
			Name:                 ptr(s.faker.ProductName()),
			Manufacturer:         ptr(s.faker.RandomString(manufacturers)),
			Price:                ptr(roundTo(s.faker.Float64Range(1, 120), 2)),
			PrescriptionRequired: ptr(s.faker.Bool()),
			Stock:                ptr(s.faker.Number(0, 500)),
		}
		if s.faker.Float64Range(0, 1) < 0.8 {
			expiry := clinic.NewDate(s.faker.DateRange(time.Now().AddDate(0, -2, 0), time.Now().AddDate(3, 0, 0)))
			in.ExpiryDate = &expiry
		}

		out, err := s.svc.AddMedicine(ctx, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, out.ID)
	}
	log.Info().Int("count", len(ids)).Msg("medicines seeded")
	return ids, nil
}

func (s *seeder) appointments(ctx context.Context, count int, patients, doctors []int64) ([]int64, error) {
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		day := clinic.NewDate(s.faker.DateRange(time.Now().AddDate(0, -6, 0), time.Now().AddDate(0, 6, 0)))
		out, err := s.svc.AddAppointment(ctx,
			patients[s.faker.Number(0, len(patients)-1)],
			doctors[s.faker.Number(0, len(doctors)-1)],
			clinic.AppointmentRegistration{
				Date:            &day,
				Reason:          ptr(s.faker.RandomString(reasons)),
				Confirmed:       ptr(s.faker.Bool()),
				Cost:            ptr(roundTo(s.faker.Float64Range(20, 250), 2)),
				DurationMinutes: ptr(15 * s.faker.Number(1, 4)),
			})
		if err != nil {
			return nil, err
		}
		ids = append(ids, out.ID)
	}
	log.Info().Int("count", len(ids)).Msg("appointments seeded")
	return ids, nil
}

// prescriptions attaches one prescription to a share of the appointments.
func (s *seeder) prescriptions(ctx context.Context, ratio float64, appointments, medicines []int64) (int, error) {
	if len(medicines) == 0 {
		return 0, nil
	}

	written := 0
	for _, apptID := range appointments {
		if s.faker.Float64Range(0, 1) >= ratio {
			continue
		}
		_, err := s.svc.AddPrescription(ctx, apptID, medicines[s.faker.Number(0, len(medicines)-1)], clinic.PrescriptionRegistration{
			Notes:              ptr("Tratamiento con " + s.faker.ProductName()),
			Active:             ptr(s.faker.Bool()),
			DurationDays:       ptr(s.faker.Number(1, 30)),
			TotalCost:          ptr(roundTo(s.faker.Float64Range(2, 300), 2)),
			DosageInstructions: ptr(fmt.Sprintf("1 cada %d horas", s.faker.RandomInt([]int{6, 8, 12, 24}))),
		})
		if err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func ptr[T any](v T) *T { return &v }

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
