package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hackgods/clinic-records-api/internal/logging"
)

type SimConfig struct {
	APIBaseURL     string
	Duration       time.Duration
	Workers        int
	WriteRatio     float64
	UpdateRatio    float64
	ReadRatio      float64
	DeleteRatio    float64
	InitialDoctors int
	InitialMeds    int
}

// DataPool tracks ids the simulation created so later operations can target them.
type DataPool struct {
	mu           sync.RWMutex
	patients     []int64
	doctors      []int64
	medicines    []int64
	appointments []int64
}

func (dp *DataPool) add(list *[]int64, id int64) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	*list = append(*list, id)
}

func (dp *DataPool) pick(list *[]int64, rng *rand.Rand) (int64, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(*list) == 0 {
		return 0, false
	}
	return (*list)[rng.IntN(len(*list))], true
}

func (dp *DataPool) remove(list *[]int64, id int64) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	if i := slices.Index(*list, id); i >= 0 {
		*list = slices.Delete(*list, i, i+1)
	}
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case success:
		atomic.AddInt64(&om.Success, 1)
	case conflict:
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, minimum, maximum, p50, p95 time.Duration) {
	om.mu.Lock()
	latencies := slices.Clone(om.Latencies)
	om.mu.Unlock()

	if len(latencies) == 0 {
		return 0, 0, 0, 0, 0
	}
	slices.Sort(latencies)

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	minimum = latencies[0]
	maximum = latencies[len(latencies)-1]
	p50 = latencies[min(len(latencies)*50/100, len(latencies)-1)]
	p95 = latencies[min(len(latencies)*95/100, len(latencies)-1)]
	return avg, minimum, maximum, p50, p95
}

type Metrics struct {
	CreatePatient      OperationMetrics
	CreateAppointment  OperationMetrics
	CreatePrescription OperationMetrics
	UpdateAppointment  OperationMetrics
	ReadAppointment    OperationMetrics
	ListPatients       OperationMetrics
	LookupByEmail      OperationMetrics
	DeletePatient      OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *http.Client
	metrics Metrics
}

func main() {
	logging.Setup(getEnv("APP_ENV", "dev"), getEnv("LOG_LEVEL", "info"), "simulate")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	log.Info().
		Str("api", cfg.APIBaseURL).
		Dur("duration", cfg.Duration).
		Int("workers", cfg.Workers).
		Float64("write", cfg.WriteRatio).
		Float64("update", cfg.UpdateRatio).
		Float64("read", cfg.ReadRatio).
		Float64("delete", cfg.DeleteRatio).
		Msg("simulator starting")

	sim := &Simulator{
		config: cfg,
		pool:   &DataPool{},
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sim.Prime(ctx); err != nil {
		log.Fatal().Err(err).Msg("prime data pool")
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:     strings.TrimRight(getEnv("SIM_API_BASE_URL", "http://localhost:8080"), "/"),
		Duration:       getDuration("SIM_DURATION", 30*time.Second),
		Workers:        getInt("SIM_WORKERS", 10),
		WriteRatio:     getFloat("SIM_WRITE_RATIO", 0.35),
		UpdateRatio:    getFloat("SIM_UPDATE_RATIO", 0.15),
		ReadRatio:      getFloat("SIM_READ_RATIO", 0.45),
		DeleteRatio:    getFloat("SIM_DELETE_RATIO", 0.05),
		InitialDoctors: getInt("SIM_DOCTORS", 10),
		InitialMeds:    getInt("SIM_MEDICINES", 20),
	}

	// Normalize ratios
	total := cfg.WriteRatio + cfg.UpdateRatio + cfg.ReadRatio + cfg.DeleteRatio
	if total > 0 {
		cfg.WriteRatio /= total
		cfg.UpdateRatio /= total
		cfg.ReadRatio /= total
		cfg.DeleteRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.InitialDoctors <= 0 {
		return fmt.Errorf("SIM_DOCTORS must be > 0")
	}
	return nil
}

// Prime registers the doctors and medicines that appointments and
// prescriptions are booked against.
func (s *Simulator) Prime(ctx context.Context) error {
	for i := 0; i < s.config.InitialDoctors; i++ {
		status, id, err := s.post(ctx, "/doctors", map[string]any{
			"name":          gofakeit.FirstName(),
			"surname":       gofakeit.LastName(),
			"licenseNumber": "LIC" + strconv.Itoa(gofakeit.Number(100000, 999999)),
			"specialty":     gofakeit.RandomString([]string{"Cardiología", "Pediatría", "Neurología", "Diagnóstico"}),
			"active":        true,
		})
		if err != nil {
			return fmt.Errorf("create doctor: %w", err)
		}
		if status != http.StatusCreated {
			return fmt.Errorf("create doctor: unexpected status %d", status)
		}
		s.pool.add(&s.pool.doctors, id)
	}

	for i := 0; i < s.config.InitialMeds; i++ {
		status, id, err := s.post(ctx, "/medicines", map[string]any{
			"name":         gofakeit.ProductName(),
			"manufacturer": gofakeit.Company(),
			"price":        gofakeit.Price(1, 90),
			"stock":        gofakeit.Number(0, 300),
		})
		if err != nil {
			return fmt.Errorf("create medicine: %w", err)
		}
		if status != http.StatusCreated {
			return fmt.Errorf("create medicine: unexpected status %d", status)
		}
		s.pool.add(&s.pool.medicines, id)
	}

	log.Info().
		Int("doctors", s.config.InitialDoctors).
		Int("medicines", s.config.InitialMeds).
		Msg("data pool primed")
	return nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Info().Dur("duration", s.config.Duration).Int("workers", s.config.Workers).Msg("starting simulation")

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Info().Msg("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r := rng.Float64()
		switch {
		case r < s.config.WriteRatio:
			switch rng.IntN(3) {
			case 0:
				s.doCreatePatient(ctx)
			case 1:
				s.doCreateAppointment(ctx, rng)
			default:
				s.doCreatePrescription(ctx, rng)
			}
		case r < s.config.WriteRatio+s.config.UpdateRatio:
			s.doUpdateAppointment(ctx, rng)
		case r < s.config.WriteRatio+s.config.UpdateRatio+s.config.ReadRatio:
			switch rng.IntN(3) {
			case 0:
				s.doReadAppointment(ctx, rng)
			case 1:
				s.doListPatients(ctx)
			default:
				s.doLookupByEmail(ctx, rng)
			}
		default:
			s.doDeletePatient(ctx, rng)
		}
	}
}

func (s *Simulator) doCreatePatient(ctx context.Context) {
	start := time.Now()
	status, id, err := s.post(ctx, "/patients", map[string]any{
		"name":      gofakeit.FirstName(),
		"surname":   gofakeit.LastName(),
		"email":     fmt.Sprintf("sim-%s@example.com", uuid.NewString()[:8]),
		"birthDate": gofakeit.DateRange(time.Now().AddDate(-80, 0, 0), time.Now().AddDate(-1, 0, 0)).Format("2006-01-02"),
		"active":    true,
		"weightKg":  gofakeit.Float64Range(3, 120),
	})
	ok := err == nil && status == http.StatusCreated
	if ok {
		s.pool.add(&s.pool.patients, id)
	}
	s.metrics.CreatePatient.Record(time.Since(start), ok, false)
}

func (s *Simulator) doCreateAppointment(ctx context.Context, rng *rand.Rand) {
	patientID, ok := s.pool.pick(&s.pool.patients, rng)
	if !ok {
		return
	}
	doctorID, _ := s.pool.pick(&s.pool.doctors, rng)

	start := time.Now()
	status, id, err := s.post(ctx, fmt.Sprintf("/patients/%d/doctors/%d/appointments", patientID, doctorID), map[string]any{
		"date":            time.Now().AddDate(0, 0, rng.IntN(60)).Format("2006-01-02"),
		"reason":          "Consulta",
		"cost":            float64(rng.IntN(200)) + 20,
		"durationMinutes": 15 * (1 + rng.IntN(4)),
	})
	success := err == nil && status == http.StatusCreated
	if success {
		s.pool.add(&s.pool.appointments, id)
	}
	// The patient may have been deleted by another worker.
	s.metrics.CreateAppointment.Record(time.Since(start), success, status == http.StatusNotFound)
}

func (s *Simulator) doCreatePrescription(ctx context.Context, rng *rand.Rand) {
	apptID, ok := s.pool.pick(&s.pool.appointments, rng)
	if !ok {
		return
	}
	medID, ok := s.pool.pick(&s.pool.medicines, rng)
	if !ok {
		return
	}

	start := time.Now()
	status, _, err := s.post(ctx, fmt.Sprintf("/appointments/%d/medicines/%d/prescriptions", apptID, medID), map[string]any{
		"notes":        "Tratamiento",
		"active":       true,
		"durationDays": 1 + rng.IntN(14),
	})
	s.metrics.CreatePrescription.Record(time.Since(start), err == nil && status == http.StatusCreated, status == http.StatusConflict)
}

func (s *Simulator) doUpdateAppointment(ctx context.Context, rng *rand.Rand) {
	apptID, ok := s.pool.pick(&s.pool.appointments, rng)
	if !ok {
		return
	}

	start := time.Now()
	status, err := s.send(ctx, http.MethodPut, fmt.Sprintf("/appointments/%d", apptID), map[string]any{"confirmed": true}, nil)
	s.metrics.UpdateAppointment.Record(time.Since(start), err == nil && status == http.StatusOK, false)
}

func (s *Simulator) doReadAppointment(ctx context.Context, rng *rand.Rand) {
	apptID, ok := s.pool.pick(&s.pool.appointments, rng)
	if !ok {
		return
	}

	start := time.Now()
	status, err := s.send(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", apptID), nil, nil)
	s.metrics.ReadAppointment.Record(time.Since(start), err == nil && status == http.StatusOK, false)
}

func (s *Simulator) doListPatients(ctx context.Context) {
	start := time.Now()
	status, err := s.send(ctx, http.MethodGet, "/patients?surname="+url.QueryEscape(gofakeit.LastName()), nil, nil)
	s.metrics.ListPatients.Record(time.Since(start), err == nil && status == http.StatusOK, false)
}

func (s *Simulator) doLookupByEmail(ctx context.Context, rng *rand.Rand) {
	style := "jpql"
	if rng.IntN(2) == 1 {
		style = "native"
	}

	start := time.Now()
	status, err := s.send(ctx, http.MethodGet,
		fmt.Sprintf("/appointments/%s/by-patient-email?email=%s", style, url.QueryEscape(gofakeit.Email())), nil, nil)
	s.metrics.LookupByEmail.Record(time.Since(start), err == nil && status == http.StatusOK, false)
}

func (s *Simulator) doDeletePatient(ctx context.Context, rng *rand.Rand) {
	patientID, ok := s.pool.pick(&s.pool.patients, rng)
	if !ok {
		return
	}

	start := time.Now()
	status, err := s.send(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil, nil)
	success := err == nil && status == http.StatusNoContent
	if success {
		s.pool.remove(&s.pool.patients, patientID)
	}
	// Patients with appointments are protected and answer 409.
	s.metrics.DeletePatient.Record(time.Since(start), success, status == http.StatusConflict)
}

func (s *Simulator) post(ctx context.Context, path string, body any) (int, int64, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	status, err := s.send(ctx, http.MethodPost, path, body, &created)
	return status, created.ID, err
}

func (s *Simulator) send(ctx context.Context, method, path string, body, dest any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.APIBaseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if dest != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return resp.StatusCode, err
		}
		return resp.StatusCode, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Create patient", &s.metrics.CreatePatient)
	printOperationReport("Create appointment", &s.metrics.CreateAppointment)
	printOperationReport("Create prescription", &s.metrics.CreatePrescription)
	printOperationReport("Update appointment", &s.metrics.UpdateAppointment)
	printOperationReport("Read appointment", &s.metrics.ReadAppointment)
	printOperationReport("List patients", &s.metrics.ListPatients)
	printOperationReport("Lookup by email", &s.metrics.LookupByEmail)
	printOperationReport("Delete patient", &s.metrics.DeletePatient)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	failed := atomic.LoadInt64(&om.Error)

	avg, minimum, maximum, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if conflict > 0 {
		fmt.Printf("  Rejected: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	}
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), minimum.Round(time.Millisecond), maximum.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
