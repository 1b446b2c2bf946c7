package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"medq/internal/facilities"
	"medq/internal/patients"
	"medq/internal/shared/config"
	"medq/internal/shared/database"
	"medq/internal/tokens"
	"medq/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting MedQ Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"patients",
		"users",
		"facilities",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	facilityIDs, err := s.SeedFacilities()
	if err != nil {
		return fmt.Errorf("failed to seed facilities: %w", err)
	}

	if err := s.SeedUsers(facilityIDs); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Stale cache and counters would fight the fresh rows; start clean
	// before the patient seed advances today's counters again.
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis: %v", err)
		}
	}

	var counter tokens.CounterStore
	if s.db.Redis != nil {
		counter = tokens.NewRedisCounterStore(s.db.Redis)
	} else {
		counter = tokens.NewMemoryCounterStore()
	}

	if err := s.SeedPatients(ctx, facilityIDs, counter); err != nil {
		return fmt.Errorf("failed to seed patients: %w", err)
	}

	return nil
}

// SeedFacilities creates the hospital catalog
func (s *Seeder) SeedFacilities() (map[string]uuid.UUID, error) {
	fmt.Println("  🏥 Seeding facilities...")

	facilityIDs := make(map[string]uuid.UUID)

	facilitiesData := []struct {
		name        string
		description string
	}{
		{"City General Hospital", "Emergency & Trauma Center"},
		{"Central Medical Center", "Comprehensive Healthcare Services"},
		{"Specialized Cardiac Care", "Heart & Cardiovascular Treatment"},
		{"Women's Health Clinic", "Gynecology & Maternity Care"},
		{"Pediatric Medical Center", "Children's Healthcare & Family Medicine"},
		{"Orthopedic Institute", "Orthopedic & Sports Medicine"},
		{"Oncology Treatment Center", "Cancer Treatment & Oncology"},
		{"Mental Health Institute", "Psychiatry & Behavioral Health"},
		{"Rehabilitation Center", "Physical Therapy & Recovery"},
		{"Community Health Clinic", "General Medicine & Preventive Care"},
	}

	for _, facilityData := range facilitiesData {
		facility := facilities.Facility{
			ID:          uuid.New(),
			Name:        facilityData.name,
			Description: facilityData.description,
			Active:      true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&facility).Error; err != nil {
			return nil, fmt.Errorf("failed to create facility %s: %w", facility.Name, err)
		}

		facilityIDs[facility.Name] = facility.ID
		fmt.Printf("    ✅ Created facility: %s\n", facility.Name)
	}

	return facilityIDs, nil
}

// SeedUsers creates one admin, one doctor per seeded facility and a demo patient account
func (s *Seeder) SeedUsers(facilityIDs map[string]uuid.UUID) error {
	fmt.Println("  👤 Seeding users...")

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := users.User{
		ID:        uuid.New(),
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@medq.health",
		Password:  string(hashedPassword),
		Role:      users.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.PostgreSQL.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	fmt.Printf("    ✅ Created user: %s (%s)\n", admin.Email, admin.Role)

	doctorNum := 1
	for facilityName, facilityID := range facilityIDs {
		id := facilityID
		doctor := users.User{
			ID:         uuid.New(),
			FirstName:  "Doctor",
			LastName:   fmt.Sprintf("%02d", doctorNum),
			Email:      fmt.Sprintf("doctor%02d@medq.health", doctorNum),
			Password:   string(hashedPassword),
			Role:       users.RoleDoctor,
			FacilityID: &id,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&doctor).Error; err != nil {
			return fmt.Errorf("failed to create doctor for %s: %w", facilityName, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s @ %s)\n", doctor.Email, doctor.Role, facilityName)
		doctorNum++
	}

	patient := users.User{
		ID:        uuid.New(),
		FirstName: "Demo",
		LastName:  "Patient",
		Email:     "patient@medq.health",
		Password:  string(hashedPassword),
		Role:      users.RolePatient,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.PostgreSQL.Create(&patient).Error; err != nil {
		return fmt.Errorf("failed to create demo patient account: %w", err)
	}
	fmt.Printf("    ✅ Created user: %s (%s)\n", patient.Email, patient.Role)

	return nil
}

// SeedPatients fills today's queue at two facilities with demo intake
// records. Tickets come from the same counter store the live allocator
// uses, so real submissions continue the sequence instead of reissuing
// the demo tokens.
func (s *Seeder) SeedPatients(ctx context.Context, facilityIDs map[string]uuid.UUID, counter tokens.CounterStore) error {
	fmt.Println("  🎫 Seeding patients...")

	demoFacilities := []string{"City General Hospital", "Central Medical Center"}
	firstNames := []string{"Asha", "Ravi", "Meera", "Arjun", "Priya", "Karan", "Divya", "Nikhil"}
	lastNames := []string{"Verma", "Sharma", "Iyer", "Patel", "Reddy", "Nair", "Gupta", "Singh"}
	genders := []string{"female", "male", "female", "male", "female", "male", "female", "male"}
	symptoms := []string{
		"persistent cough", "chest pain", "migraine", "sprained ankle",
		"fever and chills", "back pain", "sore throat", "allergic reaction",
	}

	today := tokens.DayKey(time.Now())

	for _, facilityName := range demoFacilities {
		facilityID, ok := facilityIDs[facilityName]
		if !ok {
			continue
		}

		for i := 0; i < len(firstNames); i++ {
			ticket, err := counter.Next(ctx, facilityName, time.Now())
			if err != nil {
				return fmt.Errorf("failed to issue token for %s: %w", facilityName, err)
			}

			assignment, err := tokens.Resolve(ticket)
			if err != nil {
				return fmt.Errorf("failed to resolve token %d: %w", ticket, err)
			}

			patient := patients.Patient{
				ID:                   uuid.New(),
				FirstName:            firstNames[i],
				LastName:             lastNames[i],
				Age:                  22 + i*6,
				Gender:               genders[i],
				CountryCode:          "+91",
				Phone:                fmt.Sprintf("+91 98765%05d", i+1),
				Email:                fmt.Sprintf("%s.%s@example.com", firstNames[i], lastNames[i]),
				Symptoms:             symptoms[i],
				FacilityID:           facilityID,
				FacilityName:         facilityName,
				TokenNumber:          assignment.TokenNumber,
				SlotNumber:           assignment.SlotNumber,
				TimeRange:            assignment.TimeRange,
				StartTime:            assignment.StartTime,
				EndTime:              assignment.EndTime,
				PositionInSlot:       assignment.PositionInSlot,
				EstimatedWaitMinutes: assignment.EstimatedWaitMinutes,
				SubmittedOn:          today,
				CreatedAt:            time.Now(),
				UpdatedAt:            time.Now(),
			}

			if err := s.db.PostgreSQL.Create(&patient).Error; err != nil {
				return fmt.Errorf("failed to create patient %s %s: %w", patient.FirstName, patient.LastName, err)
			}
		}

		fmt.Printf("    ✅ Created %d patients at %s\n", len(firstNames), facilityName)
	}

	return nil
}
