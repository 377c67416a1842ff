package main

import (
	"context"
	"fmt"
	"log"

	"campusmind/internal/courts"
	"campusmind/internal/equipment"
	"campusmind/internal/shared/config"
	"campusmind/internal/shared/database"
	"campusmind/internal/sports"
	"campusmind/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB

	sportIDs map[string]*sports.Sport
}

func main() {
	fmt.Println("🌱 Starting CampusMind Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, sportIDs: make(map[string]*sports.Sport)}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
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
		"reservations",
		"sport_equipment",
		"courts",
		"sports",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			// Table may not exist yet on a fresh database.
			log.Printf("Skipping %s: %v", table, err)
		}
	}
	return nil
}

// SeedAll seeds sports, the court topology, equipment, and demo users
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.seedSports(ctx); err != nil {
		return fmt.Errorf("failed to seed sports: %w", err)
	}
	if err := s.seedCourts(ctx); err != nil {
		return fmt.Errorf("failed to seed courts: %w", err)
	}
	if err := s.seedEquipment(ctx); err != nil {
		return fmt.Errorf("failed to seed equipment: %w", err)
	}
	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	return nil
}

func (s *Seeder) seedSports(ctx context.Context) error {
	repo := sports.NewRepository(s.db.GetPostgreSQL())

	for _, name := range []string{"Basketball", "Badminton", "Pickleball", "Table Tennis"} {
		sport := &sports.Sport{Name: name}
		if err := repo.Create(ctx, sport); err != nil {
			return err
		}
		s.sportIDs[name] = sport
	}
	fmt.Printf("   seeded %d sports\n", len(s.sportIDs))
	return nil
}

// seedCourts builds the campus floor plan. Each basketball court is a whole
// gym floor that subdivides into two badminton or pickleball sub-courts;
// table tennis tables are standalone.
func (s *Seeder) seedCourts(ctx context.Context) error {
	repo := courts.NewRepository(s.db.GetPostgreSQL())
	count := 0

	add := func(sportName, courtName string, sharedWith []string) error {
		sport := s.sportIDs[sportName]
		court := &courts.Court{
			Name:        courtName,
			GroupKey:    courts.GroupKeyFor(courtName),
			SportID:     sport.ID,
			IsAvailable: true,
			IsShared:    len(sharedWith) > 0,
			SharedWith:  sharedWith,
		}
		if err := repo.Create(ctx, court); err != nil {
			return err
		}
		count++
		return nil
	}

	for _, floor := range []string{"A", "B", "C", "D"} {
		if err := add("Basketball", "Court "+floor, []string{"Badminton", "Pickleball"}); err != nil {
			return err
		}
		for _, half := range []string{"1", "2"} {
			sub := "Court " + floor + "-" + half
			if err := add("Badminton", sub, []string{"Basketball", "Pickleball"}); err != nil {
				return err
			}
			if err := add("Pickleball", sub, []string{"Basketball", "Badminton"}); err != nil {
				return err
			}
		}
	}

	for _, table := range []string{"Table 1", "Table 2"} {
		if err := add("Table Tennis", table, nil); err != nil {
			return err
		}
	}

	fmt.Printf("   seeded %d courts\n", count)
	return nil
}

func (s *Seeder) seedEquipment(ctx context.Context) error {
	repo := equipment.NewRepository(s.db.GetPostgreSQL())

	stock := []struct {
		sport    string
		name     string
		quantity int
	}{
		{"Basketball", "Basketball", 10},
		{"Badminton", "Badminton Racket", 16},
		{"Badminton", "Shuttlecock Tube", 12},
		{"Pickleball", "Pickleball Paddle", 16},
		{"Pickleball", "Pickleball", 20},
		{"Table Tennis", "Table Tennis Paddle", 8},
		{"Table Tennis", "Table Tennis Ball", 24},
	}

	for _, item := range stock {
		err := repo.Create(ctx, &equipment.SportEquipment{
			SportID:       s.sportIDs[item.sport].ID,
			Name:          item.name,
			Quantity:      item.quantity,
			TotalQuantity: item.quantity,
		})
		if err != nil {
			return err
		}
	}
	fmt.Printf("   seeded %d equipment lines\n", len(stock))
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	demo := []struct {
		firstName string
		lastName  string
		cid       string
		email     string
		role      users.Role
	}{
		{"Avery", "Nguyen", "C100001", "avery.nguyen@campus.edu", users.RoleMember},
		{"Jordan", "Lee", "C100002", "jordan.lee@campus.edu", users.RoleMember},
		{"Sam", "Patel", "C100003", "sam.patel@campus.edu", users.RoleMember},
		{"Riley", "Brooks", "C900001", "frontdesk@campus.edu", users.RoleStaff},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, d := range demo {
		user := users.User{
			FirstName: d.firstName,
			LastName:  d.lastName,
			CID:       d.cid,
			Email:     d.email,
			Password:  string(hashed),
			Role:      d.role,
		}
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}
	}
	fmt.Printf("   seeded %d users (password: password123)\n", len(demo))
	return nil
}
