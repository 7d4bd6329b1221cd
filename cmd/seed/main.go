package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"notedesk/internal/config"
	"notedesk/internal/db"
	"notedesk/internal/model"
	"notedesk/internal/repository"
)

// Demo data written by the seed script. The admin user unlocks the
// role-gated routes; sample categories and notes make a fresh install
// browsable immediately.
var seedCategories = map[string][]model.Note{
	"Work": {
		{NoteTitle: "Standup topics", NoteDesc: "Blockers from the cache migration.\n\n- [ ] redis TTLs\n- [ ] invalidation on rename"},
		{NoteTitle: "Retro actions", NoteDesc: "Write up the deploy checklist."},
	},
	"Personal": {
		{NoteTitle: "Groceries", NoteDesc: "Coffee, oat milk, rye bread."},
	},
	"Ideas": {},
}

func main() {
	email := flag.String("email", "admin@notedesk.local", "Seed user email")
	password := flag.String("password", "admin123", "Seed user password")
	role := flag.String("role", model.RoleAdmin, "Seed user role")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Note{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	// Create the seed user unless it already exists
	if _, err := userRepo.FindByEmail(ctx, *email); err == nil {
		log.Printf("User %s already exists, keeping it", *email)
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check user: %v", err)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{Email: *email, PasswordHash: string(hash), Role: *role}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		log.Printf("Created user %s (role %s)", *email, *role)
	}

	created, skipped := 0, 0
	for name, notes := range seedCategories {
		category, err := categoryRepo.FindByName(ctx, name, *email)
		if err == gorm.ErrRecordNotFound {
			category = &model.Category{Name: name, UserEmail: *email}
			if err := categoryRepo.Create(ctx, category); err != nil {
				log.Fatalf("Failed to create category %q: %v", name, err)
			}
			created++
		} else if err != nil {
			log.Fatalf("Failed to check category %q: %v", name, err)
		} else {
			skipped++
		}

		for _, note := range notes {
			note.CategoryID = &category.ID
			note.UserEmail = *email
			if err := noteRepo.Create(ctx, &note); err != nil {
				log.Fatalf("Failed to create note %q: %v", note.NoteTitle, err)
			}
		}
	}

	log.Printf("Seed complete: %d categories created, %d already present", created, skipped)
}
