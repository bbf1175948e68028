package database

import (
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoData provisions the demo clinic: an admin, two doctors with
// profiles, and a client with a couple of pets. It is a no-op when any
// account already exists, so restarting a dev instance is safe.
func SeedDemoData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&domain.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("checking for existing accounts: %w", err)
	}
	if count > 0 {
		log.Info("accounts already present, skipping demo seed")
		return nil
	}

	log.Info("seeding demo data")

	return db.Transaction(func(tx *gorm.DB) error {
		admin, err := demoAccount("admin@vetflow.dev", "admin123", "Ada", "Admin", domain.RoleAdmin)
		if err != nil {
			return err
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}

		doctors := []struct {
			email, password, first, last, specialization, bio string
		}{
			{"j.herriot@vetflow.dev", "doctor123", "James", "Herriot", "General Practice", "Farm and companion animals."},
			{"s.yin@vetflow.dev", "doctor123", "Sophia", "Yin", "Behavioral Medicine", "Low-stress handling specialist."},
		}
		for _, d := range doctors {
			acct, err := demoAccount(d.email, d.password, d.first, d.last, domain.RoleDoctor)
			if err != nil {
				return err
			}
			if err := tx.Create(acct).Error; err != nil {
				return fmt.Errorf("seeding doctor account %s: %w", d.email, err)
			}
			profile := &doctor.Profile{
				AccountID:      acct.ID,
				Specialization: d.specialization,
				Bio:            d.bio,
			}
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("seeding doctor profile %s: %w", d.email, err)
			}
			if err := tx.Model(acct).Update("doctor_profile_id", profile.ID).Error; err != nil {
				return fmt.Errorf("linking doctor profile %s: %w", d.email, err)
			}
		}

		client, err := demoAccount("client@vetflow.dev", "client123", "Casey", "Client", domain.RoleClient)
		if err != nil {
			return err
		}
		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("seeding client: %w", err)
		}

		pets := []*pet.Pet{
			{OwnerID: client.ID, Name: "Rex", Species: "Dog", Breed: "German Shepherd", AgeYears: 4, WeightKg: 32.5},
			{OwnerID: client.ID, Name: "Misu", Species: "Cat", Breed: "European Shorthair", AgeYears: 2, WeightKg: 4.1},
		}
		for _, p := range pets {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("seeding pet %s: %w", p.Name, err)
			}
		}

		return nil
	})
}

func demoAccount(email, password, first, last string, role domain.Role) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}
	return &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
		IsActive:     true,
	}, nil
}
