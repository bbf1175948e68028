package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
)

func TestCreatePet_ClientOwnsItself(t *testing.T) {
	f := newFixture()

	p, err := f.petsSvc.CreatePet(context.Background(), ownerActor(), &pet.CreatePetCommand{
		OwnerID: testStranger, // ignored for clients
		Name:    "  Rex ",
		Species: "dog",
	}, "")
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	if p.OwnerID != testOwner {
		t.Fatalf("client-created pet owned by %s, want %s", p.OwnerID, testOwner)
	}
	if p.Name != "Rex" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
}

func TestCreatePet_AdminMaySetOwner(t *testing.T) {
	f := newFixture()

	p, err := f.petsSvc.CreatePet(context.Background(), adminActor(), &pet.CreatePetCommand{
		OwnerID: testOwner,
		Name:    "Mia",
		Species: "cat",
	}, "")
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	if p.OwnerID != testOwner {
		t.Fatalf("admin-created pet owned by %s, want %s", p.OwnerID, testOwner)
	}
}

func TestCreatePet_Validation(t *testing.T) {
	f := newFixture()

	if _, err := f.petsSvc.CreatePet(context.Background(), ownerActor(), &pet.CreatePetCommand{Species: "dog"}, ""); !errors.Is(err, pet.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := f.petsSvc.CreatePet(context.Background(), ownerActor(), &pet.CreatePetCommand{Name: "Rex"}, ""); !errors.Is(err, pet.ErrSpeciesRequired) {
		t.Fatalf("expected ErrSpeciesRequired, got %v", err)
	}
}

func TestGetAndUpdatePet_OwnerScoped(t *testing.T) {
	f := newFixture()
	p, err := f.petsSvc.CreatePet(context.Background(), ownerActor(), &pet.CreatePetCommand{Name: "Rex", Species: "dog"}, "")
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}

	if _, err := f.petsSvc.GetPet(context.Background(), strangerActor(), p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger read should be forbidden, got %v", err)
	}
	if _, err := f.petsSvc.GetPet(context.Background(), adminActor(), p.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}

	breed := "beagle"
	if _, err := f.petsSvc.UpdatePet(context.Background(), strangerActor(), p.ID, &pet.UpdatePetCommand{Breed: &breed}, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger update should be forbidden, got %v", err)
	}

	updated, err := f.petsSvc.UpdatePet(context.Background(), ownerActor(), p.ID, &pet.UpdatePetCommand{Breed: &breed}, "")
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Breed != "beagle" {
		t.Fatalf("breed not updated: %q", updated.Breed)
	}
}

func TestListMyPets(t *testing.T) {
	f := newFixture()
	for _, name := range []string{"Rex", "Mia"} {
		if _, err := f.petsSvc.CreatePet(context.Background(), ownerActor(), &pet.CreatePetCommand{Name: name, Species: "dog"}, ""); err != nil {
			t.Fatalf("CreatePet %s: %v", name, err)
		}
	}
	if _, err := f.petsSvc.CreatePet(context.Background(), strangerActor(), &pet.CreatePetCommand{Name: "Kiwi", Species: "bird"}, ""); err != nil {
		t.Fatalf("CreatePet Kiwi: %v", err)
	}

	mine, err := f.petsSvc.ListMyPets(context.Background(), ownerActor())
	if err != nil {
		t.Fatalf("ListMyPets: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(mine))
	}
}
