package pet

import "errors"

var (
	ErrPetNotFound     = errors.New("pet not found")
	ErrNameRequired    = errors.New("pet name is required")
	ErrSpeciesRequired = errors.New("pet species is required")
)
