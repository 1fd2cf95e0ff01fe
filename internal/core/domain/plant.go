package domain

import (
	"errors"
	"time"
)

var ErrPlantNotFound = errors.New("plant not found")

// Plant is the core catalog record: a medicinal plant with its taxonomy,
// documented uses, and preparation guidance.
type Plant struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ScientificName  string    `json:"scientific_name"`
	TagalogName     string    `json:"tagalog_name,omitempty"`
	Family          string    `json:"family"`
	Genus           string    `json:"genus"`
	Category        []string  `json:"category"`
	Uses            []string  `json:"uses"`
	Description     string    `json:"description"`
	ActiveCompounds []string  `json:"active_compounds"`
	Preparation     []string  `json:"preparation"`
	Precautions     []string  `json:"precautions"`
	Image           string    `json:"image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
