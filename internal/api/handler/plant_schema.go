package handler

import "github.com/herbaria/plants-api/internal/core/domain"

type plantRequest struct {
	Name            string   `json:"name"             validate:"required"`
	ScientificName  string   `json:"scientific_name"  validate:"required"`
	TagalogName     string   `json:"tagalog_name"`
	Family          string   `json:"family"`
	Genus           string   `json:"genus"`
	Category        []string `json:"category"`
	Uses            []string `json:"uses"`
	Description     string   `json:"description"`
	ActiveCompounds []string `json:"active_compounds"`
	Preparation     []string `json:"preparation"`
	Precautions     []string `json:"precautions"`
	Image           string   `json:"image"`
}

type plantListResponse struct {
	Plants []*domain.Plant `json:"plants"`
	Total  int64           `json:"total"`
	Page   int64           `json:"page"`
	Limit  int64           `json:"limit"`
}
