package repository

import (
	"fmt"

	"github.com/yourusername/draw-advisor/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Draw         DrawRepository
	Saved        SavedCombinationRepository
	Unsuccessful UnsuccessfulCombinationRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Draw:         NewPostgresDrawRepository(db),
		Saved:        NewPostgresSavedCombinationRepository(db),
		Unsuccessful: NewPostgresUnsuccessfulCombinationRepository(db),
	}, nil
}
