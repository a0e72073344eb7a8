package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	TaxonomyRepository   *TaxonomyRepository
	EngagementRepository *EngagementRepository
	ContentRepository    *ContentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		TaxonomyRepository:   NewTaxonomyRepository(db),
		EngagementRepository: NewEngagementRepository(db),
		ContentRepository:    NewContentRepository(db),
	}
}
