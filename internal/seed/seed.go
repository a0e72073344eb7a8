// Package seed creates the default catalog lookup data on startup.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/Mohamed-Kaizen/teached/internal/app/repositories"
)

// defaultCategories is the fixed marketplace taxonomy.
var defaultCategories = []string{
	"Finance & Accounting",
	"Development",
	"Business",
	"IT Software",
	"Office Productivity",
	"Personal Development",
	"Design",
	"Marketing",
	"Lifestyle",
	"Photography",
	"Health Fitness",
	"Music",
	"Teaching Academics",
}

var defaultLanguages = []string{
	"English",
	"Arabic",
	"Spanish",
	"French",
}

// CreateDefaultData creates the default categories and languages if
// they don't exist. Seeding is idempotent, so it runs on every start.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	taxonomyRepo := appRepos.NewTaxonomyRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Categories/Languages)...")
	var finalErr error

	for _, name := range defaultCategories {
		if _, err := taxonomyRepo.GetOrCreateCategory(ctx, name); err != nil {
			lgr.Error().Err(err).Str("category", name).Msg("Error creating default category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, name := range defaultLanguages {
		if _, err := taxonomyRepo.GetOrCreateLanguage(ctx, name); err != nil {
			lgr.Error().Err(err).Str("language", name).Msg("Error creating default language")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
