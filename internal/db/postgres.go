package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/platewise/recipe-backend/internal/logger"
	"github.com/platewise/recipe-backend/internal/types"
	"github.com/platewise/recipe-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "recipes", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := Migrate(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// Migrate creates the aggregate tables, the bridge tables, and the schema
// constraints. The access layer has no cascade support, so the bridge
// tables are plain two-column tables managed entirely by the repos. The
// DDL is portable across Postgres and the SQLite store the tests run on.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&types.Recipe{},
		&types.Ingredient{},
		&types.Instruction{},
	); err != nil {
		return err
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes_ingredients (
			recipe_recipe_id BIGINT NOT NULL,
			ingredients_ingredient_id BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recipes_instructions (
			recipe_recipe_id BIGINT NOT NULL,
			instructions_instruction_id BIGINT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS unique_recipe_name_and_variation
			ON recipes (name, variation)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_ingredients_recipe
			ON recipes_ingredients (recipe_recipe_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_instructions_recipe
			ON recipes_instructions (recipe_recipe_id)`,
	}
	for _, stmt := range statements {
		if err := gormDB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
