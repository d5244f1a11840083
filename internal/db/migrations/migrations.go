package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	gormModels "warehouse/loadmap/internal/models/gorm"
)

// Run applies every pending schema migration in order.
func Run(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20241019_create_load_maps",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&gormModels.LoadMap{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("load_maps")
			},
		},
		{
			ID: "20241019_index_load_map_search",
			Migrate: func(tx *gorm.DB) error {
				for _, stmt := range []string{
					"CREATE INDEX IF NOT EXISTS idx_load_maps_run_number ON load_maps (run_number)",
					"CREATE INDEX IF NOT EXISTS idx_load_maps_trailer_number ON load_maps (trailer_number)",
				} {
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, idx := range []string{"idx_load_maps_run_number", "idx_load_maps_trailer_number"} {
					if err := tx.Exec("DROP INDEX IF EXISTS " + idx).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})
	return m.Migrate()
}
