package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/homepro/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10032026_create_marketplace_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Profile{}, &models.ServiceCategory{}, &models.ContractorProfile{},
					&models.ContractorService{}, &models.JobRequest{}, &models.Quote{}, &models.Booking{},
					&models.Review{}, &models.Message{})
			},
		},
		{
			ID: "18032026_add_notifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Notification{})
			},
		},
		{
			ID: "22032026_add_quote_lookup_indexes",
			Migrate: func(tx *gorm.DB) error {
				// Covering indexes for the open-job board and contractor quote feed
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_job_requests_status_category ON job_requests(status, category_id)").Error; err != nil {
					return err
				}
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_quotes_contractor_status ON quotes(contractor_id, status)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_reviews_contractor ON reviews(contractor_id)").Error
			},
		},
	})
	return m.Migrate()
}
