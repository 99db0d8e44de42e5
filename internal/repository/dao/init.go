package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Team{},
		&Sponsor{},
		&Part{},
		&InventoryEntry{},
		&Car{},
		&CarPart{},
		&Contribution{},
		&PurchaseRecord{},
	)
}
