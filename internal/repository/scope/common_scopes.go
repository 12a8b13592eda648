package scope

import "gorm.io/gorm"

func OrderByDatetimeDesc(db *gorm.DB) *gorm.DB {
	return db.Order("datetime DESC")
}
