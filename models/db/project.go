package dbmodels

type Project struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);uniqueIndex"`
	IsActive bool   `gorm:"default:true"`
	// ContactEmail - адрес получателя отчетов по умолчанию
	ContactEmail string `gorm:"type:varchar(255)"`
}
