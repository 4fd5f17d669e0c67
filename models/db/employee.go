package dbmodels

type Employee struct {
	BaseModel
	Name     string `gorm:"type:varchar(255)"`
	Email    string `gorm:"type:varchar(255);uniqueIndex"`
	IsAdmin  bool
	IsActive bool `gorm:"default:true"`
}
