package db_models

type Account struct {
	BaseModel
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	Trips []Trip `gorm:"foreignKey:UserID"`
}
