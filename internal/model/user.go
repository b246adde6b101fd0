package model

// User represents a registered account. Rows are created by registration only.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Mail         string `json:"mail" gorm:"column:mail;uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"column:contraseña;size:255;not null"` // Never expose in JSON
}

// TableName keeps the table name used by the existing database.
func (User) TableName() string {
	return "usuarios"
}
