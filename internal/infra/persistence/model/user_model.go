package model

import (
	"time"
)

// UserModel mirrors the 'users' table. cpf_cnpj is the primary key and the
// token subject; customers without a tax id get a generated UUID instead.
type UserModel struct {
	CPFCNPJ    string `gorm:"column:cpf_cnpj;type:varchar(36);primaryKey"`
	Name       string `gorm:"type:varchar(100);not null"`
	Email      string `gorm:"type:varchar(255);uniqueIndex:users_email_key;not null"`
	Password   string `gorm:"type:text;not null"`
	Role       string `gorm:"type:varchar(16);not null"`
	ProfilePic string `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// Constraint names as created by the migrations.
const (
	UsersPrimaryKey     = "users_pkey"
	UsersEmailUniqueKey = "users_email_key"
)
