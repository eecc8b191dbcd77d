package models

import (
	"database/sql"
	"time"
)

// Profile represents a member profile, personal or business
type Profile struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Username  string         `gorm:"type:varchar(32);not null;uniqueIndex:paw_profiles_ux1;column:username"`
	Email     sql.NullString `gorm:"type:varchar(255);column:email"`
	AvatarURL sql.NullString `gorm:"type:varchar(1024);column:avatar_url"`
	Bio       sql.NullString `gorm:"type:varchar(500);column:bio"`

	// Location
	Country      sql.NullString `gorm:"type:varchar(60);column:country"`
	City         sql.NullString `gorm:"type:varchar(60);column:city"`
	Neighborhood sql.NullString `gorm:"type:varchar(60);column:neighborhood"`

	// Pet attributes
	PetType         sql.NullString `gorm:"type:varchar(30);column:pet_type"`
	PetBreed        sql.NullString `gorm:"type:varchar(60);column:pet_breed"`
	ExperienceLevel sql.NullString `gorm:"type:varchar(30);column:experience_level"`

	// Rewards. Points only move through ledger credits and debits.
	Points int64 `gorm:"not null;default:0;column:points"`

	// Business attributes; IsBusiness gates boost eligibility
	IsBusiness          bool           `gorm:"not null;default:false;column:is_business"`
	BusinessName        sql.NullString `gorm:"type:varchar(100);column:business_name"`
	BusinessDescription sql.NullString `gorm:"type:varchar(500);column:business_description"`
	BusinessCategory    sql.NullString `gorm:"type:varchar(60);column:business_category"`

	OnboardingCompleted bool      `gorm:"not null;default:false;column:onboarding_completed"`
	CreatedAt           time.Time `gorm:"not null;column:created_at"`
	UpdatedAt           time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "paw_profiles"
}

// DisplayName returns the business name for business profiles, otherwise the username.
func (p *Profile) DisplayName() string {
	if p.IsBusiness && p.BusinessName.Valid && p.BusinessName.String != "" {
		return p.BusinessName.String
	}
	return p.Username
}
