package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLightly    = "lightly"
	ActivityModerately = "moderately"
	ActivityVery       = "very"
)

type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserID         uint      `gorm:"not null;uniqueIndex" json:"-"`
	Age            int       `gorm:"not null" json:"age"`
	HeightCm       float64   `gorm:"not null" json:"heightCm"`
	WeightKg       float64   `gorm:"not null" json:"weightKg"`
	Gender         string    `gorm:"not null" json:"gender"`
	PrimaryGoal    string    `gorm:"not null;default:maintain" json:"primaryGoal"`
	TargetWeightKg float64   `gorm:"not null;default:0" json:"targetWeightKg"`
	ActivityLevel  string    `gorm:"not null;default:sedentary" json:"activityLevel"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// WeightEntry is one point of a user's weight history. At most one entry
// exists per calendar day; logging weight twice on the same day overwrites.
type WeightEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_weight_user_date" json:"-"`
	Date      string    `gorm:"not null;uniqueIndex:uidx_weight_user_date" json:"date"`
	WeightKg  float64   `gorm:"not null" json:"weightKg"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
