package db

import "gorm.io/gorm"

// DietPlan is a selectable diet ruleset. Description is markdown,
// rendered and sanitized at the handler layer. Tier names the lowest
// difficulty the plan is intended for.
type DietPlan struct {
	gorm.Model
	Name        string
	Slug        string `gorm:"uniqueIndex"`
	Tier        string
	Description string
}
