package models

import (
	"time"

	"gorm.io/datatypes"
)

type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "Positive"
	OutlookNeutral  MarketOutlook = "Neutral"
	OutlookNegative MarketOutlook = "Negative"
)

// InsightRefreshInterval is how long a generated insight stays current
const InsightRefreshInterval = 7 * 24 * time.Hour

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

type IndustryInsight struct {
	ID                uint                             `json:"id" gorm:"primaryKey"`
	Industry          string                           `json:"industry" gorm:"uniqueIndex;not null;size:255"`
	SalaryRanges      datatypes.JSONSlice[SalaryRange] `json:"salary_ranges"`
	GrowthRate        float64                          `json:"growth_rate"`
	DemandLevel       DemandLevel                      `json:"demand_level" gorm:"size:20"`
	TopSkills         datatypes.JSONSlice[string]      `json:"top_skills"`
	MarketOutlook     MarketOutlook                    `json:"market_outlook" gorm:"size:20"`
	KeyTrends         datatypes.JSONSlice[string]      `json:"key_trends"`
	RecommendedSkills datatypes.JSONSlice[string]      `json:"recommended_skills"`
	LastUpdated       time.Time                        `json:"last_updated"`
	NextUpdate        time.Time                        `json:"next_update" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IndustryInsight) TableName() string {
	return "industry_insights"
}

func (i *IndustryInsight) IsStale(now time.Time) bool {
	return now.After(i.NextUpdate)
}
