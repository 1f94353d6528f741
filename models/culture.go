package models

// Festival is a yearly monastery festival. Dates follow the Gregorian month
// and day it is observed on; Days counts the whole celebration.
type Festival struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Type         string   `yaml:"type" json:"type"`
	Month        int      `yaml:"month" json:"month"`
	Day          int      `yaml:"day" json:"day"`
	Days         int      `yaml:"days" json:"days"`
	Description  string   `yaml:"description" json:"description"`
	Significance string   `yaml:"significance" json:"significance,omitempty"`
	Rituals      []string `yaml:"rituals" json:"rituals"`
	Dos          []string `yaml:"dos" json:"dos"`
	Donts        []string `yaml:"donts" json:"donts"`
	Locations    []string `yaml:"locations" json:"locations"`
	Auspicious   bool     `yaml:"auspicious" json:"auspicious"`
}

// AuspiciousDay recurs on the same day of every month.
type AuspiciousDay struct {
	Day                   int      `yaml:"day" json:"day"`
	Type                  string   `yaml:"type" json:"type"`
	Significance          string   `yaml:"significance" json:"significance"`
	RecommendedActivities []string `yaml:"recommendedActivities" json:"recommendedActivities"`
	Monasteries           []string `yaml:"monasteries" json:"monasteries"`
}

// ArchiveItem is one digitized record of the monastery archives.
type ArchiveItem struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Type         string   `yaml:"type" json:"type"`
	Category     string   `yaml:"category" json:"category"`
	Date         string   `yaml:"date" json:"date"`
	Period       string   `yaml:"period" json:"period,omitempty"`
	Location     string   `yaml:"location" json:"location,omitempty"`
	Language     string   `yaml:"language" json:"language,omitempty"`
	Duration     string   `yaml:"duration" json:"duration,omitempty"`
	Tags         []string `yaml:"tags" json:"tags"`
	Significance string   `yaml:"significance" json:"significance,omitempty"`
}

// FestivalFilter narrows the calendar. Zero Month and empty Type match all.
type FestivalFilter struct {
	Month int    `form:"month" binding:"omitempty,min=1,max=12"`
	Type  string `form:"type" binding:"omitempty,oneof=religious cultural harvest national all"`
}

// ArchiveFilter narrows an archive listing. Query matches title,
// description and tags.
type ArchiveFilter struct {
	Category string `form:"category"`
	Type     string `form:"type"`
	Period   string `form:"period"`
	Query    string `form:"q"`
}
