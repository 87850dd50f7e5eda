package model

import (
	"time"

	"gorm.io/datatypes"
)

// ExhibitionStatus is the temporal lifecycle classification.
type ExhibitionStatus string

const (
	StatusDraft     ExhibitionStatus = "draft"
	StatusUpcoming  ExhibitionStatus = "upcoming"
	StatusOngoing   ExhibitionStatus = "ongoing"
	StatusEnded     ExhibitionStatus = "ended"
	StatusCancelled ExhibitionStatus = "cancelled"
)

// VerificationStatus is the moderation state, independent of lifecycle.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// CrawlCadence drives how often a venue is collected.
type CrawlCadence string

const (
	CadenceDaily       CrawlCadence = "daily"
	CadenceTwiceWeekly CrawlCadence = "twice_weekly"
	CadenceWeekly      CrawlCadence = "weekly"
	CadenceManual      CrawlCadence = "manual"
)

// Venue is a physical exhibition space. Rows are owned by administrative
// CRUD; the pipeline only reads them and bumps LastCrawledAt.
type Venue struct {
	ID            uint64       `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string       `gorm:"column:name;type:varchar(255);uniqueIndex;not null"` // primary display name
	NameEn        string       `gorm:"column:name_en;type:varchar(255)"`                   // secondary display name, empty if none
	Tier          int          `gorm:"column:tier;type:int;default:3;index"`               // 1..3, drives cadence
	City          string       `gorm:"column:city;type:varchar(100);not null"`
	Country       string       `gorm:"column:country;type:varchar(2);default:KR"`
	Website       string       `gorm:"column:website;type:varchar(500)"`
	ListSelector  string       `gorm:"column:list_selector;type:varchar(255)"`  // venue-site channel: item selector
	TitleSelector string       `gorm:"column:title_selector;type:varchar(255)"` // venue-site channel: title within item
	DateSelector  string       `gorm:"column:date_selector;type:varchar(255)"`  // venue-site channel: period within item
	IsActive      bool         `gorm:"column:is_active;type:boolean;default:true"`
	CrawlCadence  CrawlCadence `gorm:"column:crawl_cadence;type:varchar(16);default:weekly"`
	LastCrawledAt *time.Time   `gorm:"column:last_crawled_at;type:timestamp"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// Exhibition is a durable catalog record. (title, venue_id, start_date)
// identifies a logical exhibition; the unique index is the correctness
// backstop for reconciliation.
type Exhibition struct {
	ID                 uint64             `gorm:"column:id;primaryKey;autoIncrement"`
	UUID               string             `gorm:"column:uuid;type:varchar(64);uniqueIndex;not null"`
	Title              string             `gorm:"column:title;type:varchar(500);not null;uniqueIndex:uk_title_venue_start"`
	Description        string             `gorm:"column:description;type:text"`
	VenueID            uint64             `gorm:"column:venue_id;type:bigint;not null;uniqueIndex:uk_title_venue_start"`
	VenueName          string             `gorm:"column:venue_name;type:varchar(255);not null"` // denormalized for query convenience
	VenueCity          string             `gorm:"column:venue_city;type:varchar(100)"`
	VenueCountry       string             `gorm:"column:venue_country;type:varchar(2);default:KR"`
	StartDate          time.Time          `gorm:"column:start_date;type:date;not null;uniqueIndex:uk_title_venue_start"`
	EndDate            time.Time          `gorm:"column:end_date;type:date;not null"`
	Artists            datatypes.JSON     `gorm:"column:artists;type:jsonb"`
	AdmissionFee       *int               `gorm:"column:admission_fee;type:int"` // won; nil means unknown, 0 means free
	Source             string             `gorm:"column:source;type:varchar(32);not null"`
	SourceURL          string             `gorm:"column:source_url;type:varchar(500)"`
	Status             ExhibitionStatus   `gorm:"column:status;type:varchar(16);default:upcoming;index"`
	VerificationStatus VerificationStatus `gorm:"column:verification_status;type:varchar(16);default:pending;index"`
	Tags               datatypes.JSON     `gorm:"column:tags;type:jsonb"`
	Category           string             `gorm:"column:category;type:varchar(32)"`
	ViewCount          int                `gorm:"column:view_count;type:int;default:0"` // owned by the UI layer
	LikeCount          int                `gorm:"column:like_count;type:int;default:0"` // owned by the UI layer
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Venue) TableName() string      { return "venues" }
func (Exhibition) TableName() string { return "exhibitions" }
