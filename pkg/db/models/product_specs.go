package models

import (
	"github.com/google/uuid"
)

// NotebookSpec holds notebook-specific attributes for a product.
type NotebookSpec struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	Diagonal          string    `gorm:"column:diagonal;not null"`
	DisplayType       string    `gorm:"column:display_type;not null"`
	ProcessorFreq     string    `gorm:"column:processor_freq;not null"`
	RAM               string    `gorm:"column:ram;not null"`
	Video             string    `gorm:"column:video;not null"`
	TimeWithoutCharge string    `gorm:"column:time_without_charge;not null"`
}

// SmartphoneSpec holds smartphone-specific attributes for a product.
type SmartphoneSpec struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	Diagonal     string    `gorm:"column:diagonal;not null"`
	DisplayType  string    `gorm:"column:display_type;not null"`
	Resolution   string    `gorm:"column:resolution;not null"`
	AccumVolume  string    `gorm:"column:accum_volume;not null"`
	RAM          string    `gorm:"column:ram;not null"`
	SD           bool      `gorm:"column:sd;not null;default:true"`
	SDVolumeMax  *string   `gorm:"column:sd_volume_max"`
	MainCamMP    string    `gorm:"column:main_cam_mp;not null"`
	FrontalCamMP string    `gorm:"column:frontal_cam_mp;not null"`
}
