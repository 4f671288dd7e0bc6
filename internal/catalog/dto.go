package catalog

import (
	"time"

	"github.com/MaksTishchuk/OnlineShop-version-2/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO is the storefront view of a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// NotebookSpecDTO carries notebook attributes on a product detail view.
type NotebookSpecDTO struct {
	Diagonal          string `json:"diagonal"`
	DisplayType       string `json:"display_type"`
	ProcessorFreq     string `json:"processor_freq"`
	RAM               string `json:"ram"`
	Video             string `json:"video"`
	TimeWithoutCharge string `json:"time_without_charge"`
}

// SmartphoneSpecDTO carries smartphone attributes on a product detail view.
type SmartphoneSpecDTO struct {
	Diagonal     string  `json:"diagonal"`
	DisplayType  string  `json:"display_type"`
	Resolution   string  `json:"resolution"`
	AccumVolume  string  `json:"accum_volume"`
	RAM          string  `json:"ram"`
	SD           bool    `json:"sd"`
	SDVolumeMax  *string `json:"sd_volume_max,omitempty"`
	MainCamMP    string  `json:"main_cam_mp"`
	FrontalCamMP string  `json:"frontal_cam_mp"`
}

// ProductDTO is the storefront view of a product.
type ProductDTO struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description *string            `json:"description,omitempty"`
	ImageURL    *string            `json:"image_url,omitempty"`
	Price       decimal.Decimal    `json:"price"`
	Category    *CategoryDTO       `json:"category,omitempty"`
	Notebook    *NotebookSpecDTO   `json:"notebook,omitempty"`
	Smartphone  *SmartphoneSpecDTO `json:"smartphone,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ProductListResult is a single page of products plus the cursor for the next one.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func toCategoryDTO(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}

func toProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:          product.ID,
		Title:       product.Title,
		Slug:        product.Slug,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Price:       product.Price,
		Category:    toCategoryDTO(product.Category),
		CreatedAt:   product.CreatedAt,
	}
	if spec := product.Notebook; spec != nil {
		dto.Notebook = &NotebookSpecDTO{
			Diagonal:          spec.Diagonal,
			DisplayType:       spec.DisplayType,
			ProcessorFreq:     spec.ProcessorFreq,
			RAM:               spec.RAM,
			Video:             spec.Video,
			TimeWithoutCharge: spec.TimeWithoutCharge,
		}
	}
	if spec := product.Smartphone; spec != nil {
		dto.Smartphone = &SmartphoneSpecDTO{
			Diagonal:     spec.Diagonal,
			DisplayType:  spec.DisplayType,
			Resolution:   spec.Resolution,
			AccumVolume:  spec.AccumVolume,
			RAM:          spec.RAM,
			SD:           spec.SD,
			SDVolumeMax:  spec.SDVolumeMax,
			MainCamMP:    spec.MainCamMP,
			FrontalCamMP: spec.FrontalCamMP,
		}
	}
	return dto
}
