package repository

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imgdose/imgdose-api/entity"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage bounds the page number so the offset arithmetic cannot
	// overflow into a negative value, which gorm would treat as no
	// offset at all.
	MaxPage = math.MaxInt32
)

// sortColumns whitelists the client-facing sort keys against real
// columns; anything else falls back to the upload timestamp.
var sortColumns = map[string]string{
	"uploadedAt":       "uploaded_at",
	"originalFilename": "original_filename",
	"fileSize":         "file_size",
}

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// ListImagesParams carries the normalized listing query. Call Normalize
// before use.
type ListImagesParams struct {
	Search   string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// Normalize applies defaults and clamps so the query is always valid:
// page >= 1, pageSize within 1..100, sort/order reduced to known values.
func (p *ListImagesParams) Normalize() {
	if _, ok := sortColumns[p.Sort]; !ok {
		p.Sort = "uploadedAt"
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p ListImagesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func resolveSort(sort, order string) (column, direction string) {
	column, ok := sortColumns[sort]
	if !ok {
		column = "uploaded_at"
	}
	direction = "DESC"
	if order == "asc" {
		direction = "ASC"
	}
	return column, direction
}

// ListStats aggregates the full filtered set, independent of paging.
type ListStats struct {
	TotalCount       int64      `json:"totalCount" gorm:"column:total_count"`
	TotalBytes       int64      `json:"totalBytes" gorm:"column:total_bytes"`
	LatestUploadedAt *time.Time `json:"latestUploadedAt" gorm:"column:latest_uploaded_at"`
}

func (r *ImageRepository) filtered(search string) *gorm.DB {
	query := r.db.Model(&entity.Image{})
	if search != "" {
		query = query.Where("LOWER(original_filename) LIKE LOWER(?)", "%"+search+"%")
	}
	return query
}

func (r *ImageRepository) Create(image *entity.Image) error {
	return r.db.Create(image).Error
}

// List returns one page of the filtered, sorted listing. A secondary id
// ordering keeps pagination stable when sort values are not unique.
func (r *ImageRepository) List(params ListImagesParams) ([]entity.Image, error) {
	column, direction := resolveSort(params.Sort, params.Order)

	images := make([]entity.Image, 0, params.PageSize)
	err := r.filtered(params.Search).
		Order(fmt.Sprintf("%s %s, id DESC", column, direction)).
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Stats runs the aggregate query over the same filter as List.
func (r *ImageRepository) Stats(search string) (*ListStats, error) {
	var stats ListStats
	err := r.filtered(search).
		Select("COUNT(*) AS total_count, COALESCE(SUM(file_size), 0) AS total_bytes, MAX(uploaded_at) AS latest_uploaded_at").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ImageRepository) FindByIDs(ids []uuid.UUID) ([]entity.Image, error) {
	images := make([]entity.Image, 0, len(ids))
	if len(ids) == 0 {
		return images, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) DeleteByID(id uuid.UUID) error {
	return r.db.Delete(&entity.Image{}, "id = ?", id).Error
}
