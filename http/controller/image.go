package controller

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imgdose/imgdose-api/entity"
	"github.com/imgdose/imgdose-api/http/controller/dto"
	"github.com/imgdose/imgdose-api/infra"
	"github.com/imgdose/imgdose-api/repository"
	"github.com/imgdose/imgdose-api/utils"
)

const (
	statsCachePrefix = "imgdose:stats:"
	statsCacheTTL    = time.Minute
)

// UploadImages stores each file of the multipart batch independently:
// object bytes first, then the metadata row. One file failing never
// aborts its siblings.
func (ctrl *Controller) UploadImages(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to parse upload form")
		utils.JSON400(c, "Failed to parse upload request.")
		return
	}

	files := make([]*multipart.FileHeader, 0)
	for _, headers := range form.File {
		files = append(files, headers...)
	}
	if len(files) == 0 {
		utils.JSON400(c, "No file was attached.")
		return
	}

	results := make([]dto.UploadResult, 0, len(files))
	for _, fileHeader := range files {
		filename := fileHeader.Filename
		if filename == "" {
			filename = "noname"
		}

		image, err := ctrl.storeFile(ctx, fileHeader, filename)
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to upload file '%s'", filename)
			results = append(results, dto.UploadResult{Success: false, Filename: filename, Error: err.Error()})
			continue
		}
		results = append(results, dto.UploadResult{Success: true, Filename: filename, Image: image})
	}

	status, hasSuccess := uploadStatus(results)

	successCount := 0
	for _, result := range results {
		if result.Success {
			successCount++
		}
	}
	ctrl.Infra.Logger.DebugWithContextf(ctx, "[Image] Upload summary: requested=%d success=%d failure=%d",
		len(files), successCount, len(files)-successCount)

	if hasSuccess {
		ctrl.invalidateStatsCache(ctx)
		auditStatus := entity.AuditStatusCompleted
		if status == http.StatusMultiStatus {
			auditStatus = entity.AuditStatusPartial
		}
		ctrl.recordAudit(ctx, entity.AuditActionUpload, auditStatus, gin.H{
			"requested": len(files),
			"stored":    successCount,
		})
	}

	utils.JSON(c, status, hasSuccess, gin.H{"results": results})
}

// storeFile validates one file, writes its bytes under a fresh key, then
// inserts the metadata row. The object must exist before the row does; a
// row insert failure leaves at worst an orphan object, which is handed
// to the cleanup queue.
func (ctrl *Controller) storeFile(ctx context.Context, fileHeader *multipart.FileHeader, filename string) (*entity.Image, error) {
	if err := validateUpload(fileHeader); err != nil {
		return nil, err
	}

	contentType := normalizeContentType(fileHeader.Header.Get("Content-Type"))
	extension := fileExtension(filename, contentType)

	id := uuid.New()
	objectKey := "images/" + id.String()
	if extension != "" {
		objectKey += "." + extension
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := ctrl.Infra.Minio.PutObject(ctx, objectKey, src, fileHeader.Size, contentType); err != nil {
		return nil, err
	}

	image := &entity.Image{
		ID:               id,
		ObjectKey:        objectKey,
		OriginalFilename: filename,
		ContentType:      contentType,
		FileSize:         fileHeader.Size,
		UploadedAt:       time.Now().UTC(),
		FileExtension:    extension,
		PublicURL:        ctrl.Infra.Minio.ObjectURL(objectKey),
	}

	if err := ctrl.Repository.ImageRepo.Create(image); err != nil {
		// The object is already durable; queue it for removal instead
		// of leaking it.
		if perr := ctrl.Infra.Produce.CleanupService.PublishOrphanObject(ctx, objectKey, err.Error()); perr != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, perr, "[Image] Failed to publish cleanup for orphan object '%s'", objectKey)
		}
		return nil, err
	}

	return image, nil
}

// ListImages answers the filtered, sorted, paginated listing plus
// aggregate stats over the same filter.
func (ctrl *Controller) ListImages(c *gin.Context) {
	ctx := c.Request.Context()

	params := repository.ListImagesParams{
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     c.DefaultQuery("sort", "uploadedAt"),
		Order:    strings.ToLower(c.DefaultQuery("order", "desc")),
		Page:     clampPositiveInt(c.Query("page"), 1, 1, repository.MaxPage),
		PageSize: clampPositiveInt(c.Query("pageSize"), repository.DefaultPageSize, 1, repository.MaxPageSize),
	}
	params.Normalize()

	images, err := ctrl.Repository.ImageRepo.List(params)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to query image list: search=%q sort=%s order=%s page=%d pageSize=%d",
			params.Search, params.Sort, params.Order, params.Page, params.PageSize)
		utils.JSON500(c, "Failed to fetch image list.")
		return
	}

	stats, err := ctrl.listStats(ctx, params.Search)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to query image stats: search=%q", params.Search)
		utils.JSON500(c, "Failed to fetch image list.")
		return
	}

	pagination := paginationFor(params, len(images), stats.TotalCount)

	utils.JSON200(c, gin.H{
		"items":      images,
		"pagination": pagination,
		"stats":      stats,
	})
}

// listStats serves the aggregate query through a short-lived Redis
// cache keyed by the search filter.
func (ctrl *Controller) listStats(ctx context.Context, search string) (*repository.ListStats, error) {
	cacheKey := statsCachePrefix + strings.ToLower(search)

	var cached repository.ListStats
	if err := ctrl.Infra.Redis.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, infra.ErrCacheMiss) {
		ctrl.Infra.Logger.DebugWithContextf(ctx, "[Image] Stats cache read failed: %v", err)
	}

	stats, err := ctrl.Repository.ImageRepo.Stats(search)
	if err != nil {
		return nil, err
	}

	if err := ctrl.Infra.Redis.Set(ctx, cacheKey, stats, statsCacheTTL); err != nil {
		ctrl.Infra.Logger.DebugWithContextf(ctx, "[Image] Stats cache write failed: %v", err)
	}
	return stats, nil
}

func (ctrl *Controller) invalidateStatsCache(ctx context.Context) {
	if err := ctrl.Infra.Redis.DeleteByPattern(ctx, statsCachePrefix+"*"); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Image] Failed to invalidate stats cache: %v", err)
	}
}

func (ctrl *Controller) recordAudit(ctx context.Context, action, status string, details gin.H) {
	if err := ctrl.Repository.AuditRepo.Record(action, status, details); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Audit] Failed to record %s event: %v", action, err)
	}
}

// DeleteImages removes each matched image independently: object first,
// then the row, so a row never outlives its object reference the wrong
// way around. Row deletions share one transaction.
func (ctrl *Controller) DeleteImages(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to parse delete request body")
		utils.JSON400(c, "Failed to parse delete request.")
		return
	}

	ids := extractIDList(req.IDs)
	if len(ids) == 0 {
		utils.JSON400(c, "No image IDs were provided.")
		return
	}

	rows, err := ctrl.Repository.ImageRepo.FindByIDs(parseIDList(ids))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to look up images for delete: ids=%v", ids)
		utils.JSON500(c, "Failed to look up images.")
		return
	}
	if len(rows) == 0 {
		ctrl.Infra.Logger.InfoWithContextf(ctx, "[Image] Delete requested but no matching images were found: ids=%v", ids)
		utils.JSON404(c, "No matching images were found.")
		return
	}

	deleted := make([]string, 0, len(rows))
	failures := make([]dto.DeleteFailure, 0)

	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	if tx.Error != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, tx.Error, "[Image] Failed to open delete transaction")
		utils.JSON500(c, "Failed to delete images.")
		return
	}
	txRepo := ctrl.Repository.WithTransaction(tx)

	for _, row := range rows {
		if err := ctrl.Infra.Minio.RemoveObject(ctx, row.ObjectKey); err != nil {
			// The row must survive so the object reference stays valid
			// and the delete can be retried.
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to delete object '%s' for image %s", row.ObjectKey, row.ID)
			failures = append(failures, dto.DeleteFailure{ID: row.ID.String(), Reason: err.Error()})
			continue
		}

		if err := txRepo.ImageRepo.DeleteByID(row.ID); err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to delete metadata row for image %s", row.ID)
			failures = append(failures, dto.DeleteFailure{ID: row.ID.String(), Reason: err.Error()})
			continue
		}

		deleted = append(deleted, row.ID.String())
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		// Objects already removed in this batch are gone while their
		// rows survive; accepted divergence, surfaced as a 500.
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Transaction failure while deleting images: ids=%v", ids)
		utils.JSON500(c, "Failed to commit image deletions.")
		return
	}

	hasSuccess := len(deleted) > 0
	if hasSuccess {
		ctrl.Infra.Logger.InfoWithContextf(ctx, "[Image] Deleted images: deleted=%d failures=%d", len(deleted), len(failures))
		ctrl.invalidateStatsCache(ctx)
		auditStatus := entity.AuditStatusCompleted
		if len(failures) > 0 {
			auditStatus = entity.AuditStatusPartial
		}
		ctrl.recordAudit(ctx, entity.AuditActionDelete, auditStatus, gin.H{
			"deleted":  deleted,
			"failures": len(failures),
		})
	}

	status := http.StatusOK
	if !hasSuccess {
		status = http.StatusInternalServerError
	}
	utils.JSON(c, status, hasSuccess, gin.H{
		"deleted":  deleted,
		"failures": failures,
	})
}
