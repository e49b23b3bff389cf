package controller

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imgdose/imgdose-api/entity"
	"github.com/imgdose/imgdose-api/http/controller/dto"
	"github.com/imgdose/imgdose-api/infra"
	"github.com/imgdose/imgdose-api/utils"
)

// objectFetcher is the slice of the object store the archive needs.
type objectFetcher interface {
	GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error)
}

// ArchiveImages resolves the requested ids and streams their bytes back
// as one store-only ZIP. Unreadable objects are skipped, not fatal; the
// archive is best-effort over the requested set.
func (ctrl *Controller) ArchiveImages(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Archive] Failed to parse archive request body")
		utils.JSON400(c, "Failed to parse archive request.")
		return
	}

	ids := extractIDList(req.IDs)
	if len(ids) == 0 {
		utils.JSON400(c, "No image IDs were provided.")
		return
	}
	if len(ids) > MaxArchiveItems {
		utils.JSON400(c, fmt.Sprintf("You can archive up to %d images at once.", MaxArchiveItems))
		return
	}

	rows, err := ctrl.Repository.ImageRepo.FindByIDs(parseIDList(ids))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Archive] Failed to look up images: ids=%v", ids)
		utils.JSON500(c, "Failed to retrieve images for archive.")
		return
	}
	if len(rows) == 0 {
		ctrl.Infra.Logger.InfoWithContextf(ctx, "[Archive] Archive requested but no matching images were found: ids=%v", ids)
		utils.JSON404(c, "No matching images were found.")
		return
	}

	buf, added, err := assembleArchive(ctx, rows, ctrl.Infra.Minio, ctrl.Infra.Logger)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Archive] Unexpected error while creating ZIP archive: ids=%v", ids)
		utils.JSON500(c, "Failed to build the ZIP archive.")
		return
	}
	if added == 0 {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Archive] Archive request produced no downloadable objects: ids=%v", ids)
		utils.JSON404(c, "No image data could be retrieved.")
		return
	}

	ctrl.recordAudit(ctx, entity.AuditActionArchive, entity.AuditStatusCompleted, gin.H{
		"requested": len(ids),
		"archived":  added,
	})

	filename := "imgdose-archive-" + time.Now().UTC().Format("2006-01-02T15-04-05Z") + ".zip"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// assembleArchive builds the in-memory ZIP. Entries are stored without
// compression; images are compressed formats already.
func assembleArchive(ctx context.Context, images []entity.Image, store objectFetcher, logger *infra.LoggerClient) (*bytes.Buffer, int, error) {
	buf := &bytes.Buffer{}
	zipWriter := zip.NewWriter(buf)
	usedNames := make(map[string]bool, len(images))
	added := 0

	for _, image := range images {
		if image.ObjectKey == "" {
			logger.DebugWithContextf(ctx, "[Archive] Skipping entry with empty object key: %s", image.ID)
			continue
		}

		object, err := store.GetObject(ctx, image.ObjectKey)
		if err != nil {
			logger.ErrorWithContextf(ctx, err, "[Archive] Failed to read object '%s' for image %s", image.ObjectKey, image.ID)
			continue
		}

		name := image.OriginalFilename
		if name == "" {
			name = image.ID.String()
		}
		entryName := uniqueEntryName(utils.ArchiveEntryName(name, image.FileExtension), usedNames)

		writer, err := zipWriter.CreateHeader(&zip.FileHeader{
			Name:     entryName,
			Method:   zip.Store,
			Modified: image.UploadedAt,
		})
		if err != nil {
			_ = object.Close()
			_ = zipWriter.Close()
			return nil, 0, err
		}
		if _, err := io.Copy(writer, object); err != nil {
			_ = object.Close()
			_ = zipWriter.Close()
			return nil, 0, err
		}
		_ = object.Close()
		added++
	}

	if err := zipWriter.Close(); err != nil {
		return nil, 0, err
	}
	return buf, added, nil
}

// uniqueEntryName disambiguates colliding entry names with a numeric
// suffix before the extension, instead of silently overwriting entries.
func uniqueEntryName(name string, used map[string]bool) string {
	lower := strings.ToLower(name)
	if !used[lower] {
		used[lower] = true
		return name
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if lc := strings.ToLower(candidate); !used[lc] {
			used[lc] = true
			return candidate
		}
	}
}
