package dto

import "github.com/imgdose/imgdose-api/entity"

// UploadResult is the per-file outcome of a batch upload: either a
// stored image or a human-readable failure reason.
type UploadResult struct {
	Success  bool          `json:"success"`
	Filename string        `json:"filename"`
	Image    *entity.Image `json:"image,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type IDListRequest struct {
	IDs []string `json:"ids"`
}

type DeleteFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type Pagination struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	HasNext  bool  `json:"hasNext"`
	HasPrev  bool  `json:"hasPrev"`
}

type LoginRequest struct {
	Password string `json:"password"`
}
