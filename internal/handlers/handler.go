package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-records/internal/logger"
	"hospital-records/internal/repository"
	"hospital-records/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the hospital API on top of HospitalService.
type Handler struct {
	svc *service.HospitalService
}

func NewHandler(svc *service.HospitalService) *Handler {
	return &Handler{svc: svc}
}

// mapper is implemented by every entity; responses are built from ToMap.
type mapper interface {
	ToMap() map[string]any
}

func toMaps[T mapper](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToMap())
	}
	return out
}

// respondError maps repository errors onto status codes.
func respondError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": message + ": not found", "details": err.Error()})
	case errors.Is(err, repository.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"message": message + ": id already exists", "details": err.Error()})
	default:
		logger.WithField("path", c.FullPath()).WithError(err).Error(message)
		c.JSON(http.StatusInternalServerError, gin.H{"message": message, "details": err.Error()})
	}
}

// maxPageSize caps page_size on list endpoints.
const maxPageSize = 100

// pageParams reads page and page_size, falling back to 1 and 10.
// page_size is capped at maxPageSize.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// paginate returns the requested page, or an empty slice past the end.
// Offsets are checked before multiplying so huge page numbers cannot overflow.
func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 || page-1 > len(items)/pageSize {
		return items[len(items):]
	}
	start := (page - 1) * pageSize
	if len(items)-start <= pageSize {
		return items[start:]
	}
	return items[start : start+pageSize]
}
