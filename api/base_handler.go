package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/importer"
	"github.com/quochao170402/cekspek/internal/repository"
)

const pgUniqueViolation = "23505"

type BaseResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
	Success bool   `json:"success"`
}

type ListData struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, BaseResponse{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, BaseResponse{Success: false, Message: message})
}

// StatusOf maps the error taxonomy onto HTTP statuses.
func StatusOf(err error) int {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		integrity  *domain.ReferentialIntegrityError
		parse      *importer.ParseError
		pgErr      *pgconn.PgError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &parse):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &integrity), errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err as a failed BaseResponse and records it on the
// context for the request logger.
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, StatusOf(err), err.Error())
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "Body request tidak valid")
		return false
	}
	return true
}

// pathID returns the id stored by middleware.IDParamMiddleware.
func pathID(c *gin.Context, param string) int64 {
	return c.GetInt64(param)
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &domain.ValidationError{Field: key, Message: key + " tidak valid"}
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: key, Message: key + " tidak valid"}
	}
	return &v, nil
}

// splitIDs parses "1,2,3".
func splitIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "ids", Message: "ID tidak valid: " + part}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
