package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/cekspek/internal/catalog"
)

// MaxImportBytes caps the body of an import request.
const MaxImportBytes = 8 << 20

type AdminHandler struct {
	svc *catalog.Service
}

func RegisterAdminRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := &AdminHandler{svc: svc}

	rg.GET("/stats", handler.Stats)
	rg.POST("/import", handler.Import)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", stats)
}

func (h *AdminHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, "Data import maksimal 8 MB")
			return
		}
		fail(c, http.StatusBadRequest, "Body request tidak valid")
		return
	}

	res, err := h.svc.Import(c.Request.Context(), data)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "Import selesai", res)
}
