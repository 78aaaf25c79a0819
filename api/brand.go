package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/middleware"
)

type BrandHandler struct {
	svc *catalog.Service
}

func NewBrandHandler(svc *catalog.Service) *BrandHandler {
	return &BrandHandler{svc: svc}
}

func RegisterBrandRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := NewBrandHandler(svc)

	rg.GET("", handler.GetAll)
	rg.GET("/:id", middleware.IDParamMiddleware("id"), handler.GetBrandById)
}

func RegisterAdminBrandRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := NewBrandHandler(svc)

	rg.POST("", handler.AddBrand)
	rg.PUT("/:id", middleware.IDParamMiddleware("id"), handler.UpdateBrand)
	rg.DELETE("/:id", middleware.IDParamMiddleware("id"), handler.DeleteBrand)
}

func (h *BrandHandler) GetAll(c *gin.Context) {
	brands, err := h.svc.ListBrands(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", brands)
}

func (h *BrandHandler) GetBrandById(c *gin.Context) {
	brand, err := h.svc.GetBrand(c.Request.Context(), pathID(c, "id"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", brand)
}

func (h *BrandHandler) AddBrand(c *gin.Context) {
	var request domain.BrandInput
	if !bindJSON(c, &request) {
		return
	}

	brand, err := h.svc.CreateBrand(c.Request.Context(), request)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Brand berhasil ditambahkan", brand)
}

func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	var request domain.BrandInput
	if !bindJSON(c, &request) {
		return
	}

	brand, err := h.svc.UpdateBrand(c.Request.Context(), pathID(c, "id"), request)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "Brand berhasil diperbarui", brand)
}

func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	if err := h.svc.DeleteBrand(c.Request.Context(), pathID(c, "id")); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "Brand berhasil dihapus", nil)
}
