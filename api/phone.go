package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/middleware"
)

type PhoneHandler struct {
	svc *catalog.Service
}

func NewPhoneHandler(svc *catalog.Service) *PhoneHandler {
	return &PhoneHandler{svc: svc}
}

func RegisterPhoneRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := NewPhoneHandler(svc)
	reviews := NewReviewHandler(svc)

	rg.GET("", handler.GetAll)
	rg.GET("/slug/:slug", handler.GetDetail)
	rg.GET("/:id", middleware.IDParamMiddleware("id"), handler.GetPhoneById)
	rg.GET("/:id/reviews", middleware.IDParamMiddleware("id"), reviews.GetByPhone)
	rg.POST("/:id/reviews", middleware.IDParamMiddleware("id"), reviews.Submit)
}

func RegisterAdminPhoneRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := NewPhoneHandler(svc)

	rg.GET("", handler.AdminList)
	rg.POST("", handler.AddPhone)
	rg.PUT("/:id", middleware.IDParamMiddleware("id"), handler.UpdatePhone)
	rg.DELETE("/:id", middleware.IDParamMiddleware("id"), handler.DeletePhone)
}

func (h *PhoneHandler) GetAll(c *gin.Context) {
	brandID, err := queryInt(c, "brand_id")
	if err != nil {
		handleError(c, err)
		return
	}
	featured, err := queryBool(c, "featured")
	if err != nil {
		handleError(c, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		handleError(c, err)
		return
	}

	q := catalog.PhoneQuery{BrandID: brandID, Featured: featured}
	if limit != nil {
		q.Limit = int(*limit)
	}
	phones, err := h.svc.ListPhones(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", ListData{Items: phones, Count: len(phones)})
}

func (h *PhoneHandler) GetPhoneById(c *gin.Context) {
	phone, err := h.svc.GetPhone(c.Request.Context(), pathID(c, "id"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", phone)
}

func (h *PhoneHandler) GetDetail(c *gin.Context) {
	detail, err := h.svc.PhoneDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", detail)
}

func (h *PhoneHandler) AdminList(c *gin.Context) {
	list, err := h.svc.AdminListPhones(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", list)
}

func (h *PhoneHandler) AddPhone(c *gin.Context) {
	var request domain.PhoneInput
	if !bindJSON(c, &request) {
		return
	}

	phone, err := h.svc.CreatePhone(c.Request.Context(), request)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, "HP berhasil ditambahkan", phone)
}

func (h *PhoneHandler) UpdatePhone(c *gin.Context) {
	var request domain.PhoneInput
	if !bindJSON(c, &request) {
		return
	}

	phone, err := h.svc.UpdatePhone(c.Request.Context(), pathID(c, "id"), request)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "HP berhasil diperbarui", phone)
}

func (h *PhoneHandler) DeletePhone(c *gin.Context) {
	if err := h.svc.DeletePhone(c.Request.Context(), pathID(c, "id")); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "HP berhasil dihapus", nil)
}
