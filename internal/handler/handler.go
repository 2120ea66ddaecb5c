// Package handler maps the HTTP surface onto the service layer.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/mapper"
	"storefront-backend/internal/model"
	"storefront-backend/internal/service"
	"storefront-backend/internal/store"
	"storefront-backend/pkg/errs"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func writeError(c *gin.Context, err error) {
	c.JSON(errs.GetErrorStatusCode(err), gin.H{"detail": errs.Message(err)})
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Ecommerce Backend Running"})
}

func (h *Handler) diagnostics(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Diagnose(c.Request.Context()))
}

func (h *Handler) schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": store.Collections})
}

// ----- Catalogue -----

func (h *Handler) listProducts(c *gin.Context) {
	var q mapper.ProductQuery
	if err := mapper.BindQuery(c, &q); err != nil {
		writeError(c, err)
		return
	}
	docs, err := h.svc.ListProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) getProduct(c *gin.Context) {
	doc, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) listBlogPosts(c *gin.Context) {
	var q mapper.BlogQuery
	if err := mapper.BindQuery(c, &q); err != nil {
		writeError(c, err)
		return
	}
	docs, err := h.svc.ListBlogPosts(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) getBlogPost(c *gin.Context) {
	doc, err := h.svc.GetBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ----- Orders & contact -----

func (h *Handler) createOrder(c *gin.Context) {
	var order model.Order
	if err := mapper.BindJSON(c, &order); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), order)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) submitContact(c *gin.Context) {
	var msg model.ContactMessage
	if err := mapper.BindJSON(c, &msg); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.SubmitContact(c.Request.Context(), msg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ----- Auth -----

func (h *Handler) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := mapper.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) login(c *gin.Context) {
	var req model.LoginRequest
	if err := mapper.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
