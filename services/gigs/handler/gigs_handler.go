package handler

import (
	"context"
	"net/http"

	"gigboard/internal/auth"
	gig "gigboard/internal/gigService"
	model "gigboard/internal/models"
	"gigboard/services/helpers"
	"gigboard/utils"

	"github.com/gin-gonic/gin"
)

type GigServiceInterface interface {
	CreateGig(ctx context.Context, ownerID, title, description string, budget float64) (model.Gig, error)
	GetGigByID(ctx context.Context, gigID string) (model.Gig, error)
	ListOpenGigs(ctx context.Context) ([]model.Gig, error)
	SearchGigs(ctx context.Context, query string) ([]model.Gig, error)
	ListGigsByOwner(ctx context.Context, ownerID string) ([]model.Gig, error)
	UpdateGig(ctx context.Context, actorUserID, gigID string, upd gig.GigUpdate) (model.Gig, error)
	DeleteGig(ctx context.Context, actorUserID, gigID string) (model.Gig, error)
}

type GigsHandler struct {
	service GigServiceInterface
}

func NewGigsHandler(service GigServiceInterface) *GigsHandler {
	return &GigsHandler{service: service}
}

// CreateGigHandler handles POST /api/gigs
func (h *GigsHandler) CreateGigHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateGigHandler", err)
		return
	}

	created, err := h.service.CreateGig(c.Request.Context(), actor.UserID, req.Title, req.Description, *req.Budget)
	if err != nil {
		helpers.HandleServiceError(c, "CreateGigHandler", err, map[string]any{"owner_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toGigResponse(created), "gig created successfully")
	helpers.LogSuccess("CreateGigHandler", "gig created successfully", map[string]any{
		"gig_id":   created.GigID,
		"owner_id": created.OwnerID,
		"budget":   created.Budget,
	})
}

// ListOpenGigsHandler handles GET /api/gigs
func (h *GigsHandler) ListOpenGigsHandler(c *gin.Context) {
	gigs, err := h.service.ListOpenGigs(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "ListOpenGigsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, toGigResponses(gigs), "gigs retrieved successfully")
}

// GetGigByIDHandler handles GET /api/gigs/getById/:id
func (h *GigsHandler) GetGigByIDHandler(c *gin.Context) {
	gigID := c.Param("id")

	found, err := h.service.GetGigByID(c.Request.Context(), gigID)
	if err != nil {
		helpers.HandleServiceError(c, "GetGigByIDHandler", err, map[string]any{"gig_id": gigID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, toGigResponse(found), "gig retrieved successfully")
}

// SearchGigsHandler handles GET /api/gigs/search?search=
func (h *GigsHandler) SearchGigsHandler(c *gin.Context) {
	query := c.Query("search")

	gigs, err := h.service.SearchGigs(c.Request.Context(), query)
	if err != nil {
		helpers.HandleServiceError(c, "SearchGigsHandler", err, map[string]any{"query": query})
		return
	}
	utils.JSONResponse(c, http.StatusOK, toGigResponses(gigs), "gigs retrieved successfully")
}

// MyGigsHandler handles GET /api/gigs/my
func (h *GigsHandler) MyGigsHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	gigs, err := h.service.ListGigsByOwner(c.Request.Context(), actor.UserID)
	if err != nil {
		helpers.HandleServiceError(c, "MyGigsHandler", err, map[string]any{"owner_id": actor.UserID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, toGigResponses(gigs), "gigs retrieved successfully")
}

// UpdateGigHandler handles PATCH /api/gigs/:id
func (h *GigsHandler) UpdateGigHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	gigID := c.Param("id")

	var req UpdateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateGigHandler", err)
		return
	}

	updated, err := h.service.UpdateGig(c.Request.Context(), actor.UserID, gigID, gig.GigUpdate{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		helpers.HandleServiceError(c, "UpdateGigHandler", err, map[string]any{
			"gig_id":  gigID,
			"user_id": actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toGigResponse(updated), "gig updated successfully")
	helpers.LogSuccess("UpdateGigHandler", "gig updated successfully", map[string]any{"gig_id": gigID})
}

// DeleteGigHandler handles DELETE /api/gigs/:id
func (h *GigsHandler) DeleteGigHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	gigID := c.Param("id")

	deleted, err := h.service.DeleteGig(c.Request.Context(), actor.UserID, gigID)
	if err != nil {
		helpers.HandleServiceError(c, "DeleteGigHandler", err, map[string]any{
			"gig_id":  gigID,
			"user_id": actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toGigResponse(deleted), "gig deleted successfully")
	helpers.LogSuccess("DeleteGigHandler", "gig deleted successfully", map[string]any{"gig_id": gigID})
}
