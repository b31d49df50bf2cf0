package startups

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pitchboard/pkg/response"
)

type StartupHandler struct {
	service StartupService
}

func NewStartupHandler(service StartupService) *StartupHandler {
	return &StartupHandler{service: service}
}

func (h *StartupHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/startups", h.listStartups)
	router.GET("/startups/:id", h.getStartupByID)
}

// @Summary      List all startups
// @Description  Retrieves every startup, newest first, with its author
// @Tags         startups
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=StartupList} "Startups retrieved successfully"
// @Failure      500  {object}  response.APIResponse "Content store failure"
// @Router       /startups [get]
func (h *StartupHandler) listStartups(c *gin.Context) {
	items, err := h.service.ListStartups(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	data := StartupList{Items: items, Total: int64(len(items))}
	response.SendAPIResponse(c, http.StatusOK, true, "startups listed", data)
}

// @Summary      Get startup by ID
// @Description  Retrieves a single startup, including its pitch
// @Tags         startups
// @Produce      json
// @Param        id   path      string  true  "Startup document ID"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup retrieved successfully"
// @Failure      400  {object}  response.APIResponse "Invalid startup ID"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Failure      500  {object}  response.APIResponse "Content store failure"
// @Router       /startups/{id} [get]
func (h *StartupHandler) getStartupByID(c *gin.Context) {
	startup, err := h.service.GetStartupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrInvalidStartupID) {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
			return
		}
		_ = c.Error(err)
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}
	if startup == nil {
		response.SendAPIResponse(c, http.StatusNotFound, false, "startup not found", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup fetched", startup)
}
