package handlers

import (
	"net/http"

	"hospital-records/internal/models"

	"github.com/gin-gonic/gin"
)

type CreateNurseRequest struct {
	ID      string  `json:"id"`
	Name    string  `json:"name" binding:"required"`
	Age     int     `json:"age" binding:"min=0"`
	Gender  string  `json:"gender"`
	Contact string  `json:"contact"`
	Ward    *string `json:"ward"`
}

func (h *Handler) CreateNurse(c *gin.Context) {
	var req CreateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nurse := models.NewNurse(models.NewPerson(req.ID, req.Name, req.Age, req.Gender, req.Contact), req.Ward)
	if err := h.svc.RegisterNurse(c.Request.Context(), nurse); err != nil {
		respondError(c, "Failed to insert nurse", err)
		return
	}
	c.JSON(http.StatusCreated, nurse.ToMap())
}

func (h *Handler) GetNurse(c *gin.Context) {
	nurse, err := h.svc.Nurse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Nurse lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, nurse.ToMap())
}

func (h *Handler) ListNurses(c *gin.Context) {
	nurses, err := h.svc.Nurses(c.Request.Context())
	if err != nil {
		respondError(c, "Error fetching nurses", err)
		return
	}
	c.JSON(http.StatusOK, toMaps(nurses))
}
