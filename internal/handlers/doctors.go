package handlers

import (
	"net/http"
	"strconv"

	"hospital-records/internal/models"

	"github.com/gin-gonic/gin"
)

type CreateDoctorRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name" binding:"required"`
	Age             int      `json:"age" binding:"min=0"`
	Gender          string   `json:"gender"`
	Contact         string   `json:"contact"`
	Specialty       string   `json:"specialty"`
	BaseFee         *float64 `json:"base_fee"`          // defaults to 100
	ExtraFeePercent *float64 `json:"extra_fee_percent"` // defaults to 0
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := models.NewGeneralDoctor(models.NewPerson(req.ID, req.Name, req.Age, req.Gender, req.Contact))
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.BaseFee != nil {
		doctor.BaseFee = *req.BaseFee
	}
	if req.ExtraFeePercent != nil {
		doctor.ExtraFeePercent = *req.ExtraFeePercent
	}

	if err := h.svc.RegisterDoctor(c.Request.Context(), doctor); err != nil {
		respondError(c, "Failed to insert doctor", err)
		return
	}
	c.JSON(http.StatusCreated, doctor.ToMap())
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.svc.Doctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Doctor lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, doctor.ToMap())
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.Doctors(c.Request.Context())
	if err != nil {
		respondError(c, "Error fetching doctors", err)
		return
	}
	c.JSON(http.StatusOK, toMaps(doctors))
}

func (h *Handler) QuoteFee(c *gin.Context) {
	cost, err := strconv.ParseFloat(c.Query("treatment_cost"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid treatment_cost format"})
		return
	}

	fee, err := h.svc.QuoteFee(c.Request.Context(), c.Param("id"), cost)
	if err != nil {
		respondError(c, "Failed to calculate fee", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor_id": c.Param("id"), "treatment_cost": cost, "fee": fee})
}
