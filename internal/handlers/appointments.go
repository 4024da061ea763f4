package handlers

import (
	"net/http"

	"hospital-records/internal/models"
	"hospital-records/internal/repository"

	"github.com/gin-gonic/gin"
)

type CreateAppointmentRequest struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id" binding:"required"`
	DoctorID  string `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // free text, not parsed
	Reason    string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type AssignInvoiceRequest struct {
	InvoiceID string `json:"invoice_id"`
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt := models.NewAppointment(req.ID, req.PatientID, req.DoctorID, req.Date, req.Reason)
	if err := h.svc.BookAppointment(c.Request.Context(), appt); err != nil {
		respondError(c, "Failed to book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appt.ToMap())
}

func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.svc.Appointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Appointment lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, appt.ToMap())
}

func (h *Handler) ListAppointments(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := repository.AppointmentFilter{
		PatientID: c.Query("patient_id"),
		DoctorID:  c.Query("doctor_id"),
		Status:    c.Query("status"),
	}

	appts, err := h.svc.Appointments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Error fetching appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        len(appts),
		"page":         page,
		"page_size":    pageSize,
		"appointments": toMaps(paginate(appts, page, pageSize)),
	})
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.svc.UpdateAppointmentStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, "Failed to update appointment status", err)
		return
	}
	c.JSON(http.StatusOK, appt.ToMap())
}

func (h *Handler) AddAppointmentNote(c *gin.Context) {
	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.svc.AddAppointmentNote(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		respondError(c, "Failed to add note", err)
		return
	}
	c.JSON(http.StatusOK, appt.ToMap())
}

func (h *Handler) AssignInvoice(c *gin.Context) {
	var req AssignInvoiceRequest
	// an empty body asks for a generated invoice id
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	appt, err := h.svc.AssignInvoice(c.Request.Context(), c.Param("id"), req.InvoiceID)
	if err != nil {
		respondError(c, "Failed to assign invoice", err)
		return
	}
	c.JSON(http.StatusOK, appt.ToMap())
}
