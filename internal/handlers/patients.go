package handlers

import (
	"net/http"

	"hospital-records/internal/models"
	"hospital-records/internal/service"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type CreatePatientRequest struct {
	ID        string  `json:"id"` // generated when empty
	Name      string  `json:"name" binding:"required"`
	Age       int     `json:"age" binding:"min=0"`
	Gender    string  `json:"gender"`
	Contact   string  `json:"contact"`
	Insurance *string `json:"insurance"`
}

type AddRecordRequest struct {
	Record models.MedicalRecord `json:"record" binding:"required"`
}

type RecordVisitRequest struct {
	DoctorID      string   `json:"doctor_id" binding:"required"`
	Date          string   `json:"date"`
	Diagnosis     string   `json:"diagnosis"`
	Procedures    []string `json:"procedures"`
	TreatmentCost float64  `json:"treatment_cost"`
}

// --- Handler Functions ---

func (h *Handler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient := models.NewPatient(models.NewPerson(req.ID, req.Name, req.Age, req.Gender, req.Contact), req.Insurance)
	if err := h.svc.RegisterPatient(c.Request.Context(), patient); err != nil {
		respondError(c, "Failed to insert patient", err)
		return
	}
	c.JSON(http.StatusCreated, patient.ToMap())
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.svc.Patient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Patient lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, patient.ToMap())
}

func (h *Handler) ListPatients(c *gin.Context) {
	page, pageSize := pageParams(c)

	patients, err := h.svc.Patients(c.Request.Context())
	if err != nil {
		respondError(c, "Error fetching patients", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     len(patients),
		"page":      page,
		"page_size": pageSize,
		"patients":  toMaps(paginate(patients, page, pageSize)),
	})
}

func (h *Handler) AddRecord(c *gin.Context) {
	var req AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.svc.AddMedicalRecord(c.Request.Context(), c.Param("id"), req.Record)
	if err != nil {
		respondError(c, "Failed to add medical record", err)
		return
	}
	c.JSON(http.StatusOK, patient.ToMap())
}

func (h *Handler) RecordVisit(c *gin.Context) {
	var req RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, record, err := h.svc.RecordVisit(c.Request.Context(), c.Param("id"), req.DoctorID, service.VisitInput{
		Date:          req.Date,
		Diagnosis:     req.Diagnosis,
		Procedures:    req.Procedures,
		TreatmentCost: req.TreatmentCost,
	})
	if err != nil {
		respondError(c, "Failed to record visit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record, "patient": patient.ToMap()})
}

func (h *Handler) GetFeeSummary(c *gin.Context) {
	summary, err := h.svc.FeeSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to summarize fees", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
