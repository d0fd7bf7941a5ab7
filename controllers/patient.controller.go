package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shahad2004/Medical-Backend/models"
	"github.com/Shahad2004/Medical-Backend/security"
	"github.com/Shahad2004/Medical-Backend/services"
)

// PatientAPI is the patient-records service surface the controller needs.
type PatientAPI interface {
	ListAssigned(doctorID string) ([]models.Patient, error)
	GetByID(patientID, doctorID string) (*models.Patient, error)
	Create(doctorID string, in *services.PatientInput) (string, error)
	Update(patientID, doctorID string, in *services.PatientInput) (*models.Patient, error)
	Unassign(patientID, doctorID string) error
}

type PatientController struct {
	svc PatientAPI
}

func NewPatientController(svc PatientAPI) *PatientController {
	return &PatientController{svc: svc}
}

// pathID validates the :id path parameter as a UUID. Malformed ids answer
// 400 before any query runs.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed",
			name+" must be a valid id")
		return "", false
	}
	return id, true
}

// List returns the patients assigned to the calling doctor, newest first.
func (ctrl *PatientController) List(c *gin.Context) {
	doctorID := c.GetString(security.ContextUserID)

	patients, err := ctrl.svc.ListAssigned(doctorID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (ctrl *PatientController) Get(c *gin.Context) {
	patientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	patient, err := ctrl.svc.GetByID(patientID, doctorID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (ctrl *PatientController) Create(c *gin.Context) {
	var input services.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	patientID, err := ctrl.svc.Create(doctorID, &input)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      patientID,
		"message": "Patient added and assigned to doctor successfully",
	})
}

func (ctrl *PatientController) Update(c *gin.Context) {
	patientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input services.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	patient, err := ctrl.svc.Update(patientID, doctorID, &input)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// Delete removes the patient from the calling doctor by deactivating the
// assignment. The patient record itself survives.
func (ctrl *PatientController) Delete(c *gin.Context) {
	patientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	if err := ctrl.svc.Unassign(patientID, doctorID); err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient removed from doctor successfully"})
}
