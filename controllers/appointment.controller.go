package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shahad2004/Medical-Backend/models"
	"github.com/Shahad2004/Medical-Backend/security"
	"github.com/Shahad2004/Medical-Backend/services"
)

// AppointmentAPI is the appointment service surface the controller needs.
type AppointmentAPI interface {
	ListForDoctor(doctorID string) ([]models.Appointment, error)
	ListForPatient(patientID string) ([]models.Appointment, error)
	ListForPatientByDoctor(patientID, doctorID string) ([]models.Appointment, error)
	Create(doctorID string, in *services.CreateAppointmentInput) (*models.Appointment, error)
	UpdateByDoctor(appointmentID, doctorID string, in *services.UpdateAppointmentInput) (*models.Appointment, error)
	UpdateStatusByPatient(appointmentID, patientID, status string) (*models.Appointment, error)
	Delete(appointmentID, doctorID, patientID string) error
}

type AppointmentController struct {
	svc AppointmentAPI
}

func NewAppointmentController(svc AppointmentAPI) *AppointmentController {
	return &AppointmentController{svc: svc}
}

// List returns the caller's own appointments: a doctor sees the ones they
// hold, a patient sees the ones booked for them.
func (ctrl *AppointmentController) List(c *gin.Context) {
	userID := c.GetString(security.ContextUserID)

	var (
		appointments []models.Appointment
		err          error
	)
	if c.GetString(security.ContextRole) == models.RoleDoctor {
		appointments, err = ctrl.svc.ListForDoctor(userID)
	} else {
		appointments, err = ctrl.svc.ListForPatient(userID)
	}
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// ListForPatient returns the appointments the calling doctor holds with one
// of their assigned patients.
func (ctrl *AppointmentController) ListForPatient(c *gin.Context) {
	patientID, ok := pathID(c, "patientId")
	if !ok {
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	appointments, err := ctrl.svc.ListForPatientByDoctor(patientID, doctorID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (ctrl *AppointmentController) Create(c *gin.Context) {
	var input services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	appointment, err := ctrl.svc.Create(doctorID, &input)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

type PatientStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// Update has two authorization paths keyed off the caller's role: doctors
// overwrite date, time, status and notes on their own appointment for the
// given patient; patients may change the status of their own appointment
// and nothing else.
func (ctrl *AppointmentController) Update(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.GetString(security.ContextUserID)

	if c.GetString(security.ContextRole) == models.RolePatient {
		var input PatientStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
			return
		}
		appointment, err := ctrl.svc.UpdateStatusByPatient(appointmentID, userID, input.Status)
		if err != nil {
			sendServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, appointment)
		return
	}

	var input services.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", err.Error())
		return
	}
	appointment, err := ctrl.svc.UpdateByDoctor(appointmentID, userID, &input)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Delete removes an appointment the calling doctor holds with the patient
// named in the query string.
func (ctrl *AppointmentController) Delete(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	doctorID := c.GetString(security.ContextUserID)

	patientID := c.Query("patientId")
	if patientID == "" {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed",
			"patientId is required")
		return
	}
	if _, err := uuid.Parse(patientID); err != nil {
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed",
			"patientId must be a valid id")
		return
	}

	if err := ctrl.svc.Delete(appointmentID, doctorID, patientID); err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
