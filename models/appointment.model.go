package models

import (
	"time"
)

// StatusScheduled is the default appointment status. The remaining status
// values are free text by design; the service stores whatever the client
// sends.
const StatusScheduled = "scheduled"

type Appointment struct {
	ID              string    `json:"id" db:"id"`
	DoctorID        string    `json:"doctor_id" db:"doctor_id"`
	PatientID       string    `json:"patient_id" db:"patient_id"`
	AppointmentDate string    `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string    `json:"appointment_time" db:"appointment_time"`
	Status          string    `json:"status" db:"status"`
	Notes           *string   `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Joined display fields, populated by the listing queries only.
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
	DoctorName  string `json:"doctor_name,omitempty" db:"doctor_name"`
}
