package models

import (
	"time"
)

// Assignment statuses. An assignment is never deleted, only flipped inactive.
const (
	AssignmentActive   = "active"
	AssignmentInactive = "inactive"
)

// Patient is the medical record. The patient row itself is never deleted;
// removing a patient from a doctor only deactivates the assignment.
type Patient struct {
	ID                 string    `json:"id" db:"id"`
	FileNumber         *string   `json:"file_number" db:"file_number"`
	FullName           string    `json:"full_name" db:"full_name"`
	DateOfBirth        *string   `json:"date_of_birth" db:"date_of_birth"`
	Gender             *string   `json:"gender" db:"gender"`
	Phone              *string   `json:"phone" db:"phone"`
	Email              *string   `json:"email" db:"email"`
	Address            *string   `json:"address" db:"address"`
	BloodType          *string   `json:"blood_type" db:"blood_type"`
	Allergies          *string   `json:"allergies" db:"allergies"`
	BloodPressure      *string   `json:"blood_pressure" db:"blood_pressure"`
	BodyTemperature    *string   `json:"body_temperature" db:"body_temperature"`
	HeartRate          *string   `json:"heart_rate" db:"heart_rate"`
	Weight             *string   `json:"weight" db:"weight"`
	ChronicConditions  *string   `json:"chronic_conditions" db:"chronic_conditions"`
	CurrentDiagnoses   *string   `json:"current_diagnoses" db:"current_diagnoses"`
	PreviousDiagnoses  *string   `json:"previous_diagnoses" db:"previous_diagnoses"`
	Medication         *string   `json:"medication" db:"medication"`
	MedicationDoses    *string   `json:"medication_doses" db:"medication_doses"`
	MedicationNotes    *string   `json:"medication_notes" db:"medication_notes"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DoctorPatientAssignment is the sole authorization primitive: a doctor may
// act on a patient's data only while an active assignment row links them.
type DoctorPatientAssignment struct {
	ID         string    `json:"id" db:"id"`
	DoctorID   string    `json:"doctor_id" db:"doctor_id"`
	PatientID  string    `json:"patient_id" db:"patient_id"`
	Status     string    `json:"status" db:"status"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}
