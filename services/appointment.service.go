package services

import (
	"database/sql"
	"time"

	"github.com/Shahad2004/Medical-Backend/models"
)

// AppointmentService owns scheduling records. Creation is gated by the
// doctor-patient assignment; updates and deletes are gated by ownership of
// the appointment row itself.
type AppointmentService struct {
	db *sql.DB
}

func NewAppointmentService(db *sql.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

type CreateAppointmentInput struct {
	PatientID       string  `json:"patient_id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}

// UpdateAppointmentInput carries the doctor-path update fields. The patient
// path accepts status only.
type UpdateAppointmentInput struct {
	PatientID       string  `json:"patient_id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}

const appointmentColumns = `id, doctor_id, patient_id, appointment_date::text,
	appointment_time::text, status, notes, created_at, updated_at`

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.AppointmentTime,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validTime(s string) bool {
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// listQuery runs a listing query whose final column is a joined display
// name; setName stores it on the scanned appointment.
func (s *AppointmentService) listQuery(query string, setName func(*models.Appointment, string), args ...interface{}) ([]models.Appointment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, internal("failed to fetch appointments", err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		var name string
		err := rows.Scan(
			&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.AppointmentTime,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &name,
		)
		if err != nil {
			return nil, internal("failed to scan appointment", err)
		}
		setName(&a, name)
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, internal("failed to read appointments", err)
	}
	return appointments, nil
}

// ListForDoctor returns the doctor's appointments with the patient's name
// joined in, most recent first.
func (s *AppointmentService) ListForDoctor(doctorID string) ([]models.Appointment, error) {
	return s.listQuery(`
		SELECT a.id, a.doctor_id, a.patient_id, a.appointment_date::text,
		       a.appointment_time::text, a.status, a.notes, a.created_at, a.updated_at,
		       p.full_name AS patient_name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`, func(a *models.Appointment, name string) { a.PatientName = name }, doctorID)
}

// ListForPatient returns the patient's appointments with the doctor's name
// joined in, most recent first.
func (s *AppointmentService) ListForPatient(patientID string) ([]models.Appointment, error) {
	return s.listQuery(`
		SELECT a.id, a.doctor_id, a.patient_id, a.appointment_date::text,
		       a.appointment_time::text, a.status, a.notes, a.created_at, a.updated_at,
		       d.full_name AS doctor_name
		FROM appointments a
		JOIN users d ON a.doctor_id = d.id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`, func(a *models.Appointment, name string) { a.DoctorName = name }, patientID)
}

// ListForPatientByDoctor returns the appointments between one doctor and one
// of their assigned patients. An inactive or missing assignment is Forbidden.
func (s *AppointmentService) ListForPatientByDoctor(patientID, doctorID string) ([]models.Appointment, error) {
	assigned, err := activeAssignmentExists(s.db, doctorID, patientID)
	if err != nil {
		return nil, internal("failed to check assignment", err)
	}
	if !assigned {
		return nil, errf(KindForbidden, "not authorized to view appointments for this patient")
	}

	rows, err := s.db.Query(`
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1 AND doctor_id = $2
		ORDER BY appointment_date DESC, appointment_time DESC
	`, patientID, doctorID)
	if err != nil {
		return nil, internal("failed to fetch appointments", err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, internal("failed to scan appointment", err)
		}
		appointments = append(appointments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, internal("failed to read appointments", err)
	}
	return appointments, nil
}

// Create inserts an appointment for one of the doctor's assigned patients.
// The assignment check and the insert share a transaction, so a concurrent
// unassignment cannot leave an appointment behind for a revoked pair.
func (s *AppointmentService) Create(doctorID string, in *CreateAppointmentInput) (*models.Appointment, error) {
	if doctorID == "" || in.PatientID == "" || in.AppointmentDate == "" || in.AppointmentTime == "" {
		return nil, errf(KindValidation, "missing required appointment fields")
	}
	if !validDate(in.AppointmentDate) {
		return nil, errf(KindValidation, "appointment_date must be YYYY-MM-DD")
	}
	if !validTime(in.AppointmentTime) {
		return nil, errf(KindValidation, "appointment_time must be HH:MM or HH:MM:SS")
	}
	status := in.Status
	if status == "" {
		status = models.StatusScheduled
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	assigned, err := activeAssignmentExists(tx, doctorID, in.PatientID)
	if err != nil {
		return nil, internal("failed to check assignment", err)
	}
	if !assigned {
		return nil, errf(KindForbidden, "not authorized to add appointments for this patient")
	}

	a, err := scanAppointment(tx.QueryRow(`
		INSERT INTO appointments (doctor_id, patient_id, appointment_date, appointment_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+appointmentColumns+`
	`, doctorID, in.PatientID, in.AppointmentDate, in.AppointmentTime, status, in.Notes))
	if err != nil {
		return nil, internal("failed to create appointment", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, internal("failed to commit appointment creation", err)
	}
	return a, nil
}

// appointmentOwned reports whether the appointment row matches the given
// owner columns inside the transaction.
func appointmentOwned(tx *sql.Tx, query string, args ...interface{}) (bool, error) {
	var exists bool
	err := tx.QueryRow(query, args...).Scan(&exists)
	return exists, err
}

// UpdateByDoctor overwrites date, time, status and notes on an appointment
// the doctor owns for the given patient.
func (s *AppointmentService) UpdateByDoctor(appointmentID, doctorID string, in *UpdateAppointmentInput) (*models.Appointment, error) {
	if in.PatientID == "" || in.AppointmentDate == "" || in.AppointmentTime == "" {
		return nil, errf(KindValidation, "missing required appointment fields")
	}
	if !validDate(in.AppointmentDate) {
		return nil, errf(KindValidation, "appointment_date must be YYYY-MM-DD")
	}
	if !validTime(in.AppointmentTime) {
		return nil, errf(KindValidation, "appointment_time must be HH:MM or HH:MM:SS")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	owned, err := appointmentOwned(tx, `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE id = $1 AND doctor_id = $2 AND patient_id = $3
		)
	`, appointmentID, doctorID, in.PatientID)
	if err != nil {
		return nil, internal("failed to check appointment ownership", err)
	}
	if !owned {
		return nil, errf(KindForbidden, "not authorized to update this appointment")
	}

	a, err := scanAppointment(tx.QueryRow(`
		UPDATE appointments
		SET appointment_date = $1,
		    appointment_time = $2,
		    status = $3,
		    notes = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING `+appointmentColumns+`
	`, in.AppointmentDate, in.AppointmentTime, in.Status, in.Notes, appointmentID))
	if err == sql.ErrNoRows {
		return nil, errf(KindNotFound, "appointment not found")
	}
	if err != nil {
		return nil, internal("failed to update appointment", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, internal("failed to commit appointment update", err)
	}
	return a, nil
}

// UpdateStatusByPatient lets a patient change the status of their own
// appointment. Date, time and notes are out of reach on this path.
func (s *AppointmentService) UpdateStatusByPatient(appointmentID, patientID, status string) (*models.Appointment, error) {
	if status == "" {
		return nil, errf(KindValidation, "status is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	owned, err := appointmentOwned(tx, `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE id = $1 AND patient_id = $2
		)
	`, appointmentID, patientID)
	if err != nil {
		return nil, internal("failed to check appointment ownership", err)
	}
	if !owned {
		return nil, errf(KindForbidden, "not authorized to update this appointment")
	}

	a, err := scanAppointment(tx.QueryRow(`
		UPDATE appointments
		SET status = $1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING `+appointmentColumns+`
	`, status, appointmentID))
	if err == sql.ErrNoRows {
		return nil, errf(KindNotFound, "appointment not found")
	}
	if err != nil {
		return nil, internal("failed to update appointment", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, internal("failed to commit appointment update", err)
	}
	return a, nil
}

// Delete physically removes an appointment owned by exactly the given
// doctor-patient pair.
func (s *AppointmentService) Delete(appointmentID, doctorID, patientID string) error {
	if doctorID == "" || patientID == "" {
		return errf(KindValidation, "doctor and patient are required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	owned, err := appointmentOwned(tx, `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE id = $1 AND doctor_id = $2 AND patient_id = $3
		)
	`, appointmentID, doctorID, patientID)
	if err != nil {
		return internal("failed to check appointment ownership", err)
	}
	if !owned {
		return errf(KindForbidden, "not authorized to delete this appointment")
	}

	var deletedID string
	err = tx.QueryRow(`DELETE FROM appointments WHERE id = $1 RETURNING id`, appointmentID).Scan(&deletedID)
	if err == sql.ErrNoRows {
		return errf(KindNotFound, "appointment not found")
	}
	if err != nil {
		return internal("failed to delete appointment", err)
	}

	if err := tx.Commit(); err != nil {
		return internal("failed to commit appointment deletion", err)
	}
	return nil
}
