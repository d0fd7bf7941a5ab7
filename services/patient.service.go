package services

import (
	"database/sql"

	"github.com/Shahad2004/Medical-Backend/models"
)

// PatientService owns patient records and the doctor-patient assignments
// that authorize access to them. Every read or write is gated by an active
// assignment for the calling doctor.
type PatientService struct {
	db *sql.DB
}

func NewPatientService(db *sql.DB) *PatientService {
	return &PatientService{db: db}
}

// PatientInput carries the mutable patient fields for create and update.
// Update overwrites all of them.
type PatientInput struct {
	FileNumber        *string `json:"file_number"`
	FullName          string  `json:"full_name" binding:"required"`
	DateOfBirth       *string `json:"date_of_birth"`
	Gender            *string `json:"gender"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	BloodType         *string `json:"blood_type"`
	Allergies         *string `json:"allergies"`
	BloodPressure     *string `json:"blood_pressure"`
	BodyTemperature   *string `json:"body_temperature"`
	HeartRate         *string `json:"heart_rate"`
	Weight            *string `json:"weight"`
	ChronicConditions *string `json:"chronic_conditions"`
	CurrentDiagnoses  *string `json:"current_diagnoses"`
	PreviousDiagnoses *string `json:"previous_diagnoses"`
	Medication        *string `json:"medication"`
	MedicationDoses   *string `json:"medication_doses"`
	MedicationNotes   *string `json:"medication_notes"`
}

const patientColumns = `id, file_number, full_name, date_of_birth::text, gender, phone, email,
	address, blood_type, allergies, blood_pressure, body_temperature, heart_rate, weight,
	chronic_conditions, current_diagnoses, previous_diagnoses, medication, medication_doses,
	medication_notes, created_at, updated_at`

// Same column list qualified for joins against the assignments table.
const patientColumnsQualified = `p.id, p.file_number, p.full_name, p.date_of_birth::text, p.gender,
	p.phone, p.email, p.address, p.blood_type, p.allergies, p.blood_pressure, p.body_temperature,
	p.heart_rate, p.weight, p.chronic_conditions, p.current_diagnoses, p.previous_diagnoses,
	p.medication, p.medication_doses, p.medication_notes, p.created_at, p.updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*models.Patient, error) {
	var p models.Patient
	err := row.Scan(
		&p.ID, &p.FileNumber, &p.FullName, &p.DateOfBirth, &p.Gender, &p.Phone, &p.Email,
		&p.Address, &p.BloodType, &p.Allergies, &p.BloodPressure, &p.BodyTemperature,
		&p.HeartRate, &p.Weight, &p.ChronicConditions, &p.CurrentDiagnoses,
		&p.PreviousDiagnoses, &p.Medication, &p.MedicationDoses, &p.MedicationNotes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// activeAssignmentExists runs the authorization-check query shared by every
// gated operation. It works on the pool or on a transaction handle.
func activeAssignmentExists(q interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}, doctorID, patientID string) (bool, error) {
	var exists bool
	err := q.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM doctor_patient_assignments
			WHERE doctor_id = $1 AND patient_id = $2 AND status = $3
		)
	`, doctorID, patientID, models.AssignmentActive).Scan(&exists)
	return exists, err
}

// ListAssigned returns every patient with an active assignment to the doctor,
// newest record first.
func (s *PatientService) ListAssigned(doctorID string) ([]models.Patient, error) {
	rows, err := s.db.Query(`
		SELECT `+patientColumnsQualified+`
		FROM patients p
		JOIN doctor_patient_assignments dpa ON p.id = dpa.patient_id
		WHERE dpa.doctor_id = $1 AND dpa.status = $2
		ORDER BY p.created_at DESC
	`, doctorID, models.AssignmentActive)
	if err != nil {
		return nil, internal("failed to fetch patients", err)
	}
	defer rows.Close()

	patients := []models.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, internal("failed to scan patient", err)
		}
		patients = append(patients, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, internal("failed to read patients", err)
	}
	return patients, nil
}

// GetByID fetches one patient. The assignment check runs before the patient
// lookup, so an unauthorized doctor and a missing patient both get NotFound
// and the response never reveals whether the record exists.
func (s *PatientService) GetByID(patientID, doctorID string) (*models.Patient, error) {
	assigned, err := activeAssignmentExists(s.db, doctorID, patientID)
	if err != nil {
		return nil, internal("failed to check assignment", err)
	}
	if !assigned {
		return nil, errf(KindNotFound, "patient not found or not assigned to this doctor")
	}

	p, err := scanPatient(s.db.QueryRow(`SELECT `+patientColumns+` FROM patients WHERE id = $1`, patientID))
	if err == sql.ErrNoRows {
		return nil, errf(KindNotFound, "patient not found")
	}
	if err != nil {
		return nil, internal("failed to fetch patient", err)
	}
	return p, nil
}

// Create inserts the patient and its active assignment to the creating
// doctor in one transaction. If the assignment insert fails the patient row
// is rolled back with it.
func (s *PatientService) Create(doctorID string, in *PatientInput) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var patientID string
	err = tx.QueryRow(`
		INSERT INTO patients (
			file_number, full_name, date_of_birth, gender, phone, email,
			address, blood_type, allergies, blood_pressure, body_temperature,
			heart_rate, weight, chronic_conditions, current_diagnoses,
			previous_diagnoses, medication, medication_doses, medication_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`, in.FileNumber, in.FullName, in.DateOfBirth, in.Gender, in.Phone, in.Email,
		in.Address, in.BloodType, in.Allergies, in.BloodPressure, in.BodyTemperature,
		in.HeartRate, in.Weight, in.ChronicConditions, in.CurrentDiagnoses,
		in.PreviousDiagnoses, in.Medication, in.MedicationDoses, in.MedicationNotes,
	).Scan(&patientID)
	if err != nil {
		return "", internal("failed to create patient", err)
	}

	_, err = tx.Exec(`
		INSERT INTO doctor_patient_assignments (doctor_id, patient_id, status)
		VALUES ($1, $2, $3)
	`, doctorID, patientID, models.AssignmentActive)
	if err != nil {
		return "", internal("failed to assign patient to doctor", err)
	}

	if err := tx.Commit(); err != nil {
		return "", internal("failed to commit patient creation", err)
	}
	return patientID, nil
}

// Update overwrites the patient's contact and clinical fields. The doctor
// must hold an active assignment; the check and the update run in one
// transaction so the authorization cannot go stale between them.
func (s *PatientService) Update(patientID, doctorID string, in *PatientInput) (*models.Patient, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	assigned, err := activeAssignmentExists(tx, doctorID, patientID)
	if err != nil {
		return nil, internal("failed to check assignment", err)
	}
	if !assigned {
		return nil, errf(KindForbidden, "not authorized to update this patient")
	}

	p, err := scanPatient(tx.QueryRow(`
		UPDATE patients SET
			file_number = $1,
			full_name = $2,
			date_of_birth = $3,
			gender = $4,
			phone = $5,
			email = $6,
			address = $7,
			blood_type = $8,
			allergies = $9,
			blood_pressure = $10,
			body_temperature = $11,
			heart_rate = $12,
			weight = $13,
			chronic_conditions = $14,
			current_diagnoses = $15,
			previous_diagnoses = $16,
			medication = $17,
			medication_doses = $18,
			medication_notes = $19,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $20
		RETURNING `+patientColumns+`
	`, in.FileNumber, in.FullName, in.DateOfBirth, in.Gender, in.Phone, in.Email,
		in.Address, in.BloodType, in.Allergies, in.BloodPressure, in.BodyTemperature,
		in.HeartRate, in.Weight, in.ChronicConditions, in.CurrentDiagnoses,
		in.PreviousDiagnoses, in.Medication, in.MedicationDoses, in.MedicationNotes,
		patientID,
	))
	if err == sql.ErrNoRows {
		return nil, errf(KindNotFound, "patient not found")
	}
	if err != nil {
		return nil, internal("failed to update patient", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, internal("failed to commit patient update", err)
	}
	return p, nil
}

// Unassign flips the doctor's active assignment to inactive. The patient row
// is left untouched.
func (s *PatientService) Unassign(patientID, doctorID string) error {
	res, err := s.db.Exec(`
		UPDATE doctor_patient_assignments
		SET status = $1
		WHERE doctor_id = $2 AND patient_id = $3 AND status = $4
	`, models.AssignmentInactive, doctorID, patientID, models.AssignmentActive)
	if err != nil {
		return internal("failed to unassign patient", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return internal("failed to check unassign result", err)
	}
	if affected == 0 {
		return errf(KindNotFound, "patient not found or not assigned to this doctor")
	}
	return nil
}
