package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	testDoctorID  = "a3a1c9a2-0a3f-4a5e-9d2e-9e2b3f6c1d10"
	testPatientID = "b4b2d0b3-1b40-4b6f-8e3f-0f3c4a7d2e21"
)

func patientRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "file_number", "full_name", "date_of_birth", "gender", "phone", "email",
		"address", "blood_type", "allergies", "blood_pressure", "body_temperature",
		"heart_rate", "weight", "chronic_conditions", "current_diagnoses",
		"previous_diagnoses", "medication", "medication_doses", "medication_notes",
		"created_at", "updated_at",
	}).AddRow(
		testPatientID, "F-100", "Jane Roe", "1990-06-01", "female", "555-0100", "jane@x.com",
		nil, "O+", "penicillin", "120/80", "36.6",
		"72", "60kg", nil, "hypertension",
		nil, "lisinopril", "10mg", nil,
		now, now,
	)
}

func assignmentExistsQuery(mock sqlmock.Sqlmock, exists bool) {
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(testDoctorID, testPatientID, "active").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func samplePatientInput() *PatientInput {
	return &PatientInput{FullName: "Jane Roe"}
}

func TestPatientCreateIsTransactional(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO patients").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testPatientID))
	mock.ExpectExec("INSERT INTO doctor_patient_assignments").
		WithArgs(testDoctorID, testPatientID, "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := svc.Create(testDoctorID, samplePatientInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != testPatientID {
		t.Errorf("expected id %s, got %s", testPatientID, id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPatientCreateRollsBackWhenAssignmentFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO patients").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testPatientID))
	mock.ExpectExec("INSERT INTO doctor_patient_assignments").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := svc.Create(testDoctorID, samplePatientInput())
	if KindOf(err) != KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPatientGetUnassignedIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	// The assignment check runs first; the patient row is never queried, so
	// the response cannot reveal whether the record exists.
	assignmentExistsQuery(mock, false)

	_, err := svc.GetByID(testPatientID, testDoctorID)
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPatientGetReturnsRecord(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	assignmentExistsQuery(mock, true)
	mock.ExpectQuery("SELECT (.+) FROM patients WHERE id").
		WithArgs(testPatientID).
		WillReturnRows(patientRow())

	p, err := svc.GetByID(testPatientID, testDoctorID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.ID != testPatientID || p.FullName != "Jane Roe" {
		t.Errorf("unexpected patient: %+v", p)
	}
}

func TestPatientUpdateWithoutAssignmentIsForbidden(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectBegin()
	assignmentExistsQuery(mock, false)
	mock.ExpectRollback()

	_, err := svc.Update(testPatientID, testDoctorID, samplePatientInput())
	if KindOf(err) != KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPatientUpdateVanishedRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectBegin()
	assignmentExistsQuery(mock, true)
	mock.ExpectQuery("UPDATE patients").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Update(testPatientID, testDoctorID, samplePatientInput())
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPatientUpdateCommits(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectBegin()
	assignmentExistsQuery(mock, true)
	mock.ExpectQuery("UPDATE patients").
		WillReturnRows(patientRow())
	mock.ExpectCommit()

	p, err := svc.Update(testPatientID, testDoctorID, samplePatientInput())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.ID != testPatientID {
		t.Errorf("unexpected patient: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPatientUnassignFlipsStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectExec("UPDATE doctor_patient_assignments").
		WithArgs("inactive", testDoctorID, testPatientID, "active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Unassign(testPatientID, testDoctorID); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
}

func TestPatientUnassignWithoutActiveAssignmentIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectExec("UPDATE doctor_patient_assignments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Unassign(testPatientID, testDoctorID)
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPatientListAssigned(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPatientService(db)

	mock.ExpectQuery("FROM patients p").
		WithArgs(testDoctorID, "active").
		WillReturnRows(patientRow())

	patients, err := svc.ListAssigned(testDoctorID)
	if err != nil {
		t.Fatalf("ListAssigned: %v", err)
	}
	if len(patients) != 1 || patients[0].FullName != "Jane Roe" {
		t.Errorf("unexpected patients: %+v", patients)
	}
}
