package controllers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/controllers"
	"github.com/Shahad2004/Medical-Backend/models"
	"github.com/Shahad2004/Medical-Backend/routes"
	"github.com/Shahad2004/Medical-Backend/security"
	"github.com/Shahad2004/Medical-Backend/services"
)

const (
	testSecret    = "test-secret"
	doctorID      = "a3a1c9a2-0a3f-4a5e-9d2e-9e2b3f6c1d10"
	patientID     = "b4b2d0b3-1b40-4b6f-8e3f-0f3c4a7d2e21"
	appointmentID = "c5c3e1c4-2c51-4c70-9f40-1a4d5b8e3f32"
)

// Fake services. Each records the call it received and returns whatever the
// test primed it with.

type fakeAuth struct {
	user *models.User
	err  error
}

func (f *fakeAuth) SignUp(email, password, fullName, role string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) LogIn(email, password string) (*models.User, error) {
	return f.user, f.err
}

type fakePatients struct {
	list    []models.Patient
	patient *models.Patient
	id      string
	err     error

	gotDoctorID  string
	gotPatientID string
}

func (f *fakePatients) ListAssigned(doctorID string) ([]models.Patient, error) {
	f.gotDoctorID = doctorID
	return f.list, f.err
}

func (f *fakePatients) GetByID(patientID, doctorID string) (*models.Patient, error) {
	f.gotPatientID, f.gotDoctorID = patientID, doctorID
	return f.patient, f.err
}

func (f *fakePatients) Create(doctorID string, in *services.PatientInput) (string, error) {
	f.gotDoctorID = doctorID
	return f.id, f.err
}

func (f *fakePatients) Update(patientID, doctorID string, in *services.PatientInput) (*models.Patient, error) {
	f.gotPatientID, f.gotDoctorID = patientID, doctorID
	return f.patient, f.err
}

func (f *fakePatients) Unassign(patientID, doctorID string) error {
	f.gotPatientID, f.gotDoctorID = patientID, doctorID
	return f.err
}

type fakeAppointments struct {
	list        []models.Appointment
	appointment *models.Appointment
	err         error

	called       string
	gotDoctorID  string
	gotPatientID string
	gotStatus    string
}

func (f *fakeAppointments) ListForDoctor(doctorID string) ([]models.Appointment, error) {
	f.called, f.gotDoctorID = "ListForDoctor", doctorID
	return f.list, f.err
}

func (f *fakeAppointments) ListForPatient(patientID string) ([]models.Appointment, error) {
	f.called, f.gotPatientID = "ListForPatient", patientID
	return f.list, f.err
}

func (f *fakeAppointments) ListForPatientByDoctor(patientID, doctorID string) ([]models.Appointment, error) {
	f.called, f.gotPatientID, f.gotDoctorID = "ListForPatientByDoctor", patientID, doctorID
	return f.list, f.err
}

func (f *fakeAppointments) Create(doctorID string, in *services.CreateAppointmentInput) (*models.Appointment, error) {
	f.called, f.gotDoctorID = "Create", doctorID
	return f.appointment, f.err
}

func (f *fakeAppointments) UpdateByDoctor(appointmentID, doctorID string, in *services.UpdateAppointmentInput) (*models.Appointment, error) {
	f.called, f.gotDoctorID = "UpdateByDoctor", doctorID
	return f.appointment, f.err
}

func (f *fakeAppointments) UpdateStatusByPatient(appointmentID, patientID, status string) (*models.Appointment, error) {
	f.called, f.gotPatientID, f.gotStatus = "UpdateStatusByPatient", patientID, status
	return f.appointment, f.err
}

func (f *fakeAppointments) Delete(appointmentID, doctorID, patientID string) error {
	f.called, f.gotDoctorID, f.gotPatientID = "Delete", doctorID, patientID
	return f.err
}

func newRouter(auth controllers.AuthAPI, patients controllers.PatientAPI, appointments controllers.AppointmentAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	routes.AuthRoutes(api.Group("/auth"), controllers.NewAuthController(auth, testSecret))
	routes.PatientRoutes(api.Group("/patients"), controllers.NewPatientController(patients), testSecret)
	routes.AppointmentRoutes(api.Group("/appointments"), controllers.NewAppointmentController(appointments), testSecret)
	return r
}

func doctorToken(t *testing.T) string {
	t.Helper()
	token, err := security.SignAccessToken(testSecret, doctorID, models.RoleDoctor)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func patientToken(t *testing.T) string {
	t.Helper()
	token, err := security.SignAccessToken(testSecret, patientID, models.RolePatient)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
