// internal/app/features/mentorship/handler_test.go
package mentorship_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/careerhub/internal/app/features/mentorship"
	"github.com/dalemusser/careerhub/internal/domain/models"
	"github.com/dalemusser/careerhub/internal/testutil"
)

func newHandler(t *testing.T) (*mentorship.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return mentorship.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func createRequest(t *testing.T, h *mentorship.Handler, student models.User, mentorID string) string {
	t.Helper()

	body := `{"mentorId":"` + mentorID + `","topic":"Career advice","message":"hello"}`
	req := httptest.NewRequest("POST", "/mentorship/requests", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AsUser(student))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse create response: %v", err)
	}
	return resp.ID
}

func decide(h *mentorship.Handler, u testutil.TestUser, reqID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("PUT", "/mentorship/requests/"+reqID, strings.NewReader(body))
	req = testutil.WithUser(req, u)
	req = testutil.WithChiURLParam(req, "id", reqID)
	rec := httptest.NewRecorder()
	h.HandleDecide(rec, req)
	return rec
}

func TestHandleCreateAndDecide(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")
	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")

	reqID := createRequest(t, h, student, mentor.ID.Hex())

	rec := decide(h, testutil.AsUser(mentor), reqID, `{"status":"accepted"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("decide status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	// The student's list shows the accepted request.
	listReq := httptest.NewRequest("GET", "/mentorship/requests", nil)
	listReq = testutil.WithUser(listReq, testutil.AsUser(student))
	listRec := httptest.NewRecorder()
	h.HandleList(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", listRec.Code)
	}
	var listResp struct {
		Requests []struct {
			MentorName string `json:"mentorName"`
			Status     string `json:"status"`
		} `json:"requests"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if len(listResp.Requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(listResp.Requests))
	}
	if listResp.Requests[0].Status != models.ApplicationAccepted {
		t.Errorf("status = %q, want accepted", listResp.Requests[0].Status)
	}
	if listResp.Requests[0].MentorName != "Dana Mentor" {
		t.Errorf("mentorName = %q, want mentor snapshot", listResp.Requests[0].MentorName)
	}
}

func TestHandleDecideOwnership(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")
	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")
	reqID := createRequest(t, h, student, mentor.ID.Hex())

	rec := decide(h, testutil.AlumniUser(), reqID, `{"status":"accepted"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-addressed mentor status = %d, want 403", rec.Code)
	}
}

func TestHandleDecideAlreadyDecided(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")
	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")
	reqID := createRequest(t, h, student, mentor.ID.Hex())

	if rec := decide(h, testutil.AsUser(mentor), reqID, `{"status":"declined"}`); rec.Code != http.StatusOK {
		t.Fatalf("first decide status = %d, want 200", rec.Code)
	}

	rec := decide(h, testutil.AsUser(mentor), reqID, `{"status":"accepted"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second decide status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Error != "request has already been decided" {
		t.Errorf("error = %q, want already-decided message", resp.Error)
	}
}

func TestHandleDecideInvalidStatus(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")
	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")
	reqID := createRequest(t, h, student, mentor.ID.Hex())

	if rec := decide(h, testutil.AsUser(mentor), reqID, `{"status":"maybe"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status = %d, want 400", rec.Code)
	}
}

func TestHandleCreateDuplicatePending(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")
	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")
	createRequest(t, h, student, mentor.ID.Hex())

	body := `{"mentorId":"` + mentor.ID.Hex() + `","topic":"Second try"}`
	req := httptest.NewRequest("POST", "/mentorship/requests", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AsUser(student))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Error != "You already have a pending request with this mentor" {
		t.Errorf("error = %q, want pending-request message", resp.Error)
	}
}

func TestHandleCreateAfterDecline(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")
	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")
	reqID := createRequest(t, h, student, mentor.ID.Hex())

	if rec := decide(h, testutil.AsUser(mentor), reqID, `{"status":"declined"}`); rec.Code != http.StatusOK {
		t.Fatalf("decline status = %d, want 200", rec.Code)
	}

	// A decline does not block a fresh request.
	createRequest(t, h, student, mentor.ID.Hex())
}

func TestHandleCreateRequiresStudent(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@test.edu")

	body := `{"mentorId":"` + mentor.ID.Hex() + `","topic":"Career advice"}`
	req := httptest.NewRequest("POST", "/mentorship/requests", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AlumniUser())
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestHandleCreateRejectsStudentMentor(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Sam Student", "sam@test.edu")
	peer := fixtures.CreateStudent(ctx, "Pat Student", "pat@test.edu")

	body := `{"mentorId":"` + peer.ID.Hex() + `","topic":"Career advice"}`
	req := httptest.NewRequest("POST", "/mentorship/requests", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AsUser(student))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
