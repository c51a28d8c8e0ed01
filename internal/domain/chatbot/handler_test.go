package chatbot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medisecure/medisecure/internal/domain/medication"
)

func postChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/chatbot", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Chat(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestChatEndpoint(t *testing.T) {
	svc, patients := newTestService([]*medication.Medication{
		{ID: 1, Name: "Metformin", NameNormalized: "metformin", CoveredPlans: []string{"BASIC_PLAN"}},
	})
	registerPatient(patients, "BASIC_PLAN")
	h := NewHandler(svc)

	rec := postChat(t, h, `{"phone":"555-0100","message":"Is Metformin covered?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Reply != "Yes, Metformin is covered under your plan." {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}
}

func TestChatEndpoint_UnknownPhoneStill200(t *testing.T) {
	svc, _ := newTestService(nil)
	h := NewHandler(svc)

	rec := postChat(t, h, `{"phone":"555-9999","message":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Reply != "I could not find your record. Please register first." {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}
}
