package letter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, stubPatientRepo) {
	svc, _, patients := newTestService()
	return NewHandler(svc), patients
}

func TestGenerateLetterEndpoint(t *testing.T) {
	h, patients := newTestHandler()
	registerJane(patients)

	e := echo.New()
	body := `{"phone":"555-0100","letter_type":"coverage_summary"}`
	req := httptest.NewRequest(http.MethodPost, "/letters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GenerateLetter(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got Letter
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.LetterType != TypeCoverageSummary {
		t.Errorf("expected coverage_summary, got %s", got.LetterType)
	}
	if strings.Contains(strings.ToLower(got.Content), "jane roe") {
		t.Errorf("response content must be redacted: %q", got.Content)
	}
}

func TestGenerateLetterEndpoint_UnknownPatient(t *testing.T) {
	h, _ := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/letters", strings.NewReader(`{"phone":"555-9999"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GenerateLetter(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestListLettersEndpoint(t *testing.T) {
	h, patients := newTestHandler()
	registerJane(patients)

	for i := 0; i < 3; i++ {
		if _, err := h.svc.Generate(context.Background(), "555-0100", TypeCoverageSummary); err != nil {
			t.Fatalf("seed letter: %v", err)
		}
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/letters?phone=555-0100", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListLetters(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []Letter `json:"data"`
		Total int      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 3 || len(resp.Data) != 3 {
		t.Errorf("expected 3 letters, got total=%d len=%d", resp.Total, len(resp.Data))
	}
}

func TestListLettersEndpoint_MissingPhone(t *testing.T) {
	h, _ := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/letters", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListLetters(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestDownloadLetterEndpoint(t *testing.T) {
	h, patients := newTestHandler()
	registerJane(patients)

	l, err := h.svc.Generate(context.Background(), "555-0100", TypeCoverageSummary)
	if err != nil {
		t.Fatalf("seed letter: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/letters/"+l.LetterID.String()+"/download", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("letter_id")
	c.SetParamValues(l.LetterID.String())

	if err := h.DownloadLetter(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got DownloadResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.Filename != l.Filename() {
		t.Errorf("expected filename %s, got %s", l.Filename(), got.Filename)
	}
	if got.Content != l.Content {
		t.Error("download content mismatch")
	}
}

func TestDownloadLetterEndpoint_BadID(t *testing.T) {
	h, _ := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/letters/nope/download", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("letter_id")
	c.SetParamValues("nope")

	err := h.DownloadLetter(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestDownloadLetterEndpoint_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	id := uuid.New()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/letters/"+id.String()+"/download", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("letter_id")
	c.SetParamValues(id.String())

	err := h.DownloadLetter(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
