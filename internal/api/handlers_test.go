// internal/api/handlers_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"career-workers/internal/career"
	"career-workers/internal/common/config"
	"career-workers/internal/common/logger"
	"career-workers/internal/history"
	"career-workers/internal/resume/resumetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if opts.Service == nil {
		svc, err := career.NewService(career.Options{Logger: logger.NewTestLogger(t)})
		require.NoError(t, err)
		opts.Service = svc
	}
	opts.Logger = logger.NewTestLogger(t)
	return NewRouter(opts)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile(resumeField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/career/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

// ==========================
// POST /career/
// ==========================

func TestRecommend_Multipart(t *testing.T) {
	router := newTestRouter(t, Options{})

	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"programming skill", map[string]string{"skills": "programming, sql", "interests": "music", "qualification": "B.Tech"}, "Software Developer"},
		{"design interest", map[string]string{"skills": "sketching", "interests": "design"}, "UI/UX Designer"},
		{"teaching interest", map[string]string{"interests": "teaching", "qualification": "M.Ed"}, "Educator"},
		{"no fields", map[string]string{}, "General Analyst"},
		{"case preserved", map[string]string{"skills": "Programming"}, "General Analyst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, multipartRequest(t, tt.fields, "", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.want, body["recommendations"])
			assert.Equal(t, tt.want, body["label"])
			assert.Equal(t, career.SourceProfileForm, body["source"])
			assert.Equal(t, "rules", body["strategy"])
			assert.NotEmpty(t, rec.Header().Get("Content-Type"))
		})
	}
}

func TestRecommend_URLEncoded(t *testing.T) {
	router := newTestRouter(t, Options{})

	form := url.Values{"skills": {"programming"}}
	req := httptest.NewRequest(http.MethodPost, "/career/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Software Developer", decodeBody(t, rec)["recommendations"])
}

func TestRecommend_JSON(t *testing.T) {
	router := newTestRouter(t, Options{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       string
		wantCode   string
	}{
		{"lists", `{"skills":[],"interests":["coding","design"],"qualification":""}`, http.StatusOK, "Software Developer", ""},
		{"missing fields", `{}`, http.StatusOK, "General Analyst", ""},
		{"null fields", `{"skills":null,"interests":["teaching"]}`, http.StatusOK, "Educator", ""},
		{"bare string", `{"skills":"programming"}`, http.StatusBadRequest, "", "INPUT_SHAPE_INVALID"},
		{"number element", `{"interests":["design",1]}`, http.StatusBadRequest, "", "INPUT_SHAPE_INVALID"},
		{"broken json", `{"skills":`, http.StatusBadRequest, "", "INPUT_PARSING_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/career/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["code"])
				assert.NotEmpty(t, body["error"])
				return
			}
			assert.Equal(t, tt.want, body["recommendations"])
		})
	}
}

func TestRecommend_UnsupportedContentType(t *testing.T) {
	router := newTestRouter(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/career/", strings.NewReader("skills: programming"))
	req.Header.Set("Content-Type", "text/yaml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INPUT_PARSING_FAILED", decodeBody(t, rec)["code"])
}

// ==========================
// Resume uploads
// ==========================

func TestRecommend_ResumeSkillsFeedProfile(t *testing.T) {
	router := newTestRouter(t, Options{})

	file := resumetest.PDF("Jane Doe", "Experience: programming and databases")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{"interests": "teaching"}, "cv.pdf", file))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Software Developer", body["recommendations"])
	assert.Equal(t, career.SourceResumeProfileForm, body["source"])
}

func TestRecommend_ResumeWithoutMatchingSkills(t *testing.T) {
	router := newTestRouter(t, Options{})

	file := resumetest.PDF("Curriculum vitae", "Taught chemistry for six years")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{"interests": "teaching"}, "cv.pdf", file))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Educator", body["recommendations"])
	assert.Equal(t, career.SourceResumeProfileForm, body["source"])
}

func TestRecommend_ResumeTooLarge(t *testing.T) {
	router := newTestRouter(t, Options{Config: config.HTTPConfig{MaxUploadBytes: 1024}})

	file := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 2048)...)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{"skills": "programming"}, "cv.pdf", file))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "RESUME_TOO_LARGE", body["code"])
	assert.Contains(t, body["error"], "File size too large")
}

func TestRecommend_ResumeNotPDF(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, nil, "cv.docx", []byte("PK\x03\x04 word document")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "RESUME_INVALID_TYPE", body["code"])
	assert.Equal(t, "Only PDF files are allowed", body["error"])
}

func TestRecommend_ResumeUnreadable(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, nil, "cv.pdf", []byte("%PDF-1.7\ngarbage without xref")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "RESUME_EXTRACTION_FAILED", decodeBody(t, rec)["code"])
}

// ==========================
// History
// ==========================

func TestHistory_FromPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, channel, user_id").
		WithArgs("u-1", 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "channel", "user_id", "label", "strategy", "source", "skills", "interests", "qualification", "created_at",
		}).AddRow(
			"0f8fad5b-d9cb-469f-a165-70867728950e", "http", "u-1", "Educator", "rules", "profile form",
			[]byte(`[]`), []byte(`["teaching"]`), "M.Ed", created,
		))

	svc, err := career.NewService(career.Options{History: history.NewPostgresStore(db)})
	require.NoError(t, err)
	router := newTestRouter(t, Options{Service: svc})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/career/history/u-1?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	items := body["recommendations"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Educator", item["label"])
	assert.Equal(t, "2026-10-01T12:00:00Z", item["createdAt"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory_Disabled(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/career/history/u-1", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHistory_BadLimit(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/career/history/u-1?limit=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Health checks and middleware
// ==========================

func TestHealth(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
	}{
		{"no dependencies", nil, http.StatusOK},
		{"all healthy", map[string]Pinger{"redis": fakePinger{}, "postgres": fakePinger{}}, http.StatusOK},
		{"redis down", map[string]Pinger{"redis": fakePinger{err: stderrors.New("dial tcp: refused")}}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, Options{Checks: tt.checks})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, Options{Config: config.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}}})

	req := httptest.NewRequest(http.MethodOptions, "/career/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, Options{Config: config.HTTPConfig{RateLimit: 1}})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/career/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
