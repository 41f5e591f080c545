// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"career-workers/internal/career"
	"career-workers/internal/common/errors"
	"career-workers/internal/recommendation"
	"career-workers/internal/resume"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	resumeField = "resume_pdf"
	userIDField = "userId"
	// room for the text fields on top of the resume limit
	formSlack = 1 << 20
)

type careerRequest struct {
	profile recommendation.Profile
	userID  string
	source  string
}

// Recommend handles POST /career/.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	req, stdErr := h.decodeRequest(w, r)
	if stdErr != nil {
		h.logger.Warn("rejected career request", map[string]interface{}{
			"requestId": chimiddleware.GetReqID(r.Context()),
			"code":      string(stdErr.Code),
			"details":   stdErr.Details,
		})
		respondError(w, stdErr)
		return
	}

	result, err := h.service.Recommend(r.Context(), career.Request{
		Profile: req.profile,
		Channel: career.ChannelHTTP,
		Source:  req.source,
		UserID:  req.userID,
	})
	if err != nil {
		respondError(w, errors.AsStandardError(err))
		return
	}

	respondJSON(w, http.StatusOK, recommendResponse{
		Recommendations: string(result.Label),
		Label:           string(result.Label),
		Source:          result.Source,
		Strategy:        result.Strategy,
		Cached:          result.Cached,
	})
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*careerRequest, *errors.StandardError) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return h.decodeJSON(w, r)
	case "multipart/form-data":
		return h.decodeMultipart(w, r)
	case "application/x-www-form-urlencoded", "":
		r.Body = http.MaxBytesReader(w, r.Body, formSlack)
		if err := r.ParseForm(); err != nil {
			return nil, errors.NewInputParsingFailedError(err)
		}
		return &careerRequest{
			profile: recommendation.ProfileFromForm(r.PostForm),
			userID:  r.PostForm.Get(userIDField),
			source:  career.SourceProfileForm,
		}, nil
	default:
		return nil, errors.NewInputParsingFailedError(fmt.Errorf("unsupported content type %q", mediaType))
	}
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request) (*careerRequest, *errors.StandardError) {
	r.Body = http.MaxBytesReader(w, r.Body, formSlack)

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}

	profile, err := recommendation.ProfileFromMap(body)
	if err != nil {
		return nil, errors.NewInputShapeInvalidError(err.Error())
	}

	req := &careerRequest{profile: profile, source: career.SourceProfileForm}
	if userID, ok := body[userIDField].(string); ok {
		req.userID = userID
	}
	return req, nil
}

func (h *Handler) decodeMultipart(w http.ResponseWriter, r *http.Request) (*careerRequest, *errors.StandardError) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formSlack)
	if err := r.ParseMultipartForm(h.maxUploadBytes + formSlack); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) || stderrors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, errors.NewResumeTooLargeError(h.maxUploadBytes)
		}
		return nil, errors.NewInputParsingFailedError(err)
	}

	req := &careerRequest{
		profile: recommendation.ProfileFromForm(r.PostForm),
		userID:  r.PostForm.Get(userIDField),
		source:  career.SourceProfileForm,
	}

	file, header, err := r.FormFile(resumeField)
	if stderrors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		return nil, errors.NewResumeTooLargeError(h.maxUploadBytes)
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}
	if !resume.IsPDF(data) {
		return nil, errors.NewResumeInvalidTypeError(header.Header.Get("Content-Type"))
	}

	skills, err := resume.Skills(data)
	if err != nil {
		return nil, errors.NewResumeExtractionFailedError(err)
	}

	req.profile = req.profile.WithSkills(skills...)
	req.source = career.SourceResumeProfileForm
	return req, nil
}

type historyItem struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Channel       string   `json:"channel"`
	Source        string   `json:"source"`
	Strategy      string   `json:"strategy"`
	Skills        []string `json:"skills"`
	Interests     []string `json:"interests"`
	Qualification string   `json:"qualification"`
	CreatedAt     string   `json:"createdAt"`
}

// History handles GET /career/history/{userID}.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			respondError(w, errors.NewInputShapeInvalidError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), userID, limit)
	if stderrors.Is(err, career.ErrHistoryDisabled) {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "History is not available",
			Code:  "HISTORY_DISABLED",
		})
		return
	}
	if err != nil {
		respondError(w, errors.AsStandardError(err))
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			ID:            rec.ID.String(),
			Label:         string(rec.Label),
			Channel:       rec.Channel,
			Source:        rec.Source,
			Strategy:      rec.Strategy,
			Skills:        rec.Skills,
			Interests:     rec.Interests,
			Qualification: rec.Qualification,
			CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"userId":          userID,
		"recommendations": items,
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready pings every configured dependency.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status, code = "not ready", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	respondJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
