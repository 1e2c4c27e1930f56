package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalyses "github.com/veriview/veriview/internal/application/analyses"
	appinsight "github.com/veriview/veriview/internal/application/insight"
	domain "github.com/veriview/veriview/internal/domain/analyses"
)

// User-facing messages. The two 400s and the generic 500s are the only
// failure shapes a caller ever sees; enrichment degradation stays invisible.
const (
	msgInvalidURL          = "Please enter a valid URL"
	msgUnsupportedPlatform = "Unsupported platform. Please use YouTube, Instagram, Twitter, TikTok, or Facebook URLs."
	msgAnalyzeFailed       = "Analysis failed. Please try again."
	msgRecentFailed        = "Failed to fetch recent analyses"
	msgExplainFailed       = "Explanation failed. Please try again."
	msgNotFound            = "Analysis not found"
	msgNoExplainer         = "AI explanations are not configured"
)

const recentLimit = 10

type Router struct {
	analysesSvc *appanalyses.Service
	insightSvc  *appinsight.Service
}

// NewRouter wires the HTTP surface. insightSvc may be nil when no AI
// credential is configured; the explain endpoint then answers 503.
func NewRouter(analysesSvc *appanalyses.Service, insightSvc *appinsight.Service) http.Handler {
	r := &Router{analysesSvc: analysesSvc, insightSvc: insightSvc}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze-video", r.wrap(r.handleAnalyzeVideo, msgAnalyzeFailed))
		rt.Get("/recent-analyses", r.wrap(r.handleRecentAnalyses, msgRecentFailed))
		rt.Post("/analyses/{id}/explain", r.wrap(r.handleExplain, msgExplainFailed))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps handler errors onto the response contract: validation and
// classification faults are 400s with their fixed messages, unknown ids
// are 404, anything else is a generic 500 that leaks no internal detail.
func (r *Router) wrap(h handlerFunc, fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, domain.ErrInvalidURL):
			writeMessage(w, http.StatusBadRequest, msgInvalidURL)
		case errors.Is(err, domain.ErrUnsupportedPlatform):
			writeMessage(w, http.StatusBadRequest, msgUnsupportedPlatform)
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, msgNotFound)
		default:
			log.Printf("%s %s: %v", req.Method, req.URL.Path, err)
			writeMessage(w, http.StatusInternalServerError, fallback)
		}
	}
}

// POST /api/analyze-video
// Body: {"videoUrl": "<url>"}
func (r *Router) handleAnalyzeVideo(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.ErrInvalidURL
	}

	analysis, err := r.analysesSvc.Analyze(req.Context(), body.VideoURL)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, analysis)
}

// GET /api/recent-analyses
func (r *Router) handleRecentAnalyses(w http.ResponseWriter, req *http.Request) error {
	list, err := r.analysesSvc.Recent(req.Context(), recentLimit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.VideoAnalysis{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /api/analyses/{id}/explain
func (r *Router) handleExplain(w http.ResponseWriter, req *http.Request) error {
	if r.insightSvc == nil {
		writeMessage(w, http.StatusServiceUnavailable, msgNoExplainer)
		return nil
	}

	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return domain.ErrNotFound
	}

	analysis, err := r.analysesSvc.Get(req.Context(), id)
	if err != nil {
		return err
	}

	explanation, err := r.insightSvc.Explain(req.Context(), analysis)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"id":          analysis.ID,
		"explanation": explanation,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
