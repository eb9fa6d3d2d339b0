package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/brunobiangulo/contractreview"
	"github.com/brunobiangulo/contractreview/playbook"
)

type handler struct {
	reviewCfg contractreview.Config
}

func newHandler(cfg contractreview.Config) *handler {
	return &handler{reviewCfg: cfg}
}

func newRouter(h *handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/contract-review", h.handleContractReview).Methods(http.MethodPost)
	r.HandleFunc("/api/playbooks/{key}", h.handlePlaybook).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	return r
}

// contractReviewRequest is the request body for POST /api/contract-review
// (spec.md §6): the contract's text, its extracted clauses, the playbook
// to apply, and an optional set of candidate issues/edits from an
// upstream model (see cmd/draftmodel).
type contractReviewRequest struct {
	Content         string                        `json:"content"`
	Clauses         []contractreview.Clause       `json:"clauses"`
	PlaybookKey     string                        `json:"playbookKey"`
	CandidateIssues []contractreview.Issue        `json:"candidateIssues,omitempty"`
	CandidateEdits  []contractreview.ProposedEdit `json:"candidateEdits,omitempty"`
	DraftModel      string                        `json:"draftModel,omitempty"`
	ReportExpiry    string                        `json:"reportExpiry,omitempty"`
}

// POST /api/contract-review
func (h *handler) handleContractReview(w http.ResponseWriter, r *http.Request) {
	var req contractReviewRequest
	if err := jsonDecoderDisallowUnknown(r, &req); err != nil {
		writeReviewError(w, &contractreview.ReviewError{
			Kind:    contractreview.KindSchema,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	opts := []contractreview.ReviewOption{contractreview.WithConfig(h.reviewCfg)}
	if req.DraftModel != "" {
		opts = append(opts, contractreview.WithDraftModel(req.DraftModel))
	}
	if req.ReportExpiry != "" {
		opts = append(opts, contractreview.WithReportExpiry(req.ReportExpiry))
	}

	report, err := contractreview.Review(req.Content, req.Clauses, req.PlaybookKey, req.CandidateIssues, req.CandidateEdits, opts...)
	if err != nil {
		if reviewErr, ok := err.(*contractreview.ReviewError); ok {
			writeReviewError(w, reviewErr)
			return
		}
		writeReviewError(w, &contractreview.ReviewError{Kind: contractreview.KindInternal, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GET /api/playbooks/{key}
func (h *handler) handlePlaybook(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	pb, ok := playbook.ByKey(key)
	if !ok {
		writeReviewError(w, &contractreview.ReviewError{
			Kind:    contractreview.KindUnknownPlaybook,
			Message: "unknown playbook key: " + key,
		})
		return
	}
	writeJSON(w, http.StatusOK, pb)
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeReviewError renders a ReviewError as {"error":{"kind","message"}}
// with the status mapping from spec.md §7: schema and unknown-playbook
// are caller errors, everything else is an internal fault.
func writeReviewError(w http.ResponseWriter, reviewErr *contractreview.ReviewError) {
	status := http.StatusInternalServerError
	switch reviewErr.Kind {
	case contractreview.KindSchema, contractreview.KindUnknownPlaybook:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"kind":    string(reviewErr.Kind),
			"message": reviewErr.Message,
		},
	})
}
