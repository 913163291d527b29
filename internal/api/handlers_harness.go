package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reasonlab/epistress/internal/extract"
	"github.com/reasonlab/epistress/internal/metrics"
	"github.com/reasonlab/epistress/internal/schema"
	"github.com/reasonlab/epistress/internal/topology"
)

type extractRequest struct {
	Text    string `json:"text"`
	Variant string `json:"variant"`
}

// handleExtract runs the parser and metric engine over raw text and
// returns the full Result record.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.Variant == "" {
		req.Variant = "adhoc"
	}

	checkpoints := extract.ParseCheckpoints(req.Text)
	result := &schema.Result{
		Version:     schema.SpecVersion,
		Variant:     req.Variant,
		RawText:     req.Text,
		Checkpoints: checkpoints,
		Metrics:     metrics.Compute(req.Text, checkpoints),
	}
	if result.Checkpoints == nil {
		result.Checkpoints = []schema.Checkpoint{}
	}

	// The response is the persisted record shape, so a caller can write
	// the body to disk and reload it.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

type compareRequest struct {
	Baseline []schema.Checkpoint `json:"baseline"`
	Variant  []schema.Checkpoint `json:"variant"`
}

// handleCompare computes topology metrics between two checkpoint
// sequences. An empty baseline against a non-empty variant is a client
// error because the depth ratio is undefined.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	topo, err := topology.Compare(req.Baseline, req.Variant)
	if err != nil {
		if errors.Is(err, topology.ErrEmptyBaseline) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(topo)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
