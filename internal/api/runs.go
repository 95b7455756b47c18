package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Topsis/internal/hermes"
	"github.com/MikeSquared-Agency/Topsis/internal/mailer"
	"github.com/MikeSquared-Agency/Topsis/internal/store"
	"github.com/MikeSquared-Agency/Topsis/internal/tabular"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

const multipartMemory = 8 << 20

type RunsHandler struct {
	store     store.Store
	hermes    hermes.Client
	mailer    mailer.Sender
	maxUpload int64
	logger    *slog.Logger
}

func NewRunsHandler(s store.Store, h hermes.Client, m mailer.Sender, maxUpload int64, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{store: s, hermes: h, mailer: m, maxUpload: maxUpload, logger: logger}
}

type runInput struct {
	sourceName string
	table      *topsis.Table
	weights    string
	impacts    string
	email      string
}

type RunResponse struct {
	RunID      uuid.UUID  `json:"run_id"`
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
	ResultURL  string     `json:"result_url"`
	Emailed    bool       `json:"emailed"`
	EmailError string     `json:"email_error,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// readInput parses the multipart form: file, weights, impacts and an
// optional email. The email is checked first so a bad address fails fast.
func (h *RunsHandler) readInput(w http.ResponseWriter, r *http.Request) (*runInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: %d bytes", errUploadTooLarge, tooLarge.Limit)
		}
		// mime/multipart does not always wrap the reader error.
		if strings.Contains(err.Error(), "request body too large") {
			return nil, fmt.Errorf("%w: %d bytes", errUploadTooLarge, h.maxUpload)
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("%w: %v", topsis.ErrMissingInput, err)
		}
	}

	in := &runInput{
		weights: r.FormValue("weights"),
		impacts: r.FormValue("impacts"),
		email:   strings.TrimSpace(r.FormValue("email")),
	}
	if in.email != "" {
		if err := mailer.ValidateAddress(in.email); err != nil {
			return nil, err
		}
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: no file uploaded", topsis.ErrMissingInput)
	}
	defer file.Close()
	in.sourceName = hdr.Filename

	in.table, err = tabular.ReadNamed(hdr.Filename, file)
	if err != nil {
		return in, err
	}
	return in, nil
}

// Submit handles POST /api/v1/runs
func (h *RunsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New()
	ctx := r.Context()

	in, err := h.readInput(w, r)
	if err != nil {
		h.fail(r, runID, in, err)
		writeError(w, err)
		return
	}

	start := time.Now()
	res, err := topsis.Compute(in.table, in.weights, in.impacts)
	elapsed := time.Since(start)
	computeDuration.Observe(elapsed.Seconds())
	if err != nil {
		h.fail(r, runID, in, err)
		writeError(w, err)
		return
	}

	run := &store.Run{
		ID:           runID,
		SourceName:   in.sourceName,
		Weights:      in.weights,
		Impacts:      in.impacts,
		Alternatives: len(res.Rows),
		Criteria:     len(in.table.Header) - 1,
	}
	if best := res.Best(); best >= 0 && len(in.table.Rows[best]) > 0 {
		run.BestLabel = in.table.Rows[best][0]
	}
	if err := h.store.SaveResult(ctx, run, res); err != nil {
		h.logger.Error("failed to store result", "run_id", runID, "error", err)
		runsTotal.WithLabelValues("error", "internal").Inc()
		writeError(w, err)
		return
	}

	runsTotal.WithLabelValues("completed", "").Inc()
	alternativesScored.Observe(float64(run.Alternatives))
	h.logger.Info("run completed",
		"run_id", runID,
		"source", in.sourceName,
		"alternatives", run.Alternatives,
		"criteria", run.Criteria,
		"duration_ms", float64(elapsed.Microseconds())/1000,
	)
	h.publish(r, hermes.SubjectRunCompleted(runID.String()), hermes.RunCompletedEvent{
		RunID:        runID.String(),
		SourceName:   in.sourceName,
		Alternatives: run.Alternatives,
		Criteria:     run.Criteria,
		BestLabel:    run.BestLabel,
		DurationMs:   float64(elapsed.Microseconds()) / 1000,
		Timestamp:    time.Now().UTC(),
	})

	resp := RunResponse{
		RunID:     runID,
		Header:    res.Header,
		Rows:      res.Rows,
		ResultURL: "/api/v1/runs/" + runID.String() + "/result.csv",
	}
	if in.email != "" {
		h.deliver(r, run, in.email, &resp)
	}

	if wantsCSV(r) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="result.csv"`)
		w.Header().Set("X-Run-ID", runID.String())
		w.Header().Set("X-Emailed", strconv.FormatBool(resp.Emailed))
		w.WriteHeader(http.StatusCreated)
		if err := tabular.WriteCSV(w, res); err != nil {
			h.logger.Error("failed to write csv response", "run_id", runID, "error", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// deliver emails the stored result. Failures are reported in the response,
// not as a failed run.
func (h *RunsHandler) deliver(r *http.Request, run *store.Run, to string, resp *RunResponse) {
	if h.mailer == nil {
		resp.EmailError = "email delivery is not configured"
		emailsTotal.WithLabelValues("disabled").Inc()
		return
	}
	if err := h.mailer.SendResult(r.Context(), to, h.store.ResultPath(run.ID)); err != nil {
		h.logger.Warn("failed to email result", "run_id", run.ID, "error", err)
		resp.EmailError = err.Error()
		emailsTotal.WithLabelValues("failed").Inc()
		return
	}
	resp.Emailed = true
	resp.Message = "Result file has been emailed successfully"
	emailsTotal.WithLabelValues("sent").Inc()
	h.publish(r, hermes.SubjectRunEmailed(run.ID.String()), hermes.RunEmailedEvent{
		RunID:     run.ID.String(),
		Recipient: to,
		Timestamp: time.Now().UTC(),
	})
}

func (h *RunsHandler) fail(r *http.Request, runID uuid.UUID, in *runInput, err error) {
	_, kind := errorStatus(err)
	runsTotal.WithLabelValues("rejected", kind).Inc()

	var source string
	if in != nil {
		source = in.sourceName
	}
	h.logger.Info("run rejected", "run_id", runID, "source", source, "kind", kind, "error", err)
	h.publish(r, hermes.SubjectRunFailed(runID.String()), hermes.RunFailedEvent{
		RunID:      runID.String(),
		SourceName: source,
		Kind:       kind,
		Error:      err.Error(),
		Timestamp:  time.Now().UTC(),
	})
}

func (h *RunsHandler) publish(r *http.Request, subject string, event interface{}) {
	if h.hermes == nil {
		return
	}
	if err := h.hermes.Publish(r.Context(), subject, event); err != nil {
		h.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// ExplainResponse exposes every pipeline stage for one dataset.
type ExplainResponse struct {
	Labels      []string           `json:"labels"`
	Criteria    []string           `json:"criteria"`
	Weights     []float64          `json:"weights"`
	Impacts     []topsis.Impact    `json:"impacts"`
	Normalized  [][]float64        `json:"normalized"`
	Weighted    [][]float64        `json:"weighted"`
	Evaluation  *topsis.Evaluation `json:"evaluation"`
	Rounded     []float64          `json:"rounded_scores"`
	ParetoFront []int              `json:"pareto_front"`
}

// Explain handles POST /api/v1/runs/explain
func (h *RunsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := topsis.NewProblem(in.table, in.weights, in.impacts)
	if err != nil {
		writeError(w, err)
		return
	}
	ev, err := topsis.Evaluate(p)
	if err != nil {
		writeError(w, err)
		return
	}

	rounded := make([]float64, len(ev.Scores))
	for i, s := range ev.Scores {
		rounded[i] = topsis.RoundScore(s)
	}
	writeJSON(w, http.StatusOK, ExplainResponse{
		Labels:      p.Labels,
		Criteria:    p.Criteria,
		Weights:     p.Weights,
		Impacts:     p.Impacts,
		Normalized:  ev.Normalized.RowsCopy(),
		Weighted:    ev.Weighted.RowsCopy(),
		Evaluation:  ev,
		Rounded:     rounded,
		ParetoFront: topsis.ParetoFront(p),
	})
}

// Get handles GET /api/v1/runs/{id}
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid run id"})
		return
	}
	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// Download handles GET /api/v1/runs/{id}/result.csv
func (h *RunsHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid run id"})
		return
	}
	rc, err := h.store.OpenResult(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="result.csv"`)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("failed to stream result", "run_id", id, "error", err)
	}
}

func wantsCSV(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}
