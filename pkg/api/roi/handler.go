// Package roi exposes the chain ROI calculator over HTTP.
package roi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/finnegil-spec/orbital-roi/pkg/core/inputs"
	"github.com/finnegil-spec/orbital-roi/pkg/core/narrative"
	"github.com/finnegil-spec/orbital-roi/pkg/core/report"
	"github.com/finnegil-spec/orbital-roi/pkg/core/scenario"
)

// Request is the body of every POST endpoint. Exactly one input source is
// used: form, then values, then the named scenario, then the defaults.
type Request struct {
	Form     *inputs.Form   `json:"form,omitempty"`
	Values   *inputs.Values `json:"values,omitempty"`
	Scenario string         `json:"scenario,omitempty"`
	Currency string         `json:"currency,omitempty"`
}

// ReportResponse is a report plus display strings in the chosen currency.
type ReportResponse struct {
	*report.Report
	Currency string            `json:"currency"`
	Display  map[string]string `json:"display"`
}

type DefaultsResponse struct {
	Form       inputs.Form         `json:"form"`
	Values     inputs.Values       `json:"values"`
	Currency   string              `json:"currency"`
	Currencies []string            `json:"currencies"`
	Scenarios  []scenario.Scenario `json:"scenarios"`
}

type CommentaryResponse struct {
	ID         string `json:"id"`
	Commentary string `json:"commentary"`
	Fallback   bool   `json:"fallback"`
}

// Handler holds dependencies for the ROI endpoints
type Handler struct {
	Scenarios       []scenario.Scenario
	DefaultCurrency string
	Writer          *narrative.Writer
}

// NewHandler creates a new ROI handler
func NewHandler(scenarios []scenario.Scenario, defaultCurrency string, writer *narrative.Writer) *Handler {
	if defaultCurrency == "" {
		defaultCurrency = report.DefaultCurrency
	}
	return &Handler{Scenarios: scenarios, DefaultCurrency: defaultCurrency, Writer: writer}
}

// Register mounts the endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/roi/defaults", h.HandleDefaults)
	mux.HandleFunc("/api/roi/evaluate", h.HandleEvaluate)
	mux.HandleFunc("/api/roi/report", h.HandleReport)
	mux.HandleFunc("/api/roi/commentary", h.HandleCommentary)
}

func setCORS(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// preflight handles CORS and method checks; it returns false when the
// request has been answered already.
func preflight(w http.ResponseWriter, r *http.Request, method string) bool {
	setCORS(w, method)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

func (h *Handler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodGet) {
		return
	}

	scenarios := h.Scenarios
	if len(scenarios) == 0 {
		scenarios = []scenario.Scenario{scenario.Default()}
	}
	writeJSON(w, DefaultsResponse{
		Form:       inputs.DefaultForm(),
		Values:     inputs.DefaultForm().Values(),
		Currency:   h.DefaultCurrency,
		Currencies: report.Currencies(),
		Scenarios:  scenarios,
	})
}

func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}

	rep, status, err := h.buildReport(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, newReportResponse(rep))
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "md"
	}

	rep, status, err := h.buildReport(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	if r.URL.Query().Get("commentary") == "true" && h.Writer != nil {
		rep.Commentary, _ = h.Writer.Comment(r.Context(), rep)
	}

	var (
		body        []byte
		contentType string
		ext         string
	)
	switch format {
	case "md", "markdown":
		body, contentType, ext = []byte(report.Markdown(rep)), "text/markdown; charset=utf-8", "md"
	case "html":
		body, err = report.HTML(rep)
		contentType, ext = "text/html; charset=utf-8", "html"
	case "xlsx":
		body, err = report.Excel(rep)
		contentType, ext = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	case "pdf":
		body, err = report.PDF(rep)
		contentType, ext = "application/pdf", "pdf"
	case "txt", "text":
		body, contentType, ext = []byte(report.Text(rep)), "text/plain; charset=utf-8", "txt"
	default:
		http.Error(w, fmt.Sprintf("Unsupported format: %s", format), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[API] render %s report %s: %v", format, rep.ID, err)
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="roi-%s.%s"`, rep.ID, ext))
	w.Write(body)
}

func (h *Handler) HandleCommentary(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	if h.Writer == nil {
		http.Error(w, "Commentary is not configured", http.StatusServiceUnavailable)
		return
	}

	rep, status, err := h.buildReport(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	text, err := h.Writer.Comment(r.Context(), rep)
	writeJSON(w, CommentaryResponse{ID: rep.ID, Commentary: text, Fallback: err != nil})
}

var errUnknownScenario = errors.New("unknown scenario")

// buildReport decodes the request, resolves inputs and currency and
// evaluates. The int is the HTTP status to use when err is non-nil.
func (h *Handler) buildReport(r *http.Request) (*report.Report, int, error) {
	var req Request
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return nil, http.StatusBadRequest, fmt.Errorf("Invalid request body: %v", err)
		}
	}

	values, name, currency, err := h.resolve(req)
	if err != nil {
		if errors.Is(err, errUnknownScenario) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusBadRequest, err
	}

	cur, err := report.ParseCurrency(currency)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	rep := report.New(name, cur, values.InputSet())
	rep.Warnings = inputs.Check(values)
	log.Printf("[API] evaluated %s (%s): npv=%.0f roi=%.4f payback=%s",
		rep.Scenario, cur.Code(), rep.Result.NPV, rep.Result.ROI, rep.Result.Payback)
	return rep, http.StatusOK, nil
}

func (h *Handler) resolve(req Request) (inputs.Values, string, string, error) {
	base := scenario.Default()
	if req.Scenario != "" {
		s, ok := scenario.Find(h.Scenarios, req.Scenario)
		if !ok {
			return inputs.Values{}, "", "", fmt.Errorf("%w: %s", errUnknownScenario, req.Scenario)
		}
		base = s
	}

	currency := req.Currency
	if currency == "" {
		currency = base.Currency
	}
	if currency == "" {
		currency = h.DefaultCurrency
	}

	name := base.Name
	switch {
	case req.Form != nil:
		if req.Scenario == "" {
			name = "Custom"
		}
		return req.Form.Values(), name, currency, nil
	case req.Values != nil:
		if req.Scenario == "" {
			name = "Custom"
		}
		return *req.Values, name, currency, nil
	}
	return base.Values, name, currency, nil
}

func newReportResponse(rep *report.Report) ReportResponse {
	res := rep.Result
	cur := rep.Currency
	return ReportResponse{
		Report:   rep,
		Currency: cur.Code(),
		Display: map[string]string{
			"roi":          report.Percent(res.ROI),
			"paybackYears": report.PaybackLabel(res.Payback),
			"npv":          cur.Money(res.NPV),
			"costNpv":      cur.Money(res.CostNPV),
			"cf1":          cur.Money(res.CashFlows.Year(1)),
			"cf2":          cur.Money(res.CashFlows.Year(2)),
			"cf3":          cur.Money(res.CashFlows.Year(3)),
			"netPerStore":  cur.Money(res.Breakdown.NetAnnualValuePerStore),
		},
	}
}
