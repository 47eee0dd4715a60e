package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/formula"
	"svw.info/pyramath/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/pyramid", h.handlePyramid)
	mux.HandleFunc("/api/pyramid/validate", h.handleValidate)
	mux.HandleFunc("/api/pyramid/hint", h.handleHint)
	mux.HandleFunc("/api/reward", h.handleReward)
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/api/target", h.handleTarget)
	mux.HandleFunc("/api/catalog", h.handleCatalog)
}

type errorResp struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrUnsolvableConfiguration),
		errors.Is(err, domain.ErrUnknownCatalogEntry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrExhaustedRetries):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
}

// decode reads a JSON body. An empty body leaves req at its zero value.
func decode(w http.ResponseWriter, r *http.Request, method string, req any) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return false
	}
	if req == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func seedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// ---- Pyramid ----

type pyramidReq struct {
	Journey string `json:"journey"`
	Seed    int64  `json:"seed,omitempty"`
	Level   int    `json:"level"`
}

type pyramidResp struct {
	Level      *domain.PyramidLevel `json:"level"`
	Seed       int64                `json:"seed"`
	DurationMs int64                `json:"durationMs"`
	Attempts   int                  `json:"attempts"`
}

func (h *Handler) handlePyramid(w http.ResponseWriter, r *http.Request) {
	var req pyramidReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	seed := seedOrNow(req.Seed)
	l, st, err := h.UC.GeneratePyramid(r.Context(), req.Journey, seed, req.Level)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pyramidResp{
		Level:      l.Masked(),
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
		Attempts:   st.Attempts,
	})
}

// ---- Validate ----

type levelReq struct {
	Level   domain.PyramidLevel `json:"level"`
	MaxTier string              `json:"maxTier,omitempty"`
}

type validateResp struct {
	OK        bool  `json:"ok"`
	Complete  bool  `json:"complete"`
	Conflicts []int `json:"conflicts,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req levelReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), &req.Level)
	if err != nil {
		writeErr(w, err)
		return
	}
	complete, err := h.UC.Complete(r.Context(), &req.Level)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Complete: complete, Conflicts: conflicts})
}

// ---- Hint ----

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
}

func parseTier(s string) domain.StrategyTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return domain.StrategySum
	default:
		return domain.StrategyDifference
	}
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req levelReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), &req.Level, parseTier(req.MaxTier))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: ok, Hint: hh})
}

// ---- Reward ----

type rewardReq struct {
	Tomb string `json:"tomb"`
	Seed int64  `json:"seed,omitempty"`
	Run  int    `json:"run"`
}

type rewardResp struct {
	Calculation *domain.RewardCalculation `json:"calculation"`
	Hints       []string                  `json:"hints"`
	Main        string                    `json:"main"`
	Seed        int64                     `json:"seed"`
}

func (h *Handler) handleReward(w http.ResponseWriter, r *http.Request) {
	var req rewardReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	seed := seedOrNow(req.Seed)
	rc, err := h.UC.GenerateReward(r.Context(), req.Tomb, seed, req.Run)
	if err != nil {
		writeErr(w, err)
		return
	}
	hints := make([]string, len(rc.HintFormulas))
	for i, f := range rc.HintFormulas {
		hints[i] = formula.String(f, nil, formula.AnswerShown)
	}
	writeJSON(w, http.StatusOK, rewardResp{
		Calculation: rc,
		Hints:       hints,
		Main:        formula.String(rc.MainFormula, nil, formula.AnswerHidden),
		Seed:        seed,
	})
}

// ---- Compare ----

type compareReq struct {
	Stage   string `json:"stage"`
	Seed    int64  `json:"seed,omitempty"`
	Level   int    `json:"level"`
	Digit   int    `json:"digit"`
	Largest string `json:"largest,omitempty"`
}

type compareResp struct {
	Level *domain.CompareLevel `json:"level"`
	Seed  int64                `json:"seed"`
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	largest := domain.Largest(strings.ToLower(strings.TrimSpace(req.Largest)))
	if largest == "" {
		largest = domain.LargestAlways
	}
	seed := seedOrNow(req.Seed)
	cl, err := h.UC.GenerateCompare(r.Context(), req.Stage, seed, req.Level,
		domain.CompareRequirements{Digit: req.Digit, Largest: largest})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResp{Level: cl, Seed: seed})
}

// ---- Target ----

type targetReq struct {
	Picked    []int    `json:"picked"`
	Operators []string `json:"operators"`
	Targets   []int    `json:"targets"`
	Seed      int64    `json:"seed,omitempty"`
}

type targetResp struct {
	Found   bool            `json:"found"`
	Formula *domain.Formula `json:"formula,omitempty"`
	Text    string          `json:"text,omitempty"`
	Seed    int64           `json:"seed"`
}

func (h *Handler) handleTarget(w http.ResponseWriter, r *http.Request) {
	var req targetReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	ops, err := domain.ParseOperators(req.Operators)
	if err != nil {
		writeErr(w, err)
		return
	}
	seed := seedOrNow(req.Seed)
	f, ok, err := h.UC.FindTarget(r.Context(), usecase.TargetRequest{
		Picked:    req.Picked,
		Operators: ops,
		Targets:   req.Targets,
		Seed:      seed,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	resp := targetResp{Found: ok, Seed: seed}
	if ok {
		resp.Formula = f
		resp.Text = formula.String(f, nil, formula.AnswerShown)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Catalog ----

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !decode(w, r, http.MethodGet, nil) {
		return
	}
	c, err := h.UC.Catalog(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
