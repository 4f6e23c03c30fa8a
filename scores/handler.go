package scores

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const maxBodyBytes = 1 << 16

type HandlerOptions struct {
	// TopN is the number of records GET returns without a limit parameter.
	TopN int
	// APIKey, when set, must be sent as X-Api-Key on submissions.
	APIKey string
	Logger *log.Logger
}

type Handler struct {
	store  Store
	topN   int
	apiKey string
	logger *log.Logger
	mux    *http.ServeMux
}

func NewHandler(store Store, opts HandlerOptions) *Handler {
	h := &Handler{
		store:  store,
		topN:   clampLimit(opts.TopN),
		apiKey: opts.APIKey,
		logger: opts.Logger,
		mux:    http.NewServeMux(),
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	h.mux.HandleFunc("/api/scores", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.listScores(w, r)
		case http.MethodPost:
			h.createScore(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		}
	})
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	h.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

func (h *Handler) listScores(w http.ResponseWriter, r *http.Request) {
	limit := h.topN
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = requestLimit(n)
		}
	}
	records, err := h.store.Top(r.Context(), limit)
	if err != nil {
		h.logger.Error("fetch scores", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch scores")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) createScore(w http.ResponseWriter, r *http.Request) {
	if h.apiKey != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Api-Key")), []byte(h.apiKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var sub Submission
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decodeOne(dec, &sub); err != nil {
		h.logger.Debug("decode submission", "err", err)
		writeError(w, http.StatusBadRequest, "Invalid score data")
		return
	}
	sub, err := sub.Normalize()
	if err != nil {
		h.logger.Debug("reject submission", "err", err)
		writeError(w, http.StatusBadRequest, "Invalid score data")
		return
	}
	record, err := h.store.Create(r.Context(), sub)
	if errors.Is(err, ErrInvalid) {
		writeError(w, http.StatusBadRequest, "Invalid score data")
		return
	}
	if err != nil {
		h.logger.Error("create score", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to save score")
		return
	}
	h.logger.Info("score saved", "id", record.ID, "player", record.PlayerName, "score", record.Score)
	writeJSON(w, http.StatusOK, record)
}

// requestLimit clamps an explicit ?limit to 1..MaxLimit.
func requestLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// decodeOne decodes a single JSON value and rejects anything after it.
func decodeOne(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
