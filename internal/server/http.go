package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
)

type httpServer struct {
	*Config
}

func NewHTTPServer(addr string, cfg *Config) *http.Server {
	srv := &httpServer{Config: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/", srv.handleProduce).Methods(http.MethodPost)
	r.HandleFunc("/", srv.handleConsume).Methods(http.MethodGet)
	r.HandleFunc("/", srv.handleReset).Methods(http.MethodDelete)
	r.HandleFunc("/predict", srv.handlePredict).Methods(http.MethodGet)

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}

type ProduceRequest struct {
	Record api.Record `json:"record"`
}

type ProduceResponse struct {
	Offset uint64 `json:"offset"`
}

type ConsumeRequest struct {
	Offset uint64 `json:"offset"`
}

type ConsumeResponse struct {
	Record *api.Record `json:"record"`
}

type PredictResponse struct {
	Prediction string `json:"prediction"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *httpServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Warn("write response", slog.Any("error", err))
	}
}

func (s *httpServer) writeError(w http.ResponseWriter, code int, err error) {
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *httpServer) handleProduce(w http.ResponseWriter, r *http.Request) {
	var req ProduceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.Reduce.ParsePair(string(req.Record.Value)); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	off, err := s.CommitLog.Append(&req.Record)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ProduceResponse{Offset: off})
}

func (s *httpServer) handleConsume(w http.ResponseWriter, r *http.Request) {
	var req ConsumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	record, err := s.CommitLog.Read(req.Offset)
	if errors.As(err, &api.ErrOffsetOutOfRange{}) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ConsumeResponse{Record: record})
}

func (s *httpServer) handlePredict(w http.ResponseWriter, r *http.Request) {
	result, err := s.predict()
	if errors.As(err, &api.ErrNoPrediction{}) {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, PredictResponse{Prediction: result})
}

func (s *httpServer) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.CommitLog.Reset(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
