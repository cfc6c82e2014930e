// Package main implements a mock model server for local development.
// It speaks the TensorFlow Serving REST predict protocol and answers with a
// local linear or XGBoost model, so ml pricing can run against the remote
// backend without a real model server.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/donaldgifford/markdown-pricer/pkg/predict"
)

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func main() {
	port := flag.Int("port", 8501, "port to listen on")
	name := flag.String("name", "markdown", "model name served under /v1/models/{name}")
	kind := flag.String("kind", predict.KindLinear, "model backend: linear or xgboost")
	path := flag.String("model", "tools/mock-server/testdata/linear.yaml", "path to the model artifact")
	fail := flag.Bool("fail", false, "answer every predict call with a server error")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	model, err := predict.LoadModel(predict.Spec{Kind: *kind, Path: *path})
	if err != nil {
		logger.Error("failed to load model", "path", *path, "error", err)
		os.Exit(1)
	}
	if model == nil || *kind == predict.KindRemote {
		logger.Error("mock server needs a local model", "kind", *kind)
		os.Exit(1)
	}
	logger.Info("loaded model", "backend", model.Name())

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock model server", "addr", addr, "model", *name)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, *name, model, *fail)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, name string, model predict.Model, fail bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models/{name}", statusHandler(name))
	mux.HandleFunc("POST /v1/models/{call}", predictHandler(logger, name, model, fail))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// statusHandler mirrors the model status endpoint so readiness probes work.
func statusHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("name") != name {
			writeJSON(w, http.StatusNotFound, predictResponse{Error: "model not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"model_version_status": []map[string]any{{
				"version": "1",
				"state":   "AVAILABLE",
			}},
		})
	}
}

func predictHandler(logger *slog.Logger, name string, model predict.Model, fail bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, ok := strings.CutSuffix(r.PathValue("call"), ":predict")
		if !ok {
			writeJSON(w, http.StatusNotFound, predictResponse{Error: "unsupported method"})
			return
		}
		if target != name {
			writeJSON(w, http.StatusNotFound, predictResponse{Error: "model not found"})
			return
		}
		if fail {
			logger.Warn("failing predict call on request")
			writeJSON(w, http.StatusInternalServerError, predictResponse{Error: "injected failure"})
			return
		}

		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, predictResponse{Error: "malformed request body"})
			return
		}

		preds, err := model.Predict(r.Context(), req.Instances)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, predict.ErrFeatureCount) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, predictResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, predictResponse{Predictions: preds})
		logger.Info("predict", "model", name, "rows", len(req.Instances))
	}
}
