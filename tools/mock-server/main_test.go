package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donaldgifford/markdown-pricer/pkg/predict"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestModel(t *testing.T) predict.Model {
	t.Helper()
	m, err := predict.LoadModel(predict.Spec{
		Kind: predict.KindLinear,
		Path: filepath.Join("testdata", "linear.yaml"),
	})
	if err != nil {
		t.Fatalf("loading model: %v", err)
	}
	return m
}

func startServer(t *testing.T, fail bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newMux(testLogger(), "markdown", loadTestModel(t), fail))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteModelRoundTrip(t *testing.T) {
	srv := startServer(t, false)

	remote := predict.NewRemoteModel(srv.URL, "markdown")
	preds, err := remote.Predict(context.Background(), [][]float64{
		{2, 1.5, 1},
		{10, 0, 0},
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("got %d predictions, want 2", len(preds))
	}
	// 10 - 1.5*2 + 8*1.5 + 12*1 = 31
	if preds[0] != 31 {
		t.Errorf("preds[0]=%v, want 31", preds[0])
	}
	// 10 - 1.5*10 = -5
	if preds[1] != -5 {
		t.Errorf("preds[1]=%v, want -5", preds[1])
	}
}

func TestPredictHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		fail       bool
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown model",
			path:       "/v1/models/other:predict",
			body:       `{"instances":[[1,2,0]]}`,
			wantStatus: http.StatusNotFound,
			wantBody:   "model not found",
		},
		{
			name:       "unsupported method",
			path:       "/v1/models/markdown:classify",
			body:       `{"instances":[[1,2,0]]}`,
			wantStatus: http.StatusNotFound,
			wantBody:   "unsupported method",
		},
		{
			name:       "malformed body",
			path:       "/v1/models/markdown:predict",
			body:       `{"instances":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "malformed request body",
		},
		{
			name:       "wrong feature count",
			path:       "/v1/models/markdown:predict",
			body:       `{"instances":[[1,2]]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "wrong feature count",
		},
		{
			name:       "injected failure",
			fail:       true,
			path:       "/v1/models/markdown:predict",
			body:       `{"instances":[[1,2,0]]}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "injected failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := startServer(t, tt.fail)

			resp, err := http.Post(srv.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status=%d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body=%s, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestRemoteModel_InjectedFailureSurfaces(t *testing.T) {
	srv := startServer(t, true)

	remote := predict.NewRemoteModel(srv.URL, "markdown")
	if _, err := remote.Predict(context.Background(), [][]float64{{1, 1, 0}}); err == nil {
		t.Fatal("expected an error from a failing model server")
	}
}

func TestStatusHandler(t *testing.T) {
	srv := startServer(t, false)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/v1/models/markdown", http.StatusOK},
		{"/v1/models/other", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatalf("get %s: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.wantStatus {
			t.Errorf("%s: status=%d, want %d", tt.path, resp.StatusCode, tt.wantStatus)
		}
	}
}
