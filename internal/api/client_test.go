package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"navident-console/internal/session"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, handler http.HandlerFunc, onUnauthorized func()) (*Client, *session.Store) {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(&session.Session{Token: "test-token", Username: "admin"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, 5*time.Second, store, quietLogger(), onUnauthorized), store
}

func TestRequestCarriesBearerAndQuery(t *testing.T) {
	var gotAuth, gotRequestID, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"ok"}`))
	}, nil)

	params := url.Values{}
	params.Set("page", "2")

	var out struct {
		Name string `json:"name"`
	}
	if err := client.Get(context.Background(), "/patients", params, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotQuery != "page=2" {
		t.Errorf("query = %q, want page=2", gotQuery)
	}
	if out.Name != "ok" {
		t.Errorf("decoded %q, want ok", out.Name)
	}
}

func TestUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	hookFired := false
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, func() { hookFired = true })

	err := client.Get(context.Background(), "/patients", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if !hookFired {
		t.Error("onUnauthorized hook not fired")
	}
	if store.Token() != "" {
		t.Error("session not cleared after 401")
	}
}

func TestNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, nil)

	if err := client.Get(context.Background(), "/patients/missing", nil, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRequestErrorKeepsStatusAndBody(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Validation failed"}`))
	}, nil)

	err := client.Post(context.Background(), "/patients", nil, map[string]string{}, nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", reqErr.StatusCode)
	}
	if reqErr.Body == "" {
		t.Error("Body not captured")
	}

	// A 400 is not a session problem.
	if store.Token() == "" {
		t.Error("session cleared on non-401 error")
	}
}

func TestGetBlob(t *testing.T) {
	payload := []byte("%PDF-1.4 fake")
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}, nil)

	blob, err := client.GetBlob(context.Background(), "/bills/1/pdf", nil)
	if err != nil {
		t.Fatalf("GetBlob: %v", err)
	}
	if blob.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q", blob.ContentType)
	}
	if string(blob.Data) != string(payload) {
		t.Errorf("Data = %q, want %q", blob.Data, payload)
	}
}
