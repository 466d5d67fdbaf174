package huntoza

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, 5*time.Second, NewTokenStore(), zap.NewNop())
	return client, server
}

func TestListJobsSendsBearerAndDecodesEnvelope(t *testing.T) {
	var gotAuth, gotPath string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		if r.URL.Query().Get("status") != "applied" {
			t.Errorf("expected status query param, got %q", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jobs":        []map[string]string{{"_id": "j1", "company": "Acme"}},
			"currentPage": 2,
			"numOfPages":  5,
			"totalJobs":   42,
		})
	}))

	client.Tokens().Set("access-token", "refresh-token")

	page, err := client.ListJobs(context.Background(), JobListParams{Status: "applied", Page: 2})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}

	if gotAuth != "Bearer access-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/api/v1/jobs" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if len(page.Jobs) != 1 || page.Jobs[0].ID != "j1" {
		t.Errorf("unexpected jobs: %+v", page.Jobs)
	}
	if page.CurrentPage != 2 || page.TotalPages != 5 || page.TotalItems != 42 {
		t.Errorf("unexpected pagination: %+v", page)
	}
}

func TestAPIErrorMessageIsVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"msg":"please provide company and position"}`))
	}))

	_, err := client.CreateJob(context.Background(), JobInput{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "please provide company and position" {
		t.Errorf("expected verbatim server message, got %q", apiErr.Message)
	}
}

func TestSingleFlightRefresh(t *testing.T) {
	var refreshCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"token expired"}`))
			return
		}
		w.Write([]byte(`{"jobs":[],"currentPage":1,"numOfPages":1,"totalJobs":0}`))
	})
	mux.HandleFunc("/api/v1/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&refreshCalls, 1)

		var req refreshRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.RefreshToken != "valid-refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid refresh token"}`))
			return
		}

		// hold the refresh open so every waiter joins this flight
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"token":"fresh","refreshToken":"valid-refresh"}`))
	})

	client, _ := newTestClient(t, mux)
	client.Tokens().Set("stale", "valid-refresh")

	const workers = 5
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ListJobs(context.Background(), JobListParams{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d failed: %v", i, err)
		}
	}

	if n := atomic.LoadInt64(&refreshCalls); n != 1 {
		t.Errorf("expected exactly 1 refresh call, got %d", n)
	}
	if got := client.Tokens().Access(); got != "fresh" {
		t.Errorf("expected refreshed token stored, got %q", got)
	}
}

func TestRefreshFailureExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"token expired"}`))
	})
	mux.HandleFunc("/api/v1/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"invalid refresh token"}`))
	})

	client, _ := newTestClient(t, mux)
	client.Tokens().Set("stale", "bad-refresh")

	_, err := client.ListJobs(context.Background(), JobListParams{})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	if client.Tokens().Access() != "" || client.Tokens().Refresh() != "" {
		t.Error("expected tokens cleared after failed refresh")
	}
}

func TestLoginStoresTokenPair(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"token":"a1","refreshToken":"r1","user":{"name":"Jess","email":"jess@example.com"}}`))
	}))

	if err := client.Login(context.Background(), "jess@example.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if client.Tokens().Access() != "a1" || client.Tokens().Refresh() != "r1" {
		t.Error("expected token pair stored after login")
	}
}

func TestLogoutAlwaysClearsTokens(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"msg":"server error"}`))
	}))

	client.Tokens().Set("a1", "r1")

	_ = client.Logout(context.Background())

	if client.Tokens().Access() != "" {
		t.Error("expected tokens cleared even when logout request fails")
	}
}

func TestTransportErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force a connection error

	client := New(server.URL, time.Second, NewTokenStore(), zap.NewNop())

	_, err := client.ListJobs(context.Background(), JobListParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "unable to reach the server") {
		t.Errorf("expected friendly transport error, got %q", got)
	}
}
