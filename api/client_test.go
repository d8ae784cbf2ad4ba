package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/umoja/portal/core"
)

func testClient(base string) *Client {
	conf := &core.Config{API: core.APIConfig{BaseURL: base, Timeout: 2 * time.Second}}
	return NewClient(conf, nil)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "401 is auth-expired",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"message":"token expired"}`))
			},
			check: func(t *testing.T, err error) {
				if !core.IsAuthExpiredError(err) {
					t.Errorf("want auth-expired, got %v", err)
				}
			},
		},
		{
			name: "4xx with message is business",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"success":false,"message":"student already enrolled"}`))
			},
			check: func(t *testing.T, err error) {
				if !core.IsBusinessError(err) {
					t.Fatalf("want business, got %v", err)
				}
				if err.Error() != "student already enrolled" {
					t.Errorf("server message not surfaced verbatim: %q", err.Error())
				}
			},
		},
		{
			name: "4xx without message falls back to HTTP status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{}`))
			},
			check: func(t *testing.T, err error) {
				if !core.IsBusinessError(err) {
					t.Fatalf("want business, got %v", err)
				}
				if err.Error() != "HTTP 422" {
					t.Errorf("want generic HTTP 422 message, got %q", err.Error())
				}
			},
		},
		{
			name: "5xx is server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"success":false}`))
			},
			check: func(t *testing.T, err error) {
				if !core.IsServerError(err) {
					t.Errorf("want server error, got %v", err)
				}
			},
		},
		{
			name: "HTML body is a misconfigured endpoint, not a parse failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<!DOCTYPE html><html><body>welcome to nginx</body></html>"))
			},
			check: func(t *testing.T, err error) {
				if !core.IsMisconfiguredEndpoint(err) {
					t.Errorf("want misconfigured endpoint, got %v", err)
				}
				if !core.IsTransportError(err) {
					t.Errorf("misconfigured endpoint should classify as transport")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := testClient(srv.URL).Get(context.Background(), "/students", nil)
			if err == nil {
				t.Fatal("want an error")
			}
			tt.check(t, err)
		})
	}
}

func TestClient_SoftSuccess(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "non-JSON content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte("ok"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			env, err := testClient(srv.URL).Get(context.Background(), "/ping", nil)
			if err != nil {
				t.Fatalf("want soft success, got %v", err)
			}
			if !env.OK || env.Data != nil {
				t.Errorf("want OK with nil payload, got %+v", env)
			}
		})
	}
}

func TestClient_AuthExpiredHandlerFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var fired int32
	c := testClient(srv.URL)
	c.SetAuthExpiredHandler(func() { atomic.AddInt32(&fired, 1) })

	if _, err := c.Get(context.Background(), "/students", nil); !core.IsAuthExpiredError(err) {
		t.Fatalf("want auth-expired, got %v", err)
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Errorf("auth-expired handler fired %d times; want 1", fired)
	}
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.SetTokenSource(func() string { return "tok123" })

	if _, err := c.Get(context.Background(), "/students", nil); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q; want Bearer tok123", gotAuth)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	conf := &core.Config{API: core.APIConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}}
	c := NewClient(conf, nil)

	_, err := c.Get(context.Background(), "/slow", nil)
	if !core.IsTransportError(err) {
		t.Errorf("timeout should classify as transport, got %v", err)
	}
}

func TestParams_DropsEmptyValues(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   url.Values
	}{
		{
			name:   "empty string dropped",
			params: Params{"status": "", "classLevel": "Grade 1"},
			want:   url.Values{"classLevel": {"Grade 1"}},
		},
		{
			name:   "nil dropped",
			params: Params{"termId": nil, "page": 2},
			want:   url.Values{"page": {"2"}},
		},
		{
			name:   "nil map",
			params: nil,
			want:   url.Values{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Values()
			if got.Encode() != tt.want.Encode() {
				t.Errorf("Values() = %q; want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestEnvelope_BareArray(t *testing.T) {
	env, err := parseEnvelope([]byte(`[{"id":"1"},{"id":"2"}]`), "application/json")
	if err != nil {
		t.Fatal(err)
	}
	var items []map[string]string
	if err := env.Decode(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("want 2 items, got %d", len(items))
	}
	if env.Pagination != nil {
		t.Error("bare array should carry no pagination")
	}
}
