package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "id", "secret", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "id", "secret", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateIntentSendsOrder(t *testing.T) {
	var got createOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Errorf("unexpected basic auth %q %q", user, pass)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"order_ABC","amount":118000,"currency":"INR","receipt":"o-1","status":"created"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/api", "key", "secret", testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	intent, err := client.CreateIntent(context.Background(), 118000, "INR", "o-1")
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.OrderRef != "order_ABC" || intent.Amount != 118000 || intent.Currency != "INR" || intent.Receipt != "o-1" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if got.Amount != 118000 || got.Currency != "INR" || got.Receipt != "o-1" {
		t.Fatalf("unexpected request payload %+v", got)
	}
}

func TestCreateIntentErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "3")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var tooMany TooManyRequestsError
				if !errors.As(err, &tooMany) || tooMany.RetryAfter != 3*time.Second {
					t.Fatalf("expected rate limit error, got %v", err)
				}
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Fatal("expected error")
				}
			},
		},
		{
			name: "missing id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"amount":1}`))
			},
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Fatal("expected error for missing id")
				}
			},
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{`))
			},
			check: func(t *testing.T, err error) {
				if err == nil {
					t.Fatal("expected decode error")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			client, err := NewHTTPClient(srv.URL, "key", "secret", testLogger())
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			_, err = client.CreateIntent(context.Background(), 100, "INR", "r")
			tc.check(t, err)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	client, err := NewHTTPClient("http://gateway.local", "key", "secret", testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sig := Sign("secret", "order_ABC", "pay_XYZ")
	if !client.VerifySignature("order_ABC", "pay_XYZ", sig) {
		t.Fatal("expected valid signature")
	}
	if client.VerifySignature("order_ABC", "pay_OTHER", sig) {
		t.Fatal("expected mismatch for different payment ref")
	}
	if client.VerifySignature("order_ABC", "pay_XYZ", "not-hex") {
		t.Fatal("expected invalid hex to fail")
	}
	if VerifySignature("", "order_ABC", "pay_XYZ", Sign("", "order_ABC", "pay_XYZ")) {
		t.Fatal("expected empty secret to fail")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 5*time.Second {
		t.Fatalf("expected default, got %v", got)
	}
	if got := parseRetryAfter("7"); got != 7*time.Second {
		t.Fatalf("expected 7s, got %v", got)
	}
	if got := parseRetryAfter("garbage"); got != 5*time.Second {
		t.Fatalf("expected default for garbage, got %v", got)
	}
}
