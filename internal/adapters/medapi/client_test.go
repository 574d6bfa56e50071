package medapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"med-reminder/internal/domain/admin"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/ports/backend"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL, UserAgent: "test"}, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func TestList_SendsBearerAndDecodesEnvelope(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user-medicines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []medicines.Medicine{{ID: "m1", Name: "Aspirin"}})
	}, WithToken(func(context.Context) string { return "a.b.c" }))

	list, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Aspirin" {
		t.Fatalf("unexpected list %+v", list)
	}
	if gotAuth != "Bearer a.b.c" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestList_NormalizesBackendWeekdays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []map[string]any{{
			"id":   "m1",
			"name": "Aspirin",
			"schedule": map[string]any{
				"selectedDays": []string{"Monday", "THURSDAY "},
				"times":        []map[string]any{{"time": "08:00", "dosage": "1"}},
			},
		}})
	})

	list, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Schedule == nil {
		t.Fatalf("unexpected list %+v", list)
	}
	days := list[0].Schedule.SelectedDays
	if len(days) != 2 || days[0] != medicines.Monday || days[1] != medicines.Thursday {
		t.Fatalf("expected normalized days, got %q", days)
	}
	if !list[0].Schedule.HasDay(medicines.Monday) || list[0].Schedule.HasDay(medicines.Sunday) {
		t.Fatalf("HasDay mismatch for %q", days)
	}
}

func TestCall_UnauthorizedClearsSession(t *testing.T) {
	cleared := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"jwt expired"}`, http.StatusUnauthorized)
	}, WithUnauthorizedHook(func(context.Context) { cleared++ }))

	_, err := c.Me(context.Background())
	if !errors.Is(err, backend.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected session to be cleared once, got %d", cleared)
	}
}

func TestCall_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		is      error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"message":"slow down"}`, backend.RateLimitMessage, backend.ErrRateLimited},
		{"server message", http.StatusConflict, `{"message":"email already registered"}`, "email already registered", nil},
		{"generic message", http.StatusInternalServerError, `<html>oops</html>`, backend.GenericMessage, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Login(context.Background(), "a@b.c", "x")
			if tt.is != nil {
				if !errors.Is(err, tt.is) {
					t.Fatalf("expected %v, got %v", tt.is, err)
				}
				if err.Error() != tt.wantMsg {
					t.Fatalf("unexpected message %q", err.Error())
				}
				return
			}
			var apiErr *backend.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != tt.status || apiErr.Message != tt.wantMsg {
				t.Fatalf("unexpected api error %+v", apiErr)
			}
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	var out []string
	if err := decodeEnvelope([]byte(`{"success":true,"data":["a"]}`), &out); err != nil || len(out) != 1 {
		t.Fatalf("unexpected %v %v", out, err)
	}

	err := decodeEnvelope([]byte(`{"success":false,"message":"nope"}`), &out)
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "nope" {
		t.Fatalf("expected APIError nope, got %v", err)
	}

	// Un array pelado no es una respuesta válida.
	if err := decodeEnvelope([]byte(`["a"]`), &out); !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for bare array, got %v", err)
	}
	if err := decodeEnvelope([]byte(`{"data":["a"]}`), &out); !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without success flag, got %v", err)
	}
	if err := decodeEnvelope([]byte(`{"success":true,"data":{"items":[]}}`), &out); !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for wrong data shape, got %v", err)
	}
	if err := decodeEnvelope(nil, nil); err != nil {
		t.Fatalf("empty body without out must be ok, got %v", err)
	}
}

func TestNotConfiguredAndUnreachable(t *testing.T) {
	c, _ := NewClient(Config{})
	if _, err := c.List(context.Background()); !errors.Is(err, backend.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c, _ = NewClient(Config{BaseURL: url})
	if _, err := c.SendMessage(context.Background(), "hi"); !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAuditLogs_EncodesFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "50" || q.Get("action") != "login" || q.Get("userId") != "u1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		writeEnvelope(w, http.StatusOK, map[string]any{"items": []any{}, "page": 2, "limit": 50, "total": 0})
	})

	page, err := c.AuditLogs(context.Background(), admin.AuditQuery{Page: 2, Limit: 50, Action: "login", UserID: "u1"})
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if page.Page != 2 || page.Items == nil {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestRemove_EscapesIDAndAcceptsNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.EscapedPath() != "/api/user-medicines/a%2Fb" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.EscapedPath())
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.Remove(context.Background(), "a/b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
}
