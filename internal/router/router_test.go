package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"med-reminder/internal/adapters/auth/jwtclaims"
	"med-reminder/internal/adapters/medapi"
	"med-reminder/internal/adapters/storage/memory"
	"med-reminder/internal/domain/account"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/domain/schedule"
	"med-reminder/internal/domain/sideeffects"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/router"

	"github.com/golang-jwt/jwt/v5"
)

// fakeBackend imita el backend REST con el envelope {success, data}.
type fakeBackend struct {
	t     *testing.T
	token string

	mu        sync.Mutex
	meds      []medicines.Medicine
	authCalls []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.authCalls = append(b.authCalls, r.Header.Get("Authorization"))

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		ok(w, map[string]any{"token": b.token, "user": map[string]any{"id": "u-1", "email": "ana@example.com", "role": "user"}})
		return
	case r.Header.Get("Authorization") != "Bearer "+b.token:
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid token"}`))
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/user-medicines":
		ok(w, b.meds)
	case r.Method == http.MethodPost && r.URL.Path == "/api/user-medicines":
		var m medicines.Medicine
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			b.t.Errorf("backend decode: %v", err)
		}
		m.ID = "m-1"
		b.meds = append(b.meds, m)
		ok(w, m)
	default:
		http.NotFound(w, r)
	}
}

func ok(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func signedToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u-1",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{t: t, token: signedToken(t)}
	bs := httptest.NewServer(backend)
	t.Cleanup(bs.Close)

	store := memory.NewKV()
	session := account.NewSession(store, nil)
	client, err := medapi.NewClient(
		medapi.Config{BaseURL: bs.URL, Timeout: 2 * time.Second},
		medapi.WithToken(router.BackendToken(session)),
		medapi.WithUnauthorizedHook(session.Clear),
	)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	medsSvc := medicines.NewService(client, client, medicines.Options{})
	h := router.NewRouter(router.Options{
		AuthVerifier: jwtclaims.NewVerifier(""),
		Location:     time.UTC,
		Account:      account.NewService(client, session, nil),
		Medicines:    medsSvc,
		Tracker:      tracker.NewStore(store, nil),
		SideEffects:  sideeffects.NewService(store, nil),
	})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, backend
}

func TestHTTP_EndToEnd_LoginScheduleComplete(t *testing.T) {
	ts, backend := newTestServer(t)
	today := schedule.DateString(time.Now().UTC())

	// 1) Sin sesión no hay acceso
	if st, _ := doReq(t, ts.URL, "GET", "/medicines", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", st)
	}

	// 2) Login: el token queda guardado en la sesión local
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", map[string]any{
			"email":    "ana@example.com",
			"password": "secret123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, body)
		}
	}

	// 3) Alta de medicamento: todos los días a las 08:00
	{
		st, body := doReq(t, ts.URL, "POST", "/medicines", map[string]any{
			"name":         "Aspirin",
			"type":         "pill",
			"dose":         map[string]any{"amount": 500, "unit": "mg"},
			"selectedDays": medicines.AllWeekdays,
			"times":        []map[string]any{{"time": "08:00", "dosage": "1 tablet"}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add medicine, got %d body=%s", st, body)
		}
	}

	// 4) El horario de hoy tiene una toma pendiente
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule?date="+today, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 schedule, got %d body=%s", st, body)
		}
		var out struct {
			Occurrences []schedule.Occurrence `json:"occurrences"`
			Pending     int                   `json:"pending"`
		}
		mustJSON(t, body, &out)
		if len(out.Occurrences) != 1 || out.Pending != 1 || out.Occurrences[0].MedicineID != "m-1" {
			t.Fatalf("unexpected schedule %s", body)
		}
	}

	// 5) Marcar la toma; la segunda vez es conflicto (no hay "desmarcar")
	req := map[string]any{"medicine_id": "m-1", "time_index": 0, "date": today}
	if st, body := doReq(t, ts.URL, "POST", "/doses/complete", req); st != http.StatusOK {
		t.Fatalf("expected 200 complete, got %d body=%s", st, body)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/doses/complete", req); st != http.StatusConflict {
		t.Fatalf("expected 409 on second complete, got %d", st)
	}

	// 6) Journal de efectos secundarios
	if st, body := doReq(t, ts.URL, "POST", "/side-effects", map[string]any{
		"medicineId":   "m-1",
		"medicineName": "Aspirin",
		"description":  "mild headache",
	}); st != http.StatusCreated {
		t.Fatalf("expected 201 side effect, got %d body=%s", st, body)
	}

	// 7) Logout borra la sesión
	if st, _ := doReq(t, ts.URL, "POST", "/auth/logout", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 logout, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/medicines", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", st)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	for _, h := range backend.authCalls[1:] {
		if h != "Bearer "+backend.token {
			t.Fatalf("backend call without bearer token: %q", h)
		}
	}
}

func TestHTTP_PublicRoutes(t *testing.T) {
	ts, _ := newTestServer(t)

	if st, body := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, body)
	}

	st, body := doReq(t, ts.URL, "GET", "/bmi?weight_kg=70&height_cm=175", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"bmi":22.9`) {
		t.Fatalf("bmi: %d %s", st, body)
	}

	// El admin no se monta sin servicio
	if st, _ := doReq(t, ts.URL, "GET", "/admin/stats", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unmounted admin, got %d", st)
	}
}

func TestHTTP_SwaggerDocListsRoutes(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("doc.json: %d %s", st, body)
	}
	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	mustJSON(t, body, &doc)

	routes := []struct{ path, method string }{
		{"/schedule", "get"},
		{"/doses/complete", "post"},
		{"/alerts/{alertKey}/take", "post"},
		{"/medicines", "post"},
		{"/medicines/{medicineID}", "delete"},
		{"/adherence/week", "get"},
		{"/auth/login", "post"},
		{"/pharmacies", "get"},
		{"/admin/audit-logs", "get"},
	}
	for _, r := range routes {
		if _, ok := doc.Paths[r.path][r.method]; !ok {
			t.Errorf("doc.json missing %s %s", r.method, r.path)
		}
	}
	for _, def := range []string{"medicines.Medicine", "schedule.Occurrence", "tracker.WeekStats"} {
		if _, ok := doc.Definitions[def]; !ok {
			t.Errorf("doc.json missing definition %s", def)
		}
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	out, _ := io.ReadAll(res.Body)
	return res.StatusCode, out
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}
