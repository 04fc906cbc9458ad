//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edudash/internal/auth"
	"edudash/internal/config"
	"edudash/internal/content"
	"edudash/internal/logger"
	"edudash/internal/middleware"
)

// mockZoneService stands in for the zone service behind the handlers.
type mockZoneService struct {
	doc     json.RawMessage
	saveErr error
	saved   json.RawMessage
	savedTo string
}

var _ ZoneServicer = (*mockZoneService)(nil)

func (m *mockZoneService) ResolveKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return "default"
	}
	return key
}

func (m *mockZoneService) Load(_ context.Context, _ string) json.RawMessage {
	return m.doc
}

func (m *mockZoneService) Save(_ context.Context, key string, raw json.RawMessage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedTo = m.ResolveKey(key)
	m.saved = raw
	return nil
}

// newTestServer wires a full router around the mock service, the way main
// does, so tests exercise the session middleware and route guards too.
func newTestServer(t *testing.T, zones *mockZoneService, roster []auth.Credential) (*httptest.Server, *auth.Sessions) {
	t.Helper()

	log := logger.New(config.LogConfig{Level: "disabled", Format: "json"}, io.Discard)
	sessions := auth.NewSessions("test-secret", time.Hour)
	cookie := CookieSettings{SameSite: http.SameSiteLaxMode, Secure: false, MaxAge: time.Hour}

	router := NewRouter(
		NewAuthHandler(sessions, roster, cookie),
		NewZoneHandler(zones),
		middleware.Session(sessions),
		middleware.Error(log),
		nil,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func testRoster() []auth.Credential {
	return []auth.Credential{{Username: "Rehan", Password: "10820"}}
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func sessionCookieFrom(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

// --- /health ---

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("want 200; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "ok" {
		t.Errorf("want status ok; got %v", body["status"])
	}
}

// --- /api/login ---

func TestLogin_Success(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/login", `{"username":"Rehan","password":"10820"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200; got %d", resp.StatusCode)
	}

	cookie := sessionCookieFrom(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("login should set the session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	body := decodeBody(t, resp)
	if body["ok"] != true || body["admin"] != true {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/login", `{"username":"Rehan","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("want 401; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Invalid credentials" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if sessionCookieFrom(resp) != nil {
		t.Error("failed login must not set a cookie")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	for _, body := range []string{`{}`, `{"username":"Rehan"}`, `{"username":"  ","password":"x"}`, `not json`} {
		resp := postJSON(t, http.DefaultClient, srv.URL+"/api/login", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %q: want 400; got %d", body, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestLogin_EmptyRoster(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, nil)

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/login", `{"username":"Rehan","password":"10820"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("want 503; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Developer credentials are not configured" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

// --- /api/session ---

func TestSession_ReflectsCookie(t *testing.T) {
	srv, sessions := newTestServer(t, &mockZoneService{}, testRoster())

	// Anonymous.
	resp, err := http.Get(srv.URL + "/api/session")
	if err != nil {
		t.Fatal(err)
	}
	if body := decodeBody(t, resp); body["authenticated"] != false {
		t.Errorf("anonymous request should not be authenticated: %v", body)
	}

	// With a valid session cookie.
	token, err := sessions.Sign("Rehan")
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if body := decodeBody(t, resp); body["authenticated"] != true || body["admin"] != true {
		t.Errorf("valid cookie should authenticate: %v", body)
	}
}

func TestSession_TamperedCookie(t *testing.T) {
	srv, sessions := newTestServer(t, &mockZoneService{}, testRoster())

	token, err := sessions.Sign("Rehan")
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token + "x"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if body := decodeBody(t, resp); body["authenticated"] != false {
		t.Errorf("tampered cookie should not authenticate: %v", body)
	}
}

// --- /api/logout ---

func TestLogout_ClearsCookie(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/logout", ``)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200; got %d", resp.StatusCode)
	}
	cookie := sessionCookieFrom(resp)
	if cookie == nil {
		t.Fatal("logout should rewrite the session cookie")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("logout cookie should be empty and expired; got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

// --- GET /api/zone ---

func TestGetZone_ReturnsDocument(t *testing.T) {
	zones := &mockZoneService{doc: json.RawMessage(`{"categories":[],"videos":[]}`)}
	srv, _ := newTestServer(t, zones, testRoster())

	resp, err := http.Get(srv.URL + "/api/zone")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if _, ok := body["data"].(map[string]interface{}); !ok {
		t.Errorf("want document under data; got %v", body)
	}
}

func TestGetZone_MissingDocumentIsNull(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	resp, err := http.Get(srv.URL + "/api/zone")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("a missing document is not an error; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if data, present := body["data"]; !present || data != nil {
		t.Errorf("want explicit data:null; got %v", body)
	}
}

// --- POST /api/zone ---

func adminClient(t *testing.T, srv *httptest.Server, sessions *auth.Sessions) *http.Client {
	t.Helper()
	token, err := sessions.Sign("Rehan")
	if err != nil {
		t.Fatal(err)
	}
	jar := cookieJar{name: auth.CookieName, value: token}
	return &http.Client{Transport: jar}
}

// cookieJar injects a fixed session cookie into every request.
type cookieJar struct {
	name, value string
}

func (j cookieJar) RoundTrip(req *http.Request) (*http.Response, error) {
	req.AddCookie(&http.Cookie{Name: j.name, Value: j.value})
	return http.DefaultTransport.RoundTrip(req)
}

func TestSaveZone_RequiresAdmin(t *testing.T) {
	srv, _ := newTestServer(t, &mockZoneService{}, testRoster())

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/zone", `{"data":{"categories":[],"videos":[]}}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Unauthorized" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestSaveZone_Success(t *testing.T) {
	zones := &mockZoneService{}
	srv, sessions := newTestServer(t, zones, testRoster())
	client := adminClient(t, srv, sessions)

	resp := postJSON(t, client, srv.URL+"/api/zone", `{"key":"zone-b","data":{"categories":[],"videos":[]}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Errorf("unexpected body: %v", body)
	}
	if zones.savedTo != "zone-b" {
		t.Errorf("save should target the requested key; got %q", zones.savedTo)
	}
	if zones.saved == nil {
		t.Error("save should pass the document through")
	}
}

func TestSaveZone_MissingData(t *testing.T) {
	srv, sessions := newTestServer(t, &mockZoneService{}, testRoster())
	client := adminClient(t, srv, sessions)

	for _, payload := range []string{`{}`, `{"key":"default"}`, `not json`} {
		resp := postJSON(t, client, srv.URL+"/api/zone", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %q: want 400; got %d", payload, resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["error"] != "Invalid zone payload" {
			t.Errorf("payload %q: unexpected error message: %v", payload, body["error"])
		}
	}
}

func TestSaveZone_OversizedBody(t *testing.T) {
	srv, sessions := newTestServer(t, &mockZoneService{}, testRoster())
	client := adminClient(t, srv, sessions)

	// 3 MB of padding, past the router's 2 MB body limit.
	payload := `{"key":"` + strings.Repeat("a", 3<<20) + `","data":{"categories":[],"videos":[]}}`
	resp := postJSON(t, client, srv.URL+"/api/zone", payload)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413; got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Payload too large" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestSaveZone_ServiceErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid payload", content.ErrInvalidPayload, http.StatusBadRequest, "Invalid zone payload"},
		{"invalid tree", content.ErrInvalidTree, http.StatusBadRequest, "Invalid content tree"},
		{"storage failure", errors.New("disk full"), http.StatusInternalServerError, "Failed to save zone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, sessions := newTestServer(t, &mockZoneService{saveErr: tc.err}, testRoster())
			client := adminClient(t, srv, sessions)

			resp := postJSON(t, client, srv.URL+"/api/zone", `{"data":{"categories":[],"videos":[]}}`)
			if resp.StatusCode != tc.wantCode {
				t.Errorf("want %d; got %d", tc.wantCode, resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["error"] != tc.wantMsg {
				t.Errorf("unexpected error message: %v", body["error"])
			}
		})
	}
}
