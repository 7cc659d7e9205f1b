package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greenfold/wavetile.go/storage"
	"github.com/greenfold/wavetile.go/wfc"
)

/*

pure helpers

*/

func TestEnvDimension(t *testing.T) {
	defer os.Unsetenv(gridWidthEnvVar)

	os.Unsetenv(gridWidthEnvVar)
	if d := envDimension(gridWidthEnvVar, 12); d != 12 {
		t.Errorf("Unset dimension came back %d, not the fallback", d)
	}
	os.Setenv(gridWidthEnvVar, "30")
	if d := envDimension(gridWidthEnvVar, 12); d != 30 {
		t.Errorf("Dimension 30 came back %d", d)
	}
	for _, bad := range []string{"0", "-4", "wide"} {
		os.Setenv(gridWidthEnvVar, bad)
		if d := envDimension(gridWidthEnvVar, 12); d != 12 {
			t.Errorf("Unusable dimension %q came back %d, not the fallback", bad, d)
		}
	}
}

func TestAsErrorValue(t *testing.T) {
	in := fmt.Errorf("boom")
	if out := asErrorValue(in); out != in {
		t.Errorf("Error panic value came back as %v", out)
	}
	out := asErrorValue("not an error")
	if we, ok := out.(wfc.Error); !ok || we.Scope != wfc.RequestScope {
		t.Errorf("Non-error panic value came back as %v", out)
	}
}

func TestGetCookie(t *testing.T) {
	// a bare request gets a fresh httpx session cookie
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/solver/", nil)
	sid := getCookie(w, r)
	if !strings.HasPrefix(sid, "httpx-") {
		t.Errorf("Fresh session ID %q has the wrong protocol prefix", sid)
	}
	if cookies := w.Result().Cookies(); len(cookies) != 1 || cookies[0].Name != cookieName {
		t.Errorf("Fresh request didn't get a session cookie: %v", cookies)
	}

	// presenting the cookie again keeps the session
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest("GET", "/solver/", nil)
	r2.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	if sid2 := getCookie(w2, r2); sid2 != sid {
		t.Errorf("Same cookie selected a different session: %q vs %q", sid2, sid)
	}

	// a forwarded protocol that doesn't match the cookie starts over
	w3 := httptest.NewRecorder()
	r3 := httptest.NewRequest("GET", "/solver/", nil)
	r3.Header.Set("X-Forwarded-Proto", "https")
	r3.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	if sid3 := getCookie(w3, r3); sid3 == sid || !strings.HasPrefix(sid3, "https-") {
		t.Errorf("Protocol change kept session %q as %q", sid, sid3)
	}
}

/*

live server

*/

// connectOrSkip connects the storage tiers, skipping the test when
// they aren't available locally.
func connectOrSkip(t *testing.T) {
	os.Setenv("DBPREP_PATH", filepath.Join("..", "..", "dbprep"))
	os.Setenv("STATIC_DIRECTORY", filepath.Join("..", "..", "static"))
	os.Setenv("TEMPLATE_DIRECTORY", filepath.Join("..", "..", "static", "tmpl"))
	if _, _, err := storage.Connect(); err != nil {
		t.Skipf("Skipping: no local storage: %v", err)
	}
}

func TestServerSession(t *testing.T) {
	connectOrSkip(t)
	defer storage.Close()

	srv := httptest.NewServer(http.HandlerFunc(serveHTTP))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Couldn't make a cookie jar: %v", err)
	}
	browser := &http.Client{Jar: jar}

	// first contact redirects to the solver page
	r, err := browser.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("Request error on first contact: %v", err)
	}
	if r.StatusCode != http.StatusOK {
		t.Fatalf("First contact finished with status %v", r.Status)
	}
	if got := r.Request.URL.Path; got != "/solver/" {
		t.Errorf("First contact landed on %q", got)
	}
	r.Body.Close()

	// the state endpoint returns the session's grid
	r, err = browser.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatalf("Request error on state: %v", err)
	}
	var state wfc.GridState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		t.Fatalf("Couldn't decode state: %v", err)
	}
	r.Body.Close()
	if state.Width <= 0 || state.Height <= 0 || len(state.Cells) != state.Width*state.Height {
		t.Errorf("Nonsense state dimensions: %+v", state)
	}
	if state.Universe == 0 {
		t.Errorf("Session solver has no tile universe")
	}

	// stepping makes progress and eventually goes stable
	for i := 0; i < 1000 && state.Progress == wfc.ProgressWorking.String(); i++ {
		r, err = browser.Post(srv.URL+"/api/step", "application/json",
			strings.NewReader(`{"steps": 500}`))
		if err != nil {
			t.Fatalf("Request error on step: %v", err)
		}
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			t.Fatalf("Couldn't decode step result: %v", err)
		}
		r.Body.Close()
	}
	if state.Progress != wfc.ProgressStable.String() {
		t.Errorf("Solve never went stable: %+v", state)
	}
	if state.Resolved+state.Impossible != state.Width*state.Height {
		t.Errorf("Stable solve left cells undecided: %+v", state)
	}

	// resetting to another layout starts a fresh solve there
	r, err = browser.Get(srv.URL + "/reset/sample-2")
	if err != nil {
		t.Fatalf("Request error on reset: %v", err)
	}
	r.Body.Close()
	r, err = browser.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatalf("Request error on state after reset: %v", err)
	}
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		t.Fatalf("Couldn't decode state after reset: %v", err)
	}
	r.Body.Close()
	if state.Resolved == state.Width*state.Height {
		t.Errorf("Reset didn't discard the finished solve: %+v", state)
	}
}
