package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w := httptest.NewRecorder()
	body := `{"username":"whiskers","password":"hunter22","password_confirm":"hunter22"}`
	a.HandleRegister(w, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}

	// duplicate username
	w = httptest.NewRecorder()
	a.HandleRegister(w, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", w.Code)
	}

	w = httptest.NewRecorder()
	login := `{"username":"whiskers","password":"hunter22"}`
	a.HandleLogin(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(login)))
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var resp LoginResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad login response: %v", err)
	}

	user, err := a.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if user != "whiskers" {
		t.Fatalf("token subject = %q, want whiskers", user)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w := httptest.NewRecorder()
	body := `{"username":"whiskers","password":"hunter22","password_confirm":"hunter22"}`
	a.HandleRegister(w, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	w = httptest.NewRecorder()
	login := `{"username":"whiskers","password":"wrong"}`
	a.HandleLogin(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(login)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", w.Code)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := a.ParseToken(""); err == nil {
		t.Fatal("empty token accepted")
	}
	if _, err := a.ParseToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
