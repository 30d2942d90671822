// Package auth provides the optional account layer: register/login over
// HTTP with bcrypt-hashed passwords in a JSON user store, and HS256 session
// tokens that bind a websocket connection to an account name. Guests never
// touch it.
package auth

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type userStore struct {
	mu    sync.RWMutex
	path  string
	users map[string]*User
}

func newUserStore(path string) *userStore {
	us := &userStore{path: path, users: map[string]*User{}}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	if b, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(b, &us.users)
	}
	return us
}

func (s *userStore) save() error {
	s.mu.RLock()
	b, _ := json.MarshalIndent(s.users, "", "  ")
	s.mu.RUnlock()
	return os.WriteFile(s.path, b, 0o600)
}

func (s *userStore) exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[strings.ToLower(username)]
	return ok
}

func (s *userStore) get(username string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(username)]
	return u, ok
}

func (s *userStore) put(u *User) error {
	s.mu.Lock()
	s.users[strings.ToLower(u.Username)] = u
	s.mu.Unlock()
	return s.save()
}

type Auth struct {
	users  *userStore
	jwtKey []byte
	issuer string
}

// New loads (or seeds) the user store and signing key under dataDir.
func New(dataDir string) (*Auth, error) {
	users := newUserStore(filepath.Join(dataDir, "users.json"))
	keyPath := filepath.Join(dataDir, "jwt.key")
	key, err := os.ReadFile(keyPath)
	if err != nil || len(key) < 32 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		if err := os.WriteFile(keyPath, key, 0o600); err != nil {
			return nil, err
		}
	}
	return &Auth{users: users, jwtKey: key, issuer: "gatos"}, nil
}

type RegisterReq struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type RegisterResp struct {
	OK bool `json:"ok"`
}

func (a *Auth) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 6 || req.Password != req.PasswordConfirm {
		http.Error(w, "invalid username or password mismatch / too short", http.StatusBadRequest)
		return
	}
	if a.users.exists(req.Username) {
		http.Error(w, "username already exists", http.StatusConflict)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "hash failed", http.StatusInternalServerError)
		return
	}
	u := &User{Username: req.Username, PasswordHash: string(hash), CreatedAt: time.Now()}
	if err := a.users.put(u); err != nil {
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(RegisterResp{OK: true})
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (a *Auth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	u, ok := a.users.get(req.Username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	claims := jwt.MapClaims{
		"sub": u.Username,
		"iss": a.issuer,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(a.jwtKey)
	if err != nil {
		http.Error(w, "token failed", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(LoginResp{Token: signed, Username: u.Username})
}

// ParseToken returns the account name a token was issued for.
func (a *Auth) ParseToken(tok string) (string, error) {
	if tok == "" {
		return "", errors.New("missing token")
	}
	t, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return a.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	if claims, ok := t.Claims.(jwt.MapClaims); ok {
		if sub, ok := claims["sub"].(string); ok {
			return sub, nil
		}
	}
	return "", errors.New("bad claims")
}
