package testutil

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Envelope selects how the fake backend wraps list responses
type Envelope int

const (
	EnvelopeBare Envelope = iota
	EnvelopeData
	EnvelopeItems
	EnvelopeNamed
)

// Account is a login known to the fake backend
type Account struct {
	User     model.User
	Password string
}

// Request is one request received by the fake backend
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

type failure struct {
	status int
	body   string
}

// Backend is an in-memory stand-in for the REST backend, served over
// httptest. Every /admin and /game route requires a token issued by login.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	envelope  Envelope
	accounts  map[string]*Account
	tokens    map[string]string
	levels    []model.Level
	ships     []model.ShipType
	configs   map[model.ID][]model.LevelShipConfig
	roles     string
	failures  map[string]failure
	requests  []Request
	nextID    int
	nextToken int
}

// NewBackend starts a fake backend that is closed with the test
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		accounts: make(map[string]*Account),
		tokens:   make(map[string]string),
		configs:  make(map[model.ID][]model.LevelShipConfig),
		roles:    `["Admin","Player"]`,
		failures: make(map[string]failure),
		nextID:   100,
	}
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend root
func (b *Backend) URL() string {
	return b.Server.URL
}

// SetEnvelope changes the list wrapper for subsequent responses
func (b *Backend) SetEnvelope(e Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.envelope = e
}

// SetRoles sets the raw JSON served by GET /admin/roles
func (b *Backend) SetRoles(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roles = raw
}

// AddAccount registers a login and returns its user id
func (b *Backend) AddAccount(username, password string, role model.Role) model.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addAccountLocked(username, password, username+"@example.com", role)
}

func (b *Backend) addAccountLocked(username, password, email string, role model.Role) model.ID {
	b.nextID++
	id := model.IDFromInt(b.nextID)
	active := true
	b.accounts[username] = &Account{
		User: model.User{
			ID:         id,
			Username:   username,
			Email:      email,
			Role:       role,
			IsActive:   &active,
			CurrentElo: 1000,
		},
		Password: password,
	}
	return id
}

// AddLevel stores a level and returns its id
func (b *Backend) AddLevel(name string, boardSize, timeLimit int) model.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := model.IDFromInt(b.nextID)
	b.levels = append(b.levels, model.Level{ID: id, Name: name, BoardSize: boardSize, TimeLimit: timeLimit})
	return id
}

// AddShipType stores a ship type and returns its id
func (b *Backend) AddShipType(name string, size int, modelCode string) model.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := model.IDFromInt(b.nextID)
	b.ships = append(b.ships, model.ShipType{ID: id, Name: name, Size: size, ModelCode: modelCode})
	return id
}

// IssueToken returns a valid token for username without a login request
func (b *Backend) IssueToken(username string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueTokenLocked(username)
}

func (b *Backend) issueTokenLocked(username string) string {
	b.nextToken++
	token := fmt.Sprintf("token-%d", b.nextToken)
	b.tokens[token] = username
	return token
}

// RevokeTokens invalidates every issued token
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]string)
}

// Fail makes every request matching method and path answer with status and
// body until Recover is called
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, body: body}
}

// Recover removes every injected failure
func (b *Backend) Recover() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]failure)
}

// Requests returns every request received so far
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// LastRequest returns the most recent request matching method and path
func (b *Backend) LastRequest(method, path string) (Request, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if b.requests[i].Method == method && b.requests[i].Path == path {
			return b.requests[i], true
		}
	}
	return Request{}, false
}

// User returns the stored account with the given id
func (b *Backend) User(id model.ID) (model.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if acc := b.accountByIDLocked(id); acc != nil {
		return acc.User, true
	}
	return model.User{}, false
}

// Levels returns the stored levels
func (b *Backend) Levels() []model.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Level(nil), b.levels...)
}

// ShipTypes returns the stored ship types
func (b *Backend) ShipTypes() []model.ShipType {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.ShipType(nil), b.ships...)
}

// ShipConfig returns the ship allotment stored for a level
func (b *Backend) ShipConfig(id model.ID) []model.LevelShipConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.LevelShipConfig(nil), b.configs[id]...)
}

func (b *Backend) router() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record)

	r.HandleFunc("/Health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "Healthy")
	}).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", b.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", b.register).Methods(http.MethodPost)
	r.HandleFunc("/Player/create", b.createPlayer).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(b.authenticate)
	admin.HandleFunc("/users", b.listUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", b.createUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", b.getUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", b.updateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", b.deleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/role", b.updateRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/status", b.updateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/roles", b.listRoles).Methods(http.MethodGet)

	game := r.PathPrefix("/game").Subrouter()
	game.Use(b.authenticate)
	game.HandleFunc("/levels", b.listLevels).Methods(http.MethodGet)
	game.HandleFunc("/levels", b.createLevel).Methods(http.MethodPost)
	game.HandleFunc("/levels/{id}", b.updateLevel).Methods(http.MethodPut)
	game.HandleFunc("/levels/{id}", b.deleteLevel).Methods(http.MethodDelete)
	game.HandleFunc("/levels/{id}/ships", b.configureShips).Methods(http.MethodPost)
	game.HandleFunc("/config/{id}", b.gameConfig).Methods(http.MethodGet)
	game.HandleFunc("/shiptypes", b.listShipTypes).Methods(http.MethodGet)
	game.HandleFunc("/shiptypes", b.createShipType).Methods(http.MethodPost)
	game.HandleFunc("/shiptypes/{id}", b.getShipType).Methods(http.MethodGet)
	game.HandleFunc("/shiptypes/{id}", b.updateShipType).Methods(http.MethodPut)
	game.HandleFunc("/shiptypes/{id}", b.deleteShipType).Methods(http.MethodDelete)

	return r
}

// record logs the request and applies injected failures
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(data)))

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(data),
		})
		f, failing := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		_, ok := b.tokens[token]
		b.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeList wraps items in the configured envelope
func (b *Backend) writeList(w http.ResponseWriter, field string, items any) {
	b.mu.Lock()
	env := b.envelope
	b.mu.Unlock()

	switch env {
	case EnvelopeData:
		writeJSON(w, http.StatusOK, map[string]any{"data": items})
	case EnvelopeItems:
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case EnvelopeNamed:
		writeJSON(w, http.StatusOK, map[string]any{field: items})
	default:
		writeJSON(w, http.StatusOK, items)
	}
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	b.mu.Lock()
	acc, ok := b.accounts[req.Username]
	if !ok || acc.Password != req.Password {
		b.mu.Unlock()
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	token := b.issueTokenLocked(acc.User.Username)
	user := acc.User
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, model.AuthResponse{
		Token:      token,
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		Email:      user.Email,
		CurrentElo: user.CurrentElo,
		Wins:       user.Wins,
		TotalGames: user.TotalGames,
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Username]; exists {
		writeMessage(w, http.StatusConflict, "Username already exists")
		return
	}
	id := b.addAccountLocked(req.Username, req.Password, req.Email, model.RolePlayer)
	writeJSON(w, http.StatusCreated, map[string]any{"userId": id, "message": "Registration successful"})
}

func (b *Backend) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.mu.Unlock()
	req["playerId"] = id
	writeJSON(w, http.StatusCreated, req)
}

func (b *Backend) accountByIDLocked(id model.ID) *Account {
	for _, acc := range b.accounts {
		if acc.User.ID == id {
			return acc
		}
	}
	return nil
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	users := make([]model.User, 0, len(b.accounts))
	for _, acc := range b.accounts {
		users = append(users, acc.User)
	}
	b.mu.Unlock()

	sortUsers(users)
	b.writeList(w, "users", users)
}

func sortUsers(users []model.User) {
	slices.SortFunc(users, func(a, b model.User) int {
		x, _ := strconv.Atoi(a.ID.String())
		y, _ := strconv.Atoi(b.ID.String())
		return cmp.Compare(x, y)
	})
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	acc := b.accountByIDLocked(model.ID(mux.Vars(r)["id"]))
	var user model.User
	if acc != nil {
		user = acc.User
	}
	b.mu.Unlock()

	if acc == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string     `json:"username"`
		Password string     `json:"password"`
		Email    string     `json:"email"`
		Role     model.Role `json:"role"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Role == "" {
		req.Role = model.RolePlayer
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Username]; exists {
		writeMessage(w, http.StatusConflict, "Username already exists")
		return
	}
	id := b.addAccountLocked(req.Username, req.Password, req.Email, req.Role)
	writeJSON(w, http.StatusCreated, map[string]any{"userId": id})
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	b.withAccount(w, r, func(acc *Account) {
		delete(b.accounts, acc.User.Username)
		acc.User.Username = req.Username
		acc.User.Email = req.Email
		b.accounts[acc.User.Username] = acc
	})
}

func (b *Backend) updateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role model.Role `json:"role"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	b.withAccount(w, r, func(acc *Account) {
		acc.User.Role = req.Role
	})
}

func (b *Backend) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	b.withAccount(w, r, func(acc *Account) {
		active := req.IsActive
		acc.User.IsActive = &active
	})
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request) {
	b.withAccount(w, r, func(acc *Account) {
		delete(b.accounts, acc.User.Username)
	})
}

func (b *Backend) withAccount(w http.ResponseWriter, r *http.Request, fn func(acc *Account)) {
	b.mu.Lock()
	acc := b.accountByIDLocked(model.ID(mux.Vars(r)["id"]))
	if acc != nil {
		fn(acc)
	}
	b.mu.Unlock()

	if acc == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeMessage(w, http.StatusOK, "User updated")
}

func (b *Backend) listRoles(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	raw := b.roles
	b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, raw)
}

func (b *Backend) listLevels(w http.ResponseWriter, r *http.Request) {
	b.writeList(w, "levels", b.Levels())
}

func (b *Backend) createLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LevelName string `json:"levelName"`
		BoardSize int    `json:"boardSize"`
		TimeLimit int    `json:"timeLimit"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	id := b.AddLevel(req.LevelName, req.BoardSize, req.TimeLimit)
	writeJSON(w, http.StatusCreated, map[string]any{"levelId": id, "message": "Level created"})
}

func (b *Backend) levelIndexLocked(id model.ID) int {
	for i, l := range b.levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) updateLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BoardSize int `json:"boardSize"`
		TimeLimit int `json:"timeLimit"`
	}
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	b.mu.Lock()
	i := b.levelIndexLocked(model.ID(mux.Vars(r)["id"]))
	if i >= 0 {
		b.levels[i].BoardSize = req.BoardSize
		b.levels[i].TimeLimit = req.TimeLimit
	}
	b.mu.Unlock()

	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Level not found")
		return
	}
	writeMessage(w, http.StatusOK, "Level updated")
}

func (b *Backend) deleteLevel(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	i := b.levelIndexLocked(model.ID(mux.Vars(r)["id"]))
	if i >= 0 {
		b.levels = append(b.levels[:i], b.levels[i+1:]...)
	}
	b.mu.Unlock()

	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Level not found")
		return
	}
	writeMessage(w, http.StatusOK, "Level deleted")
}

func (b *Backend) configureShips(w http.ResponseWriter, r *http.Request) {
	var req []model.LevelShipConfig
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	id := model.ID(mux.Vars(r)["id"])
	b.mu.Lock()
	found := b.levelIndexLocked(id) >= 0
	if found {
		b.configs[id] = req
	}
	b.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "Level not found")
		return
	}
	writeMessage(w, http.StatusOK, "Ships configured")
}

func (b *Backend) gameConfig(w http.ResponseWriter, r *http.Request) {
	id := model.ID(mux.Vars(r)["id"])
	b.mu.Lock()
	i := b.levelIndexLocked(id)
	var level model.Level
	if i >= 0 {
		level = b.levels[i]
	}
	ships := append([]model.LevelShipConfig{}, b.configs[id]...)
	b.mu.Unlock()

	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Level not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"levelId":   level.ID,
		"levelName": level.Name,
		"boardSize": level.BoardSize,
		"timeLimit": level.TimeLimit,
		"ships":     ships,
	})
}

func (b *Backend) listShipTypes(w http.ResponseWriter, r *http.Request) {
	b.writeList(w, "shipTypes", b.ShipTypes())
}

type shipTypeBody struct {
	ShipName  string `json:"shipName"`
	Size      int    `json:"size"`
	ModelCode string `json:"modelCode"`
}

func (b *Backend) createShipType(w http.ResponseWriter, r *http.Request) {
	var req shipTypeBody
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	id := b.AddShipType(req.ShipName, req.Size, req.ModelCode)
	writeJSON(w, http.StatusCreated, map[string]any{"shipTypeId": id})
}

func (b *Backend) shipIndexLocked(id model.ID) int {
	for i, s := range b.ships {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) getShipType(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	i := b.shipIndexLocked(model.ID(mux.Vars(r)["id"]))
	var ship model.ShipType
	if i >= 0 {
		ship = b.ships[i]
	}
	b.mu.Unlock()

	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Ship type not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ship})
}

func (b *Backend) updateShipType(w http.ResponseWriter, r *http.Request) {
	var req shipTypeBody
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	b.mu.Lock()
	i := b.shipIndexLocked(model.ID(mux.Vars(r)["id"]))
	if i >= 0 {
		b.ships[i].Name = req.ShipName
		b.ships[i].Size = req.Size
		b.ships[i].ModelCode = req.ModelCode
	}
	b.mu.Unlock()

	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Ship type not found")
		return
	}
	writeMessage(w, http.StatusOK, "Ship type updated")
}

func (b *Backend) deleteShipType(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	i := b.shipIndexLocked(model.ID(mux.Vars(r)["id"]))
	if i >= 0 {
		b.ships = append(b.ships[:i], b.ships[i+1:]...)
	}
	b.mu.Unlock()

	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Ship type not found")
		return
	}
	writeMessage(w, http.StatusOK, "Ship type deleted")
}
