// Package testutil hosts a fake portal API implementing the REST contract
// the client consumes: login, bearer-guarded resource CRUD with the
// pagination envelope, statistics endpoints and the multipart attendance
// finalize. Package tests run the client against it end to end.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"

	"github.com/umoja/portal/core/session"
)

type (
	// Account seeds a login identity on the fake server.
	Account struct {
		Phone    string
		Password string
		User     session.User
	}

	// Server is the fake portal API. Resources are generic in-memory
	// collections keyed by path suffix.
	Server struct {
		app      *echo.Echo
		ts       *httptest.Server
		signKey  []byte
		accounts []Account

		mu        sync.Mutex
		resources map[string][]map[string]interface{}
		nextID    int
		requests  []string // "METHOD path?query", in arrival order
	}
)

var resourcePaths = []string{
	"students", "payments", "income", "expenses", "payroll", "budgets",
	"terms", "employees", "advances",
	"site/employees", "site/attendance", "site/payroll", "site/reports",
	"site/sites", "site/managers",
}

func NewServer(accounts ...Account) *Server {
	s := &Server{
		app:       echo.New(),
		signKey:   []byte("test-secret"),
		accounts:  accounts,
		resources: make(map[string][]map[string]interface{}),
		nextID:    1,
	}
	s.app.HideBanner = true
	s.route()
	s.ts = httptest.NewServer(s.app)
	return s
}

func (s *Server) URL() string { return s.ts.URL }

func (s *Server) Close() { s.ts.Close() }

// Requests returns every request seen so far as "METHOD /path?query".
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Seed inserts a record directly into a resource collection.
func (s *Server) Seed(path string, record map[string]interface{}) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	record["id"] = id
	s.resources[path] = append(s.resources[path], record)
	return id
}

// TokenFor issues a signed token carrying the user's claims, the same
// shape the real backend issues.
func (s *Server) TokenFor(usr session.User) string {
	claims := &session.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   usr.ID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		Role:  usr.Role,
		Name:  usr.Name,
		Phone: usr.Phone,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) route() {
	s.app.Use(s.recordRequests)

	s.app.POST("/auth/login", s.login)

	// an endpoint that answers HTML where JSON is expected, for the
	// misconfigured-proxy classification
	s.app.GET("/misrouted", func(ctx echo.Context) error {
		return ctx.HTML(http.StatusOK, "<!DOCTYPE html><html><body>index</body></html>")
	})
	s.app.GET("/empty", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	})
	s.app.GET("/broken", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	})

	auth := s.app.Group("", s.requireBearer)
	for _, path := range resourcePaths {
		p := path
		auth.GET("/"+p, func(ctx echo.Context) error { return s.list(ctx, p) })
		auth.POST("/"+p, func(ctx echo.Context) error { return s.create(ctx, p) })
		auth.PUT("/"+p+"/:id", func(ctx echo.Context) error { return s.update(ctx, p) })
		auth.DELETE("/"+p+"/:id", func(ctx echo.Context) error { return s.remove(ctx, p) })
		auth.GET("/"+p+"/statistics", func(ctx echo.Context) error { return s.statistics(ctx, p) })
		auth.GET("/"+p+"/stats", func(ctx echo.Context) error { return s.statistics(ctx, p) })
	}
	auth.POST("/site/attendance/finalize", s.finalizeAttendance)
}

func (s *Server) recordRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		s.mu.Lock()
		s.requests = append(s.requests, ctx.Request().Method+" "+ctx.Request().URL.RequestURI())
		s.mu.Unlock()
		return next(ctx)
	}
}

func (s *Server) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if len(header) < 8 || header[:7] != "Bearer " {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "missing token"})
		}
		token, err := jwt.ParseWithClaims(header[7:], new(session.Claims), func(*jwt.Token) (interface{}, error) {
			return s.signKey, nil
		})
		if err != nil || !token.Valid {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "token expired"})
		}
		return next(ctx)
	}
}

func (s *Server) login(ctx echo.Context) error {
	var creds struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&creds); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "malformed request"})
	}
	for _, acc := range s.accounts {
		if acc.Phone == creds.Phone && acc.Password == creds.Password {
			return ctx.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data": echo.Map{
					"token": s.TokenFor(acc.User),
					"user":  acc.User,
				},
			})
		}
	}
	return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid phone number or password"})
}

func (s *Server) list(ctx echo.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]map[string]interface{}, 0)
	for _, record := range s.resources[path] {
		if matchesFilters(record, ctx.QueryParams()) {
			items = append(items, record)
		}
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	total := len(items)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    items[start:end],
		"pagination": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
			"hasNextPage": page < totalPages,
			"hasPrevPage": page > 1,
		},
	})
}

func (s *Server) create(ctx echo.Context, path string) error {
	record := make(map[string]interface{})
	if err := ctx.Bind(&record); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "malformed request"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	record["id"] = id
	s.resources[path] = append(s.resources[path], record)
	return ctx.JSON(http.StatusCreated, echo.Map{"success": true, "data": record})
}

func (s *Server) update(ctx echo.Context, path string) error {
	record := make(map[string]interface{})
	if err := ctx.Bind(&record); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "malformed request"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := ctx.Param("id")
	for i, existing := range s.resources[path] {
		if existing["id"] == id {
			record["id"] = id
			s.resources[path][i] = record
			return ctx.JSON(http.StatusOK, echo.Map{"success": true, "data": record})
		}
	}
	return ctx.JSON(http.StatusNotFound, echo.Map{"success": false, "message": fmt.Sprintf("record %s not found", id)})
}

func (s *Server) remove(ctx echo.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ctx.Param("id")
	for i, existing := range s.resources[path] {
		if existing["id"] == id {
			s.resources[path] = append(s.resources[path][:i], s.resources[path][i+1:]...)
			return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "deleted"})
		}
	}
	return ctx.JSON(http.StatusNotFound, echo.Map{"success": false, "message": fmt.Sprintf("record %s not found", id)})
}

func (s *Server) statistics(ctx echo.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	count := 0
	for _, record := range s.resources[path] {
		if !matchesFilters(record, ctx.QueryParams()) {
			continue
		}
		count++
		if amount, ok := record["amount"].(float64); ok {
			total += amount
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"overview": echo.Map{"total": total, "count": count},
		},
	})
}

func (s *Server) finalizeAttendance(ctx echo.Context) error {
	file, err := ctx.FormFile("photo")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "photo is required"})
	}
	date := ctx.FormValue("date")
	if date == "" {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "date is required"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	s.resources["site/attendance"] = append(s.resources["site/attendance"], map[string]interface{}{
		"id":      id,
		"date":    date,
		"photo":   file.Filename,
		"records": ctx.FormValue("records"),
		"status":  "finalized",
	})
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": id, "status": "finalized"}})
}

func matchesFilters(record map[string]interface{}, params map[string][]string) bool {
	for key, vals := range params {
		switch key {
		case "page", "limit", "sortBy", "sortOrder":
			continue
		}
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if fmt.Sprint(record[key]) != vals[0] {
			return false
		}
	}
	return true
}
