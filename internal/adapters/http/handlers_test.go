package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lifedesk/core/internal/adapters/repository"
	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/infrastructure/logger"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// request runs one request through the handler chain and decodes the JSON
// response body into out when out is non-nil.
func request(t *testing.T, e *echo.Echo, method, target, body string, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if out != nil && rec.Code < http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func newTodoRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := services.NewTodoService(repository.NewTodoRepository(newTestStore(t)), logger.NewNop())
	h := NewTodoHandler(svc, logger.NewNop())

	e := newTestEcho()
	e.GET("/todos", h.ListTodos)
	e.POST("/todos", h.CreateTodo)
	e.PUT("/todos/:id", h.UpdateTodo)
	e.DELETE("/todos/:id", h.DeleteTodo)
	return e
}

func newBookmarkRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := services.NewBookmarkService(repository.NewBookmarkRepository(newTestStore(t)), logger.NewNop())
	h := NewBookmarkHandler(svc, logger.NewNop())

	e := newTestEcho()
	e.GET("/bookmarks", h.ListBookmarks)
	e.POST("/bookmarks", h.CreateBookmark)
	e.PUT("/bookmarks/:bid", h.UpdateBookmark)
	e.DELETE("/bookmarks/:bid", h.DeleteBookmark)
	return e
}

func newStatusRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := services.NewStatusService(repository.NewStatusReportRepository(newTestStore(t)), logger.NewNop())
	h := NewStatusHandler(svc, logger.NewNop())

	e := newTestEcho()
	e.GET("/server/status", h.ListReports)
	e.POST("/server/status", h.SubmitReport)
	return e
}

func newLedgerRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := services.NewLedgerService(repository.NewLedgerRepository(newTestStore(t)), logger.NewNop())
	h := NewLedgerHandler(svc, logger.NewNop())

	e := newTestEcho()
	e.GET("/ledger", h.ListEntries)
	e.POST("/ledger", h.CreateEntry)
	e.PUT("/ledger/:eid", h.UpdateEntry)
	e.DELETE("/ledger/:eid", h.DeleteEntry)
	e.GET("/asset", h.GetAsset)
	e.POST("/asset", h.OverwriteAsset)
	e.GET("/liability", h.GetLiability)
	e.POST("/liability", h.OverwriteLiability)
	return e
}
