package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"messageboard/backend/internal/database"
	"messageboard/backend/internal/hub"
	"messageboard/backend/internal/models"
	"messageboard/backend/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Append(ctx context.Context, username, message string) (models.Message, error) {
	args := m.Called(ctx, username, message)
	return args.Get(0).(models.Message), args.Error(1)
}

func (m *mockStore) Sample(ctx context.Context, n int) ([]models.Message, error) {
	args := m.Called(ctx, n)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *mockStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var errDiskGone = fmt.Errorf("%w: unable to open database file", database.ErrStoreUnavailable)

func newTestRouter(t *testing.T, store MessageStore, feed *hub.Hub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := views.Load()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	NewMessageHandler(store, feed, zap.NewNop()).Register(router)
	return router
}

// newSQLiteStore opens a fresh on-disk store. The schema is only created when withSchema is set.
func newSQLiteStore(t *testing.T, withSchema bool) *database.MessageStore {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "board.sqlite"), zap.NewNop())
	require.NoError(t, err)

	store := database.NewMessageStore(db)
	t.Cleanup(func() { _ = store.Close() })
	if withSchema {
		require.NoError(t, store.EnsureSchema(context.Background()))
	}
	return store
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func httptestGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}
