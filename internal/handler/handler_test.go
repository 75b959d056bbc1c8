package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tracker/internal/events"
	"tracker/internal/handler"
	"tracker/internal/model"
	"tracker/internal/store"
	"tracker/mocks"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var hc = http.Client{Timeout: 2 * time.Second}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.Nil(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := hc.Do(req)
	require.Nil(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	return res, string(b)
}

func TestUsers_List(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("List", mock.Anything).Return([]model.User{{ID: "u1", Username: "alice"}}, nil)

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).Routes())
	defer ts.Close()

	res, body := do(t, ts, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("ETag"))

	var users []model.User
	require.Nil(t, json.Unmarshal([]byte(body), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "alice", users[0].Username)
}

func TestUsers_Add(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("Create", mock.Anything, model.User{Username: "alice"}).
		Return(&model.User{ID: "u1", Username: "alice"}, nil)

	pub := mocks.NewPublisher(t)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.UserCreated && e.ID == "u1" && e.Username == "alice"
	})).Return(nil)

	ts := httptest.NewServer(handler.NewUsers(db, pub).Routes())
	defer ts.Close()

	res, body := do(t, ts, http.MethodPost, "/add", `{"username":"  alice  "}`)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `"User added!"`, body)
}

func TestUsers_Add_PublishFailureStillSucceeds(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("Create", mock.Anything, mock.Anything).Return(&model.User{ID: "u1", Username: "alice"}, nil)

	pub := mocks.NewPublisher(t)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("topic gone"))

	ts := httptest.NewServer(handler.NewUsers(db, pub).Routes())
	defer ts.Close()

	res, _ := do(t, ts, http.MethodPost, "/add", `{"username":"alice"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestUsers_Add_Validation(t *testing.T) {
	db := mocks.NewUserStorer(t)

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).Routes())
	defer ts.Close()

	res, body := do(t, ts, http.MethodPost, "/add", `{"username":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "username must be at least 3 characters")

	res, body = do(t, ts, http.MethodPost, "/add", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "username is required")

	res, _ = do(t, ts, http.MethodPost, "/add", `{"username":42}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUsers_Add_Duplicate(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("Create", mock.Anything, mock.Anything).Return(nil, errors.Wrap(store.ErrDuplicate, "username \"alice\""))

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).Routes())
	defer ts.Close()

	res, _ := do(t, ts, http.MethodPost, "/add", `{"username":"alice"}`)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestUsers_Get_NotFound(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("Get", mock.Anything, "missing").Return(nil, store.ErrNotFound)

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).Routes())
	defer ts.Close()

	res, body := do(t, ts, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"not found"}`, body)
}

func TestUsers_Delete(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("Delete", mock.Anything, "u1").Return(nil)

	pub := mocks.NewPublisher(t)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.UserDeleted && e.ID == "u1"
	})).Return(nil)

	ts := httptest.NewServer(handler.NewUsers(db, pub).Routes())
	defer ts.Close()

	res, body := do(t, ts, http.MethodDelete, "/u1", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `"User deleted."`, body)
}

func TestUsers_Unavailable(t *testing.T) {
	ts := httptest.NewServer(handler.NewUsers(store.Unavailable{}.Users(), events.Noop{}).Routes())
	defer ts.Close()

	res, _ := do(t, ts, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestUsers_InternalError(t *testing.T) {
	db := mocks.NewUserStorer(t)
	db.On("List", mock.Anything).Return(nil, errors.New("connection reset"))

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).Routes())
	defer ts.Close()

	res, body := do(t, ts, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.NotContains(t, body, "connection reset")
}

func TestUsers_Add_RejectsNonJSONContentType(t *testing.T) {
	db := mocks.NewUserStorer(t)

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).Routes())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/add", strings.NewReader(`{"username":"alice"}`))
	require.Nil(t, err)
	req.Header.Set("Content-Type", "text/plain")

	res, err := hc.Do(req)
	require.Nil(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	db.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUsers_Add_BodyTooLarge(t *testing.T) {
	db := mocks.NewUserStorer(t)

	ts := httptest.NewServer(handler.NewUsers(db, events.Noop{}).WithMaxBodyBytes(16).Routes())
	defer ts.Close()

	res, _ := do(t, ts, http.MethodPost, "/add", `{"username":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
}
