package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/api"
	"todolist/internal/repository/sqlite"
)

func setupTestServer(t *testing.T) http.Handler {
	dbPath := filepath.Join(t.TempDir(), "todolist.db")

	repo, err := sqlite.New(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
	})

	srv, err := New(api.New(repo))
	require.NoError(t, err)

	return srv.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func addTask(t *testing.T, handler http.Handler, name, doneBy string) {
	t.Helper()
	resp := doRequest(t, handler, http.MethodPost, "/add", url.Values{
		"name":    {name},
		"done_by": {doneBy},
	})
	require.Equal(t, http.StatusSeeOther, resp.Code)
}

func decodeJSON(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func errorKind(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeJSON(t, resp)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response should carry an error envelope: %s", resp.Body.String())
	require.Len(t, errBody, 1)
	for kind := range errBody {
		return kind
	}
	return ""
}

func taskNames(t *testing.T, resp *httptest.ResponseRecorder) []string {
	t.Helper()
	var envelope struct {
		Tasks []struct {
			Name     string `json:"name"`
			DoBy     string `json:"do_by"`
			Complete bool   `json:"complete"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	names := make([]string, len(envelope.Tasks))
	for i, task := range envelope.Tasks {
		names[i] = task.Name
	}
	return names
}

func TestHome(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Pay rent")
}

func TestAddForm(t *testing.T) {
	handler := setupTestServer(t)

	resp := doRequest(t, handler, http.MethodGet, "/add", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "done_by")
}

func TestAddSubmit(t *testing.T) {
	handler := setupTestServer(t)

	resp := doRequest(t, handler, http.MethodPost, "/add", url.Values{
		"name":    {"Pay rent"},
		"done_by": {"2024-01-01T09:00"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))
}

func TestAddSubmit_InvalidDate(t *testing.T) {
	handler := setupTestServer(t)

	resp := doRequest(t, handler, http.MethodPost, "/add", url.Values{
		"name":    {"Pay rent"},
		"done_by": {"not-a-date"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestEditForm(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodGet, "/edit/Pay%20rent", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "2024-01-01T09:00")

	// Unknown name gets a 404 page
	resp = doRequest(t, handler, http.MethodGet, "/edit/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEditSubmit(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Old name", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodPost, "/edit/Old%20name", url.Values{
		"name":    {"New name"},
		"done_by": {"2024-02-01T10:00"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.Code)

	resp = doRequest(t, handler, http.MethodGet, "/search?name=New+name", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, handler, http.MethodPost, "/edit/missing", url.Values{
		"name":    {"whatever"},
		"done_by": {"2024-02-01T10:00"},
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBrowserDelete(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodGet, "/delete?task_name=Pay+rent", nil)
	assert.Equal(t, http.StatusSeeOther, resp.Code)

	resp = doRequest(t, handler, http.MethodGet, "/delete?task_name=Pay+rent", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(t, handler, http.MethodGet, "/delete", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBrowserDeleteAll(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "one", "2024-01-01T09:00")
	addTask(t, handler, "two", "2024-01-02T09:00")

	resp := doRequest(t, handler, http.MethodPost, "/delete_all", nil)
	assert.Equal(t, http.StatusSeeOther, resp.Code)

	resp = doRequest(t, handler, http.MethodGet, "/all", nil)
	assert.Empty(t, taskNames(t, resp))
}

func TestMarkComplete(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodPost, "/mark_complete/Pay%20rent", nil)
	assert.Equal(t, http.StatusSeeOther, resp.Code)

	// Unknown name is a 404, not a silent no-op
	resp = doRequest(t, handler, http.MethodPost, "/mark_complete/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListAll(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "cherry", "2024-01-01T09:00")
	addTask(t, handler, "apple", "2024-03-01T09:00")
	addTask(t, handler, "banana", "2024-02-01T09:00")

	resp := doRequest(t, handler, http.MethodGet, "/all", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, taskNames(t, resp))
}

func TestSearch(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodGet, "/search?name=Pay+rent", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"Pay rent"}, taskNames(t, resp))

	resp = doRequest(t, handler, http.MethodGet, "/search?name=missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NotFound", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodGet, "/search", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MissingField", errorKind(t, resp))
}

func TestAPICreate(t *testing.T) {
	handler := setupTestServer(t)

	resp := doRequest(t, handler, http.MethodPost, "/create", url.Values{
		"name":  {"Pay rent"},
		"do_by": {"2024-01-01T09:00"},
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	body := decodeJSON(t, resp)
	response, ok := body["response"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, response["success"], "Pay rent")
}

func TestAPICreate_Duplicate(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodPost, "/create", url.Values{
		"name":  {"Pay rent"},
		"do_by": {"2024-06-01T09:00"},
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "DuplicateKey", errorKind(t, resp))
}

func TestAPICreate_BadInput(t *testing.T) {
	handler := setupTestServer(t)

	resp := doRequest(t, handler, http.MethodPost, "/create", url.Values{
		"do_by": {"2024-01-01T09:00"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MissingField", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodPost, "/create", url.Values{
		"name":  {"Pay rent"},
		"do_by": {"not-a-date"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "InvalidDate", errorKind(t, resp))
}

func TestEditName(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Old name", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodPatch, "/edit-name/Old%20name?new_name=New+name", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, handler, http.MethodGet, "/search?name=New+name", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, handler, http.MethodPatch, "/edit-name/missing?new_name=anything", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NotFound", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodPatch, "/edit-name/New%20name", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MissingField", errorKind(t, resp))
}

func TestEditName_Collision(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "first", "2024-01-01T09:00")
	addTask(t, handler, "second", "2024-02-01T09:00")

	resp := doRequest(t, handler, http.MethodPatch, "/edit-name/first?new_name=second", nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "DuplicateKey", errorKind(t, resp))
}

func TestEditDoBy(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodPatch, "/edit-do-by/Pay%20rent?new_do_by=2024-02-01T10%3A30", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, handler, http.MethodPatch, "/edit-do-by/Pay%20rent?new_do_by=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "InvalidDate", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodPatch, "/edit-do-by/Pay%20rent", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MissingField", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodPatch, "/edit-do-by/missing?new_do_by=2024-02-01T10%3A30", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEditCompletion(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodPatch, "/edit-completion/Pay%20rent?new_completion=TRUE", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, handler, http.MethodGet, "/search?name=Pay+rent", nil)
	body := decodeJSON(t, resp)
	tasks := body["tasks"].([]interface{})
	assert.True(t, tasks[0].(map[string]interface{})["complete"].(bool))

	resp = doRequest(t, handler, http.MethodPatch, "/edit-completion/Pay%20rent?new_completion=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "InvalidValue", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodPatch, "/edit-completion/Pay%20rent", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MissingField", errorKind(t, resp))

	resp = doRequest(t, handler, http.MethodPatch, "/edit-completion/missing?new_completion=true", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteTask(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodDelete, "/delete-task/Pay%20rent", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, handler, http.MethodDelete, "/delete-task/Pay%20rent", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NotFound", errorKind(t, resp))
}

func TestClear(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "one", "2024-01-01T09:00")
	addTask(t, handler, "two", "2024-01-02T09:00")

	resp := doRequest(t, handler, http.MethodPost, "/clear", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeJSON(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.Contains(t, body["message"], "2")

	// Clearing an empty collection still succeeds
	resp = doRequest(t, handler, http.MethodPost, "/clear", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	body = decodeJSON(t, resp)
	assert.Equal(t, "success", body["status"])
}

func TestTaskJSONShape(t *testing.T) {
	handler := setupTestServer(t)

	addTask(t, handler, "Pay rent", "2024-01-01T09:00")

	resp := doRequest(t, handler, http.MethodGet, "/all", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Tasks []map[string]interface{} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Tasks, 1)

	task := envelope.Tasks[0]
	assert.Equal(t, "Pay rent", task["name"])
	assert.Equal(t, false, task["complete"])
	// RFC3339 due date
	assert.Contains(t, task["do_by"], "2024-01-01T09:00:00")
}

func TestRequestIDHeader(t *testing.T) {
	handler := setupTestServer(t)

	resp := doRequest(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
}
