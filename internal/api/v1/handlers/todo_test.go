package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToDo(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, result := DoJSON(app, t, "POST", "/api/v1/todos/", token, map[string]interface{}{
		"task":      "Belajar aljabar",
		"deadline":  "2026-09-15",
		"completed": false,
	})
	require.Equal(t, http.StatusOK, status)

	data := result["data"].(map[string]interface{})
	assert.Greater(t, data["id"].(float64), float64(0))
	assert.Equal(t, "Belajar aljabar", data["task"])
	assert.Equal(t, "2026-09-15", data["deadline"])
	assert.Equal(t, false, data["completed"])
}

func TestCreateToDoInvalidDeadline(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, _ := DoJSON(app, t, "POST", "/api/v1/todos/", token, map[string]interface{}{
		"task":     "Belajar kalkulus",
		"deadline": "next week",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

// TestToDoCompleteRoundTrip: buat to-do completed=false, update jadi true,
// lalu baca ulang dan pastikan field lain tidak berubah
func TestToDoCompleteRoundTrip(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, result := DoJSON(app, t, "POST", "/api/v1/todos/", token, map[string]interface{}{
		"task":      "Kerjakan PR fisika",
		"deadline":  "2026-10-01",
		"completed": false,
	})
	require.Equal(t, http.StatusOK, status)
	todoID := int(result["data"].(map[string]interface{})["id"].(float64))

	status, _ = DoJSON(app, t, "PUT", fmt.Sprintf("/api/v1/todos/%d", todoID), token, map[string]interface{}{
		"task":      "Kerjakan PR fisika",
		"deadline":  "2026-10-01",
		"completed": true,
	})
	require.Equal(t, http.StatusOK, status)

	status, result = DoJSON(app, t, "GET", fmt.Sprintf("/api/v1/todos/%d", todoID), token, nil)
	require.Equal(t, http.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, true, data["completed"])
	assert.Equal(t, "Kerjakan PR fisika", data["task"])
	assert.Equal(t, "2026-10-01", data["deadline"])
}

func TestUpdateToDoNotFound(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, _ := DoJSON(app, t, "PUT", "/api/v1/todos/999999", token, map[string]interface{}{
		"task":      "Ghost task",
		"deadline":  "2026-01-01",
		"completed": false,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListToDos(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, _ := DoJSON(app, t, "POST", "/api/v1/todos/", token, map[string]interface{}{
		"task":      "Baca bab 3",
		"deadline":  "2026-11-20",
		"completed": false,
	})
	require.Equal(t, http.StatusOK, status)

	status, result := DoJSON(app, t, "GET", "/api/v1/todos/", token, nil)
	require.Equal(t, http.StatusOK, status)

	todos := result["data"].([]interface{})
	assert.NotEmpty(t, todos)
}

func TestDeleteToDo(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, result := DoJSON(app, t, "POST", "/api/v1/todos/", token, map[string]interface{}{
		"task":      "Hapus aku",
		"deadline":  "2026-12-01",
		"completed": false,
	})
	require.Equal(t, http.StatusOK, status)
	todoID := int(result["data"].(map[string]interface{})["id"].(float64))

	status, result = DoJSON(app, t, "DELETE", fmt.Sprintf("/api/v1/todos/%d", todoID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted successfully", result["message"])

	status, _ = DoJSON(app, t, "GET", fmt.Sprintf("/api/v1/todos/%d", todoID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteToDoNotFound(t *testing.T) {
	app := CreateTestApp()
	token, _, _ := RegisterTestUser(app, t)

	status, _ := DoJSON(app, t, "DELETE", "/api/v1/todos/999999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
