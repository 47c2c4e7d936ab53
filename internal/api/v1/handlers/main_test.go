package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"smart-study-planner/configs"
	v1 "smart-study-planner/internal/api/v1"
	"smart-study-planner/internal/config"
	"smart-study-planner/internal/middleware"
	"smart-study-planner/internal/repository"
	"smart-study-planner/pkg/database"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func TestMain(m *testing.M) {
	// Initialize logger for testing
	logger.InitLoggers()

	// Set GO_ENV to "test" so LoadConfig does not print .env logs
	os.Setenv("GO_ENV", "test")

	// Database sqlite sementara untuk seluruh test
	tmpDir, err := os.MkdirTemp("", "planner-test-")
	if err != nil {
		fmt.Printf("Cannot create temp dir: %v\n", err)
		os.Exit(1)
	}

	cfg := configs.Config{
		DBPath:    filepath.Join(tmpDir, "planner_test.db"),
		JWTSecret: "secret",
	}
	config.DB = database.ConnectDB(cfg)

	repository.CreateTableIfNotExists(config.DB)

	// Run all tests
	code := m.Run()

	// Clean up secara eksplisit: defer tidak pernah jalan
	// karena os.Exit di bawah
	repository.DeleteAllTable(config.DB)
	config.DB.Close()
	logger.SyncLoggers()
	os.RemoveAll(tmpDir)

	os.Exit(code)
}

// CreateTestApp menginisialisasi aplikasi Fiber dengan route yang akan di-test
func CreateTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	v1.RegisterRoutes(app)
	return app
}

// RegisterTestUser mendaftarkan user baru dan login untuk mendapatkan token
func RegisterTestUser(app *fiber.App, t *testing.T) (token string, userID int, username string) {
	t.Helper()

	email := fmt.Sprintf("user_%d@example.com", time.Now().UnixNano())
	regBody := map[string]string{
		"firstname": "Test",
		"lastname":  "User",
		"email":     email,
		"password":  "secret123",
	}
	regJSON, _ := json.Marshal(regBody)
	regReq := httptest.NewRequest("POST", "/api/v1/register", bytes.NewReader(regJSON))
	regReq.Header.Set("Content-Type", "application/json")
	regResp, err := app.Test(regReq)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	defer regResp.Body.Close()
	if regResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected register status 200 but got %d", regResp.StatusCode)
	}

	var regResult map[string]interface{}
	if err := json.NewDecoder(regResp.Body).Decode(&regResult); err != nil {
		t.Fatalf("Error decoding register response: %v", err)
	}
	data, ok := regResult["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data field in register response")
	}
	userID = int(data["id"].(float64))
	username = data["username"].(string)

	// Login
	loginBody := map[string]string{
		"email":    email,
		"password": "secret123",
	}
	loginJSON, _ := json.Marshal(loginBody)
	loginReq := httptest.NewRequest("POST", "/api/v1/login", bytes.NewReader(loginJSON))
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp, err := app.Test(loginReq)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	defer loginResp.Body.Close()

	var loginResult map[string]interface{}
	if err := json.NewDecoder(loginResp.Body).Decode(&loginResult); err != nil {
		t.Fatalf("Error decoding login response: %v", err)
	}
	loginData, ok := loginResult["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data field in login response")
	}
	token, ok = loginData["token"].(string)
	if !ok || token == "" {
		t.Fatalf("Expected valid token")
	}

	return token, userID, username
}

// DoJSON mengirim request JSON dengan token dan men-decode response body
func DoJSON(app *fiber.App, t *testing.T, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

// MultipartRequest membangun request multipart dengan satu file.
// Header Content-Type per-part di-set manual karena CreateFormFile
// selalu memakai application/octet-stream.
func MultipartRequest(t *testing.T, method, url, token, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("Error creating multipart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Error writing multipart: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
