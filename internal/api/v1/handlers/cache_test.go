package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"smart-study-planner/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestRedis menjalankan container Redis sekali pakai lewat dockertest.
// Test di-skip jika Docker tidak tersedia di mesin.
func startTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Docker not available, skipping Redis cache test: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Docker not available, skipping Redis cache test: %v", err)
	}

	resource, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		t.Skipf("Could not start Redis container: %v", err)
	}
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	var client *redis.Client
	// Tunggu sampai Redis di dalam container siap menerima koneksi
	if err := pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp")),
		})
		return client.Ping(config.Ctx).Err()
	}); err != nil {
		t.Skipf("Could not connect to Redis container: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// TestGetAlbumFromCache: get pertama mengisi cache dari database,
// get kedua harus dilayani dari Redis
func TestGetAlbumFromCache(t *testing.T) {
	app := CreateTestApp()
	token, userID, _ := RegisterTestUser(app, t)

	config.RedisClient = startTestRedis(t)
	t.Cleanup(func() {
		config.RedisClient = nil
	})

	status, result := DoJSON(app, t, "POST", "/api/v1/albums/", token, map[string]interface{}{
		"user_id":    userID,
		"album_name": "Cached",
	})
	require.Equal(t, http.StatusOK, status)
	albumID := int(result["data"].(map[string]interface{})["id"].(float64))

	// Get pertama: dari database, lalu disimpan ke cache
	status, result = DoJSON(app, t, "GET", fmt.Sprintf("/api/v1/albums/%d", albumID), token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Album found", result["message"])

	// Kunci cache harus sudah terisi dengan TTL
	ttl, err := config.RedisClient.TTL(config.Ctx, fmt.Sprintf("album:%d", albumID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), float64(0), "album must be cached with an expiry")

	// Get kedua: dilayani dari cache, data tetap sama
	status, result = DoJSON(app, t, "GET", fmt.Sprintf("/api/v1/albums/%d", albumID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Album found (from cache)", result["message"])

	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(albumID), data["id"])
	assert.Equal(t, float64(userID), data["user_id"])
	assert.Equal(t, "Cached", data["album_name"])
}

// TestGetAlbumCacheCorruptEntry: entri cache yang tidak bisa di-unmarshal
// harus diabaikan dan jatuh kembali ke database
func TestGetAlbumCacheCorruptEntry(t *testing.T) {
	app := CreateTestApp()
	token, userID, _ := RegisterTestUser(app, t)

	config.RedisClient = startTestRedis(t)
	t.Cleanup(func() {
		config.RedisClient = nil
	})

	status, result := DoJSON(app, t, "POST", "/api/v1/albums/", token, map[string]interface{}{
		"user_id":    userID,
		"album_name": "Rusak",
	})
	require.Equal(t, http.StatusOK, status)
	albumID := int(result["data"].(map[string]interface{})["id"].(float64))

	// Isi cache dengan payload yang bukan JSON album
	require.NoError(t, config.RedisClient.Set(config.Ctx,
		fmt.Sprintf("album:%d", albumID), "not-json", 0).Err())

	status, result = DoJSON(app, t, "GET", fmt.Sprintf("/api/v1/albums/%d", albumID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rusak", result["data"].(map[string]interface{})["album_name"])
}
