package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"smart-study-planner/internal/config"
	"smart-study-planner/internal/models"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Album Manager handlers

// CreateAlbum membuat album baru milik seorang user
func CreateAlbum(c *fiber.Ctx) error {
	// struct AlbumRequest menerima inputan dari user
	type AlbumRequest struct {
		UserID    int    `json:"user_id" validate:"required"`
		AlbumName string `json:"album_name" validate:"required"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req AlbumRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create album", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create album", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	var albumID int
	err := config.DB.QueryRow(
		"INSERT INTO albums (user_id, album_name) VALUES (?, ?) RETURNING id",
		req.UserID, req.AlbumName,
	).Scan(&albumID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating album", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating album",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Album created successfully", zap.Int("album_id", albumID), zap.Int("user_id", req.UserID))
	return c.JSON(fiber.Map{
		"message": "Album created successfully",
		"success": true,
		"status":  200,
		"data": models.Album{
			ID:        albumID,
			UserID:    req.UserID,
			AlbumName: req.AlbumName,
		},
	})
}

// ListAlbums mengambil semua album
func ListAlbums(c *fiber.Ctx) error {
	rows, err := config.DB.Query("SELECT id, user_id, album_name FROM albums")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching albums", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching albums",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var album models.Album
		if err := rows.Scan(&album.ID, &album.UserID, &album.AlbumName); err != nil {
			logger.ErrorLogger.Error("Error scanning albums", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error scanning albums",
				"success": false,
				"status":  500,
			})
		}
		albums = append(albums, album)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over albums", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error iterating over albums",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Albums fetched successfully",
		"success": true,
		"status":  200,
		"data":    albums,
	})
}

// GetAlbum mengambil satu album berdasarkan ID
func GetAlbum(c *fiber.Ctx) error {
	albumID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid album ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid album ID",
			"success": false,
			"status":  400,
		})
	}

	// Coba ambil data dari cache Redis
	cacheKey := fmt.Sprintf("album:%d", albumID)
	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
			var album models.Album
			if err = json.Unmarshal([]byte(cached), &album); err == nil {
				return c.JSON(fiber.Map{
					"message": "Album found (from cache)",
					"success": true,
					"status":  200,
					"data":    album,
				})
			}
		}
	}

	// Jika tidak ada di cache, ambil data dari database
	var album models.Album
	err = config.DB.QueryRow(
		"SELECT id, user_id, album_name FROM albums WHERE id = ?", albumID,
	).Scan(&album.ID, &album.UserID, &album.AlbumName)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Album not found",
			"success": false,
			"status":  404,
		})
	}

	// Simpan data album ke cache Redis selama 1 jam
	if config.RedisClient != nil {
		if albumJSON, err := json.Marshal(album); err == nil {
			config.RedisClient.SetEX(config.Ctx, cacheKey, albumJSON, time.Hour)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Album found",
		"success": true,
		"status":  200,
		"data":    album,
	})
}

// Picture handlers

// UploadPicture menambahkan gambar ke sebuah album.
// Hanya nama file yang disimpan; isi gambar tidak dipersist.
func UploadPicture(c *fiber.Ctx) error {
	albumID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid album ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid album ID",
			"success": false,
			"status":  400,
		})
	}

	// Ambil file dari form-data
	file, err := c.FormFile("file")
	if err != nil {
		logger.ErrorLogger.Error("Error uploading picture", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Error uploading picture",
			"success": false,
			"status":  400,
		})
	}

	// Validasi file
	if err := validateFile(file); err != nil {
		logger.ErrorLogger.Error("Error validating picture", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": err.Error(),
			"success": false,
			"status":  400,
		})
	}

	var pictureID int
	err = config.DB.QueryRow(
		"INSERT INTO pictures (album_id, filename) VALUES (?, ?) RETURNING id",
		albumID, file.Filename,
	).Scan(&pictureID)
	if err != nil {
		logger.ErrorLogger.Error("Error saving picture", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error saving picture",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Picture uploaded", zap.Int("picture_id", pictureID), zap.Int("album_id", albumID))
	return c.JSON(fiber.Map{
		"message": "Picture uploaded successfully",
		"success": true,
		"status":  200,
		"data": models.Picture{
			ID:       pictureID,
			AlbumID:  albumID,
			Filename: file.Filename,
		},
	})
}

// ListPictures mengambil semua gambar dalam satu album
func ListPictures(c *fiber.Ctx) error {
	albumID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid album ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid album ID",
			"success": false,
			"status":  400,
		})
	}

	rows, err := config.DB.Query(
		"SELECT id, album_id, filename FROM pictures WHERE album_id = ?", albumID,
	)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching pictures", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching pictures",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	pictures := []models.Picture{}
	for rows.Next() {
		var picture models.Picture
		if err := rows.Scan(&picture.ID, &picture.AlbumID, &picture.Filename); err != nil {
			logger.ErrorLogger.Error("Error scanning pictures", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error scanning pictures",
				"success": false,
				"status":  500,
			})
		}
		pictures = append(pictures, picture)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over pictures", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error iterating over pictures",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Pictures fetched successfully",
		"success": true,
		"status":  200,
		"data":    pictures,
	})
}

// GetPicture mengambil satu gambar berdasarkan ID
func GetPicture(c *fiber.Ctx) error {
	pictureID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid picture ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid picture ID",
			"success": false,
			"status":  400,
		})
	}

	var picture models.Picture
	err = config.DB.QueryRow(
		"SELECT id, album_id, filename FROM pictures WHERE id = ?", pictureID,
	).Scan(&picture.ID, &picture.AlbumID, &picture.Filename)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Picture not found",
			"success": false,
			"status":  404,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Picture found",
		"success": true,
		"status":  200,
		"data":    picture,
	})
}

// DeletePicture menghapus gambar berdasarkan ID
func DeletePicture(c *fiber.Ctx) error {
	pictureID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid picture ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid picture ID",
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec("DELETE FROM pictures WHERE id = ?", pictureID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting picture", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting picture",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "Picture not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("Picture deleted successfully", zap.Int("picture_id", pictureID))
	return c.JSON(fiber.Map{
		"message": "Picture deleted successfully",
		"success": true,
		"status":  200,
	})
}
