package handlers

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"smart-study-planner/internal/config"
	"smart-study-planner/internal/models"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// File Handling
// Fungsi untuk validasi file
func validateFile(file *multipart.FileHeader) error {
	// Validasi ukuran file maksimal 5MB
	if file.Size > 5<<20 {
		return fiber.NewError(fiber.StatusBadRequest, "File size exceeds the limit of 5MB")
	}

	// Validasi ekstensi file
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}
	if !allowedExts[ext] {
		return fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}

	// Validasi tipe konten
	contentType := file.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") && !strings.Contains(contentType, "pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "File must be an image or PDF")
	}

	return nil
}

// Fungsi untuk membaca isi file multipart ke memory
func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// UploadFile menyimpan metadata file (nama + tipe konten) ke database.
// Isi file sendiri tidak disimpan.
func UploadFile(c *fiber.Ctx) error {
	// Ambil file dari form-data
	file, err := c.FormFile("file")
	if err != nil {
		logger.ErrorLogger.Error("Error uploading file", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Error uploading file",
			"success": false,
			"status":  400,
		})
	}

	// Validasi file
	if err := validateFile(file); err != nil {
		logger.ErrorLogger.Error("Error validating file", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": err.Error(),
			"success": false,
			"status":  400,
		})
	}

	fileType := file.Header.Get("Content-Type")

	var fileID int
	err = config.DB.QueryRow(
		"INSERT INTO files (filename, file_type) VALUES (?, ?) RETURNING id",
		file.Filename, fileType,
	).Scan(&fileID)
	if err != nil {
		logger.ErrorLogger.Error("Error saving file metadata", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error saving file metadata",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("File uploaded", zap.Int("file_id", fileID), zap.String("filename", file.Filename))
	return c.JSON(fiber.Map{
		"message": "File uploaded successfully",
		"success": true,
		"status":  200,
		"data": models.FileData{
			ID:       fileID,
			Filename: file.Filename,
			FileType: fileType,
		},
	})
}

// ListFiles mengambil semua metadata file
func ListFiles(c *fiber.Ctx) error {
	rows, err := config.DB.Query("SELECT id, filename, file_type FROM files")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching files", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching files",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	files := []models.FileData{}
	for rows.Next() {
		var file models.FileData
		if err := rows.Scan(&file.ID, &file.Filename, &file.FileType); err != nil {
			logger.ErrorLogger.Error("Error scanning files", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error scanning files",
				"success": false,
				"status":  500,
			})
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over files", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error iterating over files",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Files fetched successfully",
		"success": true,
		"status":  200,
		"data":    files,
	})
}

// GetFile mengambil satu metadata file berdasarkan ID
func GetFile(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid file ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid file ID",
			"success": false,
			"status":  400,
		})
	}

	var file models.FileData
	err = config.DB.QueryRow(
		"SELECT id, filename, file_type FROM files WHERE id = ?", fileID,
	).Scan(&file.ID, &file.Filename, &file.FileType)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "File not found",
			"success": false,
			"status":  404,
		})
	}

	return c.JSON(fiber.Map{
		"message": "File found",
		"success": true,
		"status":  200,
		"data":    file,
	})
}

// DeleteFile menghapus metadata file berdasarkan ID
func DeleteFile(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid file ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid file ID",
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec("DELETE FROM files WHERE id = ?", fileID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting file", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting file",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "File not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("File deleted successfully", zap.Int("file_id", fileID))
	return c.JSON(fiber.Map{
		"message": "File deleted successfully",
		"success": true,
		"status":  200,
	})
}
