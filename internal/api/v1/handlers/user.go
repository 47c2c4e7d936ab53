package handlers

import (
	"fmt"
	"net/http"

	"smart-study-planner/internal/config"
	"smart-study-planner/internal/models"
	"smart-study-planner/pkg/logger"
	"smart-study-planner/pkg/qr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// User handlers

// GetUser mengambil satu user berdasarkan ID (tanpa password dan blob)
func GetUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
			"success": false,
			"status":  400,
		})
	}

	var user models.User
	err = config.DB.QueryRow(
		"SELECT id, username, firstname, lastname, email FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Username, &user.Firstname, &user.Lastname, &user.Email)
	if err != nil {
		logger.SecurityLogger.Warn("User not found", zap.Int("user_id", userID))
		return c.Status(404).JSON(fiber.Map{
			"message": "User not found",
			"success": false,
			"status":  404,
		})
	}

	return c.JSON(fiber.Map{
		"message": "User found",
		"success": true,
		"status":  200,
		"data":    user,
	})
}

// UpdateUsername mengganti username user.
// Kolom username UNIQUE, jadi nama yang sudah dipakai akan ditolak 409.
func UpdateUsername(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
			"success": false,
			"status":  400,
		})
	}

	// struct UpdateUsernameRequest menerima inputan dari user
	type UpdateUsernameRequest struct {
		NewUsername string `json:"new_username" validate:"required"`
	}

	var req UpdateUsernameRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update username", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during update username", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec(
		"UPDATE users SET username = ? WHERE id = ?",
		req.NewUsername, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			logger.SecurityLogger.Warn("Duplicate username", zap.String("username", req.NewUsername))
			return c.Status(409).JSON(fiber.Map{
				"message": "Username already exists",
				"success": false,
				"status":  409,
			})
		}
		logger.ErrorLogger.Error("Error updating username", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating username",
			"success": false,
			"status":  500,
		})
	}

	// Tidak ada baris yang berubah berarti user tidak ada
	if rows, _ := res.RowsAffected(); rows == 0 {
		logger.SecurityLogger.Warn("User not found", zap.Int("user_id", userID))
		return c.Status(404).JSON(fiber.Map{
			"message": "User not found",
			"success": false,
			"status":  404,
		})
	}

	// Ambil data user terbaru dari database
	var user models.User
	err = config.DB.QueryRow(
		"SELECT id, username, firstname, lastname, email FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Username, &user.Firstname, &user.Lastname, &user.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching updated user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching updated user",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Username updated successfully", zap.Int("user_id", userID), zap.String("username", req.NewUsername))
	return c.JSON(fiber.Map{
		"message": "Username updated successfully",
		"success": true,
		"status":  200,
		"data":    user,
	})
}

// UploadProfilePicture menyimpan byte gambar langsung di baris user
func UploadProfilePicture(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
			"success": false,
			"status":  400,
		})
	}

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

	data, err := readMultipartFile(file)
	if err != nil {
		logger.ErrorLogger.Error("Error reading file", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error reading file",
			"success": false,
			"status":  500,
		})
	}

	res, err := config.DB.Exec("UPDATE users SET profile_picture = ? WHERE id = ?", data, userID)
	if err != nil {
		logger.ErrorLogger.Error("Error updating profile picture", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating profile picture",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		logger.SecurityLogger.Warn("User not found", zap.Int("user_id", userID))
		return c.Status(404).JSON(fiber.Map{
			"message": "User not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("Profile picture uploaded", zap.Int("user_id", userID), zap.String("filename", file.Filename))
	return c.JSON(fiber.Map{
		"message": "Profile picture uploaded successfully",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"filename": file.Filename,
		},
	})
}

// GetProfilePicture mengirim byte gambar profil apa adanya
func GetProfilePicture(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
			"success": false,
			"status":  400,
		})
	}

	var picture []byte
	err = config.DB.QueryRow(
		"SELECT profile_picture FROM users WHERE id = ?", userID,
	).Scan(&picture)
	if err != nil || len(picture) == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "Profile picture not found",
			"success": false,
			"status":  404,
		})
	}

	// Upload menerima jpg/jpeg/png/pdf, jadi tipe konten
	// ditentukan dari isi file, bukan di-hardcode
	c.Set("Content-Type", http.DetectContentType(picture))
	return c.Send(picture)
}

// GenerateQRCode membuat QR code PNG berisi "User ID: <id>"
// dan menyimpannya di baris user
func GenerateQRCode(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
			"success": false,
			"status":  400,
		})
	}

	qrData, err := qr.GeneratePNG(fmt.Sprintf("User ID: %d", userID))
	if err != nil {
		logger.ErrorLogger.Error("Error generating QR code", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating QR code",
			"success": false,
			"status":  500,
		})
	}

	res, err := config.DB.Exec("UPDATE users SET qr_code = ? WHERE id = ?", qrData, userID)
	if err != nil {
		logger.ErrorLogger.Error("Error saving QR code", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error saving QR code",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		logger.SecurityLogger.Warn("User not found", zap.Int("user_id", userID))
		return c.Status(404).JSON(fiber.Map{
			"message": "User not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("QR code generated", zap.Int("user_id", userID))
	return c.JSON(fiber.Map{
		"message": "QR code generated and saved successfully",
		"success": true,
		"status":  200,
	})
}

// GetQRCode mengirim QR code PNG milik user
func GetQRCode(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
			"success": false,
			"status":  400,
		})
	}

	var qrData []byte
	err = config.DB.QueryRow(
		"SELECT qr_code FROM users WHERE id = ?", userID,
	).Scan(&qrData)
	if err != nil || len(qrData) == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "QR code not found",
			"success": false,
			"status":  404,
		})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(qrData)
}
