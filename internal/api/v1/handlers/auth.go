package handlers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"smart-study-planner/internal/config"
	"smart-study-planner/internal/models"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Auth handlers

// generateUniqueUsername membuat username acak berformat "@user" + 6 digit,
// lalu mengecek ke database sampai menemukan yang belum terpakai.
// Peluang tabrakan sangat kecil, tapi loop tetap dibatasi
// supaya tidak pernah berputar tanpa henti.
func generateUniqueUsername() (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		username := fmt.Sprintf("@user%06d", rand.Intn(1000000))

		var count int
		err := config.DB.QueryRow(
			"SELECT COUNT(*) FROM users WHERE username = ?", username,
		).Scan(&count)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique username")
}

// Register adalah fungsi untuk mendaftarkan user baru.
// Username dibuat otomatis di sisi server, tidak dikirim oleh user.
func Register(c *fiber.Ctx) error {
	// struct RegisterRequest menerima inputan dari user
	type RegisterRequest struct {
		Firstname string `json:"firstname" validate:"required"`
		Lastname  string `json:"lastname" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	// Validasi dengan validator
	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// Buat username unik untuk user baru
	username, err := generateUniqueUsername()
	if err != nil {
		logger.ErrorLogger.Error("Error generating username", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating username",
			"success": false,
			"status":  500,
		})
	}

	// Hash the password using bcrypt with default cost
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error hashing password",
			"success": false,
			"status":  500,
		})
	}

	// Insert data user ke dalam database
	// RETURNING id supaya id yang di-generate langsung didapat
	// tanpa perlu select ulang berdasarkan username
	var userID int
	err = config.DB.QueryRow(
		"INSERT INTO users (username, firstname, lastname, email, password) VALUES (?, ?, ?, ?, ?) RETURNING id",
		username, req.Firstname, req.Lastname, req.Email, string(hashedPassword),
	).Scan(&userID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating user",
			"success": false,
			"status":  500,
		})
	}

	user := models.User{
		ID:        userID,
		Username:  username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("userID", userID), zap.String("username", username))
	return c.JSON(fiber.Map{
		"message": "Registered Successfully",
		"success": true,
		"status":  200,
		"data":    user,
	})
}

// Login memverifikasi email + password dan mengembalikan token JWT
func Login(c *fiber.Ctx) error {
	// struct LoginRequest menerima inputan dari user
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// query select digunakan untuk mengambil data user dari database
	// berdasarkan email yang dikirimkan oleh user
	var user models.User
	err := config.DB.QueryRow(
		"SELECT id, username, firstname, lastname, email, password FROM users WHERE email = ?",
		req.Email,
	).Scan(&user.ID, &user.Username, &user.Firstname, &user.Lastname, &user.Email, &user.Password)
	if err != nil {
		// error 401, jika data user tidak ditemukan
		logger.SecurityLogger.Warn("User not found", zap.String("email", req.Email))
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid email or password",
			"success": false,
			"status":  401,
		})
	}

	// invalid password
	// user.Password -> hash yang ada di database
	// req.Password -> password yang dikirimkan oleh user
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("email", req.Email))
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid email or password",
			"success": false,
			"status":  401,
		})
	}

	// membuat token JWT dengan menggunakan secret key
	// token JWT ini akan berisi user_id dan exp (expired time)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 1).Unix(),
	})

	tokenString, err := token.SignedString(config.SecretKey)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating token",
			"success": false,
			"status":  500,
		})
	}

	// kembalikan response success
	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"message": "Login Successful",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"user":  user,
			"token": tokenString,
		},
	})
}

// isUniqueViolation mengecek apakah error dari sqlite adalah pelanggaran
// constraint UNIQUE (driver tidak mengekspos kode error bertipe)
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
