package handlers

import (
	"smart-study-planner/internal/config"
	"smart-study-planner/internal/models"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Subject Scheduler handlers

// CreateSubject adalah fungsi untuk membuat jadwal mata pelajaran baru
func CreateSubject(c *fiber.Ctx) error {
	// struct SubjectRequest menerima inputan dari user
	type SubjectRequest struct {
		Name string `json:"name" validate:"required"`
		Day  string `json:"day" validate:"required"`
		Time string `json:"time" validate:"required,datetime=15:04"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create subject", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create subject", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	var subjectID int
	err := config.DB.QueryRow(
		"INSERT INTO subjects (name, day, time) VALUES (?, ?, ?) RETURNING id",
		req.Name, req.Day, req.Time,
	).Scan(&subjectID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating subject", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating subject",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Subject created successfully", zap.Int("subject_id", subjectID))
	return c.JSON(fiber.Map{
		"message": "Subject created successfully",
		"success": true,
		"status":  200,
		"data": models.Subject{
			ID:   subjectID,
			Name: req.Name,
			Day:  req.Day,
			Time: req.Time,
		},
	})
}

// ListSubjects mengambil semua jadwal mata pelajaran
func ListSubjects(c *fiber.Ctx) error {
	rows, err := config.DB.Query("SELECT id, name, day, time FROM subjects")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching subjects", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching subjects",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Day, &subject.Time); err != nil {
			logger.ErrorLogger.Error("Error scanning subjects", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error scanning subjects",
				"success": false,
				"status":  500,
			})
		}
		subjects = append(subjects, subject)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over subjects", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error iterating over subjects",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Subjects fetched successfully",
		"success": true,
		"status":  200,
		"data":    subjects,
	})
}

// GetSubject mengambil satu jadwal mata pelajaran berdasarkan ID
func GetSubject(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid subject ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid subject ID",
			"success": false,
			"status":  400,
		})
	}

	var subject models.Subject
	err = config.DB.QueryRow(
		"SELECT id, name, day, time FROM subjects WHERE id = ?", subjectID,
	).Scan(&subject.ID, &subject.Name, &subject.Day, &subject.Time)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Subject not found",
			"success": false,
			"status":  404,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Subject found",
		"success": true,
		"status":  200,
		"data":    subject,
	})
}

// UpdateSubject menimpa seluruh field jadwal mata pelajaran
func UpdateSubject(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid subject ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid subject ID",
			"success": false,
			"status":  400,
		})
	}

	type SubjectRequest struct {
		Name string `json:"name" validate:"required"`
		Day  string `json:"day" validate:"required"`
		Time string `json:"time" validate:"required,datetime=15:04"`
	}

	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update subject", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in update subject", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec(
		"UPDATE subjects SET name = ?, day = ?, time = ? WHERE id = ?",
		req.Name, req.Day, req.Time, subjectID,
	)
	if err != nil {
		logger.ErrorLogger.Error("Error updating subject", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating subject",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "Subject not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("Subject updated successfully", zap.Int("subject_id", subjectID))
	return c.JSON(fiber.Map{
		"message": "Subject updated successfully",
		"success": true,
		"status":  200,
		"data": models.Subject{
			ID:   subjectID,
			Name: req.Name,
			Day:  req.Day,
			Time: req.Time,
		},
	})
}

// DeleteSubject menghapus jadwal mata pelajaran berdasarkan ID
func DeleteSubject(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid subject ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid subject ID",
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec("DELETE FROM subjects WHERE id = ?", subjectID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting subject", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting subject",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "Subject not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("Subject deleted successfully", zap.Int("subject_id", subjectID))
	return c.JSON(fiber.Map{
		"message": "Subject deleted successfully",
		"success": true,
		"status":  200,
	})
}
