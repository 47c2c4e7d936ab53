package handlers

import (
	"smart-study-planner/internal/config"
	"smart-study-planner/internal/models"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// To-Do List handlers

// notifyToDoChange mengirim event perubahan ke hub websocket (jika aktif)
func notifyToDoChange(event string, data interface{}) {
	if config.Hub != nil {
		config.Hub.Notify(event, data)
	}
}

// CreateToDo adalah fungsi untuk membuat to-do baru
func CreateToDo(c *fiber.Ctx) error {
	// struct ToDoRequest menerima inputan dari user
	// Completed tidak diberi tag required karena false adalah nilai yang sah
	type ToDoRequest struct {
		Task      string `json:"task" validate:"required"`
		Deadline  string `json:"deadline" validate:"required,datetime=2006-01-02"`
		Completed bool   `json:"completed"`
	}

	// variabel req digunakan untuk menerima inputan dari user
	var req ToDoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	var todoID int
	err := config.DB.QueryRow(
		"INSERT INTO todos (task, deadline, completed) VALUES (?, ?, ?) RETURNING id",
		req.Task, req.Deadline, req.Completed,
	).Scan(&todoID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating todo",
			"success": false,
			"status":  500,
		})
	}

	todo := models.ToDo{
		ID:        todoID,
		Task:      req.Task,
		Deadline:  req.Deadline,
		Completed: req.Completed,
	}
	notifyToDoChange("todo_created", todo)

	logger.AuditLogger.Info("ToDo created successfully", zap.Int("todo_id", todoID))
	return c.JSON(fiber.Map{
		"message": "ToDo created successfully",
		"success": true,
		"status":  200,
		"data":    todo,
	})
}

// ListToDos mengambil semua to-do
func ListToDos(c *fiber.Ctx) error {
	rows, err := config.DB.Query("SELECT id, task, deadline, completed FROM todos")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching todos", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching todos",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	todos := []models.ToDo{}
	for rows.Next() {
		var todo models.ToDo
		if err := rows.Scan(&todo.ID, &todo.Task, &todo.Deadline, &todo.Completed); err != nil {
			logger.ErrorLogger.Error("Error scanning todos", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error scanning todos",
				"success": false,
				"status":  500,
			})
		}
		todos = append(todos, todo)
	}

	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over todos", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error iterating over todos",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"message": "ToDos fetched successfully",
		"success": true,
		"status":  200,
		"data":    todos,
	})
}

// GetToDo mengambil satu to-do berdasarkan ID
func GetToDo(c *fiber.Ctx) error {
	todoID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid todo ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid todo ID",
			"success": false,
			"status":  400,
		})
	}

	var todo models.ToDo
	err = config.DB.QueryRow(
		"SELECT id, task, deadline, completed FROM todos WHERE id = ?", todoID,
	).Scan(&todo.ID, &todo.Task, &todo.Deadline, &todo.Completed)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "ToDo not found",
			"success": false,
			"status":  404,
		})
	}

	return c.JSON(fiber.Map{
		"message": "ToDo found",
		"success": true,
		"status":  200,
		"data":    todo,
	})
}

// UpdateToDo menimpa seluruh field to-do
func UpdateToDo(c *fiber.Ctx) error {
	todoID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid todo ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid todo ID",
			"success": false,
			"status":  400,
		})
	}

	type ToDoRequest struct {
		Task      string `json:"task" validate:"required"`
		Deadline  string `json:"deadline" validate:"required,datetime=2006-01-02"`
		Completed bool   `json:"completed"`
	}

	var req ToDoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in update todo", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec(
		"UPDATE todos SET task = ?, deadline = ?, completed = ? WHERE id = ?",
		req.Task, req.Deadline, req.Completed, todoID,
	)
	if err != nil {
		logger.ErrorLogger.Error("Error updating todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating todo",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "ToDo not found",
			"success": false,
			"status":  404,
		})
	}

	todo := models.ToDo{
		ID:        todoID,
		Task:      req.Task,
		Deadline:  req.Deadline,
		Completed: req.Completed,
	}
	notifyToDoChange("todo_updated", todo)

	logger.AuditLogger.Info("ToDo updated successfully", zap.Int("todo_id", todoID))
	return c.JSON(fiber.Map{
		"message": "ToDo updated successfully",
		"success": true,
		"status":  200,
		"data":    todo,
	})
}

// DeleteToDo menghapus to-do berdasarkan ID
func DeleteToDo(c *fiber.Ctx) error {
	todoID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid todo ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid todo ID",
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec("DELETE FROM todos WHERE id = ?", todoID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting todo", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting todo",
			"success": false,
			"status":  500,
		})
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return c.Status(404).JSON(fiber.Map{
			"message": "ToDo not found",
			"success": false,
			"status":  404,
		})
	}

	notifyToDoChange("todo_deleted", fiber.Map{"id": todoID})

	logger.AuditLogger.Info("ToDo deleted successfully", zap.Int("todo_id", todoID))
	return c.JSON(fiber.Map{
		"message": "Task deleted successfully",
		"success": true,
		"status":  200,
	})
}
