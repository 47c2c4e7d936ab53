package v1

import (
	"smart-study-planner/internal/api/v1/handlers"
	"smart-study-planner/internal/config"
	"smart-study-planner/internal/middleware"
	myws "smart-study-planner/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Auth
	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	// User
	userRoutes := api.Group("/users", middleware.UseToken)
	userRoutes.Get("/:id", handlers.GetUser)
	userRoutes.Put("/:id", handlers.UpdateUsername)
	userRoutes.Post("/:id/profile_picture", handlers.UploadProfilePicture)
	userRoutes.Get("/:id/profile_picture", handlers.GetProfilePicture)
	userRoutes.Post("/:id/qr_code", handlers.GenerateQRCode)
	userRoutes.Get("/:id/qr_code", handlers.GetQRCode)

	// Subject
	subjectRoutes := api.Group("/subjects", middleware.UseToken)
	subjectRoutes.Post("/", handlers.CreateSubject)
	subjectRoutes.Get("/", handlers.ListSubjects)
	subjectRoutes.Get("/:id", handlers.GetSubject)
	subjectRoutes.Put("/:id", handlers.UpdateSubject)
	subjectRoutes.Delete("/:id", handlers.DeleteSubject)

	// ToDo
	todoRoutes := api.Group("/todos", middleware.UseToken)
	todoRoutes.Post("/", handlers.CreateToDo)
	todoRoutes.Get("/", handlers.ListToDos)
	todoRoutes.Get("/:id", handlers.GetToDo)
	todoRoutes.Put("/:id", handlers.UpdateToDo)
	todoRoutes.Delete("/:id", handlers.DeleteToDo)

	// File
	fileRoutes := api.Group("/files", middleware.UseToken)
	fileRoutes.Post("/", handlers.UploadFile)
	fileRoutes.Get("/", handlers.ListFiles)
	fileRoutes.Get("/:id", handlers.GetFile)
	fileRoutes.Delete("/:id", handlers.DeleteFile)

	// Album & Picture
	albumRoutes := api.Group("/albums", middleware.UseToken)
	albumRoutes.Post("/", handlers.CreateAlbum)
	albumRoutes.Get("/", handlers.ListAlbums)
	albumRoutes.Get("/:id", handlers.GetAlbum)
	albumRoutes.Post("/:id/pictures", handlers.UploadPicture)
	albumRoutes.Get("/:id/pictures", handlers.ListPictures)

	pictureRoutes := api.Group("/pictures", middleware.UseToken)
	pictureRoutes.Get("/:id", handlers.GetPicture)
	pictureRoutes.Delete("/:id", handlers.DeletePicture)

	// WebSocket: siarkan event perubahan to-do ke klien yang sudah login
	api.Use("/ws", middleware.UseToken, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub := config.Hub
		if hub == nil {
			c.Close()
			return
		}
		client := &myws.Client{Conn: c}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
