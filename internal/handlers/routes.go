package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/chat"
	"github.com/Adhisheshu1210/sb-works-backend/internal/lifecycle"
	"github.com/Adhisheshu1210/sb-works-backend/internal/realtime"
)

// Register mounts the full HTTP surface plus the chat WebSocket endpoint.
func Register(app *fiber.App, gdb *gorm.DB, hub *realtime.Hub, rdb *redis.Client) {
	engine := lifecycle.NewEngine(gdb)

	authH := &AuthHandler{DB: gdb}
	freelancerH := &FreelancerHandler{DB: gdb}
	projectH := &ProjectHandler{DB: gdb, Engine: engine}
	applicationH := &ApplicationHandler{DB: gdb, Engine: engine, RDB: rdb}
	chatH := &ChatHandler{DB: gdb}
	socketH := NewSocketHandler(chat.NewManager(gdb, hub, rdb), hub)

	app.Post("/register", authH.Register)
	app.Post("/login", authH.Login)

	app.Get("/fetch-freelancer/:id", freelancerH.Fetch)
	app.Post("/update-freelancer", freelancerH.Update)

	app.Get("/fetch-project/:id", projectH.Fetch)
	app.Get("/fetch-projects", projectH.FetchAll)
	app.Post("/new-project", projectH.Create)

	app.Post("/make-bid", applicationH.MakeBid)
	app.Get("/fetch-applications", applicationH.FetchAll)
	app.Get("/approve-application/:id", applicationH.Approve)
	app.Get("/reject-application/:id", applicationH.Reject)

	app.Post("/submit-project", projectH.Submit)
	app.Get("/approve-submission/:id", projectH.ApproveSubmission)
	app.Get("/reject-submission/:id", projectH.RejectSubmission)

	app.Get("/fetch-users", authH.FetchUsers)
	app.Get("/fetch-chats/:id", chatH.Fetch)

	app.Get("/ws", websocket.New(socketH.Handle))
}
