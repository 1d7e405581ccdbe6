package app

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vianne/todo-api/config"
	"github.com/vianne/todo-api/database"
	"github.com/vianne/todo-api/handlers"
	"github.com/vianne/todo-api/middleware"
	"github.com/vianne/todo-api/router"
	"github.com/vianne/todo-api/store"
	"github.com/vianne/todo-api/token"
)

// SetupAndRunApp wires every dependency explicitly and starts the Fiber
// server. The database handle is created here, handed to the stores and
// closed when the server stops.
func SetupAndRunApp() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	db, err := database.Connect(os.Getenv("POSTGRESQL_URI"))
	if err != nil {
		return err
	}
	defer database.Close(db)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("you must set your 'JWT_SECRET' environmental variable")
	}

	codec := token.NewCodec([]byte(secret))
	users := store.NewUserStore(db, codec)
	todos := store.NewTodoStore(db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, handlers.New(users, todos, codec), middleware.Auth(users))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	return app.Listen(":" + port)
}
