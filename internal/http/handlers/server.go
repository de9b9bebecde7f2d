package handlers

import (
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"memberportal/internal/config"
)

const bodyLimit = 1 << 20 // 1 MiB

// NewServer builds the application with its full middleware stack and
// routes. Access log lines go to accessLog.
func NewServer(cfg config.Config, db *sqlx.DB, accessLog io.Writer) (*fiber.App, *Deps) {
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          ErrorHandler,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: accessLog}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(cfg.Session.Secret)}))

	app.Static("/static", cfg.StaticDir)

	deps := NewDeps(db, cfg)
	Routes(app, deps)
	return app, deps
}

// cookieKey derives the 32 byte AES key encryptcookie expects from SESSION_SECRET.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
