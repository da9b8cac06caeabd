package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"aggregat4/gonewtab/internal/bookmarks"
	"aggregat4/gonewtab/internal/domain"
	"aggregat4/gonewtab/internal/pdfsession"
	"aggregat4/gonewtab/internal/repository"
	"aggregat4/gonewtab/internal/settings"

	baselibmiddleware "github.com/aggregat4/go-baselib-services/v3/middleware"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed public/views/*.html
var viewTemplates embed.FS

//go:embed public/images/*.svg
var images embed.FS

const sessionName = "newtab_session"

// uploadFormOverhead is the room left for multipart headers and form fields on top of the maximum
// upload size.
const uploadFormOverhead = 4 * 1024

// Controller owns the state the page is rendered from. Every handler goes through the stores so
// that each change is persisted before it is shown.
type Controller struct {
	Store     *repository.Store
	Settings  *settings.Store
	Bookmarks *bookmarks.Store
	Pdf       *pdfsession.Session
	Config    domain.Configuration
}

func RunServer(controller Controller) {
	e := newEcho(controller, csrfMiddleware())
	// Set server timeouts based on advice from https://blog.cloudflare.com/the-complete-guide-to-golang-net-http-timeouts/#1687428081
	e.Server.ReadTimeout = time.Duration(controller.Config.ServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(controller.Config.ServerWriteTimeoutSeconds) * time.Second
	// Start the server
	port := controller.Config.ServerPort
	e.Logger.Fatal(e.Start(":" + strconv.Itoa(port)))
	// NO MORE CODE HERE, IT WILL NOT BE EXECUTED
}

// csrfMiddleware rejects state changing requests whose Origin does not match the Host. It covers
// the form posts and the JSON API alike.
func csrfMiddleware() echo.MiddlewareFunc {
	return baselibmiddleware.CreateCsrfMiddlewareWithSkipper(func(c echo.Context) bool {
		return false
	})
}

// uploadLimit rejects upload requests with 413 before the multipart body is read.
func uploadLimit(maxUploadSizeBytes int) echo.MiddlewareFunc {
	return middleware.BodyLimit(fmt.Sprintf("%dB", maxUploadSizeBytes+uploadFormOverhead))
}

// newEcho builds the echo instance with templates, middleware and all routes. Extra middleware is
// appended after the defaults.
func newEcho(controller Controller, extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = &Template{
		templates: template.Must(template.New("").Funcs(templateFuncs()).ParseFS(viewTemplates, "public/views/*.html")),
	}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	sessionCookieSecretKey := controller.Config.SessionCookieSecretKey
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionCookieSecretKey))))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(extra...)

	// Endpoints
	imageFS := echo.MustSubFS(images, "public/images") // MustSubFS strips the prefix that embed.FS adds to every path
	e.StaticFS("/images", imageFS)
	e.GET("/", controller.showIndex)
	e.GET("/search", controller.search)
	e.POST("/settings", controller.updateSettings)
	e.POST("/folders", controller.createFolder)
	e.POST("/folders/delete", controller.deleteFolder)
	e.POST("/folders/import", controller.importLocalFolder)
	e.POST("/bookmarks", controller.addBookmark)
	e.POST("/bookmarks/delete", controller.deleteBookmark)
	e.POST("/bookmarks/upload", controller.uploadBookmarks, uploadLimit(controller.Config.MaxUploadSizeBytes))
	e.POST("/pdf/view", controller.viewPdf)
	e.POST("/pdf/close", controller.closePdf)
	e.GET("/feeds/bookmarks", controller.showFeed)

	api := e.Group("/api")
	api.GET("/state", controller.apiState)
	api.PATCH("/settings", controller.apiUpdateSettings)
	api.POST("/folders", controller.apiCreateFolder)
	api.DELETE("/folders/:id", controller.apiDeleteFolder)
	api.POST("/folders/import", controller.apiImportLocalFolder)
	api.POST("/folders/:id/bookmarks", controller.apiAddBookmark)
	api.DELETE("/bookmarks/:id", controller.apiDeleteBookmark)
	api.PUT("/pdf", controller.apiViewPdf)
	api.DELETE("/pdf", controller.apiClosePdf)
	return e
}

func handleInternalServerError(c echo.Context, err error) error {
	log.Println(err)
	return c.Render(http.StatusInternalServerError, "error-internalserver", nil)
}

func addFlash(c echo.Context, message string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		log.Printf("Error getting session for flash message: %v", err)
		return
	}
	sess.AddFlash(message)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Printf("Error saving flash message: %v", err)
	}
}

// popFlashes returns the pending flash messages and removes them from the session.
func popFlashes(c echo.Context) []string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		log.Printf("Error getting session for flash messages: %v", err)
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Printf("Error clearing flash messages: %v", err)
	}
	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if message, ok := f.(string); ok {
			messages = append(messages, message)
		}
	}
	return messages
}

type Template struct {
	templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
