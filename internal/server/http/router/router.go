package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salesorder/internal/server/http/handlers"
	"github.com/polkiloo/salesorder/internal/server/http/middleware"
)

// Setup configures the gin engine with the draft and submission routes.
// The event stream is excluded from gzip so that each snapshot is flushed as written.
func Setup(facade handlers.DeskFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.Recover(logger))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`.*/events$`})))

	draftHandler := handlers.NewDraftHandler(facade)
	submissionHandler := handlers.NewSubmissionHandler(facade)

	api := engine.Group("/api")
	api.GET("/submissions", submissionHandler.List)

	drafts := api.Group("/drafts")
	drafts.POST("", draftHandler.Start)

	draft := drafts.Group("/:id")
	draft.GET("", draftHandler.Get)
	draft.DELETE("", draftHandler.Discard)
	draft.GET("/events", draftHandler.Events)
	draft.GET("/customers", draftHandler.Customers)
	draft.GET("/items", draftHandler.Items)
	draft.PUT("/customer", draftHandler.SelectCustomer)
	draft.DELETE("/customer", draftHandler.ClearCustomer)
	draft.POST("/pickers/:picker/open", draftHandler.OpenPicker)
	draft.POST("/pickers/:picker/close", draftHandler.ClosePicker)
	draft.PUT("/header", draftHandler.UpdateHeader)
	draft.POST("/lines/:code/toggle", draftHandler.ToggleLine)
	draft.PATCH("/lines/:code", draftHandler.UpdateLine)
	draft.DELETE("/lines/:code", draftHandler.RemoveLine)
	draft.DELETE("/lines", draftHandler.ClearLines)
	draft.POST("/submit", draftHandler.Submit)
	draft.POST("/new", draftHandler.New)

	return engine
}
