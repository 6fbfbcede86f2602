package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API endpoints.
func RegisterRoutes(e *gin.Engine, h *Handlers) {
	// Plot generation
	e.GET("/genres", h.Health.Genres)
	e.POST("/generate", h.Generate.Generate)
	e.POST("/generate/multiple", h.Generate.GenerateMultiple)
	e.POST("/generate/advanced", h.Generate.GenerateAdvanced)

	// Character memory
	characters := e.Group("/characters")
	{
		characters.GET("", h.Character.List)
		characters.POST("", h.Character.Add)
		characters.GET("/search", h.Character.Search)
		characters.GET("/statistics", h.Character.Statistics)
		characters.GET("/:name", h.Character.Get)
		characters.PUT("/:name", h.Character.Update)
		characters.DELETE("/:name", h.Character.Delete)
		characters.POST("/:name/development", h.Character.AddDevelopment)
		characters.POST("/:name/appearances", h.Character.AddAppearance)
	}

	// Conversation history
	memory := e.Group("/memory")
	{
		memory.GET("/conversation", h.Conversation.Get)
		memory.DELETE("/conversation", h.Conversation.Clear)
	}

	// World building
	world := e.Group("/world")
	{
		world.GET("/settings", h.World.ListSettings)
		world.POST("/settings", h.World.AddSetting)
		world.GET("/timeline", h.World.ListTimeline)
		world.POST("/timeline", h.World.AddTimelineEvent)
		world.GET("/plots", h.World.ListPlots)
		world.POST("/plots", h.World.AddPlot)
		world.POST("/plots/:id/resolve", h.World.ResolvePlot)
		world.GET("/consistency", h.World.Consistency)
	}

	// Story structure
	stories := e.Group("/stories")
	{
		stories.GET("", h.Story.List)
		stories.POST("", h.Story.Create)
		stories.GET("/:id", h.Story.Get)
		stories.POST("/:id/chapters", h.Story.AddChapter)
		stories.PUT("/:id/chapters/:number/status", h.Story.UpdateChapterStatus)
		stories.POST("/:id/chapters/:number/scenes", h.Story.AddScene)
		stories.PUT("/:id/chapters/:number/scenes/:scene/content", h.Story.UpdateSceneContent)
		stories.GET("/:id/suggestions", h.Story.Suggestions)
	}

	// Overview
	e.GET("/dashboard", h.Dashboard.Overview)
}
