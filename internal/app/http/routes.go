package routes

import (
	blocksapi "clubsite-api/internal/api/blocks"
	categoriesapi "clubsite-api/internal/api/categories"
	contactsapi "clubsite-api/internal/api/contacts"
	departmentsapi "clubsite-api/internal/api/departments"
	eventsapi "clubsite-api/internal/api/events"
	mediaapi "clubsite-api/internal/api/media"
	postsapi "clubsite-api/internal/api/posts"
	settingsapi "clubsite-api/internal/api/settings"
	tagsapi "clubsite-api/internal/api/tags"
	"clubsite-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Sanitize every mutating JSON body before it reaches a handler.
	api := r.Group("/")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	api.GET("/categories", categoriesapi.ListCategories)
	api.GET("/categories/:slug", categoriesapi.GetCategory)
	api.POST("/categories", categoriesapi.CreateCategory)
	api.PUT("/categories/:slug", categoriesapi.UpdateCategory)
	api.DELETE("/categories/:slug", categoriesapi.DeleteCategory)

	api.GET("/tags", tagsapi.ListTags)
	api.GET("/tags/:slug", tagsapi.GetTag)
	api.POST("/tags", tagsapi.CreateTag)
	api.PUT("/tags/:slug", tagsapi.UpdateTag)
	api.DELETE("/tags/:slug", tagsapi.DeleteTag)

	api.GET("/posts", postsapi.ListPosts)
	api.GET("/posts/:slug", postsapi.GetPost)
	api.POST("/posts", postsapi.CreatePost)
	api.PUT("/posts/:slug", postsapi.UpdatePost)
	api.DELETE("/posts/:slug", postsapi.DeletePost)

	api.GET("/departments", departmentsapi.ListDepartments)
	api.GET("/departments/:slug", departmentsapi.GetDepartment)
	api.POST("/departments", departmentsapi.CreateDepartment)
	api.PUT("/departments/:slug", departmentsapi.UpdateDepartment)
	api.DELETE("/departments/:slug", departmentsapi.DeleteDepartment)
	api.PUT("/departments/:slug/stats", departmentsapi.ReplaceStats)
	api.PUT("/departments/:slug/locations", departmentsapi.ReplaceLocations)
	api.GET("/departments/:slug/training-groups", departmentsapi.ListTrainingGroups)
	api.POST("/departments/:slug/training-groups", departmentsapi.CreateTrainingGroup)
	api.PATCH("/departments/:slug/training-groups/reorder", departmentsapi.ReorderTrainingGroups)
	api.PATCH("/departments/:slug/training-groups/:groupId", departmentsapi.UpdateTrainingGroup)
	api.DELETE("/departments/:slug/training-groups/:groupId", departmentsapi.DeleteTrainingGroup)
	api.POST("/departments/:slug/training-groups/:groupId/sessions", departmentsapi.CreateTrainingSession)
	api.PATCH("/departments/:slug/training-groups/:groupId/sessions/reorder", departmentsapi.ReorderTrainingSessions)
	api.PATCH("/departments/:slug/training-groups/:groupId/sessions/:id", departmentsapi.UpdateTrainingSession)
	api.DELETE("/departments/:slug/training-groups/:groupId/sessions/:id", departmentsapi.DeleteTrainingSession)
	api.GET("/departments/:slug/trainers", departmentsapi.ListTrainers)
	api.POST("/departments/:slug/trainers", departmentsapi.CreateTrainer)
	api.PATCH("/departments/:slug/trainers/:id", departmentsapi.UpdateTrainer)
	api.DELETE("/departments/:slug/trainers/:id", departmentsapi.DeleteTrainer)

	api.GET("/contact-persons", contactsapi.ListContactPersons)
	api.GET("/contact-persons/:id", contactsapi.GetContactPerson)
	api.POST("/contact-persons", contactsapi.CreateContactPerson)
	api.PUT("/contact-persons/:id", contactsapi.UpdateContactPerson)
	api.DELETE("/contact-persons/:id", contactsapi.DeleteContactPerson)

	api.GET("/events", eventsapi.ListEvents)
	api.GET("/events/:id", eventsapi.GetEvent)
	api.POST("/events", eventsapi.CreateEvent)
	api.PUT("/events/:id", eventsapi.UpdateEvent)
	api.DELETE("/events/:id", eventsapi.DeleteEvent)

	api.GET("/media", mediaapi.ListMedia)
	api.GET("/media/:id", mediaapi.GetMedia)
	api.POST("/media", mediaapi.CreateMedia)
	api.DELETE("/media/:id", mediaapi.DeleteMedia)

	api.GET("/settings", settingsapi.ListSettings)
	api.GET("/settings/:key", settingsapi.GetSetting)
	api.PUT("/settings/:key", settingsapi.SetSetting)

	api.GET("/blocks", blocksapi.GetBlocksByPage)
	api.GET("/blocks/:id", blocksapi.GetBlock)
	api.POST("/blocks", blocksapi.ReplacePage)
	api.PATCH("/blocks/:id", blocksapi.UpdateBlock)
	api.DELETE("/blocks/:id", blocksapi.DeleteBlock)
}
