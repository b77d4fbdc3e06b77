package handlers

import (
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	UploadDir   string
	UploadURL   string
	CORSOrigins []string
}

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
	uploadHandler   *UploadHandler
	logger          utils.Logger
	config          RouterConfig
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	config RouterConfig,
) *HandlerManager {
	if config.UploadURL == "" {
		config.UploadURL = "/uploads"
	}
	return &HandlerManager{
		formHandler:     NewFormHandler(serviceManager.Form(), logger),
		responseHandler: NewResponseHandler(serviceManager.Response(), serviceManager.Export(), logger),
		uploadHandler:   NewUploadHandler(serviceManager.Upload(), logger),
		logger:          logger,
		config:          config,
	}
}

// NewRouter builds the engine with middleware and every route installed
func (hm *HandlerManager) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(hm.logger))
	router.Use(utils.ContextLogger(hm.logger))
	router.Use(cors.New(hm.corsConfig()))

	hm.SetupRoutes(router)
	return router
}

func (hm *HandlerManager) corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if len(hm.config.CORSOrigins) == 0 || (len(hm.config.CORSOrigins) == 1 && hm.config.CORSOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = hm.config.CORSOrigins
	}
	config.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"X-Request-ID",
	}
	config.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
	}
	config.ExposeHeaders = []string{"Content-Disposition"}
	return config
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	if hm.config.UploadDir != "" {
		router.Static(hm.config.UploadURL, hm.config.UploadDir)
	}

	api := router.Group("/api")
	{
		forms := api.Group("/forms")
		{
			forms.GET("", hm.formHandler.ListForms)
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.PUT("/:id", hm.formHandler.UpdateForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)
		}

		// Responses are immutable: no DELETE route.
		responses := api.Group("/responses")
		{
			responses.POST("/:formId", hm.responseHandler.SubmitResponse)
			responses.GET("/:formId", hm.responseHandler.ListResponses)
			responses.GET("/:formId/review", hm.responseHandler.ReviewResponses)
			responses.GET("/:formId/export", hm.responseHandler.ExportResponses)
		}

		api.POST("/upload", hm.uploadHandler.UploadImage)
	}
}
