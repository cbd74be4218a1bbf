package main

import (
	"net/http"

	_ "github.com/houssamberrezag/tahdda-book-management-backend/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// SetupRoutes configures all api endpoints with their middlewares chains.
// Book-resource routes go through the protected chain so the authentication
// gate runs before each of their handlers. The login route stays public by
// design since it is the entry point for obtaining a token.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()

	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))

	router.POST("/api/auth/login", m.public(api.Login))

	router.POST("/api/books", m.protected(api.CreateBook))
	router.GET("/api/books", m.protected(api.GetAllBooks))
	router.GET("/api/books/:id", m.protected(api.GetOneBook))
	router.PUT("/api/books/:id", m.protected(api.UpdateBook))
	router.DELETE("/api/books/:id", m.protected(api.DeleteOneBook))

	router.GET("/api-docs/*filepath", m.public(api.OpsHandlerWrapper(httpswagger.WrapHandler)))

	if api.config.OpsEndpointsEnable {
		router.GET("/ops/configs", m.ops(api.GetConfigs))
		router.GET("/ops/stats", m.ops(api.GetStatistics))
		router.GET("/ops/maintenance", m.ops(api.Maintenance))
	}
	return router
}

// NotFound replies to unmatched routes with a json error body.
func (api *APIHandler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := WriteErrorResponse(r.Context(), w, http.StatusNotFound, "route not found"); err != nil {
			api.logger.Error("failed to send not found response")
		}
	})
}
