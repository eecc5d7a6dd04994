// Copyright 2025 Zunetech
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// *****************************************************************************************************//
// Package main is the entry point for the content console server.
//
// The application runs a web server using the Gin framework and exposes a
// REST API for the console's operations: persona-conditioned script
// generation, trend discovery, hook-image synthesis, media critique, script
// history with export, and persona management. The server is instrumented
// with OpenTelemetry for logging, tracing, and metrics.
//
// Functions:
//   - main: sets up configuration, telemetry, state, routes, and handles
//     graceful shutdown.
//   - ScriptRouter: routes for script generation, history, and hook images.
//   - TrendRouter: route for trend discovery.
//   - AnalysisRouter: route for media critique uploads.
//   - PersonaRouter: routes for reading, replacing, and resetting the persona.
//   - ExportRouter: route for downloading the history in csv, json, or xlsx.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/zunetech/content-console/internal/core/model"
	"github.com/zunetech/content-console/internal/core/services"
	"github.com/zunetech/content-console/internal/telemetry"
)

// main is the primary entry point for the application. It orchestrates
// logging, telemetry, configuration, state initialization, route setup, and
// graceful shutdown on interrupt.
func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	defer func() { _ = state.cloud.Close() }()
	slog.Info("Initialized State")

	// Run the capability probe once up front so the first page load already
	// knows whether generation is possible.
	available := state.gate.Validate(ctx)
	slog.Info("credential probe complete", "available", available)

	r := gin.Default()
	r.Use(otelgin.Middleware(config.Application.Name))
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		CapabilityRouter(apiV1)
		ScriptRouter(apiV1)
		TrendRouter(apiV1)
		AnalysisRouter(apiV1)
		PersonaRouter(apiV1)
		ExportRouter(apiV1)
	}

	port := config.Application.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 3 * time.Minute, // Generation calls can run long.
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// statusForError maps the service error taxonomy onto HTTP statuses. The
// three classes stay distinguishable so the client can tell the user which
// remedy applies.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, services.ErrCredentialMissing):
		return http.StatusPreconditionFailed, "no API credential configured"
	case errors.Is(err, services.ErrConnectionFailed):
		return http.StatusBadGateway, "could not reach the generative service"
	case errors.Is(err, services.ErrGenerationFailed):
		return http.StatusUnprocessableEntity, "generation produced no usable result"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// CapabilityRouter exposes the credential gate's answer.
//
// This function defines the following endpoint:
//   - GET /capability: runs the credential probe and reports whether
//     generative calls can be made. Each request probes again, so hitting
//     the endpoint doubles as the recovery action after fixing a credential.
func CapabilityRouter(r *gin.RouterGroup) {
	r.GET("/capability", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"available": state.gate.Validate(c.Request.Context())})
	})
}

// ScriptRouter sets up the routes for script generation and history.
//
// This function defines the following endpoints:
//   - POST /scripts: generates a script from a topic and persists it.
//   - GET /scripts: returns the full history, newest first.
//   - GET /scripts/:id: returns one history record.
//   - POST /scripts/:id/image: synthesizes a hook image for a stored script.
func ScriptRouter(r *gin.RouterGroup) {
	scripts := r.Group("/scripts")
	{
		scripts.POST("", func(c *gin.Context) {
			var request model.ScriptRequest
			if err := c.ShouldBindJSON(&request); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
				return
			}
			script, err := state.generator.GenerateScript(c.Request.Context(), &request)
			if err != nil {
				status, message := statusForError(err)
				slog.Error("script generation failed", "topic", request.Topic, "error", err)
				c.JSON(status, gin.H{"error": message})
				return
			}
			c.JSON(http.StatusCreated, script)
		})

		scripts.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, state.repository.LoadAll())
		})

		scripts.GET("/:id", func(c *gin.Context) {
			script, err := state.repository.Get(c.Param("id"))
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			if script == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "script not found"})
				return
			}
			c.JSON(http.StatusOK, script)
		})

		scripts.POST("/:id/image", func(c *gin.Context) {
			script, err := state.generator.AttachHookImage(c.Request.Context(), c.Param("id"))
			if err != nil {
				if script == nil && !errors.Is(err, services.ErrCredentialMissing) &&
					!errors.Is(err, services.ErrGenerationFailed) && !errors.Is(err, services.ErrConnectionFailed) {
					c.JSON(http.StatusNotFound, gin.H{"error": "script not found"})
					return
				}
				status, message := statusForError(err)
				c.JSON(status, gin.H{"error": message})
				return
			}
			c.JSON(http.StatusOK, script)
		})
	}
}

// TrendRouter sets up the trend discovery route.
//
// This function defines the following endpoint:
//   - GET /trends: returns topic candidates; never fails, falling back to
//     the static list when the live call cannot be made.
func TrendRouter(r *gin.RouterGroup) {
	r.GET("/trends", func(c *gin.Context) {
		c.JSON(http.StatusOK, state.generator.FetchTrends(c.Request.Context()))
	})
}

// AnalysisRouter sets up the media critique route.
//
// This function defines the following endpoint:
//   - POST /analysis: accepts a multipart upload under "file" with an
//     optional "prompt" field and returns the persona's critique.
func AnalysisRouter(r *gin.RouterGroup) {
	r.POST("/analysis", func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing media file"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}

		critique, err := state.generator.AnalyzeMedia(c.Request.Context(), &model.MediaAnalysisRequest{
			MimeType: fileHeader.Header.Get("Content-Type"),
			Data:     data,
			Prompt:   c.PostForm("prompt"),
		})
		if err != nil {
			status, message := statusForError(err)
			slog.Error("media analysis failed", "file", fileHeader.Filename, "error", err)
			c.JSON(status, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusOK, gin.H{"critique": critique})
	})
}

// PersonaRouter sets up the persona management routes.
//
// This function defines the following endpoints:
//   - GET /persona: returns the current persona profile.
//   - PUT /persona: replaces the persona wholesale.
//   - POST /persona/reset: restores the built-in default profile.
func PersonaRouter(r *gin.RouterGroup) {
	persona := r.Group("/persona")
	{
		persona.GET("", func(c *gin.Context) {
			profile, err := state.personaStore.Load()
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, profile)
		})

		persona.PUT("", func(c *gin.Context) {
			var profile model.PersonaProfile
			if err := c.ShouldBindJSON(&profile); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "persona must be a JSON object"})
				return
			}
			if err := state.personaStore.Set(&profile); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, &profile)
		})

		persona.POST("/reset", func(c *gin.Context) {
			profile, err := state.personaStore.Reset()
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, profile)
		})
	}
}

// ExportRouter sets up the history export route.
//
// This function defines the following endpoint:
//   - GET /export?format=csv|json|xlsx: streams the history as a download.
func ExportRouter(r *gin.RouterGroup) {
	r.GET("/export", func(c *gin.Context) {
		format := c.DefaultQuery("format", "csv")
		scripts := state.repository.LoadAll()
		fileName := services.ExportFileName(format, time.Now())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

		switch format {
		case "csv":
			c.Header("Content-Type", "text/csv")
			if err := services.WriteCSV(c.Writer, scripts); err != nil {
				slog.Error("csv export failed", "error", err)
				c.Status(http.StatusInternalServerError)
			}
		case "json":
			c.Header("Content-Type", "application/json")
			if err := services.WriteJSON(c.Writer, scripts); err != nil {
				slog.Error("json export failed", "error", err)
				c.Status(http.StatusInternalServerError)
			}
		case "xlsx":
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			if err := services.WriteXLSX(c.Writer, scripts); err != nil {
				slog.Error("xlsx export failed", "error", err)
				c.Status(http.StatusInternalServerError)
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format"})
		}
	})
}
