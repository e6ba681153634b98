// Package server 提供 HTTP 接入层：预测、症状词表、历史记录的 REST API。
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rushteam/diagkit/core"
	"github.com/rushteam/diagkit/engine"
	"github.com/rushteam/diagkit/history"
)

// Server 持有引擎与历史记录器，二者在进程生命周期内只读/并发安全。
type Server struct {
	Engine   *engine.Engine
	Recorder *history.Recorder

	MaxBodyBytes int64
}

// PredictRequest 是预测接口的请求体。
type PredictRequest struct {
	Symptoms  []string `json:"symptoms"`
	PatientID string   `json:"patient_id"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
}

// Router 构建 gin 路由，含 CORS、请求体限长、panic 恢复。
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	maxBody := s.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(maxBody),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", s.handleHealthz)
	router.GET("/readyz", s.handleReadyz)

	api := router.Group("/api")
	{
		api.GET("/symptoms", s.handleSymptoms)
		api.POST("/predict", s.handlePredict)
		api.GET("/predictions", s.handleListPredictions)
		api.POST("/predictions/delete", s.handleDeletePrediction)
		api.POST("/predictions/delete_all", s.handleDeleteAllPredictions)
	}

	return router
}

func limitBodySize(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReadyz(c *gin.Context) {
	if s.Engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "engine": "not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"strategy":   s.Engine.Strategy(),
		"vocabulary": s.Engine.VocabularySize(),
		"rows":       s.Engine.RowCount(),
	})
}

// handleSymptoms 返回词表中所有可用症状（人类可读、有序）。
func (s *Server) handleSymptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symptoms": s.Engine.AvailableSymptoms()})
}

// handlePredict 执行一次预测。边界校验（空症状）在这里直接拒绝，
// 引擎内部的非 success 结论（unrecognized / low_match 等）仍按 200 返回，
// 由 status 字段区分。
func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	symptoms := make([]string, 0, len(req.Symptoms))
	for _, sym := range req.Symptoms {
		if strings.TrimSpace(sym) != "" {
			symptoms = append(symptoms, sym)
		}
	}
	if len(symptoms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one symptom is required"})
		return
	}

	result := s.Engine.Predict(c.Request.Context(), &core.PredictContext{
		Symptoms:  symptoms,
		PatientID: req.PatientID,
		Age:       req.Age,
		Gender:    req.Gender,
	})

	if s.Recorder != nil && req.PatientID != "" && result.Status != core.StatusError {
		// 历史写入失败不影响本次预测结果
		_, _ = s.Recorder.Save(c.Request.Context(), req.PatientID, symptoms, result)
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListPredictions(c *gin.Context) {
	patientID := c.Query("patient_id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id is required"})
		return
	}
	if s.Recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history disabled"})
		return
	}

	records, err := s.Recorder.List(c.Request.Context(), patientID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": records})
}

func (s *Server) handleDeletePrediction(c *gin.Context) {
	var req struct {
		PatientID string `json:"patient_id"`
		RecordID  string `json:"record_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PatientID == "" || req.RecordID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id and record_id are required"})
		return
	}
	if s.Recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history disabled"})
		return
	}

	if err := s.Recorder.Delete(c.Request.Context(), req.PatientID, req.RecordID); err != nil {
		if core.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": 1})
}

func (s *Server) handleDeleteAllPredictions(c *gin.Context) {
	var req struct {
		PatientID string `json:"patient_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PatientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id is required"})
		return
	}
	if s.Recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history disabled"})
		return
	}

	n, err := s.Recorder.DeleteAll(c.Request.Context(), req.PatientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
