// Package api provides the REST API server for etude
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/etude/pkg/export"
	"github.com/james-see/etude/pkg/export/lilypond"
	"github.com/james-see/etude/pkg/theory"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title etude API
// @version 1.0
// @description Music theory notation: keys, pitches, intervals, scales, key signatures and chords
// @host localhost:8080
// @BasePath /api/v1

// Server holds what the handlers share
type Server struct {
	exporter *export.Exporter
}

// NewServer creates a server exporting through exporter. A nil exporter gets
// every built-in format, with MIDI spelled by the default policy.
func NewServer(exporter *export.Exporter) *Server {
	if exporter == nil {
		exporter = export.New(
			export.NewMIDIEncoder(theory.DefaultPolicy),
			export.NewTextEncoder(),
			lilypond.New(),
		)
	}
	return &Server{exporter: exporter}
}

// Router builds the gin engine with all routes
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/key/:key", getKey)
		v1.GET("/spell/:offset", spellOffset)
		v1.GET("/pitch/:pitch", getPitch)
		v1.GET("/pitch/:pitch/step", stepPitch)
		v1.GET("/interval", intervalBetween)
		v1.GET("/interval/:interval", getInterval)
		v1.GET("/keysignature", keySignatureFromAccidentals)
		v1.GET("/keysignature/:signature", getKeySignature)
		v1.GET("/scale/:signature", getScale)
		v1.GET("/chord/:chord", getChord)
		v1.POST("/chord", buildChord)
		v1.POST("/export/:format", s.handleExport)
		v1.POST("/convert/:format", s.handleConvert)
		v1.GET("/modes", listModes)
		v1.GET("/formats", s.listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewServer(nil).Router().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "etude",
	})
}

// listModes godoc
// @Summary List modes
// @Description Returns every mode with its symbol and step patterns
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /api/v1/modes [get]
func listModes(c *gin.Context) {
	modes := make([]gin.H, 0, len(theory.Modes()))
	for _, m := range theory.Modes() {
		modes = append(modes, gin.H{
			"name":       m.Name(),
			"symbol":     m.String(),
			"ascending":  m.Ascending(),
			"descending": m.Descending(),
		})
	}
	qualities := make([]string, 0, len(theory.ChordQualities()))
	for _, q := range theory.ChordQualities() {
		qualities = append(qualities, q.String())
	}
	c.JSON(http.StatusOK, gin.H{
		"modes":            modes,
		"chordQualities":   qualities,
		"spellingPolicies": theory.PolicyNames,
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns the export formats and the conversions between them
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func (s *Server) listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":     s.exporter.Formats(),
		"conversions": s.exporter.SupportedConversions(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func policyParam(c *gin.Context) (theory.SpellingPolicy, bool) {
	policy, err := theory.ParsePolicy(c.DefaultQuery("policy", "default"))
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return policy, true
}
