// Package main is the entry point for the etude API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/james-see/etude/pkg/api"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	debug := flag.Bool("debug", false, "Verbose logging and gin debug mode")
	flag.Parse()

	logger := newLogger(os.Stderr, *debug)
	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting etude API server", "port", *port)
	logger.Info("swagger docs available", "url", fmt.Sprintf("http://localhost:%d/swagger/index.html", *port))

	if err := api.StartServer(*port); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
