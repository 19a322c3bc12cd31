package main

import (
	"os"

	"pincer/cmd"
)

// @title       Pincer API
// @version     1.0
// @description Accessibility text-rewrite pipeline: chunked completion, merge and caching.
// @BasePath    /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
