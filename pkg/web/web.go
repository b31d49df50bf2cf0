// Package web holds the HTML pages rendered by the error boundary and the test harness.
package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded page. It panics on a malformed template, which can only be
// a build-time mistake.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}

// Install registers the pages on the engine so handlers can call c.HTML with their file names.
func Install(engine *gin.Engine) {
	engine.SetHTMLTemplate(Templates())
}
