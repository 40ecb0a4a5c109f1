package http

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// LayoutMain plantilla que envuelve todas las pantallas.
const LayoutMain = "layouts/main"

// NewViewEngine motor de plantillas HTML con las vistas embebidas en el binario.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("vistas embebidas: " + err.Error())
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
