// internal/app/features/workspace/templates.go
package workspace

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "workspace",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
