// internal/app/features/feedback/templates.go
package feedback

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "feedback",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
