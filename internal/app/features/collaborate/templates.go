// internal/app/features/collaborate/templates.go
package collaborate

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "collaborate",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
