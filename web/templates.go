package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/gncc/cricket-dashboard/cards"
)

//go:embed templates
var templateFiles embed.FS

// Templates returns the embedded template tree rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadTemplates parses every layout, page and partial into one set.
func LoadTemplates(templatesFS fs.FS) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())

	for _, pattern := range []string{"layouts/*.html", "pages/*.html", "partials/*.html"} {
		matches, err := fs.Glob(templatesFS, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			content, err := fs.ReadFile(templatesFS, match)
			if err != nil {
				return nil, err
			}
			if _, err := tmpl.Parse(string(content)); err != nil {
				return nil, err
			}
		}
	}

	return tmpl, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"homeTeam": func() string {
			return cards.HomeTeamName
		},
		"selected": func(current, option string) bool {
			return current == option
		},
		"lower": strings.ToLower,
	}
}
