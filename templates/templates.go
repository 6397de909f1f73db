// Package templates holds the embedded HTML layouts, pages and htmx fragments.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-contrib/multitemplate"

	"htmx-tictactoe/game"
)

//go:embed layouts/*.html pages/*.html partials/*.html
var files embed.FS

// Page and fragment names understood by the renderer.
const (
	HomePage     = "home.html"
	GamePage     = "game.html"
	NotFoundPage = "404.html"
	GameFragment = "game-fragment"
)

type squareData struct {
	game.Square
	GameID string
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"withID": func(id string, sq game.Square) squareData {
			return squareData{Square: sq, GameID: id}
		},
	}
}

// Set is the parsed template collection.
type Set struct {
	renderer multitemplate.Render
	fragment *template.Template
}

// Load parses every page on top of the base layout plus the shared partials.
func Load() (*Set, error) {
	r := multitemplate.New()

	pages := map[string]string{
		HomePage:     "pages/home.html",
		GamePage:     "pages/game.html",
		NotFoundPage: "pages/404.html",
	}
	for name, page := range pages {
		tmpl, err := template.New("base.html").Funcs(funcMap()).
			ParseFS(files, "layouts/base.html", page, "partials/game.html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
	}

	fragment, err := template.New(GameFragment).Funcs(funcMap()).Parse(`{{template "game" .}}`)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment root: %w", err)
	}
	if fragment, err = fragment.ParseFS(files, "partials/game.html"); err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	r.Add(GameFragment, fragment)

	return &Set{renderer: r, fragment: fragment}, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Set {
	set, err := Load()
	if err != nil {
		panic(err)
	}
	return set
}

// Renderer is plugged into gin.Engine.HTMLRender.
func (s *Set) Renderer() multitemplate.Render {
	return s.renderer
}

// RenderFragment renders the #game block, used for SSE payloads.
func (s *Set) RenderFragment(v game.View) (string, error) {
	var buf bytes.Buffer
	if err := s.fragment.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("failed to render game fragment: %w", err)
	}
	return buf.String(), nil
}
