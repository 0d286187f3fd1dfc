// Package view renders the page container contents for every route.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"unicode/utf8"

	"github.com/poku-e/culinart/internal/locale"
	"github.com/poku-e/culinart/internal/restaurant"
	"github.com/poku-e/culinart/internal/router"
)

//go:embed templates/*.html
var tmplFS embed.FS

// ImageFunc maps a size ("small", "medium", "large") and picture id to a URL.
type ImageFunc func(size, pictureID string) string

// Snapshot is everything a page needs to render. It is built from the
// application state and never mutated by the view.
type Snapshot struct {
	Restaurants []restaurant.Restaurant
	Term        string
	Favorites   map[string]bool
	Unavailable map[string]bool // favorites the API no longer resolves
	Detail      *restaurant.Restaurant
	Draft       restaurant.Draft
	Loading     bool
	Error       string
	Notice      string
	Empty       string
	APIBase     string
}

type favButton struct {
	ID string
	On bool
}

// NavItem is one link of the shell navigation bar.
type NavItem struct {
	Kind  router.Kind
	NavID string
	Href  string
	Label string
}

// Shell is the data of the one-page shell.
type Shell struct {
	Lang  string
	Brand string
	Title string
	Term  string // prefills the search box
	Nav   []NavItem
}

type Renderer struct {
	tmpl *template.Template
	tr   *locale.Translator
}

func New(tr *locale.Translator, img ImageFunc) (*Renderer, error) {
	if img == nil {
		img = func(string, string) string { return "" }
	}
	funcs := template.FuncMap{
		"t":     func(id string) string { return tr.T(id, nil) },
		"count": tr.Count,
		"img":   img,
		"detailLink": func(id string) string {
			return router.Link(router.KindDetail, router.Params{"id": id})
		},
		"rating":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"truncate": truncate,
		"favButton": func(favs map[string]bool, id string) favButton {
			return favButton{ID: id, On: favs[id]}
		},
	}
	tmpl, err := template.New("culinart").Funcs(funcs).ParseFS(tmplFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, tr: tr}, nil
}

func (r *Renderer) Translator() *locale.Translator { return r.tr }

var pageTemplates = map[router.Kind]string{
	router.KindHome:     "home",
	router.KindDetail:   "detail",
	router.KindFavorite: "favorite",
	router.KindAdd:      "add",
	router.KindAbout:    "about",
}

// Render produces the container contents for kind from s.
func (r *Renderer) Render(kind router.Kind, s Snapshot) (template.HTML, error) {
	name, ok := pageTemplates[kind]
	if !ok {
		name = pageTemplates[router.KindHome]
	}
	if s.Empty == "" {
		if kind == router.KindFavorite {
			s.Empty = r.tr.T("EmptyFavorites", nil)
		} else {
			s.Empty = r.tr.T("EmptyList", nil)
		}
	}
	return r.execute(name, s)
}

// List renders only the restaurant list, for search-as-you-type updates.
func (r *Renderer) List(s Snapshot) (template.HTML, error) {
	if s.Empty == "" {
		s.Empty = r.tr.T("EmptyList", nil)
	}
	return r.execute("restaurant-list", s)
}

// Shell renders the full document that hosts the page container.
func (r *Renderer) Shell(sh Shell) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index", sh); err != nil {
		return nil, fmt.Errorf("render shell: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
