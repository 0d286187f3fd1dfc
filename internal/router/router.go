package router

import (
	"context"
	"fmt"
	"html/template"

	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Request is what a route's render and init functions receive.
type Request struct {
	Kind     Kind
	Params   Params
	Fragment string
}

// RenderFunc produces the initial container contents for a route.
type RenderFunc func(req Request) (template.HTML, error)

// InitFunc runs after the rendered contents are in place. It may replace the
// container contents again once its data has loaded.
type InitFunc func(ctx context.Context, req Request, c Container) error

// Route is one entry of the fixed route table.
type Route struct {
	Title  string
	Render RenderFunc
	Init   InitFunc // optional
}

// Page is what the container shows after a render.
type Page struct {
	Kind  Kind
	Title string
	NavID string
	Hero  bool
	Body  template.HTML
}

// Container is the page area the router draws into.
type Container interface {
	Current() Page
	Replace(p Page)
	ScrollTop()
}

// Update replaces the body of the page currently in c.
func Update(c Container, body template.HTML) {
	p := c.Current()
	p.Body = body
	c.Replace(p)
}

// State of the router.
type State int

const (
	Idle State = iota
	Rendering
)

func (s State) String() string {
	if s == Rendering {
		return "rendering"
	}
	return "idle"
}

// Router maps fragments to routes. The table is fixed at construction.
// Navigations are not cancelled or ordered; overlapping ones are only logged.
type Router struct {
	brand    string
	routes   map[Kind]Route
	inflight atomic.Int32
	seq      atomic.Uint64
	log      *log.Entry
}

// New builds a router over a copy of table. Titles are prefixed with brand.
// The table must contain a KindHome route.
func New(brand string, table map[Kind]Route) (*Router, error) {
	home, ok := table[KindHome]
	if !ok || home.Render == nil {
		return nil, fmt.Errorf("router: no home route")
	}
	routes := make(map[Kind]Route, len(table))
	for k, r := range table {
		if r.Render == nil {
			return nil, fmt.Errorf("router: route %s has no render function", k)
		}
		routes[k] = r
	}
	return &Router{
		brand:  brand,
		routes: routes,
		log:    log.WithField("component", "router"),
	}, nil
}

func (r *Router) State() State {
	if r.inflight.Load() > 0 {
		return Rendering
	}
	return Idle
}

// Resolve returns the route kind and parameters a fragment navigates to,
// falling back to home for unknown paths.
func (r *Router) Resolve(fragment string) (Kind, Params) {
	kind, params, _ := r.resolve(fragment)
	return kind, params
}

// resolve also reports whether the path named a route in the table.
func (r *Router) resolve(fragment string) (Kind, Params, bool) {
	loc := Parse(fragment)
	kind, ok := KindOf(loc.Path)
	if !ok {
		return KindHome, loc.Params, false
	}
	if _, ok := r.routes[kind]; !ok {
		return KindHome, loc.Params, false
	}
	return kind, loc.Params, true
}

// Title is the document title for kind.
func (r *Router) Title(kind Kind) string {
	route := r.routes[kind]
	if r.brand == "" {
		return route.Title
	}
	if route.Title == "" {
		return r.brand
	}
	return r.brand + " - " + route.Title
}

// Navigate renders the route for fragment into c, then runs the route's
// initializer and resets the scroll position. It returns the kind that was
// rendered. An initializer error is returned without resetting scroll.
func (r *Router) Navigate(ctx context.Context, fragment string, c Container) (Kind, error) {
	n := r.seq.Inc()
	if active := r.inflight.Inc(); active > 1 {
		r.log.WithFields(log.Fields{"nav": n, "in_flight": active}).Warn("[router] Navigation started while another is rendering")
	}
	defer r.inflight.Dec()

	kind, params, matched := r.resolve(fragment)
	route := r.routes[kind]
	req := Request{Kind: kind, Params: params, Fragment: fragment}
	entry := r.log.WithFields(log.Fields{"nav": n, "route": kind.String()})
	entry.Debug("[router] Rendering")

	body, err := route.Render(req)
	if err != nil {
		entry.WithError(err).Error("[router] Render failed")
		return kind, fmt.Errorf("render %s: %w", kind, err)
	}
	// an unknown path shows the home page without the hero or an active link
	page := Page{Kind: kind, Title: r.Title(kind), Body: body}
	if matched {
		page.NavID = kind.NavID()
		page.Hero = kind == KindHome
	}
	c.Replace(page)

	if route.Init != nil {
		if err := route.Init(ctx, req, c); err != nil {
			entry.WithError(err).Error("[router] Init failed")
			return kind, fmt.Errorf("init %s: %w", kind, err)
		}
	}

	c.ScrollTop()
	return kind, nil
}

// Frame is a Container that keeps the last page it was given.
type Frame struct {
	Page     Page
	Replaced int
	Scrolled bool
}

func (f *Frame) Replace(p Page) {
	f.Page = p
	f.Replaced++
	f.Scrolled = false
}

func (f *Frame) Current() Page { return f.Page }

func (f *Frame) ScrollTop() { f.Scrolled = true }
