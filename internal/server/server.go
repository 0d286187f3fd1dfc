// Package server exposes the application over HTTP: the one-page shell and
// the JSON endpoints its script calls.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/app"
	"github.com/poku-e/culinart/internal/restaurant"
	"github.com/poku-e/culinart/internal/router"
	"github.com/poku-e/culinart/internal/view"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

type Options struct {
	Debug        bool
	AllowOrigins []string
}

type Server struct {
	state  *app.State
	router *router.Router
	view   *view.Renderer
	log    *log.Entry
}

func New(state *app.State, rt *router.Router, v *view.Renderer) *Server {
	return &Server{
		state:  state,
		router: rt,
		view:   v,
		log:    log.WithField("component", "server"),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler(opts Options) http.Handler {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLog())
	engine.Use(cors.New(corsConfig(opts.AllowOrigins)))

	engine.GET("/", s.shell)
	engine.GET("/view", s.navigate)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "router": s.router.State().String()})
	})

	api := engine.Group("/api")
	{
		api.GET("/search", s.search)
		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites/:id", s.toggleFavorite)
		api.POST("/restaurants", s.submit)
	}
	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		start := time.Now()
		c.Next()
		s.log.WithFields(log.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed":    time.Since(start).String(),
		}).Debug("[server] Request served")
	}
}

func (s *Server) shell(c *gin.Context) {
	tr := s.view.Translator()
	nav := make([]view.NavItem, 0, len(router.Kinds()))
	for _, k := range router.Kinds() {
		if k == router.KindDetail {
			continue
		}
		nav = append(nav, view.NavItem{
			Kind:  k,
			NavID: k.NavID(),
			Href:  router.Link(k, nil),
			Label: tr.T(titleID(k), nil),
		})
	}
	page, err := s.view.Shell(view.Shell{
		Lang:  tr.Lang().String(),
		Brand: tr.T("Brand", nil),
		Title: s.router.Title(router.KindHome),
		Term:  s.state.Catalog.Term(),
		Nav:   nav,
	})
	if err != nil {
		s.log.WithError(err).Error("[server] Shell render failed")
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func titleID(k router.Kind) string {
	switch k {
	case router.KindDetail:
		return "TitleDetail"
	case router.KindFavorite:
		return "TitleFavorite"
	case router.KindAdd:
		return "TitleAdd"
	case router.KindAbout:
		return "TitleAbout"
	default:
		return "TitleHome"
	}
}

type viewResp struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Nav   string `json:"nav"`
	Hero  bool   `json:"hero"`
	HTML  string `json:"html"`
	Error string `json:"error,omitempty"`
}

// navigate routes the fragment the shell reports after a hash change. The
// shell also sends its search box as q.
func (s *Server) navigate(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		s.state.UseTerm(q)
	}
	var frame router.Frame
	_, err := s.router.Navigate(c.Request.Context(), c.Query("fragment"), &frame)
	p := frame.Page
	resp := viewResp{
		Kind:  p.Kind.String(),
		Title: p.Title,
		Nav:   p.NavID,
		Hero:  p.Hero,
		HTML:  string(p.Body),
	}
	if err != nil {
		if frame.Replaced == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) search(c *gin.Context) {
	html, err := s.state.Search(c.Query("q"))
	if err != nil {
		s.log.WithError(err).Error("[server] Search render failed")
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) listFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": s.state.Favorites.IDs()})
}

func (s *Server) toggleFavorite(c *gin.Context) {
	id := c.Param("id")
	on, err := s.state.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("[server] Favorite toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "favorite": on})
}

func (s *Server) submit(c *gin.Context) {
	var d restaurant.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sub, err := s.state.Submit(c.Request.Context(), d)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			resp := gin.H{"error": verr.Error()}
			if html, rerr := s.state.RejectedDraft(d, verr.Err); rerr == nil {
				resp["html"] = string(html)
			}
			c.JSON(http.StatusBadRequest, resp)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    sub.Message,
		"restaurant": sub.Restaurant,
		"link":       sub.Link,
	})
}
