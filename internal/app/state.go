// Package app wires the catalog, favorites and remote client into the
// route table: it owns the state that render and init functions read.
package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/favorites"
	"github.com/poku-e/culinart/internal/locale"
	"github.com/poku-e/culinart/internal/restaurant"
	"github.com/poku-e/culinart/internal/router"
	"github.com/poku-e/culinart/internal/view"
)

// Remote is the part of the API client the application uses.
type Remote interface {
	List(ctx context.Context) ([]restaurant.Restaurant, error)
	Detail(ctx context.Context, id string) (restaurant.Restaurant, error)
	Submit(ctx context.Context, d restaurant.Draft) (restaurant.Restaurant, error)
}

// ErrMissingID is returned when the detail page is opened without an id.
var ErrMissingID = errors.New("restaurant id missing")

// State is the application state shared by every route.
type State struct {
	Catalog   *restaurant.Catalog
	Favorites *favorites.Store

	remote  Remote
	view    *view.Renderer
	tr      *locale.Translator
	apiBase string
	log     *log.Entry
}

type Config struct {
	Remote    Remote
	Favorites *favorites.Store
	View      *view.Renderer
	APIBase   string
}

func New(cfg Config) *State {
	return &State{
		Catalog:   &restaurant.Catalog{},
		Favorites: cfg.Favorites,
		remote:    cfg.Remote,
		view:      cfg.View,
		tr:        cfg.View.Translator(),
		apiBase:   cfg.APIBase,
		log:       log.WithField("component", "app"),
	}
}

// Router builds the fixed route table over s.
func (s *State) Router() (*router.Router, error) {
	return router.New(s.tr.T("Brand", nil), map[router.Kind]router.Route{
		router.KindHome: {
			Title:  s.tr.T("TitleHome", nil),
			Render: s.renderHome,
			Init:   s.initHome,
		},
		router.KindDetail: {
			Title:  s.tr.T("TitleDetail", nil),
			Render: s.renderLoading,
			Init:   s.initDetail,
		},
		router.KindFavorite: {
			Title:  s.tr.T("TitleFavorite", nil),
			Render: s.renderLoading,
			Init:   s.initFavorite,
		},
		router.KindAdd: {
			Title:  s.tr.T("TitleAdd", nil),
			Render: s.renderAdd,
		},
		router.KindAbout: {
			Title:  s.tr.T("TitleAbout", nil),
			Render: s.renderAbout,
		},
	})
}

func (s *State) favSet() map[string]bool {
	ids := s.Favorites.IDs()
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func (s *State) snapshot() view.Snapshot {
	return view.Snapshot{
		Favorites: s.favSet(),
		Term:      s.Catalog.Term(),
		APIBase:   s.apiBase,
	}
}

func (s *State) failed(kind router.Kind, c router.Container, err error) error {
	snap := s.snapshot()
	snap.Error = s.tr.T("LoadFailed", map[string]any{"Error": err.Error()})
	if body, rerr := s.view.Render(kind, snap); rerr == nil {
		router.Update(c, body)
	}
	return err
}

// ---------- Home ----------

func (s *State) renderHome(req router.Request) (template.HTML, error) {
	snap := s.snapshot()
	snap.Restaurants = s.Catalog.Filtered()
	snap.Loading = !s.Catalog.Loaded()
	return s.view.Render(req.Kind, snap)
}

func (s *State) initHome(ctx context.Context, req router.Request, c router.Container) error {
	list, err := s.remote.List(ctx)
	if err != nil {
		return s.failed(req.Kind, c, fmt.Errorf("fetch restaurants: %w", err))
	}
	s.Catalog.Replace(list)
	s.log.WithField("count", len(list)).Debug("[app] Restaurants loaded")

	snap := s.snapshot()
	snap.Restaurants = s.Catalog.Filtered()
	body, err := s.view.Render(req.Kind, snap)
	if err != nil {
		return err
	}
	router.Update(c, body)
	return nil
}

// ---------- Detail ----------

func (s *State) renderLoading(req router.Request) (template.HTML, error) {
	snap := s.snapshot()
	snap.Loading = true
	return s.view.Render(req.Kind, snap)
}

func (s *State) initDetail(ctx context.Context, req router.Request, c router.Container) error {
	id := req.Params.Get("id")
	if id == "" {
		snap := s.snapshot()
		snap.Error = s.tr.T("NotFound", nil)
		if body, err := s.view.Render(req.Kind, snap); err == nil {
			router.Update(c, body)
		}
		return ErrMissingID
	}
	r, err := s.remote.Detail(ctx, id)
	if err != nil {
		return s.failed(req.Kind, c, fmt.Errorf("fetch restaurant %s: %w", id, err))
	}

	snap := s.snapshot()
	snap.Detail = &r
	body, err := s.view.Render(req.Kind, snap)
	if err != nil {
		return err
	}
	router.Update(c, body)
	return nil
}

// ---------- Favorite ----------

func (s *State) initFavorite(ctx context.Context, req router.Request, c router.Container) error {
	list, missing, err := s.FavoriteRestaurants(ctx)
	if err != nil {
		return s.failed(req.Kind, c, err)
	}
	snap := s.snapshot()
	snap.Restaurants = list
	snap.Unavailable = missing
	body, err := s.view.Render(req.Kind, snap)
	if err != nil {
		return err
	}
	router.Update(c, body)
	return nil
}

// FavoriteRestaurants resolves the favorite ids to restaurants, in the order
// they were starred. The list is fetched if it has not been yet; ids missing
// from it are fetched one by one. An id the API cannot resolve is kept as a
// bare entry and reported in missing so it can still be unstarred. Only a
// failed list fetch is an error.
func (s *State) FavoriteRestaurants(ctx context.Context) (list []restaurant.Restaurant, missing map[string]bool, err error) {
	ids := s.Favorites.IDs()
	if len(ids) == 0 {
		return nil, nil, nil
	}
	if !s.Catalog.Loaded() {
		all, err := s.remote.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch restaurants: %w", err)
		}
		s.Catalog.Replace(all)
	}
	list = make([]restaurant.Restaurant, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.Catalog.Find(id); ok {
			list = append(list, r)
			continue
		}
		r, err := s.remote.Detail(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("id", id).Warn("[app] Favorite could not be resolved")
			if missing == nil {
				missing = map[string]bool{}
			}
			missing[id] = true
			list = append(list, restaurant.Restaurant{ID: id})
			continue
		}
		list = append(list, r)
	}
	return list, missing, nil
}

// ---------- Add & About ----------

func (s *State) renderAdd(req router.Request) (template.HTML, error) {
	return s.view.Render(req.Kind, s.snapshot())
}

func (s *State) renderAbout(req router.Request) (template.HTML, error) {
	return s.view.Render(req.Kind, s.snapshot())
}
