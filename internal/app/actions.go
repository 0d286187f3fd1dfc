package app

import (
	"context"
	"fmt"
	"html/template"

	"github.com/poku-e/culinart/internal/restaurant"
	"github.com/poku-e/culinart/internal/router"
)

// Search recomputes the filtered view for term and renders the list.
func (s *State) Search(term string) (template.HTML, error) {
	snap := s.snapshot()
	snap.Restaurants = s.Catalog.Search(term)
	snap.Term = term
	return s.view.List(snap)
}

// UseTerm makes term the active search without rendering, so the next home
// render lists what the caller's search box shows.
func (s *State) UseTerm(term string) {
	s.Catalog.Search(term)
}

// ToggleFavorite flips the favorite state of id and reports the new state.
func (s *State) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	r, ok := s.Catalog.Find(id)
	if !ok {
		r = restaurant.Restaurant{ID: id}
	}
	on, err := s.Favorites.Toggle(ctx, r)
	if err != nil {
		return on, err
	}
	s.log.WithField("id", id).WithField("favorite", on).Info("[app] Favorite toggled")
	return on, nil
}

// Submission is the outcome of a successful Submit.
type Submission struct {
	Restaurant restaurant.Restaurant
	Message    string
	Link       string
}

// Submit validates d and posts it to the remote API.
func (s *State) Submit(ctx context.Context, d restaurant.Draft) (Submission, error) {
	d, err := d.Normalize()
	if err != nil {
		return Submission{}, &ValidationError{Err: err}
	}
	r, err := s.remote.Submit(ctx, d)
	if err != nil {
		return Submission{}, fmt.Errorf("submit restaurant: %w", err)
	}
	if r.Name == "" {
		r.Name = d.Name
	}
	s.log.WithField("id", r.ID).WithField("name", r.Name).Info("[app] Restaurant submitted")

	sub := Submission{
		Restaurant: r,
		Message:    s.tr.T("Submitted", map[string]any{"Name": r.Name}),
	}
	if r.ID != "" {
		sub.Link = router.Link(router.KindDetail, router.Params{"id": r.ID})
	}
	return sub, nil
}

// RejectedDraft renders the add page again with d filled in and the reason
// it was rejected shown above the form.
func (s *State) RejectedDraft(d restaurant.Draft, reason error) (template.HTML, error) {
	snap := s.snapshot()
	snap.Draft = d
	snap.Notice = s.tr.T("InvalidDraft", map[string]any{"Error": reason.Error()})
	return s.view.Render(router.KindAdd, snap)
}

// ValidationError marks a draft rejected before reaching the remote API.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid restaurant: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }
