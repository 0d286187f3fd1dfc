package restaurant

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ---------- Data model: Restaurants ----------

type Restaurant struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	City            string   `json:"city"`
	Address         string   `json:"address,omitempty"`
	PictureID       string   `json:"pictureId"`
	Rating          float64  `json:"rating"`
	Categories      []Named  `json:"categories,omitempty"`
	Menus           *Menus   `json:"menus,omitempty"`
	CustomerReviews []Review `json:"customerReviews,omitempty"`
}

type Named struct {
	Name string `json:"name"`
}

type Menus struct {
	Foods  []Named `json:"foods"`
	Drinks []Named `json:"drinks"`
}

type Review struct {
	Name   string `json:"name"`
	Review string `json:"review"`
	Date   string `json:"date"`
}

// Draft is the payload for submitting a new restaurant.
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	City        string `json:"city"`
	Address     string `json:"address,omitempty"`
	PictureID   string `json:"pictureId,omitempty"`
}

// Normalize trims every field and checks the required ones.
func (d Draft) Normalize() (Draft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.City = strings.TrimSpace(d.City)
	d.Address = strings.TrimSpace(d.Address)
	d.PictureID = strings.TrimSpace(d.PictureID)

	if d.Name == "" {
		return Draft{}, errors.New("name required")
	}
	if d.Description == "" {
		return Draft{}, errors.New("description required")
	}
	if d.City == "" {
		return Draft{}, errors.New("city required")
	}
	if utf8.RuneCountInString(d.Name) > 128 {
		return Draft{}, errors.New("name too long (max 128 chars)")
	}
	if utf8.RuneCountInString(d.Description) > 2048 {
		return Draft{}, errors.New("description too long (max 2048 chars)")
	}
	return d, nil
}
