package router

import (
	"net/url"
	"sort"
	"strings"
)

// Kind identifies one of the fixed pages of the application.
type Kind int

const (
	KindHome Kind = iota
	KindDetail
	KindFavorite
	KindAdd
	KindAbout
)

var kindPaths = [...]string{
	KindHome:     "/",
	KindDetail:   "/detail",
	KindFavorite: "/favorite",
	KindAdd:      "/add",
	KindAbout:    "/about",
}

var kindNames = [...]string{
	KindHome:     "home",
	KindDetail:   "detail",
	KindFavorite: "favorite",
	KindAdd:      "add",
	KindAbout:    "about",
}

// Kinds lists every route kind in navigation order.
func Kinds() []Kind {
	return []Kind{KindHome, KindDetail, KindFavorite, KindAdd, KindAbout}
}

func (k Kind) valid() bool { return k >= KindHome && k <= KindAbout }

// Path is the fragment path of the route, e.g. "/detail".
func (k Kind) Path() string {
	if !k.valid() {
		return kindPaths[KindHome]
	}
	return kindPaths[k]
}

func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindNames[k]
}

// NavID is the element id of the navigation link marked current for k.
func (k Kind) NavID() string {
	return k.String() + "-link"
}

// KindOf maps a fragment path to its route kind.
func KindOf(path string) (Kind, bool) {
	for _, k := range Kinds() {
		if kindPaths[k] == path {
			return k, true
		}
	}
	return KindHome, false
}

// Params are the decoded query parameters of a fragment.
type Params map[string]string

func (p Params) Get(key string) string { return p[key] }

// Location is a parsed fragment.
type Location struct {
	Path   string
	Params Params
}

// Parse splits a location fragment such as "#/detail?id=42" into its path
// and decoded parameters. An empty fragment is the home path. When a key
// repeats, the last value wins.
func Parse(fragment string) Location {
	f := strings.TrimPrefix(fragment, "#")
	if f == "" {
		f = "/"
	}
	path, query, _ := strings.Cut(f, "?")
	if path == "" {
		path = "/"
	}

	params := Params{}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			k = key
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			v = value
		}
		params[k] = v
	}
	return Location{Path: path, Params: params}
}

// Link builds the fragment that navigates to k with params, e.g. "#/detail?id=42".
func Link(k Kind, params Params) string {
	frag := "#" + k.Path()
	if len(params) == 0 {
		return frag
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(params[key]))
	}
	return frag + "?" + strings.Join(parts, "&")
}
