package restaurant

import (
	"reflect"
	"testing"
)

func sample() []Restaurant {
	return []Restaurant{
		{ID: "rqdv5juczeskfw1e867", Name: "Melting Pot", Description: "Lorem ipsum cheese", City: "Medan", Rating: 4.2},
		{ID: "s1knt6za9kkfw1e867", Name: "Kafe Kita", Description: "Quiet coffee place", City: "Gorontalo", Rating: 4},
		{ID: "w9pga3s2tubkfw1e867", Name: "Bring Your Phone Cafe", Description: "Phones welcome", City: "Surabaya", Rating: 4.2},
		{ID: "uewq1zg2zlskfw1e867", Name: "Kafein", Description: "Strong coffee, MEDAN style", City: "Aceh", Rating: 4.6},
	}
}

func ids(list []Restaurant) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	list := sample()
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"by name", "kafe", []string{"s1knt6za9kkfw1e867", "uewq1zg2zlskfw1e867"}},
		{"by city and description keeps order", "medan", []string{"rqdv5juczeskfw1e867", "uewq1zg2zlskfw1e867"}},
		{"by description", "COFFEE", []string{"s1knt6za9kkfw1e867", "uewq1zg2zlskfw1e867"}},
		{"no match", "sushi", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(list, tt.term))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFilterEmptyTermReturnsFullList(t *testing.T) {
	list := sample()
	got := Filter(list, "")
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("Filter with empty term changed the list: %v", ids(got))
	}
	if len(got) > 0 && &got[0] != &list[0] {
		t.Fatalf("Filter with empty term should return the input slice")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	list := sample()
	for _, term := range []string{"", "a", "kafe", "MEDAN", "e", "zzz", "coffee"} {
		once := Filter(list, term)
		twice := Filter(once, term)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Fatalf("term %q: %v != %v", term, ids(once), ids(twice))
		}
	}
}

func TestCatalogSearchAndReplace(t *testing.T) {
	var c Catalog
	if c.Loaded() {
		t.Fatal("zero catalog should not be loaded")
	}
	if got := c.Search("kafe"); len(got) != 0 {
		t.Fatalf("search on empty catalog = %v", got)
	}

	// term set before the list arrives is applied on Replace
	c.Replace(sample())
	if !c.Loaded() {
		t.Fatal("catalog should be loaded after Replace")
	}
	if got := len(c.Filtered()); got != 2 {
		t.Fatalf("filtered after replace = %d, want 2", got)
	}

	if got := c.Search(""); len(got) != len(sample()) {
		t.Fatalf("empty search = %d entries, want %d", len(got), len(sample()))
	}
	if c.Term() != "" {
		t.Fatalf("term = %q", c.Term())
	}

	r, ok := c.Find("w9pga3s2tubkfw1e867")
	if !ok || r.Name != "Bring Your Phone Cafe" {
		t.Fatalf("Find = %+v, %v", r, ok)
	}
	if _, ok := c.Find("missing"); ok {
		t.Fatal("Find should miss unknown ids")
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	var c Catalog
	c.Replace(sample())
	all := c.All()
	all[0].Name = "changed"
	if r, _ := c.Find(all[0].ID); r.Name == "changed" {
		t.Fatal("All should return a copy")
	}
}

func TestDraftNormalize(t *testing.T) {
	d, err := Draft{Name: "  Warung  ", Description: " enak ", City: " Bandung "}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if d.Name != "Warung" || d.Description != "enak" || d.City != "Bandung" {
		t.Fatalf("Normalize did not trim: %+v", d)
	}

	for _, bad := range []Draft{
		{Description: "x", City: "y"},
		{Name: "x", City: "y"},
		{Name: "x", Description: "y", City: "   "},
	} {
		if _, err := bad.Normalize(); err == nil {
			t.Fatalf("Normalize(%+v) should fail", bad)
		}
	}
}
