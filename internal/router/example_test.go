package router_test

import (
	"context"
	"fmt"
	"html/template"

	"github.com/poku-e/culinart/internal/router"
)

// Example shows a table with one static page and one page whose initializer
// fills in data after the placeholder is rendered.
func Example() {
	r, err := router.New("CulinArt", map[router.Kind]router.Route{
		router.KindHome: {
			Title: "Beranda",
			Render: func(router.Request) (template.HTML, error) {
				return "<section>restaurants</section>", nil
			},
		},
		router.KindDetail: {
			Title: "Detail Restoran",
			Render: func(router.Request) (template.HTML, error) {
				return "<p>loading…</p>", nil
			},
			Init: func(ctx context.Context, req router.Request, c router.Container) error {
				router.Update(c, template.HTML("<h2>"+template.HTMLEscapeString(req.Params.Get("id"))+"</h2>"))
				return nil
			},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	var frame router.Frame
	for _, frag := range []string{"#/detail?id=42", "#/unknown"} {
		kind, err := r.Navigate(context.Background(), frag, &frame)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s | %s | %s\n", kind, frame.Page.Title, frame.Page.Body)
	}

	// Output:
	// detail | CulinArt - Detail Restoran | <h2>42</h2>
	// home | CulinArt - Beranda | <section>restaurants</section>
}
