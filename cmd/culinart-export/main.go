// culinart-export dumps the restaurant list to a spreadsheet.
//
// Usage:
//
//	culinart-export -out restaurants.xlsx
//	culinart-export -out medan.csv -q medan
//	culinart-export -out favorites.xlsx -favorites
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/api"
	"github.com/poku-e/culinart/internal/config"
	"github.com/poku-e/culinart/internal/export"
	"github.com/poku-e/culinart/internal/favorites"
	"github.com/poku-e/culinart/internal/restaurant"
	"github.com/poku-e/culinart/internal/storage"
)

func main() {
	var (
		confDir   string
		outPath   string
		term      string
		onlyFavs  bool
		apiBase   string
		imageSize string
	)
	flag.StringVar(&confDir, "conf", "conf/", "Directory holding <env>.yaml")
	flag.StringVar(&outPath, "out", "", "Output file path (.csv or .xlsx) (required)")
	flag.StringVar(&term, "q", "", "Only restaurants whose name, description or city contain this")
	flag.BoolVar(&onlyFavs, "favorites", false, "Only restaurants marked as favorite")
	flag.StringVar(&apiBase, "api", "", "Restaurant API base URL (overrides config)")
	flag.StringVar(&imageSize, "image-size", string(api.ImageMedium), "Picture size in picture_url: small, medium or large")
	flag.Parse()

	if outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	conf, err := config.Load(confDir)
	if err != nil {
		fatal(err)
	}
	config.SetupLogging(conf.Env, conf.LogLevel)
	if apiBase != "" {
		conf.APIBaseURL = apiBase
	}

	size, err := api.ParseImageSize(imageSize)
	if err != nil {
		fatal(err)
	}
	ctx := context.Background()

	client := api.New(conf.APIBaseURL)
	list, err := client.List(ctx)
	if err != nil {
		fatal(err)
	}
	list = restaurant.Filter(list, term)

	if onlyFavs {
		list, err = favoritesOnly(ctx, conf, list)
		if err != nil {
			fatal(err)
		}
	}
	if len(list) == 0 {
		fatal(errors.New("nothing to export; check -q or your favorites"))
	}

	rows := export.Rows(list, func(id string) string {
		return client.ImageURL(size, id)
	})
	if err := export.WriteFile(outPath, rows); err != nil {
		fatal(err)
	}
	fmt.Printf("OK: %d rows -> %s\n", len(rows), outPath)
}

func favoritesOnly(ctx context.Context, conf *config.Conf, list []restaurant.Restaurant) ([]restaurant.Restaurant, error) {
	port, err := storage.Open(ctx, conf.StorageOptions())
	if err != nil {
		return nil, err
	}
	if c, ok := port.(io.Closer); ok {
		defer c.Close()
	}
	favs := favorites.New(port)
	if err := favs.Load(ctx); err != nil {
		return nil, err
	}
	out := make([]restaurant.Restaurant, 0, favs.Len())
	for _, r := range list {
		if favs.IsFavorite(r.ID) {
			out = append(out, r)
		}
	}
	log.WithField("favorites", len(out)).Debug("[export] Filtered to favorites")
	return out, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
