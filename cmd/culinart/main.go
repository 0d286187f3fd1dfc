package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/api"
	"github.com/poku-e/culinart/internal/app"
	"github.com/poku-e/culinart/internal/config"
	"github.com/poku-e/culinart/internal/favorites"
	"github.com/poku-e/culinart/internal/locale"
	"github.com/poku-e/culinart/internal/server"
	"github.com/poku-e/culinart/internal/storage"
	"github.com/poku-e/culinart/internal/view"
)

func main() {
	var (
		confDir    string
		addr       string
		apiBase    string
		submitPath string
		lang       string
		driver     string
		storePath  string
	)
	flag.StringVar(&confDir, "conf", "conf/", "Directory holding <env>.yaml")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.StringVar(&apiBase, "api", "", "Restaurant API base URL (overrides config)")
	flag.StringVar(&submitPath, "submit-path", "", "API path new restaurants are posted to")
	flag.StringVar(&lang, "lang", "", "UI language, id or en")
	flag.StringVar(&driver, "store", "", "Favorites storage driver: file, memory, sqlite, postgres")
	flag.StringVar(&storePath, "store-path", "", "Favorites file or sqlite database path")
	flag.Parse()

	conf, err := config.Load(confDir)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.SetupLogging(conf.Env, conf.LogLevel)
	override(&conf.Addr, addr)
	override(&conf.APIBaseURL, apiBase)
	override(&conf.SubmitPath, submitPath)
	override(&conf.Locale, lang)
	override(&conf.Storage.Driver, driver)
	override(&conf.Storage.Path, storePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port, err := storage.Open(ctx, conf.StorageOptions())
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	if c, ok := port.(io.Closer); ok {
		defer c.Close()
	}
	favs := favorites.New(port)
	if err := favs.Load(ctx); err != nil {
		log.Fatalf("load favorites: %v", err)
	}

	client := api.New(conf.APIBaseURL, api.WithSubmitPath(conf.SubmitPath))
	tr, err := locale.New(conf.Locale)
	if err != nil {
		log.Fatalf("load messages: %v", err)
	}
	v, err := view.New(tr, func(size, id string) string {
		return client.ImageURL(api.ImageSize(size), id)
	})
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	state := app.New(app.Config{
		Remote:    client,
		Favorites: favs,
		View:      v,
		APIBase:   client.BaseURL(),
	})
	rt, err := state.Router()
	if err != nil {
		log.Fatalf("build routes: %v", err)
	}

	srv := &http.Server{
		Addr: conf.Addr,
		Handler: server.New(state, rt, v).Handler(server.Options{
			Debug:        conf.Env == config.Development,
			AllowOrigins: conf.AllowOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithFields(log.Fields{
		"env":       conf.Env,
		"api":       client.BaseURL(),
		"store":     conf.Storage.Driver,
		"favorites": favs.Len(),
		"lang":      tr.Lang().String(),
	}).Info("[main] Configuration loaded")
	log.Infof("[main] Listening on %s", conf.Addr)

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.WithError(err).Error("[main] Shutdown failed")
		}
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}
