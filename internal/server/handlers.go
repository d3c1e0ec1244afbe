package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Router returns the HTTP handler for the application:
//   - /?{escaped name} - render an article (default article without a query)
//   - /{assets_dir}/... - static files from the reserved assets directory
func (a *App) Router() http.Handler {
	router := mux.NewRouter()

	if a.Config.ReserveAssets && a.Config.AssetsDir != "" {
		prefix := "/" + a.Config.AssetsDir + "/"
		fs := http.FileServer(http.Dir(filepath.Join(a.Config.ArticlesPath(), a.Config.AssetsDir)))
		router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, fs)).Methods("GET", "HEAD")
	}
	router.HandleFunc("/", a.ArticleHandler).Methods("GET")

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError)),
	)

	return SlogLoggingMiddleware(recovery(handlers.CompressHandler(router)))
}

// ArticleHandler renders the article named by the raw query string. The
// token is percent-decoded and then resolved against the article directory.
func (a *App) ArticleHandler(rw http.ResponseWriter, req *http.Request) {
	token, err := url.PathUnescape(req.URL.RawQuery)
	if err != nil {
		// Malformed percent-encoding; let the resolver reject the raw token.
		token = req.URL.RawQuery
	}

	page, err := a.Pages.Resolve(req.Context(), token)
	if err != nil {
		a.ErrorHandler(http.StatusInternalServerError, rw, req, err)
		return
	}

	body := []byte(page.HTML)
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.Header().Set("Content-Length", strconv.Itoa(len(body)))
	rw.WriteHeader(page.Outcome.Status())
	if _, err := rw.Write(body); err != nil {
		slog.Debug("failed to write response", "article", page.Name, "error", err)
	}
}

// ErrorHandler writes a plain error page and logs the errors. No part of a
// failed render reaches the client.
func (a *App) ErrorHandler(responseCode int, rw http.ResponseWriter, req *http.Request, errors ...error) {
	slog.Error("request failed",
		"status", responseCode,
		"path", req.URL.Path,
		"query", req.URL.RawQuery,
		"errors", errors,
	)
	http.Error(rw, fmt.Sprintf("%d %s", responseCode, http.StatusText(responseCode)), responseCode)
}
