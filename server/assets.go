package server

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed static/*
var staticFiles embed.FS

// assets serves the embedded files under static/. Embedded files carry no
// modification time, so each gets a content-hash ETag for revalidation.
type assets struct {
	fsys  fs.FS
	etags map[string]string
}

func newAssets() (*assets, error) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	a := &assets{fsys: sub, etags: make(map[string]string)}
	err = fs.WalkDir(sub, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(sub, name)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		a.etags[name] = `"` + hex.EncodeToString(sum[:8]) + `"`
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AssetHandler serves GET/HEAD /static/{file}. Unknown names get the 404 page.
func (s *Server) AssetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("file")
		etag, ok := s.assets.etags[name]
		if !ok || strings.Contains(name, "..") {
			log.Ctx(r.Context()).Debug().Str("file", name).Msg("unknown static asset")
			s.renderNotFound(w, r)
			return
		}
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300, must-revalidate")
		http.ServeFileFS(w, r, s.assets.fsys, name)
	}
}
