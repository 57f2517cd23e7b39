package server

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
	"github.com/rs/zerolog"
)

//go:embed static/*
var staticFiles embed.FS

// staticAsset is one embedded file with its headers worked out up front.
type staticAsset struct {
	data        []byte
	contentType string
	etag        string
}

// staticAssets holds the embedded CSS and JS keyed by request path, e.g.
// "css/site.css".
type staticAssets map[string]staticAsset

func loadStaticAssets() (staticAssets, error) {
	root, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, apperrors.Wrapf(err, "static assets")
	}
	assets := staticAssets{}
	err = fs.WalkDir(root, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(root, name)
		if err != nil {
			return apperrors.Wrapf(err, "read %s", name)
		}
		sum := sha256.Sum256(data)
		assets[name] = staticAsset{
			data:        data,
			contentType: assetContentType(name, data),
			etag:        `"` + hex.EncodeToString(sum[:8]) + `"`,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func assetContentType(name string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(strings.ToLower(ctype), "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}

// serveFileHandler answers the static routes from the preloaded assets and
// honours If-None-Match against the content hash.
func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		asset, ok := s.assets[name]
		if !ok {
			zerolog.Ctx(r.Context()).Debug().Str("file", name).Msg("static file not found")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		w.Header().Set("ETag", asset.etag)
		if r.Header.Get("If-None-Match") == asset.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", asset.contentType)
		if _, err := w.Write(asset.data); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("file", name).Msg("static file write failed")
		}
	}
}
