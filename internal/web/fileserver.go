package web

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozmoai/site/pkg/kz/logger"
)

const (
	staticAssetsPath   = "assets/static"
	staticURLPrefix    = "/static"
	staticCacheControl = "public, max-age=3600"
)

// FileServer serves the embedded stylesheet, scripts and images.
type FileServer struct {
	assetsFS fs.FS
	log      logger.Logger
}

func NewFileServer(assetsFS fs.FS, log logger.Logger) *FileServer {
	return &FileServer{
		assetsFS: assetsFS,
		log:      log,
	}
}

func (s *FileServer) RegisterRoutes(r chi.Router) {
	s.log.Infof("Registering file server: %s -> %s", staticURLPrefix, staticAssetsPath)

	staticFS, err := fs.Sub(s.assetsFS, staticAssetsPath)
	if err != nil {
		s.log.Errorf("Error creating static files sub-filesystem: %v", err)
		return
	}

	files := http.StripPrefix(staticURLPrefix+"/", http.FileServer(http.FS(staticFS)))
	r.Handle(staticURLPrefix+"/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", staticCacheControl)
		files.ServeHTTP(w, r)
	}))
}
