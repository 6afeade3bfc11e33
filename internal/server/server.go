package server

import (
	"net/http"

	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/nutrition"
	"github.com/foodscope/foodscope/pkg/scan"
	"github.com/foodscope/foodscope/pkg/storage"
)

// Server is the foodscope proxy: it fronts Open Food Facts with the local
// cache and returns scored product reports, so thin clients never talk to
// the upstream database or duplicate the scoring logic.
type Server struct {
	Scanner    *scan.Service
	DB         *storage.DB
	Thresholds nutrition.Thresholds
	Username   string
	Password   string
}

func New(scanner *scan.Service, db *storage.DB, thresholds nutrition.Thresholds, user, pass string) *Server {
	return &Server{
		Scanner:    scanner,
		DB:         db,
		Thresholds: thresholds,
		Username:   user,
		Password:   pass,
	}
}

// Handler builds the route table. Split from Start so tests can drive the
// mux through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/product/{barcode}", s.basicAuth(s.handleProduct))
	mux.HandleFunc("GET /api/thresholds", s.basicAuth(s.handleThresholds))
	mux.HandleFunc("GET /api/history", s.basicAuth(s.handleHistory))
	mux.HandleFunc("GET /api/stats", s.basicAuth(s.handleStats))
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return mux
}

func (s *Server) Start(addr string, rps float64, burst int) error {
	handler := rateLimit(rps, burst)(s.Handler())
	utils.Log.Info("Starting server on ", addr)
	return http.ListenAndServe(addr, handler)
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
