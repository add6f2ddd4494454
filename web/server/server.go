package server

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/net/websocket"

	"github.com/df07/go-tiled-pathtracer/pkg/log"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

var logger = log.New("web")

//go:embed static
var staticFiles embed.FS

// Server serves the render preview UI and its API
type Server struct {
	port     int
	defaults renderer.Config

	mu     sync.Mutex
	latest *renderer.Framebuffer // Framebuffer of the most recently started render
}

// NewServer creates a new web server. defaults fills any render request field left at zero.
func NewServer(port int, defaults renderer.Config) *Server {
	return &Server{port: port, defaults: defaults}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/frame.png", s.handleFrame)
	mux.Handle("/ws/render", websocket.Handler(s.renderSession))

	return mux
}

// Start listens on the configured port until the server fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleFrame returns the latest framebuffer as PNG. Pixels that are still being rendered
// come back black.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	fb := s.latestFramebuffer()
	if fb == nil {
		http.Error(w, "no render has been started", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := encodePNG(w, fb.Image()); err != nil {
		logger.Warningf("failed to write frame: %v", err)
	}
}

func (s *Server) latestFramebuffer() *renderer.Framebuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *Server) setLatestFramebuffer(fb *renderer.Framebuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = fb
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

// encodePNG writes img through a gg drawing context
func encodePNG(w io.Writer, img *image.RGBA) error {
	return gg.NewContextForRGBA(img).EncodePNG(w)
}

// imageToBase64PNG encodes img as a base64 PNG for embedding in JSON messages
func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
