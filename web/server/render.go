package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/websocket"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

const (
	maxImageSize       = 2048
	maxSamplesPerPixel = 10000
	maxDepthLimit      = 200
	frameInterval      = 500 * time.Millisecond
)

var errCloseFrame = errors.New("close-frame")

var messageCodec = websocket.Codec{Marshal: nil, Unmarshal: unmarshalMessage}

// RenderRequest is the first message a client sends on /ws/render
type RenderRequest struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"`
	TileSize        int    `json:"tileSize"`
	Seed            int64  `json:"seed"`
	MovingSpheres   bool   `json:"movingSpheres"`
	CheckerGround   bool   `json:"checkerGround"`
}

// RenderEvent is a message streamed back to the client
type RenderEvent struct {
	Type  string       `json:"type"` // start, tile, frame, complete or error
	Tile  *TileUpdate  `json:"tile,omitempty"`
	Stats *StatsUpdate `json:"stats,omitempty"`
	Image string       `json:"image,omitempty"` // Base64 PNG of the whole framebuffer
	Error string       `json:"error,omitempty"`
}

// TileUpdate reports one finished tile
type TileUpdate struct {
	ID         int   `json:"id"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	Worker     int   `json:"worker"`
	Completed  int   `json:"completed"`
	Total      int   `json:"total"`
	DurationMs int64 `json:"durationMs"`
}

// StatsUpdate summarizes a render
type StatsUpdate struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Tiles            int     `json:"tiles"`
	Samples          int     `json:"samples"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Seed             int64   `json:"seed"`
}

func unmarshalMessage(data []byte, ty byte, v interface{}) error {
	switch ty {
	case websocket.CloseFrame:
		return errCloseFrame
	case websocket.TextFrame:
		return json.Unmarshal(data, v)
	default:
		return errors.New("invalid frame type")
	}
}

// config merges the request into the server defaults and checks the limits
func (req RenderRequest) config(defaults renderer.Config) (renderer.Config, error) {
	config := defaults
	if req.Width > 0 {
		config.Width = req.Width
	}
	if req.Height > 0 {
		config.Height = req.Height
	}
	if req.SamplesPerPixel > 0 {
		config.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		config.MaxDepth = req.MaxDepth
	}
	if req.TileSize > 0 {
		config.TileWidth = req.TileSize
		config.TileHeight = req.TileSize
	}
	if req.Seed != 0 {
		config.Seed = req.Seed
	}

	if config.Width > maxImageSize || config.Height > maxImageSize {
		return config, fmt.Errorf("image size %dx%d exceeds %d", config.Width, config.Height, maxImageSize)
	}
	if config.SamplesPerPixel > maxSamplesPerPixel {
		return config, fmt.Errorf("samples per pixel %d exceeds %d", config.SamplesPerPixel, maxSamplesPerPixel)
	}
	if config.MaxDepth > maxDepthLimit {
		return config, fmt.Errorf("max depth %d exceeds %d", config.MaxDepth, maxDepthLimit)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// renderSession handles one websocket connection: it reads a RenderRequest, renders it and
// streams tile, frame and completion events until the render ends
func (s *Server) renderSession(ws *websocket.Conn) {
	addr := ws.Request().RemoteAddr
	logger.Infof("new render connection: %s", addr)
	defer func() {
		ws.Close()
		logger.Infof("%s was disconnected", addr)
	}()

	var req RenderRequest
	if err := messageCodec.Receive(ws, &req); err != nil {
		if !errors.Is(err, errCloseFrame) {
			logger.Warningf("invalid render request from %s: %v", addr, err)
		}
		return
	}

	config, err := req.config(s.defaults)
	if err != nil {
		sendError(ws, err)
		return
	}
	if req.Scene == "" {
		req.Scene = "random-spheres"
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		config.Seed = seed
	}
	sc, err := scene.New(req.Scene, core.NewSeededSampler(seed), scene.Options{
		MovingSpheres: req.MovingSpheres,
		CheckerGround: req.CheckerGround,
	})
	if err != nil {
		sendError(ws, err)
		return
	}

	rend, err := renderer.NewTiledRenderer(sc.World, sc.NewCamera(config.AspectRatio()), config)
	if err != nil {
		sendError(ws, err)
		return
	}
	s.setLatestFramebuffer(rend.Framebuffer())

	logger.Noticef("%s: rendering %s at %dx%d, %d spp", addr, req.Scene, config.Width, config.Height, config.SamplesPerPixel)
	tileChan, errChan := rend.Start()

	s.streamRender(ws, rend, tileChan, errChan)
}

// streamRender forwards render progress to the client. If the client goes away the render
// keeps running and its channels are drained.
func (s *Server) streamRender(ws *websocket.Conn, rend *renderer.TiledRenderer, tileChan <-chan renderer.TileCompletion, errChan <-chan error) {
	connected := true
	send := func(event RenderEvent) {
		if !connected {
			return
		}
		if err := websocket.JSON.Send(ws, event); err != nil {
			logger.Infof("stopped streaming: %v", err)
			connected = false
		}
	}

	config := rend.Config()
	send(RenderEvent{Type: "start", Stats: &StatsUpdate{
		Width:  config.Width,
		Height: config.Height,
		Tiles:  len(rend.Tiles()),
		Seed:   config.Seed,
	}})

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for tileChan != nil {
		select {
		case tc, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			send(RenderEvent{Type: "tile", Tile: &TileUpdate{
				ID:         tc.TileID,
				X:          tc.Bounds.Min.X,
				Y:          tc.Bounds.Min.Y,
				Width:      tc.Bounds.Dx(),
				Height:     tc.Bounds.Dy(),
				Worker:     tc.WorkerID,
				Completed:  tc.Completed,
				Total:      tc.Total,
				DurationMs: tc.Duration.Milliseconds(),
			}})

		case <-ticker.C:
			if !connected {
				continue
			}
			frame, err := imageToBase64PNG(rend.Framebuffer().Image())
			if err != nil {
				logger.Warningf("failed to encode frame: %v", err)
				continue
			}
			send(RenderEvent{Type: "frame", Image: frame})
		}
	}

	if err := <-errChan; err != nil {
		logger.Errorf("render failed: %v", err)
		send(RenderEvent{Type: "error", Error: err.Error()})
		return
	}

	stats := rend.Stats()
	frame, err := imageToBase64PNG(rend.Framebuffer().Image())
	if err != nil {
		send(RenderEvent{Type: "error", Error: err.Error()})
		return
	}
	send(RenderEvent{Type: "complete", Image: frame, Stats: &StatsUpdate{
		Width:            config.Width,
		Height:           config.Height,
		Tiles:            stats.TotalTiles,
		Samples:          stats.TotalSamples,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
		SamplesPerSecond: stats.SamplesPerSecond(),
		Seed:             stats.Seed,
	}})
}

func sendError(ws *websocket.Conn, err error) {
	logger.Warningf("render request rejected: %v", err)
	if sendErr := websocket.JSON.Send(ws, RenderEvent{Type: "error", Error: err.Error()}); sendErr != nil {
		logger.Debugf("failed to send error: %v", sendErr)
	}
}
