package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/phanxgames/gestures"
)

const shutdownTimeout = 5 * time.Second

// Client message types accepted on /ws.
const (
	msgTouch  = "touch"
	msgReset  = "reset"
	msgRotate = "rotate"
	msgScale  = "scale"
)

// clientMessage is one request from a remote touch source.
type clientMessage struct {
	Type   string               `json:"type"`
	Event  *gestures.TouchEvent `json:"event,omitempty"`
	Rotate *gestures.Angle      `json:"rotate,omitempty"`
	Scale  *float64             `json:"scale,omitempty"`
}

// serverMessage answers every client message with the committed transform
// and the callbacks that fired while handling it.
type serverMessage struct {
	Transform gestures.Transform  `json:"transform"`
	Emissions []gestures.Emission `json:"emissions"`
	Error     string              `json:"error,omitempty"`
}

// bridge serves one gesture per websocket connection.
type bridge struct {
	cfg      gestures.Config
	logger   *log.Logger
	debug    bool
	upgrader websocket.Upgrader
}

func newBridge(cfg gestures.Config, logger *log.Logger) *bridge {
	return &bridge{
		cfg:    cfg,
		logger: logger,
		debug:  logger.GetLevel() <= log.DebugLevel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// routes builds the HTTP handler.
func (b *bridge) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/ws", b.handleWS)
	return r
}

func (b *bridge) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	id := uuid.New()
	logger := b.logger.With("conn", id.String())
	logger.Info("client connected", "remote", conn.RemoteAddr().String())

	g := gestures.New(id.String(), b.cfg)
	g.SetLogger(logger)
	g.SetDebugMode(b.debug)

	var fired []gestures.Emission
	for _, k := range gestures.CallbackKinds() {
		g.On(k, func(gc gestures.GestureContext) {
			fired = append(fired, gestures.Emission{Kind: gc.Kind, Transform: gc.Transform})
		})
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read failed", "err", err)
			}
			break
		}

		fired = fired[:0]
		reply := serverMessage{}
		if err := applyMessage(g, msg); err != nil {
			reply.Error = err.Error()
		}
		reply.Transform = g.Transform()
		reply.Emissions = append([]gestures.Emission{}, fired...)

		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("write failed", "err", err)
			break
		}
	}

	// A dropped connection revokes any gesture still in progress.
	if g.Active() {
		g.HandleEvent(gestures.TouchEvent{Phase: gestures.PhaseTerminate})
	}
	logger.Info("client disconnected", "transform", g.Transform())
}

func applyMessage(g *gestures.Gesture, msg clientMessage) error {
	switch msg.Type {
	case msgTouch:
		if msg.Event == nil {
			return errors.New("touch message without event")
		}
		g.HandleEvent(*msg.Event)
	case msgReset:
		g.Reset(nil)
	case msgRotate:
		if msg.Rotate == nil {
			return errors.New("rotate message without rotate")
		}
		g.SetRotate(*msg.Rotate)
	case msgScale:
		if msg.Scale == nil {
			return errors.New("scale message without scale")
		}
		g.SetScale(*msg.Scale)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// serveOpts holds flags for the serve command.
type serveOpts struct {
	addr       string
	configPath string
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bridge remote touch streams to gesture sessions over a websocket",
		Long: `Serve accepts websocket clients on /ws. Each connection owns one gesture;
clients send touch events and receive the committed transform with the
callbacks that fired.`,
		Example: `  gestures serve --addr :8080 --config gestures.toml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "gesture config file (.toml, .yaml or .json)")
	return cmd
}

func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(ctx, opts.configPath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newBridge(cfg, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return ctx.Err()
}
