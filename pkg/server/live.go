package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/coursebook/internal/errors"
	"github.com/vango-dev/coursebook/pkg/filters"
	"github.com/vango-dev/coursebook/pkg/filterstate"
	"github.com/vango-dev/coursebook/pkg/search"
	"github.com/vango-dev/coursebook/pkg/toast"
	"github.com/vango-dev/coursebook/pkg/urlparam"
)

// Client operations.
const (
	opUpdate = "update"
	opPage   = "page"
	opReset  = "reset"
	opApply  = "apply"
)

// clientMessage is a message sent by the browser.
type clientMessage struct {
	Op    string         `json:"op"`
	Patch *filters.Patch `json:"patch,omitempty"`
	Page  int            `json:"page,omitempty"`
}

type sessionMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

type urlMessage struct {
	Type   string            `json:"type"`
	Mode   string            `json:"mode"`
	Params map[string]string `json:"params"`
}

type toastMessage struct {
	Type  string         `json:"type"`
	Event string         `json:"event"`
	Toast map[string]any `json:"toast"`
}

type resultsMessage struct {
	Type    string         `json:"type"`
	Results searchResponse `json:"results"`
}

type errorMessage struct {
	Type  string          `json:"type"`
	Error json.RawMessage `json:"error"`
}

// liveSession is one WebSocket connection and the filter state it drives.
type liveSession struct {
	id         string
	server     *Server
	conn       *websocket.Conn
	state      *filterstate.Synchronizer
	favourites map[int64]bool
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// HandleLive upgrades the request to a WebSocket and runs a live search
// session until the client disconnects.
func (s *Server) HandleLive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	favourites, err := parseFavourites(q.Get(favouritesParam))
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ls := &liveSession{
		id:         uuid.NewString(),
		server:     s,
		conn:       conn,
		favourites: favourites,
		ctx:        ctx,
		cancel:     cancel,
	}
	ls.logger = s.logger.With("session", ls.id)

	query := make(map[string]string, len(q))
	for k := range q {
		query[k] = q.Get(k)
	}
	ls.state = filterstate.FromLocation(query,
		urlparam.NewNavigator(ls.sendURL),
		filterstate.WithNotifier(toast.NewEmitter(ls.sendToast)),
		filterstate.WithSyncDelay(s.config.SyncDelay),
		filterstate.WithSearch(ls.runSearch),
		filterstate.WithSearchDelay(s.config.SearchDelay),
		filterstate.WithLogger(ls.logger),
		filterstate.WithSyncObserver(func(map[string]string) { s.metrics.URLSynced() }),
	)

	s.addSession(ls)
	ls.logger.Info("live session opened", "filters", filters.CountApplied(ls.state.Filters()))
	defer func() {
		ls.close(websocket.CloseNormalClosure, "")
		s.removeSession(ls)
		ls.logger.Info("live session closed")
	}()

	ls.send(sessionMessage{Type: "session", Session: ls.id})
	ls.runSearch()

	go ls.pingLoop()
	ls.readLoop()
}

func (ls *liveSession) readLoop() {
	cfg := ls.server.config
	ls.conn.SetReadLimit(cfg.MaxMessageSize)
	ls.conn.SetReadDeadline(time.Now().Add(cfg.IdleTimeout))
	ls.conn.SetPongHandler(func(string) error {
		return ls.conn.SetReadDeadline(time.Now().Add(cfg.IdleTimeout))
	})

	for {
		_, data, err := ls.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ls.logger.Debug("read failed", "error", err)
			}
			return
		}
		ls.conn.SetReadDeadline(time.Now().Add(cfg.IdleTimeout))

		if err := ls.handle(data); err != nil {
			ls.sendError(err)
		}
	}
}

func (ls *liveSession) handle(data []byte) error {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.New("E400").Wrap(err)
	}

	switch msg.Op {
	case opUpdate:
		if msg.Patch == nil {
			return errors.New("E400").WithDetail(`"update" requires a patch`)
		}
		if err := msg.Patch.Validate(); err != nil {
			return errors.New("E400").WithDetail(err.Error())
		}
		ls.state.Update(*msg.Patch)

	case opPage:
		if msg.Page < filters.FirstPage || msg.Page > filters.MaxPage {
			return errors.New("E400").
				WithDetail(`"page" requires a page number from 1 to ` + strconv.Itoa(filters.MaxPage))
		}
		ls.state.Update(filters.Patch{PageNum: filters.Ptr(msg.Page)})

	case opReset:
		ls.state.Reset()

	case opApply:
		n, err := ls.server.engine.Count(ls.ctx, ls.request())
		if err != nil {
			return errors.FromError(err, "E302")
		}
		ls.state.Apply(n)

	default:
		return errors.New("E401").WithDetail("op " + strconv.Quote(msg.Op))
	}
	return nil
}

func (ls *liveSession) request() search.Request {
	return search.Request{Filters: ls.state.Filters(), Favourites: ls.favourites}
}

// runSearch searches with the current filters and pushes the results. It
// runs on the search debounce timer, outside any HTTP recoverer.
func (ls *liveSession) runSearch() {
	defer func() {
		if r := recover(); r != nil {
			ls.logger.Error("search panic", "panic", r, "stack", string(debug.Stack()))
			ls.sendError(errors.New("E302"))
		}
	}()

	req := ls.request()
	res, err := ls.server.engine.Search(ls.ctx, req)
	if err != nil {
		if ls.ctx.Err() == nil {
			ls.sendError(errors.FromError(err, "E302"))
		}
		return
	}
	ls.server.metrics.SearchRan("live")
	ls.send(resultsMessage{Type: "results", Results: newSearchResponse(res, req.Filters)})
}

func (ls *liveSession) sendURL(u urlparam.URLUpdate) {
	ls.send(urlMessage{Type: "url", Mode: u.Mode.String(), Params: u.Params})
}

func (ls *liveSession) sendToast(name string, data any) {
	payload, ok := toastPayload(data)
	if !ok {
		ls.logger.Warn("dropping toast with unexpected payload", "event", name, "type", fmt.Sprintf("%T", data))
		return
	}
	ls.send(toastMessage{Type: "toast", Event: name, Toast: payload})
}

// toastPayload converts an emitter payload to the toast message body.
func toastPayload(data any) (map[string]any, bool) {
	switch v := data.(type) {
	case map[string]any:
		return v, v != nil
	case toast.Toast:
		return v.Payload(), true
	case *toast.Toast:
		if v == nil {
			return nil, false
		}
		return v.Payload(), true
	default:
		return nil, false
	}
}

func (ls *liveSession) sendError(err error) {
	e := errors.FromError(err, "E302")
	ls.logger.Debug("client error", "code", e.Code, "error", e)
	ls.send(errorMessage{Type: "error", Error: json.RawMessage(e.FormatJSON())})
}

// send writes v as a JSON text message. Writes from the read loop, the
// debounce timers and the ping loop are serialized.
func (ls *liveSession) send(v any) {
	if ls.ctx.Err() != nil {
		return
	}
	ls.writeMu.Lock()
	defer ls.writeMu.Unlock()

	ls.conn.SetWriteDeadline(time.Now().Add(ls.server.config.WriteTimeout))
	if err := ls.conn.WriteJSON(v); err != nil {
		ls.logger.Debug("write failed", "error", err)
	}
}

func (ls *liveSession) pingLoop() {
	ticker := time.NewTicker(ls.server.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ls.ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(ls.server.config.WriteTimeout)
			if err := ls.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// close stops pending debounced work and closes the connection once.
func (ls *liveSession) close(code int, reason string) {
	ls.closeOnce.Do(func() {
		ls.state.Close()
		ls.cancel()

		ls.writeMu.Lock()
		deadline := time.Now().Add(time.Second)
		ls.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		ls.writeMu.Unlock()
		ls.conn.Close()
	})
}
