package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/panyam/ramtool/services"
	"github.com/panyam/ramtool/solver"
)

const (
	liveWriteWait = 10 * time.Second
	livePongWait  = 60 * time.Second
	livePingEvery = (livePongWait * 9) / 10
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// liveInbound is a client message.  Seq orders solve requests; when it is
// zero the server assigns one.
type liveInbound struct {
	Type     string           `json:"type"`
	Kind     string           `json:"kind,omitempty"`
	Seq      uint64           `json:"seq,omitempty"`
	Scenario *solver.Scenario `json:"scenario,omitempty"`
}

type liveOutbound struct {
	Type    string                   `json:"type"`
	Kind    string                   `json:"kind,omitempty"`
	Seq     uint64                   `json:"seq,omitempty"`
	Result  *services.Result[any]    `json:"result,omitempty"`
	Valid   *solver.ValidationResult `json:"validation,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// liveHandler runs one session per connection.  Solves run off the read
// loop; a result is only sent if no newer solve arrived in the meantime.
type liveHandler struct {
	svc *services.RamService
}

func (h *liveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(livePongWait)); err != nil {
		slog.Warn("live: set read deadline failed", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	writeCh := make(chan liveOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(livePingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(liveWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(liveWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	session := &liveSession{svc: h.svc, out: writeCh}
	session.push(liveOutbound{Type: "connected"})

	for {
		var in liveInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		session.handle(ctx, &in)
	}
}

type liveSession struct {
	svc    *services.RamService
	out    chan liveOutbound
	latest services.Supersede
}

func (s *liveSession) handle(ctx context.Context, in *liveInbound) {
	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "ping":
		s.push(liveOutbound{Type: "pong"})
	case "validate":
		if in.Scenario == nil {
			s.push(liveOutbound{Type: "error", Message: "scenario is required"})
			return
		}
		s.push(liveOutbound{Type: "validation", Valid: s.svc.Validate(in.Scenario)})
	case "solve":
		s.solve(ctx, in)
	case "":
		s.push(liveOutbound{Type: "error", Message: "type is required"})
	default:
		s.push(liveOutbound{Type: "error", Message: "unsupported type: " + in.Type})
	}
}

func (s *liveSession) solve(ctx context.Context, in *liveInbound) {
	kind, err := services.ParseSolveKind(in.Kind)
	if err != nil {
		s.push(liveOutbound{Type: "error", Seq: in.Seq, Message: err.Error()})
		return
	}
	if in.Scenario == nil {
		s.push(liveOutbound{Type: "error", Seq: in.Seq, Message: "scenario is required"})
		return
	}

	seq := in.Seq
	if seq == 0 {
		seq = s.latest.Next()
	} else if !s.latest.Observe(seq) {
		slog.Debug("live: dropping out of order request", "seq", seq)
		return
	}

	scenario := in.Scenario
	go func() {
		result := services.Call(func() (*any, error) {
			resp, err := s.svc.Solve(ctx, kind, scenario)
			return &resp, err
		})
		if !s.latest.IsCurrent(seq) {
			slog.Debug("live: dropping superseded result", "seq", seq)
			return
		}
		s.push(liveOutbound{Type: "result", Kind: string(kind), Seq: seq, Result: &result})
	}()
}

// push never blocks: when the writer is behind, the oldest queued message
// is dropped to make room.
func (s *liveSession) push(out liveOutbound) {
	select {
	case s.out <- out:
		return
	default:
	}
	select {
	case <-s.out:
	default:
	}
	select {
	case s.out <- out:
	default:
	}
}
