package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is a client request on the tutorial socket.
type Message struct {
	Type    string          `json:"type"` // "start", "next", "guess", "goto", "final", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartPayload opens a tutorial on a polynomial.
type StartPayload struct {
	Polynomial string `json:"polynomial"`
}

// GuessPayload names a candidate root, e.g. "-3/2".
type GuessPayload struct {
	Candidate string `json:"candidate"`
}

// GotoPayload names a completed stage.
type GotoPayload struct {
	Stage string `json:"stage"`
}

// Response is a server reply on the tutorial socket.
type Response struct {
	Type      string      `json:"type"` // "state", "error", "pong"
	SessionID string      `json:"session_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ErrorPayload describes a rejected request.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StageView is the tutorial as shown after a request: the current stage
// and the data belonging to it.
type StageView struct {
	Stage     polyroots.Stage            `json:"stage"`
	Title     string                     `json:"title"`
	Previous  polyroots.Stage            `json:"previous"`
	Completed []polyroots.Stage          `json:"completed"`
	NoRoots   bool                       `json:"no_roots"`
	Forms     *polyroots.FormsResult     `json:"forms,omitempty"`
	RZT       *polyroots.RZTResult       `json:"rzt,omitempty"`
	Descartes *polyroots.SignCount       `json:"descartes,omitempty"`
	Synthetic *polyroots.SessionSnapshot `json:"synthetic,omitempty"`
	Division  *polyroots.Division        `json:"division,omitempty"`
	Report    *polyroots.Report          `json:"report,omitempty"`
}

// conn is one tutorial connection.
type conn struct {
	id  string
	ws  *websocket.Conn
	tut *polyroots.Tutorial
	log *slog.Logger
	ttl time.Duration
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}
	c := &conn{
		id:  uuid.New().String(),
		ws:  ws,
		ttl: s.cfg.SessionTTL.Duration,
	}
	c.log = s.logger.With(slog.String("session", c.id))
	s.register(c.id)
	defer s.unregister(c.id)
	s.serve(c)
}

func (s *Server) serve(c *conn) {
	defer c.ws.Close()
	c.log.Info("tutorial connection established", slog.String("remote", c.ws.RemoteAddr().String()))

	for {
		if c.ttl > 0 {
			c.ws.SetReadDeadline(time.Now().Add(c.ttl))
		}
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read error", slog.Any("error", err))
			} else {
				c.log.Info("tutorial connection closed")
			}
			return
		}
		resp := s.dispatch(c, msg)
		resp.SessionID = c.id
		if err := c.ws.WriteJSON(resp); err != nil {
			c.log.Warn("websocket write error", slog.Any("error", err))
			return
		}
	}
}

func (s *Server) dispatch(c *conn, msg Message) Response {
	if msg.Type == "ping" {
		return Response{Type: "pong"}
	}
	if msg.Type == "start" {
		var p StartPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorResponse("invalid_payload", err)
		}
		tut, err := polyroots.NewTutorial(p.Polynomial, s.opts...)
		if err != nil {
			return errorResponse(errorCode(err), err)
		}
		c.tut = tut
		c.log.Info("tutorial started", slog.String("polynomial", tut.Forms().Polynomial))
		return s.state(c, nil)
	}
	if c.tut == nil {
		return errorResponse("no_tutorial", errgo.New("send a start message first"))
	}

	switch msg.Type {
	case "next":
		if _, err := c.tut.Next(); err != nil {
			return errorResponse(errorCode(err), err)
		}
		return s.state(c, nil)

	case "guess":
		var p GuessPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorResponse("invalid_payload", err)
		}
		r, err := polyroots.ParseRational(p.Candidate)
		if err != nil {
			return errorResponse(errorCode(err), err)
		}
		d, err := c.tut.Guess(r)
		if err != nil {
			return errorResponse(errorCode(err), err)
		}
		return s.state(c, &d)

	case "goto":
		var p GotoPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorResponse("invalid_payload", err)
		}
		st, err := polyroots.ParseStage(p.Stage)
		if err != nil {
			return errorResponse("unknown_stage", err)
		}
		if err := c.tut.Goto(st); err != nil {
			return errorResponse(errorCode(err), err)
		}
		return s.state(c, nil)

	case "final":
		if _, err := c.tut.Final(); err != nil {
			return errorResponse(errorCode(err), err)
		}
		return s.state(c, nil)
	}
	return errorResponse("unknown_type", errgo.Newf("unknown message type: %s", msg.Type))
}

// state renders the current stage. The stage methods are cached, so calling
// them again only re-reads their results.
func (s *Server) state(c *conn, d *polyroots.Division) Response {
	t := c.tut
	v := StageView{
		Stage:    t.Stage(),
		Title:    t.Stage().Title(),
		Previous: t.Previous(),
		NoRoots:  t.NoRoots(),
		Division: d,
	}
	for _, st := range polyroots.Stages {
		if t.Completed(st) {
			v.Completed = append(v.Completed, st)
		}
	}

	var err error
	switch t.Stage() {
	case polyroots.StageForms:
		f := t.Forms()
		v.Forms = &f
	case polyroots.StageRZT:
		var res polyroots.RZTResult
		res, err = t.RationalZeroTest()
		v.RZT = &res
	case polyroots.StageDescartes:
		var sc polyroots.SignCount
		sc, err = t.Descartes()
		v.Descartes = &sc
	case polyroots.StageSynthetic:
		snap := t.Session().Snapshot()
		v.Synthetic = &snap
	case polyroots.StageFinal:
		var rep polyroots.Report
		rep, err = t.Final()
		v.Report = &rep
	}
	if err != nil {
		return errorResponse(errorCode(err), err)
	}
	return Response{Type: "state", Payload: v}
}

func errorResponse(code string, err error) Response {
	return Response{Type: "error", Payload: ErrorPayload{Code: code, Message: err.Error()}}
}

func errorCode(err error) string {
	switch {
	case polyroots.IsParseFailure(err):
		return "parse_failure"
	case polyroots.IsDegreeLimit(err):
		return "degree_limit"
	case polyroots.IsCoefficientRange(err):
		return "coefficient_range"
	case errgo.Cause(err) == polyroots.ErrUnknownCandidate:
		return "unknown_candidate"
	case errgo.Cause(err) == polyroots.ErrSessionFinished:
		return "session_finished"
	case errgo.Cause(err) == polyroots.ErrStageLocked:
		return "stage_locked"
	}
	return "internal"
}
