package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"steamcycle/circuit"
	"steamcycle/config"
	"steamcycle/cycle"
	"steamcycle/diagram"
	"steamcycle/integrator"
	"steamcycle/model"
	"steamcycle/steam"
)

// Hub serves one websocket connection: requests are computed in order and replies
// are written by a single goroutine.
type Hub struct {
	id       string
	conn     *websocket.Conn
	resolver *steam.Resolver
	cfg      *config.Config
	logger   *log.Entry
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
}

func NewHub(id string, conn *websocket.Conn, resolver *steam.Resolver, cfg *config.Config) *Hub {
	return &Hub{
		id:       id,
		conn:     conn,
		resolver: resolver,
		cfg:      cfg,
		logger:   log.WithField("session", id),
		msg:      make(chan model.Msg, 10),
		reply:    make(chan model.Msg, 10),
	}
}

func (h *Hub) handleResponse(done chan<- struct{}) {
	defer close(done)
	broken := false
	for reply := range h.reply {
		if broken {
			continue
		}
		if err := h.conn.WriteJSON(&reply); err != nil {
			h.logger.WithError(err).Warn("write reply")
			broken = true
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.dispatch(ctx, msg)
	}
}

func (h *Hub) dispatch(ctx context.Context, msg model.Msg) model.Msg {
	var (
		replyType string
		content   interface{}
		err       error
	)
	switch msg.Type {
	case model.MsgState:
		replyType = model.MsgStateResolved
		content, err = h.state(msg.Content)
	case model.MsgCycle:
		replyType = model.MsgCycleEvaluated
		content, err = h.cycle(msg.Content)
	case model.MsgDiagram:
		replyType = model.MsgDiagramBuilt
		content, err = h.diagram(msg.Content)
	case model.MsgSweep:
		replyType = model.MsgSweepDone
		content, err = h.sweep(ctx, msg.Content)
	case model.MsgCircuit:
		replyType = model.MsgCircuitSimulated
		content, err = h.circuit(msg.Content)
	default:
		err = fmt.Errorf("no such type: %q", msg.Type)
	}
	if err == nil {
		var data []byte
		data, err = json.Marshal(content)
		if err == nil {
			return model.Msg{Type: replyType, Content: string(data)}
		}
	}
	h.logger.WithFields(log.Fields{
		"type":  msg.Type,
		"error": err,
	}).Info("request failed")
	return model.Msg{Type: model.MsgError, Content: err.Error()}
}

func (h *Hub) state(content string) (model.State, error) {
	var req model.StateReq
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return model.State{}, fmt.Errorf("decode state request: %w", err)
	}
	var given []steam.Given
	if req.Quality != nil {
		given = append(given, steam.WithQuality(*req.Quality))
	}
	if req.Temperature != nil {
		given = append(given, steam.WithTemperature(*req.Temperature))
	}
	if req.Entropy != nil {
		given = append(given, steam.WithEntropy(*req.Entropy))
	}
	if req.Enthalpy != nil {
		given = append(given, steam.WithEnthalpy(*req.Enthalpy))
	}
	return h.resolver.Resolve(req.Pressure, req.Label, given...)
}

func decodeCycle(content string) (cycle.Spec, error) {
	var req model.CycleReq
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return cycle.Spec{}, fmt.Errorf("decode cycle request: %w", err)
	}
	if req.TurbineEfficiency == 0 {
		req.TurbineEfficiency = 1
	}
	return cycle.SpecFromReq(req), nil
}

func (h *Hub) cycle(content string) (*cycle.Result, error) {
	spec, err := decodeCycle(content)
	if err != nil {
		return nil, err
	}
	return cycle.Evaluate(h.resolver, spec)
}

func (h *Hub) diagram(content string) (*diagram.TSDiagram, error) {
	res, err := h.cycle(content)
	if err != nil {
		return nil, err
	}
	return diagram.Build(h.resolver, res)
}

func (h *Hub) sweep(ctx context.Context, content string) ([]*cycle.Result, error) {
	var req model.SweepReq
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return nil, fmt.Errorf("decode sweep request: %w", err)
	}
	specs := make([]cycle.Spec, len(req.Cycles))
	for i, c := range req.Cycles {
		if c.TurbineEfficiency == 0 {
			c.TurbineEfficiency = 1
		}
		specs[i] = cycle.SpecFromReq(c)
	}
	return cycle.Sweep(ctx, h.resolver, specs, h.cfg.Cycle.Workers)
}

func (h *Hub) circuit(content string) (*circuit.Trace, error) {
	req := model.CircuitReq{Form: string(circuit.CurrentForm), T0: 0, Tf: 10, Points: 500}
	def := circuit.Default()
	req.L, req.R, req.C, req.Amplitude, req.Omega = def.L, def.R, def.C, 20, 20
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return nil, fmt.Errorf("decode circuit request: %w", err)
	}
	n := circuit.Network{L: req.L, R: req.R, C: req.C, Source: circuit.Sine(req.Amplitude, req.Omega)}
	opts := integrator.Options{Substeps: h.cfg.Circuit.Substeps}
	return n.Simulate(circuit.Form(req.Form), req.T0, req.Tf, req.Points, opts)
}
