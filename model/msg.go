package model

// 前后端通信消息结构
// Msg is the envelope exchanged over the websocket. Content carries a JSON document
// whose shape depends on Type.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// request types
const (
	MsgState   = "state"
	MsgCycle   = "cycle"
	MsgDiagram = "diagram"
	MsgSweep   = "sweep"
	MsgCircuit = "circuit"
)

// reply types
const (
	MsgStateResolved    = "stateResolved"
	MsgCycleEvaluated   = "cycleEvaluated"
	MsgDiagramBuilt     = "diagramBuilt"
	MsgSweepDone        = "sweepDone"
	MsgCircuitSimulated = "circuitSimulated"
	MsgError            = "error"
)

// StateReq asks for one state; exactly one of the pointers must be set.
type StateReq struct {
	Pressure    float64  `json:"pressure"`
	Quality     *float64 `json:"quality,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Entropy     *float64 `json:"entropy,omitempty"`
	Enthalpy    *float64 `json:"enthalpy,omitempty"`
	Label       string   `json:"label,omitempty"`
}

// CycleReq describes one Rankine cycle.
type CycleReq struct {
	Name              string   `json:"name" yaml:"name"`
	PLow              float64  `json:"p_low" yaml:"p_low"`
	PHigh             float64  `json:"p_high" yaml:"p_high"`
	THigh             *float64 `json:"t_high,omitempty" yaml:"t_high,omitempty"`
	TurbineEfficiency float64  `json:"turbine_efficiency" yaml:"turbine_efficiency"`
}

type SweepReq struct {
	Cycles []CycleReq `json:"cycles"`
}

// CircuitReq configures an RLC transient run with a sinusoidal source
// v(t) = Amplitude·sin(Omega·t).
type CircuitReq struct {
	Form      string  `json:"form"` // "current" or "charge"
	L         float64 `json:"l"`
	R         float64 `json:"r"`
	C         float64 `json:"c"`
	Amplitude float64 `json:"amplitude"`
	Omega     float64 `json:"omega"`
	T0        float64 `json:"t0"`
	Tf        float64 `json:"tf"`
	Points    int     `json:"points"`
}
