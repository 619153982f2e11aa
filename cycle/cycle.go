package cycle

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"steamcycle/model"
	"steamcycle/steam"
)

// Spec fixes one Rankine cycle. THigh nil means saturated vapour at the turbine inlet.
type Spec struct {
	Name              string
	PLow              float64 // kPa
	PHigh             float64 // kPa
	THigh             *float64
	TurbineEfficiency float64
}

func SpecFromReq(req model.CycleReq) Spec {
	return Spec{
		Name:              req.Name,
		PLow:              req.PLow,
		PHigh:             req.PHigh,
		THigh:             req.THigh,
		TurbineEfficiency: req.TurbineEfficiency,
	}
}

func (s Spec) validate() error {
	var reason string
	switch {
	case !(s.PLow > 0):
		reason = "p_low must be positive"
	case !(s.PHigh > s.PLow):
		reason = "p_high must exceed p_low"
	case !(s.TurbineEfficiency > 0 && s.TurbineEfficiency <= 1):
		reason = "turbine efficiency must lie in (0, 1]"
	default:
		return nil
	}
	return &steam.InvalidSpecificationError{Pressure: s.PHigh, Reason: reason}
}

// Result keeps the five cycle states and the derived quantities (kJ/kg, %).
type Result struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Spec Spec   `json:"-"`

	State1  model.State `json:"state1"`  // turbine inlet
	State2s model.State `json:"state2s"` // ideal turbine exit
	State2  model.State `json:"state2"`  // actual turbine exit
	State3  model.State `json:"state3"`  // pump inlet
	State4  model.State `json:"state4"`  // pump exit

	TurbineEfficiency float64 `json:"turbine_efficiency"`
	TurbineWork       float64 `json:"turbine_work"`
	PumpWork          float64 `json:"pump_work"`
	HeatAdded         float64 `json:"heat_added"`
	HeatRejected      float64 `json:"heat_rejected"`
	NetWork           float64 `json:"net_work"`
	BackWorkRatio     float64 `json:"back_work_ratio"`
	Efficiency        float64 `json:"efficiency"`
}

// States lists the states in cycle order.
func (r *Result) States() []model.State {
	return []model.State{r.State1, r.State2, r.State3, r.State4}
}

// Evaluate resolves the four cycle states and the cycle efficiency. Any resolver
// error fails the whole cycle.
func Evaluate(r *steam.Resolver, spec Spec) (*Result, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	res := &Result{ID: uuid.NewString(), Name: spec.Name, Spec: spec, TurbineEfficiency: spec.TurbineEfficiency}
	var err error

	// state 1: turbine inlet, superheated or saturated vapour
	if spec.THigh == nil {
		res.State1, err = r.Resolve(spec.PHigh, "Turbine Inlet", steam.WithQuality(1))
	} else {
		res.State1, err = r.Resolve(spec.PHigh, "Turbine Inlet", steam.WithTemperature(*spec.THigh))
	}
	if err != nil {
		return nil, fmt.Errorf("state 1: %w", err)
	}

	// state 2: turbine exit, eff = (h1-h2)/(h1-h2s)
	res.State2s, err = r.Resolve(spec.PLow, "Turbine Exit", steam.WithEntropy(res.State1.SpecificEntropy))
	if err != nil {
		return nil, fmt.Errorf("state 2s: %w", err)
	}
	res.State2 = res.State2s
	if spec.TurbineEfficiency < 1 {
		h2 := res.State1.SpecificEnthalpy - spec.TurbineEfficiency*(res.State1.SpecificEnthalpy-res.State2s.SpecificEnthalpy)
		res.State2, err = r.Resolve(spec.PLow, "Turbine Exit", steam.WithEnthalpy(h2))
		if err != nil {
			return nil, fmt.Errorf("state 2: %w", err)
		}
	}

	// state 3: pump inlet, saturated liquid
	res.State3, err = r.Resolve(spec.PLow, "Pump Inlet", steam.WithQuality(0))
	if err != nil {
		return nil, fmt.Errorf("state 3: %w", err)
	}

	// state 4: pump exit, incompressible pump
	res.State4, err = r.Resolve(spec.PHigh, "Pump Exit", steam.WithEntropy(res.State3.SpecificEntropy))
	if err != nil {
		return nil, fmt.Errorf("state 4: %w", err)
	}
	res.State4.SpecificEnthalpy = res.State3.SpecificEnthalpy + res.State3.SpecificVolume*(spec.PHigh-spec.PLow)
	res.State4.SpecificEntropy = res.State3.SpecificEntropy
	res.State4.SpecificVolume = res.State3.SpecificVolume
	res.State4.Temperature = res.State3.Temperature
	res.State4.Phase = model.SubcooledLiquid
	res.State4.Quality = nil

	res.TurbineWork = res.State1.SpecificEnthalpy - res.State2.SpecificEnthalpy
	res.PumpWork = res.State4.SpecificEnthalpy - res.State3.SpecificEnthalpy
	res.HeatAdded = res.State1.SpecificEnthalpy - res.State4.SpecificEnthalpy
	res.HeatRejected = res.State2.SpecificEnthalpy - res.State3.SpecificEnthalpy
	res.NetWork = res.TurbineWork - res.PumpWork
	res.BackWorkRatio = res.PumpWork / res.TurbineWork
	res.Efficiency = 100.0 * res.NetWork / res.HeatAdded

	log.WithFields(log.Fields{
		"id":         res.ID,
		"name":       res.Name,
		"p_low":      spec.PLow,
		"p_high":     spec.PHigh,
		"efficiency": res.Efficiency,
	}).Info("cycle evaluated")
	return res, nil
}
