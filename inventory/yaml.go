// SPDX-License-Identifier: MIT

package inventory

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/temporalis/distribution"
)

type fileInventory struct {
	Database   string             `yaml:"database"`
	Static     bool               `yaml:"static"`
	Activities []fileActivity     `yaml:"activities"`
	Method     map[string]float64 `yaml:"method"`
	Demand     map[string]float64 `yaml:"demand"`
}

type fileActivity struct {
	ID        int            `yaml:"id"`
	Code      string         `yaml:"code"`
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Static    bool           `yaml:"static"`
	Exchanges []fileExchange `yaml:"exchanges"`
}

type fileExchange struct {
	Input        string         `yaml:"input"`
	Kind         string         `yaml:"kind"`
	Amount       float64        `yaml:"amount"`
	Distribution map[string]any `yaml:"distribution"`
	Spread       *fileSpread    `yaml:"spread"`
}

// fileSpread describes a normalized relative distribution built with
// distribution.RelativeSpan.
type fileSpread struct {
	Start      int64    `yaml:"start"`
	End        int64    `yaml:"end"`
	Resolution string   `yaml:"resolution"`
	Steps      int      `yaml:"steps"`
	Shape      string   `yaml:"shape"`
	Param      *float64 `yaml:"param"`
}

// LoadFile reads a YAML inventory from path. See Load.
func LoadFile(path string, reg distribution.Registry) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "inventory: open %s", path)
	}
	defer f.Close()

	inv, err := Load(f, reg)
	if err != nil {
		return nil, errors.Wrapf(err, "inventory: load %s", path)
	}

	return inv, nil
}

// Load reads a YAML inventory. Embedded distribution records are decoded
// through reg, so host applications can register their own kinds. Unknown
// fields are rejected. The result is validated before it is returned.
func Load(r io.Reader, reg distribution.Registry) (*Inventory, error) {
	var f fileInventory
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrDecode, "yaml: %v", err), err)
	}

	inv := &Inventory{Method: make(map[int]float64), Demand: make(map[int]float64)}

	// Stage 1: activities and ids.
	next := 1
	for _, a := range f.Activities {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	ids := make(map[string]int, len(f.Activities))
	for _, a := range f.Activities {
		if a.Code == "" {
			return nil, errors.Wrap(ErrDecode, "activity without code")
		}
		if _, dup := ids[a.Code]; dup {
			return nil, errors.Wrapf(ErrDuplicateActivity, "code %q", a.Code)
		}
		id := a.ID
		if id == 0 {
			id = next
			next++
		}
		kind := ActivityKind(a.Kind)
		if kind == "" {
			kind = Process
		}
		ids[a.Code] = id
		inv.Activities = append(inv.Activities, Activity{
			ID:       id,
			Code:     a.Code,
			Name:     a.Name,
			Database: f.Database,
			Kind:     kind,
			Static:   a.Static || f.Static,
		})
	}

	// Stage 2: exchanges, with an implicit unit production for processes
	// that declare none.
	for i, a := range f.Activities {
		out := inv.Activities[i]
		produces := false
		for _, fe := range a.Exchanges {
			e, err := fe.exchange(ids, out.ID, reg)
			if err != nil {
				return nil, errors.Wrapf(err, "activity %q", a.Code)
			}
			if e.Kind == Production && e.Input == out.ID {
				produces = true
			}
			inv.Exchanges = append(inv.Exchanges, e)
		}
		if out.Kind == Process && !produces {
			inv.Exchanges = append(inv.Exchanges, Exchange{Input: out.ID, Output: out.ID, Kind: Production, Amount: 1})
		}
	}

	// Stage 3: method and demand.
	for _, code := range sortedKeys(f.Method) {
		id, ok := ids[code]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownActivity, "method flow %q", code)
		}
		inv.Method[id] = f.Method[code]
	}
	for _, code := range sortedKeys(f.Demand) {
		id, ok := ids[code]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownActivity, "demand %q", code)
		}
		inv.Demand[id] = f.Demand[code]
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	return inv, nil
}

func (fe fileExchange) exchange(ids map[string]int, output int, reg distribution.Registry) (Exchange, error) {
	in, ok := ids[fe.Input]
	if !ok {
		return Exchange{}, errors.Wrapf(ErrUnknownActivity, "exchange input %q", fe.Input)
	}
	kind := ExchangeKind(fe.Kind)
	if kind == "" {
		kind = Technosphere
	}
	e := Exchange{Input: in, Output: output, Kind: kind, Amount: fe.Amount}

	switch {
	case fe.Distribution != nil && fe.Spread != nil:
		return Exchange{}, errors.Wrapf(ErrDecode, "exchange from %q has both distribution and spread", fe.Input)

	case fe.Distribution != nil:
		raw, err := json.Marshal(fe.Distribution)
		if err != nil {
			return Exchange{}, errors.WithSecondaryError(errors.Wrapf(ErrDecode, "exchange from %q: %v", fe.Input, err), err)
		}
		d, err := reg.Decode(raw)
		if err != nil {
			return Exchange{}, errors.Wrapf(err, "exchange from %q", fe.Input)
		}
		e.Distribution = d

	case fe.Spread != nil:
		d, err := fe.Spread.build()
		if err != nil {
			return Exchange{}, errors.Wrapf(err, "exchange from %q", fe.Input)
		}
		e.Distribution = d
	}

	return e, nil
}

func (s fileSpread) build() (*distribution.Distribution, error) {
	res := distribution.Resolution(s.Resolution)
	if res == "" {
		res = distribution.Years
	}
	opts := make([]distribution.BuildOption, 0, 2)
	if s.Steps != 0 {
		opts = append(opts, distribution.WithSteps(s.Steps))
	}
	switch distribution.Shape(s.Shape) {
	case "", distribution.Uniform:
	case distribution.Triangular:
		if s.Param != nil {
			opts = append(opts, distribution.WithTriangularMode(*s.Param))
		} else {
			opts = append(opts, distribution.WithTriangular())
		}
	case distribution.Normal:
		sigma := 0.0
		if s.Param != nil {
			sigma = *s.Param
		}
		opts = append(opts, distribution.WithNormal(sigma))
	default:
		return nil, errors.Wrapf(distribution.ErrInvalidDistribution, "unknown shape %q", s.Shape)
	}

	return distribution.RelativeSpan(s.Start, s.End, res, opts...)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
