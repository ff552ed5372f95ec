// Package kb loads and serves the kernel pool: the small set of named
// constants a run needs (body name/code mappings, the reference epoch, the
// trajectory store path). The pool is assembled once at startup from one or
// more kernel files and is immutable afterwards, so it is safe to share
// freely between components.
package kb

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signalsfoundry/clock-ephemeris/ephemtime"
	"github.com/signalsfoundry/clock-ephemeris/model"
)

// kernel is the on-disk shape of one kernel file. Later kernels override
// scalar values and extend the body table.
type kernel struct {
	Bodies   []model.Body `json:"bodies"`
	ET0      string       `json:"et0"`
	ClockSPK string       `json:"clock_spk"`
}

// Pool is the assembled kernel pool.
type Pool struct {
	byName map[string]model.Body
	byCode map[int]model.Body
	et0    float64
	spk    string
}

// Furnish reads the given kernel files in order and merges them into a pool.
// At least one file must define the reference epoch and the store path.
func Furnish(paths ...string) (*Pool, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no kernel files to furnish")
	}

	p := &Pool{
		byName: make(map[string]model.Body),
		byCode: make(map[int]model.Body),
	}

	et0Set := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read kernel %q: %w", path, err)
		}
		var k kernel
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, fmt.Errorf("parse kernel %q: %w", path, err)
		}

		for _, b := range k.Bodies {
			if b.Name == "" {
				return nil, fmt.Errorf("kernel %q: body with code %d has no name", path, b.Code)
			}
			p.byName[b.Name] = b
			p.byCode[b.Code] = b
		}
		if k.ET0 != "" {
			et0, err := ephemtime.Parse(k.ET0)
			if err != nil {
				return nil, fmt.Errorf("kernel %q: %w", path, err)
			}
			p.et0 = et0
			et0Set = true
		}
		if k.ClockSPK != "" {
			p.spk = k.ClockSPK
		}
	}

	if !et0Set {
		return nil, fmt.Errorf("no kernel defines the reference epoch ET0")
	}
	if p.spk == "" {
		return nil, fmt.Errorf("no kernel defines the trajectory store path CLOCKSPK")
	}
	return p, nil
}

// Body resolves a body name to its full identifier.
func (p *Pool) Body(name string) (model.Body, error) {
	b, ok := p.byName[name]
	if !ok {
		return model.Body{}, fmt.Errorf("body %q not found in kernel pool", name)
	}
	return b, nil
}

// BodyByCode resolves a numeric body code to its full identifier.
func (p *Pool) BodyByCode(code int) (model.Body, error) {
	b, ok := p.byCode[code]
	if !ok {
		return model.Body{}, fmt.Errorf("body code %d not found in kernel pool", code)
	}
	return b, nil
}

// ET0 returns the reference epoch in ephemeris seconds past J2000.
func (p *Pool) ET0() float64 { return p.et0 }

// StorePath returns the trajectory store filename.
func (p *Pool) StorePath() string { return p.spk }
