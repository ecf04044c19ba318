// SPDX-License-Identifier: MIT

package distribution

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/katalvlaran/temporalis/convolution"
)

// Loader tags of the built-in types.
const (
	KindDistribution    = "temporalis.Distribution"
	KindFixed           = "temporalis.Fixed"
	KindFixedTimeOfYear = "temporalis.FixedTimeOfYear"
)

// Record is the portable form of a distribution. Times are integer seconds
// in the declared basis; variant-specific fields are optional.
type Record struct {
	Kind         string    `json:"kind"`
	TimeBasis    string    `json:"time_basis"`
	Times        []int64   `json:"times"`
	Amounts      []float64 `json:"amounts"`
	AllowOverlap *bool     `json:"allow_overlap,omitempty"`
}

// Recorder is implemented by values that have a portable form.
type Recorder interface {
	ToRecord() Record
}

// ToRecord returns the portable form of d.
func (d *Distribution) ToRecord() Record {
	return Record{
		Kind:      KindDistribution,
		TimeBasis: d.basis.String(),
		Times:     d.Times(),
		Amounts:   d.Amounts(),
	}
}

// ToRecord returns the portable form of f.
func (f *Fixed) ToRecord() Record {
	r := f.d.ToRecord()
	r.Kind = KindFixed

	return r
}

// ToRecord returns the portable form of y, including allow_overlap.
func (y *FixedTimeOfYear) ToRecord() Record {
	r := y.d.ToRecord()
	r.Kind = KindFixedTimeOfYear
	overlap := y.allowOverlap
	r.AllowOverlap = &overlap

	return r
}

// FromRecord rebuilds a plain distribution; the kind tag is not checked so
// that variant records can be read as plain data.
func FromRecord(r Record) (*Distribution, error) {
	basis, err := convolution.ParseBasis(r.TimeBasis)
	if err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrInvalidDistribution, "time basis %q", r.TimeBasis), err)
	}

	return New(basis, r.Times, r.Amounts)
}

// FixedFromRecord rebuilds a Fixed.
func FixedFromRecord(r Record) (*Fixed, error) {
	d, err := FromRecord(r)
	if err != nil {
		return nil, err
	}

	return fixedOf(d)
}

// FixedTimeOfYearFromRecord rebuilds a FixedTimeOfYear; a missing
// allow_overlap means false.
func FixedTimeOfYearFromRecord(r Record) (*FixedTimeOfYear, error) {
	d, err := FromRecord(r)
	if err != nil {
		return nil, err
	}

	return FixedTimeOfYearFrom(d, r.AllowOverlap != nil && *r.AllowOverlap)
}

// Encode marshals the portable form of v to JSON.
func Encode(v Recorder) ([]byte, error) {
	b, err := json.Marshal(v.ToRecord())
	if err != nil {
		return nil, errors.Wrap(err, "distribution: encode record")
	}

	return b, nil
}

// Loader turns a raw JSON record into a Factor.
type Loader func(raw []byte) (Factor, error)

// Registry maps loader tags to loaders. It is a plain value owned by the host
// application and passed to whatever needs to load records; nothing in this
// module keeps a global registry.
type Registry map[string]Loader

// NewRegistry returns a registry holding the built-in loaders.
func NewRegistry() Registry {
	return Registry{
		KindDistribution: func(raw []byte) (Factor, error) {
			r, err := decodeRecord(raw)
			if err != nil {
				return nil, err
			}
			return FromRecord(r)
		},
		KindFixed: func(raw []byte) (Factor, error) {
			r, err := decodeRecord(raw)
			if err != nil {
				return nil, err
			}
			return FixedFromRecord(r)
		},
		KindFixedTimeOfYear: func(raw []byte) (Factor, error) {
			r, err := decodeRecord(raw)
			if err != nil {
				return nil, err
			}
			return FixedTimeOfYearFromRecord(r)
		},
	}
}

// Register adds or replaces the loader for kind and returns the registry.
func (r Registry) Register(kind string, l Loader) Registry {
	r[kind] = l

	return r
}

// Decode reads the kind tag of a JSON record and dispatches to its loader.
//
// Fails with ErrInvalidDistribution for malformed JSON or a missing kind, and
// with ErrUnknownLoaderTag when the kind has no loader.
func (r Registry) Decode(raw []byte) (Factor, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.Wrap(ErrInvalidDistribution, "record is not valid JSON")
	}
	kind := gjson.GetBytes(raw, "kind")
	if !kind.Exists() || kind.Type != gjson.String {
		return nil, errors.Wrap(ErrInvalidDistribution, "record has no string kind tag")
	}
	load, ok := r[kind.Str]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLoaderTag, "%q", kind.Str)
	}

	return load(raw)
}

// decodeRecord unmarshals a JSON record of one of the built-in kinds.
func decodeRecord(raw []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}, errors.WithSecondaryError(errors.Wrapf(ErrInvalidDistribution, "decode record: %v", err), err)
	}

	return r, nil
}
