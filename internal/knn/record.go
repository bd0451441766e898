// Package knn classifies a query point by majority vote among its k nearest
// labelled neighbours, split into a streaming map stage and reduce stage.
package knn

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrArity    = errors.New("wrong number of fields")
	ErrFeature  = errors.New("invalid feature value")
	ErrLabel    = errors.New("empty label")
	ErrDistance = errors.New("invalid distance")

	// ErrNoNeighbors means the reducer had no pairs to rank.
	ErrNoNeighbors = errors.New("no prediction possible: no neighbours")
)

// ParseError is returned for a record or pair line that cannot be parsed.
// Err is one of ErrArity, ErrFeature, ErrLabel or ErrDistance.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parse %q: %s", e.Input, e.Err)
	}
	return fmt.Sprintf("parse %q: %s: %s", e.Input, e.Err, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Point is a feature vector.
type Point []float64

func (p Point) String() string {
	fields := make([]string, len(p))
	for i, v := range p {
		fields[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(fields, ",")
}

type FeatureRecord struct {
	Features Point
	Label    string
}

func parseFeature(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not finite")
	}
	return v, nil
}

// ParsePoint parses comma separated coordinates, such as "5.1,3.5,1.4,0.2".
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ParseError{Input: s, Reason: "no coordinates", Err: ErrArity}
	}

	fields := strings.Split(s, ",")
	p := make(Point, 0, len(fields))
	for i, f := range fields {
		v, err := parseFeature(f)
		if err != nil {
			return nil, &ParseError{
				Input:  s,
				Reason: fmt.Sprintf("coordinate %d: %s", i+1, err),
				Err:    ErrFeature,
			}
		}
		p = append(p, v)
	}

	return p, nil
}

// ParseRecord parses a comma separated line of features followed by a label,
// for example `5.0,3.4,1.4,0.2,"setosa"`. Quotes around the label are
// stripped. When dim is positive the line must carry exactly dim features.
func ParseRecord(line string, dim int) (FeatureRecord, error) {
	line = strings.TrimSpace(line)
	fields := strings.Split(line, ",")

	if len(fields) < 2 {
		return FeatureRecord{}, &ParseError{
			Input:  line,
			Reason: "need at least one feature and a label",
			Err:    ErrArity,
		}
	}
	if dim > 0 && len(fields) != dim+1 {
		return FeatureRecord{}, &ParseError{
			Input:  line,
			Reason: fmt.Sprintf("got %d features, want %d", len(fields)-1, dim),
			Err:    ErrArity,
		}
	}

	features := make(Point, 0, len(fields)-1)
	for i, f := range fields[:len(fields)-1] {
		v, err := parseFeature(f)
		if err != nil {
			return FeatureRecord{}, &ParseError{
				Input:  line,
				Reason: fmt.Sprintf("feature %d: %s", i+1, err),
				Err:    ErrFeature,
			}
		}
		features = append(features, v)
	}

	label := strings.Trim(strings.TrimSpace(fields[len(fields)-1]), `"`)
	if label == "" {
		return FeatureRecord{}, &ParseError{Input: line, Err: ErrLabel}
	}

	return FeatureRecord{Features: features, Label: label}, nil
}
