package api

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ErrOffsetOutOfRange struct {
	Offset uint64
}

func (e ErrOffsetOutOfRange) GRPCStatus() *status.Status {
	st := status.New(codes.OutOfRange, fmt.Sprintf("offset out of range: %d", e.Offset))
	msg := fmt.Sprintf("The requested offset is outside the log's range: %d", e.Offset)

	d := &errdetails.LocalizedMessage{
		Locale:  "en-US",
		Message: msg,
	}

	std, err := st.WithDetails(d)
	if err != nil {
		return st
	}

	return std
}

func (e ErrOffsetOutOfRange) Error() string {
	return e.GRPCStatus().Err().Error()
}

// Violation types carried by ErrNoPrediction.
const (
	ViolationEmptyShuffle = "EMPTY_SHUFFLE"
	ViolationReduceFailed = "REDUCE_FAILED"
)

// ErrNoPrediction is returned by Predict when the reducer had nothing to
// rank, or could not make sense of what is in the shuffle log.
type ErrNoPrediction struct {
	Type   string
	Reason string
}

func (e ErrNoPrediction) GRPCStatus() *status.Status {
	st := status.New(codes.FailedPrecondition, "no prediction possible: "+e.Reason)

	d := &errdetails.PreconditionFailure{
		Violations: []*errdetails.PreconditionFailure_Violation{
			{
				Type:        e.violation(),
				Subject:     "shuffle log",
				Description: e.Reason,
			},
		},
	}

	std, err := st.WithDetails(d)
	if err != nil {
		return st
	}

	return std
}

func (e ErrNoPrediction) violation() string {
	if e.Type == "" {
		return ViolationEmptyShuffle
	}
	return e.Type
}

func (e ErrNoPrediction) Error() string {
	return e.GRPCStatus().Err().Error()
}
