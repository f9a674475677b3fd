package motion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyDataset = errors.New("dataset has no entity")
	ErrDuplicateKey = errors.New("duplicate entity key")
	ErrUnknownField = errors.New("unknown field")
	ErrFieldKind    = errors.New("field can not drive channel")
	ErrScaleFamily  = errors.New("unknown scale family")
	ErrAggregate    = errors.New("unknown aggregate")
	ErrDomain       = errors.New("invalid domain for scale")
	ErrNoScale      = errors.New("channel has no scale")
	ErrGeometry     = errors.New("invalid chart geometry")
)

// InvalidSeriesError is reported when a series is empty or its samples are
// not in strictly increasing time order.
type InvalidSeriesError struct {
	Key    string
	Field  string
	Index  int
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	var str strings.Builder
	str.WriteString("invalid time series")
	if e.Key != "" || e.Field != "" {
		fmt.Fprintf(&str, " %s.%s", e.Key, e.Field)
	}
	if e.Index > 0 {
		fmt.Fprintf(&str, " at sample %d", e.Index)
	}
	str.WriteString(": ")
	str.WriteString(e.Reason)
	return str.String()
}

// MissingFieldError lists the entities that do not carry the field bound to a
// channel. It is a warning: those entities are kept in the dataset but left out
// of the channel's domain and summary.
type MissingFieldError struct {
	Channel Channel
	Field   string
	Keys    []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: field %q missing on %d entities", e.Channel, e.Field, len(e.Keys))
}

// IsWarning reports whether err only carries warnings.
func IsWarning(err error) bool {
	var mf *MissingFieldError
	return err != nil && errors.As(err, &mf)
}
