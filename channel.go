package motion

import (
	"errors"
	"fmt"
	"strings"
)

var ErrChannel = errors.New("unknown channel")

type Channel int

const (
	X Channel = iota
	Y
	Radius
	Color
	Key

	numChannels
)

var channelNames = [numChannels]string{
	X:      "x",
	Y:      "y",
	Radius: "radius",
	Color:  "color",
	Key:    "key",
}

func Channels() []Channel {
	return []Channel{X, Y, Radius, Color, Key}
}

func ParseChannel(str string) (Channel, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	for i, n := range channelNames {
		if n == str {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrChannel, str)
}

func (c Channel) String() string {
	if !c.valid() {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// Interpolated reports whether the channel is driven by a time series by
// default. Color may still be bound to a numeric field.
func (c Channel) Interpolated() bool {
	return c == X || c == Y || c == Radius
}

// Positional reports whether the channel is placed on an axis.
func (c Channel) Positional() bool {
	return c == X || c == Y
}

func (c Channel) valid() bool {
	return c >= 0 && c < numChannels
}
