package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects which remote photo feed to list.
type Method string

const (
	MethodInterestingPhotos Method = "interestingPhotos"
	MethodRecentPhotos      Method = "recentPhotos"
)

var ErrUnknownMethod = errors.New("unknown photo method")

// ParseMethod converts user input into a Method.
// Both the short form ("recent") and the full name ("recentPhotos") are accepted.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interesting", "interestingphotos":
		return MethodInterestingPhotos, nil
	case "recent", "recentphotos":
		return MethodRecentPhotos, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

func (m Method) String() string {
	return string(m)
}
