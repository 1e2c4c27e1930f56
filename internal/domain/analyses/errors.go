package analyses

import "errors"

var (
	// ErrInvalidURL indicates the submitted video URL is not a well-formed
	// absolute URL. Rejected before any other processing.
	ErrInvalidURL = errors.New("invalid video url")

	// ErrUnsupportedPlatform indicates the URL matched none of the known
	// platform patterns.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNotFound indicates no stored analysis matched the lookup.
	ErrNotFound = errors.New("analysis not found")

	// ErrNoVideoID indicates a platform-native video identifier could not
	// be extracted from the URL.
	ErrNoVideoID = errors.New("video id not found in url")

	// ErrVideoNotFound indicates the remote metadata lookup returned no
	// matching item (private or deleted video).
	ErrVideoNotFound = errors.New("video not found or is private")
)
