package build

import "errors"

// Sentinel errors classifying high-level pass failures. They are always
// wrapped with context at the call site.
var (
	ErrDiscovery = errors.New("sitelinks: discovery error")
	ErrOutput    = errors.New("sitelinks: output error")
)
