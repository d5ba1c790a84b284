// Package artifact resolves which deployable goes into a Lambda package:
// the real build output when one exists, or the placeholder stub. The
// selection happens once, before packaging, never at runtime.
package artifact

import "os"

// Source represents where a Lambda package's code comes from
type Source string

const (
	// SourceBuild means a real build artifact exists and is packaged
	SourceBuild Source = "build"
	// SourcePlaceholder means no build artifact exists and the stub is packaged
	SourcePlaceholder Source = "placeholder"
)

// String returns the string representation of the source
func (s Source) String() string {
	return string(s)
}

// PlaceholderStatus is the status indicator carried by placeholder responses
const PlaceholderStatus = "placeholder"

// PlaceholderResponse is the fixed structured response a placeholder handler
// returns in place of real fulfillment output
type PlaceholderResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewPlaceholderResponse builds the fixed response for a named function
func NewPlaceholderResponse(functionName string) PlaceholderResponse {
	return PlaceholderResponse{
		Status:  PlaceholderStatus,
		Message: "Function " + functionName + " has no deployable artifact yet. A stub response was returned.",
	}
}

// Resolve picks the package source for a build path. A missing or empty file
// selects the placeholder.
func Resolve(buildPath string) Source {
	info, err := os.Stat(buildPath)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return SourcePlaceholder
	}
	return SourceBuild
}
