package interfaces

import (
	"net/http"

	"github.com/goliatone/go-landing/segments"
)

// ViewerProvider resolves the signed-in viewer for a request. It returns nil
// for anonymous requests; errors are treated as anonymous by callers.
type ViewerProvider interface {
	CurrentViewer(r *http.Request) (*segments.Viewer, error)
}

// ViewerProviderFunc adapts a function to ViewerProvider.
type ViewerProviderFunc func(r *http.Request) (*segments.Viewer, error)

// CurrentViewer implements ViewerProvider.
func (f ViewerProviderFunc) CurrentViewer(r *http.Request) (*segments.Viewer, error) {
	if f == nil {
		return nil, nil
	}
	return f(r)
}
