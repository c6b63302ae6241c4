package backend

import (
	"context"

	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is what one window needs to read from the backend: the
// shared services and a stream controller that redraws the window when a
// stream it reads produces a value.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

// NewWindowState ties the bundle to a window through its invalidate
// function. Streams stop when ctx is done.
func NewWindowState(ctx context.Context, bundle Bundle, invalidate func()) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, invalidate),
	}
}

// Bundle holds the services shared by every window.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ds *Datasource) Bundle {
	return Bundle{
		Datasource: ds,
	}
}

// Close releases the bundle's services.
func (b Bundle) Close() error {
	return b.Datasource.Close()
}
