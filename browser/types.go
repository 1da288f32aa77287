package browser

import (
	"strconv"

	"github.com/pkg/errors"
)

// revive:exported
var (
	ErrNavigationTimedOut = errors.New("navigation timed out")
	ErrTabCrashed         = errors.New("tab crashed")
	ErrTabClosing         = errors.New("closing")
	ErrNavigating         = errors.New("error in navigation")
	ErrBrowserClosing     = errors.New("unable to load, as closing down")
	ErrChromeNotFound     = errors.New("no chrome or chromium executable found")
)

// InvalidTabErr when we are unable to access a tab
type InvalidTabErr struct {
	Message string
}

func (e *InvalidTabErr) Error() string {
	return "Unable to access tab: " + e.Message
}

// NodeGoneErr when a node ID returned by a query is no longer part of the document
type NodeGoneErr struct {
	NodeID int
	Err    error
}

func (e *NodeGoneErr) Error() string {
	return "node " + strconv.Itoa(e.NodeID) + " is gone: " + e.Err.Error()
}
