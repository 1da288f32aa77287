package store

import "gitlab.com/locatork/locatork"

// Storer is a store that must be initialized before use
type Storer interface {
	Init() error
	Close() error
}

// RunStorer records check runs
type RunStorer interface {
	Storer
	AddRun(run *locatork.Run) error
	GetRun(id []byte) (*locatork.Run, error)
	Runs(page string, limit int) ([]*locatork.Run, error)
}
