package store

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/locatork/locatork"
)

// ErrRunNotFound when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunStore keeps check runs in badger, one key per field: <predicate>:<run id>
type RunStore struct {
	RunDB         *badger.DB
	filepath      string
	runPredicates []*PredicateField
	defaultLimit  int
}

// NewRunStore under filepath
func NewRunStore(filepath string) *RunStore {
	return &RunStore{filepath: filepath, defaultLimit: 1000}
}

// Init the store, creating the directory if needed
func (s *RunStore) Init() error {
	var err error

	path := filepath.Join(s.filepath, "runs")
	if err = os.MkdirAll(path, 0755); err != nil {
		return err
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	s.RunDB, err = badger.Open(opts)
	if err != nil {
		return errors.Wrap(err, "open run store")
	}

	s.runPredicates = DiscoverPredicates(&locatork.Run{})
	return nil
}

// AddRun to the store, replacing any run with the same id
func (s *RunStore) AddRun(run *locatork.Run) error {
	if len(run.ID) == 0 {
		return errors.New("run has no id")
	}
	rv := reflect.ValueOf(*run)

	err := s.RunDB.Update(func(txn *badger.Txn) error {
		for _, pred := range s.runPredicates {
			bytez, err := Encode(rv, pred.index)
			if err != nil {
				return err
			}
			// key = <predicate>:<id>, value = msgpack'd bytes
			if err := txn.Set(MakeKey(run.ID, pred.name), bytez); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		log.Debug().Str("run", run.IDString()).Str("page", run.Page).Int("failed", run.Failed()).Msg("run stored")
	}
	return err
}

// GetRun by id
func (s *RunStore) GetRun(id []byte) (*locatork.Run, error) {
	var run *locatork.Run
	err := s.RunDB.View(func(txn *badger.Txn) error {
		var err error
		run, err = DecodeRun(txn, s.runPredicates, id)
		return err
	})
	if errors.Cause(err) == badger.ErrKeyNotFound {
		return nil, ErrRunNotFound
	}
	return run, err
}

// Runs recorded for page (all pages if empty), most recent first
func (s *RunStore) Runs(page string, limit int) ([]*locatork.Run, error) {
	if limit <= 0 || limit > s.defaultLimit {
		limit = s.defaultLimit
	}

	runs := make([]*locatork.Run, 0)
	err := s.RunDB.View(func(txn *badger.Txn) error {
		ids, err := PageIterator(txn, page, s.defaultLimit)
		if err != nil {
			return err
		}
		for _, id := range ids {
			run, err := DecodeRun(txn, s.runPredicates, id)
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Started.After(runs[j].Started)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close the store
func (s *RunStore) Close() error {
	if s.RunDB == nil {
		return nil
	}
	return s.RunDB.Close()
}
