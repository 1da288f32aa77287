package store

import (
	"bytes"
	"reflect"
	"time"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v4"
	"gitlab.com/locatork/locatork"
)

// PredicateField is a struct field stored under its own predicate
type PredicateField struct {
	index int
	name  string
}

// MakeKey of a predicate and id
func MakeKey(id []byte, predicate string) []byte {
	key := []byte(predicate)
	key = append(key, byte(':'))
	key = append(key, id...)
	return key
}

// GetID of key from a pred:key
func GetID(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	if len(split) == 1 {
		return []byte{}
	}
	return split[1]
}

// GetPredicate from pred:key
func GetPredicate(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	return split[0]
}

// DiscoverPredicates of the graph tagged fields of the struct f points to
func DiscoverPredicates(f interface{}) []*PredicateField {
	predicates := make([]*PredicateField, 0)
	rt := reflect.TypeOf(f).Elem()
	for i := 0; i < rt.NumField(); i++ {
		if name := rt.Field(i).Tag.Get("graph"); name != "" {
			predicates = append(predicates, &PredicateField{index: i, name: name})
		}
	}
	return predicates
}

// Encode a struct reflect.Value denoted by index into a msgpack []byte slice
func Encode(val reflect.Value, index int) ([]byte, error) {
	return msgpack.Marshal(val.Field(index).Interface())
}

// DecodeRun reads every predicate of the run with runID
func DecodeRun(txn *badger.Txn, predicates []*PredicateField, runID []byte) (*locatork.Run, error) {
	run := &locatork.Run{}
	for _, pred := range predicates {
		item, err := txn.Get(MakeKey(runID, pred.name))
		if err != nil {
			return nil, errors.Wrap(err, "read "+pred.name)
		}
		if err := item.Value(func(val []byte) error {
			return DecodeRunItem(val, run, pred.name)
		}); err != nil {
			return nil, err
		}
	}
	return run, nil
}

// DecodeRunItem of the predicate value into the run
func DecodeRunItem(val []byte, run *locatork.Run, pred string) error {
	switch pred {
	case "id":
		return msgpack.Unmarshal(val, &run.ID)
	case "page":
		return msgpack.Unmarshal(val, &run.Page)
	case "url":
		return msgpack.Unmarshal(val, &run.URL)
	case "engine":
		var engine string
		err := msgpack.Unmarshal(val, &engine)
		run.Engine = locatork.Engine(engine)
		return err
	case "started":
		return msgpack.Unmarshal(val, &run.Started)
	case "finished":
		return msgpack.Unmarshal(val, &run.Finished)
	case "results":
		return msgpack.Unmarshal(val, &run.Results)
	}
	return errors.New("unknown predicate for run: " + pred)
}

// DecodeString value
func DecodeString(val []byte) (string, error) {
	var s string
	err := msgpack.Unmarshal(val, &s)
	return s, err
}

// DecodeTime value
func DecodeTime(val []byte) (time.Time, error) {
	var t time.Time
	err := msgpack.Unmarshal(val, &t)
	return t, err
}
