package store

import (
	badger "github.com/dgraph-io/badger/v2"
)

// PageIterator returns the ids of up to limit runs recorded for page
func PageIterator(txn *badger.Txn, page string, limit int) ([][]byte, error) {
	ids := make([][]byte, 0)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte("page:")})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if len(ids) == limit {
			break
		}

		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}

		runPage, err := DecodeString(val)
		if err != nil {
			return nil, err
		}

		if page == "" || runPage == page {
			ids = append(ids, GetID(item.KeyCopy(nil)))
		}
	}
	return ids, nil
}
