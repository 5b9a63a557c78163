package cache

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	badger "github.com/dgraph-io/badger/v4"
)

// Table names for cached records.
const (
	TableProducts       = "products"
	TableWareneingaenge = "wareneingaenge"
	TableWarenausgaenge = "warenausgaenge"
)

// Record is the cache envelope around a mirrored row. Dirty marks a
// local change that has not reached the server yet.
type Record struct {
	Table   string          `json:"table"`
	ID      int             `json:"id"`
	Dirty   bool            `json:"dirty"`
	Payload json.RawMessage `json:"payload"`
}

// QueuedOp is an offline mutation waiting to be replayed against the
// server, in enqueue order.
type QueuedOp struct {
	Seq     uint64          `json:"seq"`
	Table   string          `json:"table"`
	ID      int             `json:"id"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Queue operation kinds.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// Reconciler replays queued operations against the server. No
// implementation ships yet; conflict handling is still undecided.
type Reconciler interface {
	Reconcile(ops []QueuedOp) error
}

// Store mirrors server tables into a local badger database so the app
// stays usable without connectivity.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open creates or opens the cache at dir. An empty dir keeps the whole
// cache in memory, which the tests use.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	seq, err := db.GetSequence([]byte("meta/sync_seq"), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sync sequence: %w", err)
	}

	return &Store{db: db, seq: seq}, nil
}

func (s *Store) Close() error {
	if err := s.seq.Release(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func recordKey(table string, id int) []byte {
	return []byte("record/" + table + "/" + strconv.Itoa(id))
}

func (s *Store) save(table string, id int, payload interface{}, dirty bool) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", table, err)
	}

	record := Record{
		Table:   table,
		ID:      id,
		Dirty:   dirty,
		Payload: raw,
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cache envelope: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(table, id), value)
	})
}

func (s *Store) SaveProduct(product models.Product, dirty bool) error {
	return s.save(TableProducts, product.ID, product, dirty)
}

func (s *Store) SaveWareneingang(view models.WareneingangView, dirty bool) error {
	return s.save(TableWareneingaenge, view.ID, view, dirty)
}

func (s *Store) SaveWarenausgang(view models.WarenausgangView, dirty bool) error {
	return s.save(TableWarenausgaenge, view.ID, view, dirty)
}

func (s *Store) get(table string, id int) (*Record, error) {
	var record Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(table, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s record %d: %w", table, id, err)
	}

	return &record, nil
}

// Product returns the cached product or nil when it was never mirrored.
func (s *Store) Product(id int) (*models.Product, error) {
	record, err := s.get(TableProducts, id)
	if err != nil || record == nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(record.Payload, &product); err != nil {
		return nil, fmt.Errorf("failed to decode cached product %d: %w", id, err)
	}

	return &product, nil
}

// Products returns every mirrored product.
func (s *Store) Products() ([]models.Product, error) {
	var products []models.Product
	err := s.scan(TableProducts, func(record Record) error {
		var product models.Product
		if err := json.Unmarshal(record.Payload, &product); err != nil {
			return fmt.Errorf("failed to decode cached product %d: %w", record.ID, err)
		}
		products = append(products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Store) scan(table string, fn func(Record) error) error {
	prefix := []byte("record/" + table + "/")
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			if err := fn(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// DirtyRecords lists every record with unsynced local changes, across
// all tables.
func (s *Store) DirtyRecords() ([]Record, error) {
	var dirty []Record
	prefix := []byte("record/")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			if record.Dirty {
				dirty = append(dirty, record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list dirty records: %w", err)
	}

	return dirty, nil
}

// MarkSynced clears the dirty flag after the server accepted the
// record. Unknown records are ignored.
func (s *Store) MarkSynced(table string, id int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(table, id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		var record Record
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}

		record.Dirty = false
		value, err := json.Marshal(record)
		if err != nil {
			return err
		}

		return txn.Set(recordKey(table, id), value)
	})
}

// Delete removes a mirrored record, for rows deleted on the server.
func (s *Store) Delete(table string, id int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(recordKey(table, id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func queueKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("sync_queue/%020d", seq))
}

// Enqueue appends an offline mutation to the sync queue and returns
// its sequence number.
func (s *Store) Enqueue(table string, id int, op string, payload interface{}) (uint64, error) {
	seq, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate queue sequence: %w", err)
	}

	queued := QueuedOp{
		Seq:   seq,
		Table: table,
		ID:    id,
		Op:    op,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("failed to encode queued payload: %w", err)
		}
		queued.Payload = raw
	}

	value, err := json.Marshal(queued)
	if err != nil {
		return 0, fmt.Errorf("failed to encode queued operation: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(queueKey(seq), value)
	})
	if err != nil {
		return 0, err
	}

	return seq, nil
}

// PendingOps lists the queued operations in enqueue order. The
// zero-padded keys make badger's lexicographic iteration the queue
// order.
func (s *Store) PendingOps() ([]QueuedOp, error) {
	var ops []QueuedOp
	prefix := []byte("sync_queue/")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var queued QueuedOp
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &queued)
			})
			if err != nil {
				return err
			}
			ops = append(ops, queued)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list queued operations: %w", err)
	}

	return ops, nil
}

// DropQueued removes a queued operation after the server accepted it.
func (s *Store) DropQueued(seq uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(queueKey(seq))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// Clear drops the whole mirror, for logout or a forced refresh.
func (s *Store) Clear() error {
	return s.db.DropAll()
}
