package pagestore

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const bucketPages = "pages"

// BoltStore is an index of page names kept in a bbolt database.
// Keys are 'namespace:page' and values the wiki source of the page.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path. A read-only database must exist.
func OpenBolt(path string, readOnly bool) (*BoltStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: readOnly,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not open page index "+path)
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(bucketPages))
			return err
		})
		if err != nil {
			db.Close()
			return nil, errors.Wrap(err, "could not initialize page index")
		}
	}

	return &BoltStore{db: db}, nil
}

// Close releases the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func pageKey(namespace string, page string) []byte {
	return []byte(cleanNamespace(namespace) + Separator + page)
}

// PutPage adds a page to the index, replacing any previous entry.
func (s *BoltStore) PutPage(namespace string, page string, source string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		return b.Put(pageKey(namespace, page), []byte(source))
	})
}

// Source returns the source recorded for a page, or an empty string if there is none.
func (s *BoltStore) Source(namespace string, page string) (string, error) {
	var source string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		if b == nil {
			return nil
		}
		source = string(b.Get(pageKey(namespace, page)))
		return nil
	})
	return source, err
}

// ListPages returns the pages directly inside the namespace, sorted by name.
func (s *BoltStore) ListPages(ctx context.Context, namespace string) ([]string, error) {
	pages := []string{}
	prefix := []byte(cleanNamespace(namespace) + Separator)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		if b == nil {
			return nil
		}

		// Keys are sorted, so the pages of a namespace are contiguous
		c := b.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Pages of nested namespaces are not listed
			name := k[len(prefix):]
			if bytes.Contains(name, []byte(Separator)) {
				continue
			}
			pages = append(pages, string(name))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not list namespace "+namespace)
	}

	return pages, nil
}

// Count returns the number of pages in the index.
func (s *BoltStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

// Index adds every page of the directory store to the database, with its source.
// It returns the number of pages indexed.
func Index(ctx context.Context, dir *DirStore, s *BoltStore) (int, error) {
	n := 0
	err := dir.Walk(ctx, func(namespace string, page string, path string) error {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := s.PutPage(namespace, page, string(source)); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}
