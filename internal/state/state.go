// Package state persists Shifter continuation state per profile in a BoltDB file.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"shift/internal/shift"

	"go.etcd.io/bbolt"
)

var (
	bucketProfiles = []byte("profiles")
)

// ErrEmptyProfile is returned for operations on a profile with no name.
var ErrEmptyProfile = errors.New("profile name is required")

type Store struct {
	db *bbolt.DB
}

// Open opens or creates the state file, creating its directory if needed.
func Open(file string) (*Store, error) {
	if file == "" {
		return nil, fmt.Errorf("state: file is required")
	}

	err := os.MkdirAll(filepath.Dir(file), 0755)
	if err != nil {
		return nil, fmt.Errorf("state: create state dir: %w", err)
	}

	db, err := bbolt.Open(file, 0600, &bbolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("state: open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{
			bucketProfiles,
		} {
			_, err := tx.CreateBucketIfNotExists(bucket)
			if err != nil {
				return fmt.Errorf("create bucket %q: %w", bucket, err)
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("state: initialize buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("state: close bbolt db: %w", err)
	}
	return nil
}

// Load returns the stored state of profile. The boolean is false if nothing
// was stored yet, in which case the default state is returned.
func (s *Store) Load(profile string) (shift.State, bool, error) {
	if profile == "" {
		return shift.State{}, false, fmt.Errorf("state: load: %w", ErrEmptyProfile)
	}

	st := shift.DefaultState()
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProfiles)
		if b == nil {
			return fmt.Errorf("state: profiles bucket not found")
		}

		data := b.Get([]byte(profile))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &st); err != nil {
			return fmt.Errorf("state: unmarshal state for %q: %w", profile, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return shift.State{}, false, err
	}
	return st, found, nil
}

func (s *Store) Save(profile string, st shift.State) error {
	if profile == "" {
		return fmt.Errorf("state: save: %w", ErrEmptyProfile)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state: marshal state for %q: %w", profile, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProfiles)
		if b == nil {
			return fmt.Errorf("state: profiles bucket not found")
		}
		return b.Put([]byte(profile), data)
	})
}

// Delete removes the stored state of profile. Deleting a missing profile is not an error.
func (s *Store) Delete(profile string) error {
	if profile == "" {
		return fmt.Errorf("state: delete: %w", ErrEmptyProfile)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProfiles)
		if b == nil {
			return fmt.Errorf("state: profiles bucket not found")
		}
		return b.Delete([]byte(profile))
	})
}

var errStop = fmt.Errorf("stop iteration")

// All iterates over every stored profile in key order.
// It panics if the store cannot be read.
func (s *Store) All() iter.Seq2[string, shift.State] {
	return func(yield func(string, shift.State) bool) {
		err := s.db.View(func(tx *bbolt.Tx) error {
			b := tx.Bucket(bucketProfiles)
			if b == nil {
				return fmt.Errorf("state: profiles bucket not found")
			}

			return b.ForEach(func(k, v []byte) error {
				var st shift.State
				err := json.Unmarshal(v, &st)
				if err != nil {
					return fmt.Errorf("state: unmarshal state for %q: %w", k, err)
				}

				if !yield(string(k), st) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("state: list profiles: %w", err))
		}
	}
}
