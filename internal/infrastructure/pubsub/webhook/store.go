package webhookpubsub

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// store persists webhook subscriptions so they survive daemon restarts.
type store struct {
	db *badgerhold.Store
}

func newStore(baseDbDir string, logger badger.Logger) (*store, error) {
	opts := badger.DefaultOptions(filepath.Join(baseDbDir, "webhooks"))
	opts.Logger = logger

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening webhooks db: %w", err)
	}
	return &store{db}, nil
}

func (s *store) addSubscription(sub *Subscription) error {
	if err := s.db.Insert(sub.ID, *sub); err != nil {
		if err == badgerhold.ErrKeyExists {
			return nil
		}
		return err
	}
	return nil
}

func (s *store) removeSubscription(id string) error {
	if err := s.db.Delete(id, Subscription{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("subscription not found")
		}
		return err
	}
	return nil
}

func (s *store) listSubscriptionsForEvent(event string) (subscriptions, error) {
	var subs subscriptions
	if err := s.db.Find(
		&subs, badgerhold.Where("Event").Eq(event).SortBy("ID"),
	); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *store) close() error {
	return s.db.Close()
}

type subscriptions []Subscription
