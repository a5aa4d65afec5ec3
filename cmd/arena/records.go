package main

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const recordsKey = "records"

// Records is the best run stored between sessions.
type Records struct {
	BestWave   int `json:"bestWave"`
	BestReward int `json:"bestReward"`
}

// recordStore persists Records through gdata. A nil store is valid and
// keeps nothing, so the binary still runs where no data dir is available.
type recordStore struct {
	m    *gdata.Manager
	best Records
}

func openRecords(app string) (*recordStore, error) {
	if app == "" {
		return nil, nil
	}
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	s := &recordStore{m: m}

	data, err := m.LoadItem(recordsKey)
	if err != nil {
		return s, fmt.Errorf("load records: %w", err)
	}
	if data == nil {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.best); err != nil {
		return s, fmt.Errorf("parse records: %w", err)
	}
	return s, nil
}

// Best returns the stored record.
func (s *recordStore) Best() Records {
	if s == nil {
		return Records{}
	}
	return s.best
}

// Offer saves r if it beats the stored record and reports whether it did.
func (s *recordStore) Offer(r Records) (bool, error) {
	if s == nil {
		return false, nil
	}
	if r.BestWave < s.best.BestWave ||
		(r.BestWave == s.best.BestWave && r.BestReward <= s.best.BestReward) {
		return false, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("serialize records: %w", err)
	}
	if err := s.m.SaveItem(recordsKey, data); err != nil {
		return false, fmt.Errorf("save records: %w", err)
	}
	s.best = r
	return true, nil
}
