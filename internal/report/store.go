// Package report retains the most recent successful analysis per patient
// identifier and renders it as a clinical PDF on demand.
package report

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Store is the narrow interface the pipeline writes through and the report
// handler reads through. Writes overwrite per identifier, last-write-wins;
// concurrent requests for different identifiers never interfere.
type Store interface {
	Put(patientID string, result *domain.AnalysisResult)
	Get(patientID string) (*domain.AnalysisResult, bool)
}

// LRUStore bounds retention with an LRU cache so the advisory store cannot
// grow without limit over process lifetime.
type LRUStore struct {
	cache *lru.Cache[string, *domain.AnalysisResult]
}

// NewLRUStore creates a bounded result store
func NewLRUStore(maxEntries int) (*LRUStore, error) {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	cache, err := lru.New[string, *domain.AnalysisResult](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &LRUStore{cache: cache}, nil
}

// Put implements Store
func (s *LRUStore) Put(patientID string, result *domain.AnalysisResult) {
	s.cache.Add(patientID, result)
}

// Get implements Store
func (s *LRUStore) Get(patientID string) (*domain.AnalysisResult, bool) {
	return s.cache.Get(patientID)
}

var _ Store = (*LRUStore)(nil)
