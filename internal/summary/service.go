package summary

import (
	"context"

	"asset-dashboard/internal/data"
	"asset-dashboard/internal/model"
)

// Service answers selections against the current dataset.
type Service struct {
	store  *data.Store
	engine *Engine
	cache  Cache
}

// NewService wires a store, engine and optional cache together. cache may be nil.
func NewService(store *data.Store, engine *Engine, cache Cache) *Service {
	return &Service{store: store, engine: engine, cache: cache}
}

func (s *Service) Store() *data.Store { return s.store }

func (s *Service) Peaks() PeakWindow { return s.engine.Peaks }

// Summarize filters the current table by sel and summarises the match.
func (s *Service) Summarize(ctx context.Context, sel model.Selection) (*Result, error) {
	tbl, _ := s.store.Table()
	if !sel.Complete() {
		return s.engine.Run(sel, nil), nil
	}

	key := CacheKey(tbl.Fingerprint(), s.engine.Peaks, sel)
	if s.cache != nil {
		if res, ok := s.cache.Get(ctx, key); ok {
			return res, nil
		}
	}

	recs, err := tbl.Select(sel)
	if err != nil {
		return nil, err
	}
	res := s.engine.Run(sel, recs)
	if s.cache != nil {
		s.cache.Set(ctx, key, res)
	}
	return res, nil
}
