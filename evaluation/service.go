package evaluation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/history"
)

/*
Service runs evaluations on behalf of callers: it serves results from a
cache while they are fresh and, on a miss, evaluates on the data of a
source, records the result on a history store and caches it.

Cache and History are optional.
*/
type Service struct {
	Evaluator *Evaluator
	Data      dataset.Source
	Cache     Cache
	History   history.Store
	TTL       time.Duration
	// lock serializes evaluations, the Evaluator random source is not
	// safe for concurrent use
	lock sync.Mutex
}

/*
NewService takes an Evaluator, a data source, a cache and a history store
and returns a Service with DefaultCacheTTL.
*/
func NewService(e *Evaluator, data dataset.Source, c Cache, h history.Store) *Service {
	return &Service{Evaluator: e, Data: data, Cache: c, History: h, TTL: DefaultCacheTTL}
}

/*
Evaluate takes a context and a model and returns its evaluation result,
from the cache when available. It returns an error if the data cannot be
collected, the model cannot be evaluated or the result cannot be recorded.
Cache failures are returned too.
*/
func (s *Service) Evaluate(ctx context.Context, m Model) (*Result, error) {
	outcomes, err := s.EvaluateAll(ctx, []Model{m})
	if err != nil {
		return nil, err
	}
	o := outcomes[m.Name()]
	return o.Result, o.Err
}

/*
EvaluateAll takes a context and a slice of models and returns the outcome
of evaluating each of them, from the cache when available. Data is
collected once, and only when some model is not cached. Failures of a model
are reported on its outcome; the returned error is set only when the data
cannot be collected.
*/
func (s *Service) EvaluateAll(ctx context.Context, models []Model) (map[string]*Outcome, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	result := make(map[string]*Outcome, len(models))
	var pending []Model
	for _, m := range models {
		r, err := s.cached(ctx, m.Name())
		if err != nil {
			result[m.Name()] = &Outcome{Err: err}
			continue
		}
		if r != nil {
			result[m.Name()] = &Outcome{Result: r}
			continue
		}
		pending = append(pending, m)
	}
	if len(pending) == 0 {
		return result, nil
	}
	data, err := dataset.Collect(ctx, s.Data)
	if err != nil {
		return nil, err
	}
	for name, o := range s.Evaluator.EvaluateAll(ctx, pending, data) {
		if o.Err == nil {
			o.Err = s.store(ctx, o.Result)
		}
		result[name] = o
	}
	return result, nil
}

func (s *Service) cached(ctx context.Context, algorithm string) (*Result, error) {
	if s.Cache == nil {
		return nil, nil
	}
	r, err := s.Cache.Get(ctx, algorithm)
	if err != nil {
		return nil, fmt.Errorf("looking up cached %s evaluation: %v", algorithm, err)
	}
	if r == nil {
		return nil, nil
	}
	cached := *r
	cached.Cached = true
	return &cached, nil
}

func (s *Service) store(ctx context.Context, r *Result) error {
	if s.History != nil {
		err := s.History.Save(ctx, NewRecord(r))
		if err != nil {
			return fmt.Errorf("recording %s evaluation: %v", r.Algorithm, err)
		}
	}
	if s.Cache != nil {
		err := s.Cache.Set(ctx, r, s.TTL)
		if err != nil {
			return fmt.Errorf("caching %s evaluation: %v", r.Algorithm, err)
		}
	}
	return nil
}

/*
Invalidate drops the cached results so the next evaluations are
calculated again, as needed when new verified data is available.
*/
func (s *Service) Invalidate(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Invalidate(ctx)
}

// NewRecord takes a result and returns the history record for it
func NewRecord(r *Result) history.Record {
	rec := history.NewRecord(r.Algorithm, r.CalculatedAt)
	rec.Accuracy = r.Accuracy
	rec.SampleCount = r.SampleCount
	rec.Insufficient = r.Insufficient
	if r.ConfusionMatrix != nil {
		rec.ConfusionMatrix = r.ConfusionMatrix.Counts
	}
	if len(r.Metrics) > 0 {
		rec.Metrics = make(map[feature.Label]history.Metrics, len(r.Metrics))
		for l, m := range r.Metrics {
			rec.Metrics[l] = history.Metrics{Precision: m.Precision, Recall: m.Recall, F1: m.F1}
		}
	}
	return rec
}
