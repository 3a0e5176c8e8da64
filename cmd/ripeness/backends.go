package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/evaluation/rediscache"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/history"
	"github.com/pbanos/ripeness/pkg/bio"
	"github.com/pbanos/ripeness/pkg/bio/mongo"
	biosql "github.com/pbanos/ripeness/pkg/bio/sql"
	"github.com/pbanos/ripeness/pkg/bio/sql/pgadapter"
	"github.com/pbanos/ripeness/pkg/bio/sql/sqlite3adapter"
	"github.com/pbanos/ripeness/recommendation"
	"github.com/pbanos/ripeness/rule"
	"github.com/pbanos/ripeness/rule/json"
	"github.com/pbanos/ripeness/rule/redisstore"
	"gopkg.in/redis.v5"
)

/*
store is a database holding training data, classifications and
evaluation history
*/
type store interface {
	dataset.Source
	history.Store
	AddTrainingSamples(context.Context, []dataset.LabeledSample) (int, error)
	AddClassification(context.Context, dataset.Color, feature.Label, bool) error
}

/*
backends opens the stores selected by the configuration on demand and
closes them all at the end of a command
*/
type backends struct {
	*rootCmdConfig
	redisClient *redis.Client
	stores      map[string]store
}

func newBackends(rcc *rootCmdConfig) *backends {
	return &backends{rootCmdConfig: rcc, stores: make(map[string]store)}
}

func (b *backends) Close() {
	for location, s := range b.stores {
		err := s.Close(b.Context())
		if err != nil {
			b.Warnf("closing %s: %v", location, err)
		}
	}
	if b.redisClient != nil {
		b.redisClient.Close()
	}
}

func isStoreLocation(location string) bool {
	return strings.HasPrefix(location, "postgresql://") ||
		strings.HasPrefix(location, "postgres://") ||
		strings.HasPrefix(location, "mongodb://") ||
		strings.HasSuffix(location, ".db")
}

func (b *backends) openStore(ctx context.Context, location string) (store, error) {
	if s, ok := b.stores[location]; ok {
		return s, nil
	}
	var (
		s   store
		err error
	)
	switch {
	case strings.HasPrefix(location, "mongodb://"):
		b.Logf("Connecting to MongoDB at %s...", location)
		s, err = mongo.Dial(ctx, location)
	case strings.HasSuffix(location, ".db"):
		b.Logf("Creating SQLite3 adapter for file %s...", location)
		var a biosql.Adapter
		a, err = sqlite3adapter.New(location)
		if err == nil {
			s, err = biosql.Open(ctx, a)
		}
	default:
		b.Logf("Creating PostgreSQL adapter for url %s...", location)
		var a biosql.Adapter
		a, err = pgadapter.New(location)
		if err == nil {
			s, err = biosql.Open(ctx, a)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", location, err)
	}
	b.stores[location] = s
	return s, nil
}

// DataStore returns the database given as input or an error if the input is no database
func (b *backends) DataStore(ctx context.Context) (store, error) {
	if !isStoreLocation(b.Data) {
		return nil, fmt.Errorf("input %q is not a database", b.Data)
	}
	return b.openStore(ctx, b.Data)
}

/*
Source returns the source of training data: nil when no input is
configured, a database or CSV files otherwise
*/
func (b *backends) Source(ctx context.Context) (dataset.Source, error) {
	if b.Data == "" {
		if b.Verified != "" {
			return bio.NewCSVSource(b.Verified, "")
		}
		return nil, nil
	}
	if isStoreLocation(b.Data) {
		if b.Verified != "" {
			b.Warnf("ignoring verified CSV file %s, verified samples are read from %s", b.Verified, b.Data)
		}
		return b.DataStore(ctx)
	}
	b.Logf("Reading training data from %s...", b.Data)
	return bio.NewCSVSource(b.Data, b.Verified)
}

func (b *backends) redis() *redis.Client {
	if b.redisClient == nil {
		b.Logf("Connecting to redis at %s...", b.Redis.Addr)
		b.redisClient = redis.NewClient(&redis.Options{
			Addr:     b.Redis.Addr,
			Password: b.Redis.Password,
			DB:       b.Redis.DB,
		})
	}
	return b.redisClient
}

/*
RuleStore returns the node store holding the configured rules, or nil when
the fallback rules are to be used
*/
func (b *backends) RuleStore(ctx context.Context) (rule.NodeStore, error) {
	switch b.Rules {
	case "":
		return nil, nil
	case "redis":
		return redisstore.New(b.redis(), b.Redis.Prefix, json.NewNodeEncodeDecoder()), nil
	case "db":
		s, err := b.DataStore(ctx)
		if err != nil {
			return nil, err
		}
		ns, ok := s.(rule.NodeStore)
		if !ok {
			return nil, fmt.Errorf("input %s cannot hold rules", b.Data)
		}
		return ns, nil
	}
	b.Logf("Reading rules from %s...", b.Rules)
	nodes, err := bio.ReadYMLRulesFromFile(b.Rules)
	if err != nil {
		return nil, err
	}
	return rule.NewMemoryNodeStore(nodes...), nil
}

// Nodes returns a snapshot of the active configured rule nodes
func (b *backends) Nodes(ctx context.Context) ([]rule.Node, error) {
	ns, err := b.RuleStore(ctx)
	if err != nil || ns == nil {
		return nil, err
	}
	return ns.ActiveNodes(ctx)
}

/*
EvaluationCache returns the configured evaluation cache. The memory cache
lives as long as the process, so across CLI runs only the redis cache
serves results; the memory one helps long-lived library callers sharing
an evaluation.Service.
*/
func (b *backends) EvaluationCache() evaluation.Cache {
	if b.Cache == "redis" {
		return rediscache.New(b.redis(), b.Redis.Prefix)
	}
	return evaluation.NewMemoryCache(nil)
}

func (b *backends) HistoryStore(ctx context.Context) (history.Store, error) {
	if b.History == "" {
		b.Logf("Keeping evaluation history in memory")
		return history.NewMemoryStore(), nil
	}
	return b.openStore(ctx, b.History)
}

func (b *backends) RecommendationBook() (recommendation.Book, error) {
	if b.Recommendations == "" {
		return recommendation.DefaultBook(), nil
	}
	b.Logf("Reading recommendations from %s...", b.Recommendations)
	return bio.ReadYMLRecommendationsFromFile(b.Recommendations)
}
