/*
Package mongo provides a store over a MongoDB database that serves
training data and keeps evaluation history. It implements
dataset.Source and history.Store.
*/
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/history"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	trainingCollectionName       = "training_data"
	classificationCollectionName = "classifications"
	historyCollectionName        = "accuracy_history"
)

/*
Store works on the collections of the default database of a MongoDB
session
*/
type Store struct {
	session  *mgo.Session
	database string
	now      func() time.Time
}

type sampleDoc struct {
	dataset.LabeledSample `bson:",inline"`
	Active                bool      `bson:"active"`
	Verified              bool      `bson:"verified,omitempty"`
	CreatedAt             time.Time `bson:"createdAt,omitempty"`
}

type recordDoc struct {
	ID              string                        `bson:"_id"`
	Algorithm       string                        `bson:"algorithm"`
	Accuracy        float64                       `bson:"accuracy"`
	ConfusionMatrix [][]int                       `bson:"confusionMatrix"`
	Metrics         map[string]map[string]float64 `bson:"metrics"`
	SampleCount     int                           `bson:"sampleCount"`
	Insufficient    bool                          `bson:"insufficientData"`
	CalculatedAt    time.Time                     `bson:"calculatedAt"`
}

/*
Open takes a context and a MongoDB database session and returns a Store
that works on the default database for that session, after ensuring the
indexes it queries on, or an error.
*/
func Open(ctx context.Context, session *mgo.Session) (*Store, error) {
	return OpenDatabase(ctx, session, "")
}

/*
OpenDatabase is Open on the named database of the session instead of the
default one
*/
func OpenDatabase(ctx context.Context, session *mgo.Session, database string) (*Store, error) {
	s := &Store{session, database, time.Now}
	err := s.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Dial takes a MongoDB URL and returns a Store on the database it names
*/
func Dial(ctx context.Context, url string) (*Store, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %v", err)
	}
	s, err := Open(ctx, session)
	if err != nil {
		session.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the session
func (s *Store) Close(ctx context.Context) error {
	s.session.Close()
	return nil
}

// TrainingSamples returns the active training documents
func (s *Store) TrainingSamples(ctx context.Context) ([]dataset.LabeledSample, error) {
	return s.samples(ctx, s.collection(trainingCollectionName).Find(bson.M{"active": true}))
}

// VerifiedSamples returns the verified classification documents
func (s *Store) VerifiedSamples(ctx context.Context) ([]dataset.LabeledSample, error) {
	return s.samples(ctx, s.collection(classificationCollectionName).Find(bson.M{"verified": true}))
}

/*
AddTrainingSamples takes a slice of labeled samples and inserts them as
active training documents. It returns the number of inserted samples or an
error.
*/
func (s *Store) AddTrainingSamples(ctx context.Context, samples []dataset.LabeledSample) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(samples))
	for _, ls := range samples {
		docs = append(docs, &sampleDoc{LabeledSample: ls, Active: true})
	}
	err := s.collection(trainingCollectionName).Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting training samples: %v", err)
	}
	return len(samples), nil
}

// AddClassification records a classified color, verified or not
func (s *Store) AddClassification(ctx context.Context, c dataset.Color, l feature.Label, verified bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := &sampleDoc{
		LabeledSample: dataset.LabeledSample{Color: c, Label: l},
		Verified:      verified,
		CreatedAt:     s.now(),
	}
	err := s.collection(classificationCollectionName).Insert(doc)
	if err != nil {
		return fmt.Errorf("recording classification of %v: %v", c, err)
	}
	return nil
}

// Save inserts a history record
func (s *Store) Save(ctx context.Context, r history.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := &recordDoc{
		ID:              r.ID.String(),
		Algorithm:       r.Algorithm,
		Accuracy:        r.Accuracy,
		ConfusionMatrix: r.ConfusionMatrix,
		Metrics:         make(map[string]map[string]float64),
		SampleCount:     r.SampleCount,
		Insufficient:    r.Insufficient,
		CalculatedAt:    r.CalculatedAt,
	}
	for l, m := range r.Metrics {
		doc.Metrics[string(l)] = map[string]float64{"precision": m.Precision, "recall": m.Recall, "f1": m.F1}
	}
	err := s.collection(historyCollectionName).Insert(doc)
	if err != nil {
		return fmt.Errorf("saving %s record: %v", r.Algorithm, err)
	}
	return nil
}

// Latest returns the most recent record of the algorithm or history.ErrNotFound
func (s *Store) Latest(ctx context.Context, algorithm string) (*history.Record, error) {
	records, err := s.records(ctx, s.collection(historyCollectionName).Find(bson.M{"algorithm": algorithm}).Sort("-calculatedAt").Limit(1))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, history.ErrNotFound
	}
	return &records[0], nil
}

// Since returns the records of the algorithm within the last days, newest first
func (s *Store) Since(ctx context.Context, algorithm string, days int) ([]history.Record, error) {
	q := bson.M{
		"algorithm":    algorithm,
		"calculatedAt": bson.M{"$gte": history.Cutoff(s.now(), days)},
	}
	return s.records(ctx, s.collection(historyCollectionName).Find(q).Sort("-calculatedAt"))
}

func (s *Store) samples(ctx context.Context, q *mgo.Query) ([]dataset.LabeledSample, error) {
	var result []dataset.LabeledSample
	var doc sampleDoc
	iter := q.Iter()
	defer iter.Close()
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !doc.Label.Valid() {
			return nil, fmt.Errorf("reading samples: %v %q", feature.ErrUnknownLabel, doc.Label)
		}
		result = append(result, doc.LabeledSample)
		doc = sampleDoc{}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	return result, nil
}

func (s *Store) records(ctx context.Context, q *mgo.Query) ([]history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var docs []recordDoc
	err := q.All(&docs)
	if err != nil {
		return nil, fmt.Errorf("querying history: %v", err)
	}
	result := make([]history.Record, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, fmt.Errorf("reading history record %q: %v", d.ID, err)
		}
		r := history.Record{
			ID:              id,
			Algorithm:       d.Algorithm,
			Accuracy:        d.Accuracy,
			ConfusionMatrix: d.ConfusionMatrix,
			Metrics:         make(map[feature.Label]history.Metrics),
			SampleCount:     d.SampleCount,
			Insufficient:    d.Insufficient,
			CalculatedAt:    d.CalculatedAt,
		}
		for l, m := range d.Metrics {
			r.Metrics[feature.Label(l)] = history.Metrics{Precision: m["precision"], Recall: m["recall"], F1: m["f1"]}
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *Store) ensureIndexes() error {
	indexes := map[string][]string{
		trainingCollectionName:       {"active"},
		classificationCollectionName: {"verified"},
		historyCollectionName:        {"algorithm", "-calculatedAt"},
	}
	for c, key := range indexes {
		err := s.collection(c).EnsureIndex(mgo.Index{Key: key, Background: true})
		if err != nil {
			return fmt.Errorf("ensuring %s index: %v", c, err)
		}
	}
	return nil
}

func (s *Store) collection(name string) *mgo.Collection {
	return s.session.DB(s.database).C(name)
}
