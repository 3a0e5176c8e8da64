package pgadapter

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pbanos/ripeness/history"
	biosql "github.com/pbanos/ripeness/pkg/bio/sql"
)

func TestPlaceholder(t *testing.T) {
	a := &adapter{}
	if a.Placeholder(3) != "$3" {
		t.Errorf("got %q", a.Placeholder(3))
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	url := os.Getenv("RIPENESS_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("RIPENESS_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	a, err := New(url)
	if err != nil {
		t.Fatal(err)
	}
	s, err := biosql.Open(ctx, a)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)
	algorithm := "pg-test-" + time.Now().Format("150405.000000")
	r := history.NewRecord(algorithm, time.Now())
	r.Accuracy = 88
	if err = s.Save(ctx, r); err != nil {
		t.Fatal(err)
	}
	defer a.DB().Exec("DELETE FROM "+biosql.HistoryTable+" WHERE algorithm = $1", algorithm)
	latest, err := s.Latest(ctx, algorithm)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != r.ID || latest.Accuracy != 88 {
		t.Errorf("got %+v", latest)
	}
}
