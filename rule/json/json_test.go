package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/rule"
)

func TestNodeRoundTrip(t *testing.T) {
	ned := NewNodeEncodeDecoder()
	nodes := []rule.Node{
		{
			Order:     3,
			Kind:      rule.Condition,
			Criterion: feature.Criterion{Field: feature.RatioRedGreen, Operator: feature.GreaterOrEqual, Threshold: 1.7},
			OnTrue:    rule.ClassifyAs(feature.Ripe),
			OnFalse:   rule.JumpTo(4),
			Active:    true,
		},
		{Order: 4, Kind: rule.Leaf, Label: feature.HalfRipe},
	}
	for _, n := range nodes {
		data, err := ned.Encode(&n)
		if err != nil {
			t.Fatalf("encoding %v: %v", &n, err)
		}
		got, err := ned.Decode(data)
		if err != nil {
			t.Fatalf("decoding %s: %v", data, err)
		}
		if *got != n {
			t.Errorf("got %v, want %v", got, &n)
		}
	}
}

func TestDecodeRejectsMalformedNodes(t *testing.T) {
	ned := NewNodeEncodeDecoder()
	for _, in := range []string{
		`{"order":1,"type":"leaf","label":"ripe"}`,
		`{"order":1,"type":"condition","field":"hue","operator":">","threshold":1,"onTrue":{"action":"jump","target":2},"onFalse":{"action":"jump","target":2}}`,
		`{"order":1,"type":"condition","field":"red","operator":">","threshold":1}`,
		`{"order":1,"type":"condition","field":"red","operator":">","threshold":1,"onTrue":{"action":"goto"},"onFalse":{"action":"jump","target":2}}`,
		`{"order":1,"type":"branch"}`,
		`not json`,
	} {
		if _, err := ned.Decode([]byte(in)); err == nil {
			t.Errorf("expected error decoding %s", in)
		}
	}
}

func TestWriteAndReadRules(t *testing.T) {
	ctx := context.Background()
	ned := NewNodeEncodeDecoder()
	src := rule.NewMemoryNodeStore(
		rule.Node{
			Order:     1,
			Kind:      rule.Condition,
			Criterion: feature.Criterion{Field: feature.Red, Operator: feature.GreaterThan, Threshold: 150},
			OnTrue:    rule.ClassifyAs(feature.Ripe),
			OnFalse:   rule.JumpTo(2),
			Active:    true,
		},
		rule.Node{Order: 2, Kind: rule.Leaf, Label: feature.Unripe, Active: true},
		rule.Node{Order: 3, Kind: rule.Leaf, Label: feature.Rotten},
	)
	var buf bytes.Buffer
	if err := WriteJSONRules(ctx, src, ned, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), `{"nodes":[{"order":1`) {
		t.Errorf("unexpected output %s", buf.String())
	}
	dst := rule.NewMemoryNodeStore()
	count, err := ReadJSONRules(ctx, dst, ned, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("read %d nodes, want 2", count)
	}
	nodes, err := dst.ActiveNodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 || nodes[1].Label != feature.Unripe {
		t.Errorf("unexpected nodes %v", nodes)
	}
}
