package ensemble

import (
	"testing"

	"github.com/pbanos/ripeness/feature"
)

func TestVote(t *testing.T) {
	tests := []struct {
		name       string
		votes      [3]feature.Label
		want       feature.Label
		confidence float64
		consensus  Consensus
	}{
		{"unanimous", [3]feature.Label{feature.Ripe, feature.Ripe, feature.Ripe}, feature.Ripe, 100, Unanimous},
		{"two-one", [3]feature.Label{feature.Ripe, feature.Ripe, feature.HalfRipe}, feature.Ripe, 66.67, StrongMajority},
		{"minority-rule", [3]feature.Label{feature.Unripe, feature.Rotten, feature.Rotten}, feature.Rotten, 66.67, StrongMajority},
		{"three-way", [3]feature.Label{feature.Unripe, feature.Ripe, feature.HalfRipe}, feature.Ripe, 33.33, NoConsensus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Vote(tt.votes[0], tt.votes[1], tt.votes[2])
			if p.Label != tt.want || p.Confidence != tt.confidence || p.Consensus != tt.consensus {
				t.Errorf("got %+v", p)
			}
			if p.Individual[RuleVoter] != tt.votes[0] || p.Individual[KNNVoter] != tt.votes[1] || p.Individual[ForestVoter] != tt.votes[2] {
				t.Errorf("individual votes not kept: %v", p.Individual)
			}
		})
	}
}

func TestThreeWayTieIsDeterministic(t *testing.T) {
	a := Vote(feature.HalfRipe, feature.Rotten, feature.Unripe)
	b := Vote(feature.Unripe, feature.HalfRipe, feature.Rotten)
	if a.Label != feature.Rotten || b.Label != feature.Rotten {
		t.Errorf("got %q and %q, want busuk", a.Label, b.Label)
	}
}
