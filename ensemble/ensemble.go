/*
Package ensemble combines the labels predicted by the rule engine, the KNN
classifier and the forest into a final label by majority vote.
*/
package ensemble

import (
	"math"

	"github.com/pbanos/ripeness/feature"
)

// Consensus describes how strongly the voters agree
type Consensus string

const (
	// Unanimous means the three voters agree
	Unanimous Consensus = "Unanimous"
	// StrongMajority means two of the three voters agree
	StrongMajority Consensus = "Strong Majority"
	// NoConsensus means every voter predicted a different label
	NoConsensus Consensus = "No Consensus"
)

// Names of the voters on Prediction.Individual
const (
	RuleVoter   = "decision_tree"
	KNNVoter    = "knn"
	ForestVoter = "random_forest"
)

/*
Prediction is the outcome of an ensemble vote. Confidence is the percentage
of voters that chose the winning label.
*/
type Prediction struct {
	Label      feature.Label            `json:"label"`
	Confidence float64                  `json:"confidence"`
	Individual map[string]feature.Label `json:"individual"`
	Consensus  Consensus                `json:"consensus"`
}

/*
Vote takes the labels predicted by the rule engine, the KNN classifier and
the forest and returns the ensemble prediction. When the three labels are
different the label is chosen with feature.BreakTie and the Consensus is
NoConsensus.
*/
func Vote(rule, knn, forest feature.Label) *Prediction {
	individual := map[string]feature.Label{
		RuleVoter:   rule,
		KNNVoter:    knn,
		ForestVoter: forest,
	}
	votes := make(map[feature.Label]int)
	for _, l := range individual {
		votes[l]++
	}
	label, count := feature.Winner(votes)
	pct := math.Round(float64(count)/float64(len(individual))*100*100) / 100
	return &Prediction{
		Label:      label,
		Confidence: pct,
		Individual: individual,
		Consensus:  consensusFor(pct),
	}
}

func consensusFor(pct float64) Consensus {
	switch {
	case pct >= 100:
		return Unanimous
	case pct >= 66.67:
		return StrongMajority
	}
	return NoConsensus
}
