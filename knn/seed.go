package knn

import (
	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

// reference readings, two per class
var seed = []dataset.LabeledSample{
	{Color: dataset.Color{Red: 70, Green: 145, Blue: 55}, Label: feature.Unripe},
	{Color: dataset.Color{Red: 95, Green: 160, Blue: 70}, Label: feature.Unripe},
	{Color: dataset.Color{Red: 175, Green: 140, Blue: 65}, Label: feature.HalfRipe},
	{Color: dataset.Color{Red: 200, Green: 150, Blue: 80}, Label: feature.HalfRipe},
	{Color: dataset.Color{Red: 220, Green: 55, Blue: 45}, Label: feature.Ripe},
	{Color: dataset.Color{Red: 180, Green: 80, Blue: 70}, Label: feature.Ripe},
	{Color: dataset.Color{Red: 90, Green: 95, Blue: 90}, Label: feature.Rotten},
	{Color: dataset.Color{Red: 70, Green: 85, Blue: 85}, Label: feature.Rotten},
}

/*
SeedSamples returns the built-in labeled readings used when no training
data is available. The returned slice is a copy.
*/
func SeedSamples() []dataset.LabeledSample {
	return append([]dataset.LabeledSample(nil), seed...)
}
