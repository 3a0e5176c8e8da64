package bio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

var csvColumns = []string{"red", "green", "blue", "label"}

/*
ReadCSVSamples takes an io.Reader for a CSV stream and returns the labeled
samples parsed from it or an error.

The header or first row of the CSV content is expected to name the red,
green, blue and label columns, in any order. Other columns are ignored.
The rest of the rows should have integer channel values in [0,255] and a
ripeness label.
*/
func ReadCSVSamples(reader io.Reader) ([]dataset.LabeledSample, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	positions, err := parseCSVHeader(header)
	if err != nil {
		return nil, err
	}
	samples := []dataset.LabeledSample{}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		sample, err := parseSampleFromCSVRow(row, positions)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

/*
ReadCSVSamplesFromFilePath takes a filepath string, opens the file to which
it points and uses ReadCSVSamples to return the samples read from it or an
error. An empty filepath reads from the standard input.
*/
func ReadCSVSamplesFromFilePath(filepath string) ([]dataset.LabeledSample, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		defer f.Close()
	}
	samples, err := ReadCSVSamples(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return samples, err
}

/*
NewCSVSource takes the paths to a training CSV file and an optional
verified samples CSV file and returns a dataset.Source serving the samples
read from them, or an error if they cannot be read.
*/
func NewCSVSource(trainingPath, verifiedPath string) (dataset.Source, error) {
	training, err := ReadCSVSamplesFromFilePath(trainingPath)
	if err != nil {
		return nil, err
	}
	var verified []dataset.LabeledSample
	if verifiedPath != "" {
		verified, err = ReadCSVSamplesFromFilePath(verifiedPath)
		if err != nil {
			return nil, err
		}
	}
	return dataset.NewMemorySource(training, verified), nil
}

/*
WriteCSVSamples takes an io.Writer and a slice of labeled samples and
writes them as CSV with a red,green,blue,label header.
*/
func WriteCSVSamples(writer io.Writer, samples []dataset.LabeledSample) error {
	w := csv.NewWriter(writer)
	err := w.Write(csvColumns)
	if err != nil {
		return fmt.Errorf("writing header: %v", err)
	}
	for _, s := range samples {
		err = w.Write([]string{
			strconv.Itoa(s.Red),
			strconv.Itoa(s.Green),
			strconv.Itoa(s.Blue),
			string(s.Label),
		})
		if err != nil {
			return fmt.Errorf("writing sample %v: %v", s, err)
		}
	}
	w.Flush()
	return w.Error()
}

func parseCSVHeader(header []string) (map[string]int, error) {
	positions := make(map[string]int)
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, c := range csvColumns {
		if _, ok := positions[c]; !ok {
			return nil, fmt.Errorf("parsing header: missing column %s", c)
		}
	}
	return positions, nil
}

func parseSampleFromCSVRow(row []string, positions map[string]int) (dataset.LabeledSample, error) {
	var channels [3]int
	for i, c := range csvColumns[:3] {
		v, err := strconv.Atoi(strings.TrimSpace(row[positions[c]]))
		if err != nil {
			return dataset.LabeledSample{}, fmt.Errorf("converting %s %q to integer: %v", c, row[positions[c]], err)
		}
		channels[i] = v
	}
	color, err := dataset.NewColor(channels[0], channels[1], channels[2])
	if err != nil {
		return dataset.LabeledSample{}, err
	}
	label, err := feature.ParseLabel(strings.TrimSpace(row[positions["label"]]))
	if err != nil {
		return dataset.LabeledSample{}, err
	}
	return dataset.LabeledSample{Color: color, Label: label}, nil
}
