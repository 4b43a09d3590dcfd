// Package dataset loads score/label batches from disk for the CLI.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/multilabel/internal/nn"
	"github.com/born-ml/multilabel/internal/tensor"
)

// Batch holds raw scores and label sets for a batch of samples.
type Batch struct {
	Scores     []float64 // [num_samples * num_classes], row-major
	NumClasses int
	Labels     *nn.Labels
}

// NumSamples returns the number of samples in the batch.
func (b *Batch) NumSamples() int {
	return b.Labels.Len()
}

// ScoresTensor copies the batch scores into a [num_samples, num_classes] tensor.
func ScoresTensor[B tensor.Backend](b *Batch, backend B) (*tensor.Tensor[float64, B], error) {
	return tensor.FromSlice(b.Scores, tensor.Shape{b.NumSamples(), b.NumClasses}, backend)
}

// LoadCSV loads a batch from a CSV file.
//
// CSV Format:
//
//	labels,c0,c1,c2
//	0 1,2.5,0.3,-1.0
//	2 -1,0.1,0.1,4.0
//
// The labels column holds space-separated class indices; -1 ends the list
// early and anything after it is ignored. Remaining columns are raw scores.
func LoadCSV(filename string) (*Batch, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads a batch in the LoadCSV format from r.
func ReadCSV(r io.Reader) (*Batch, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}

	if len(records) < 2 {
		return nil, errors.New("CSV file is empty or missing header")
	}
	header := records[0]
	if len(header) < 2 || strings.TrimSpace(header[0]) != "labels" {
		return nil, errors.Errorf("header must be labels,<class columns...>, got %v", header)
	}

	// Skip header row
	records = records[1:]

	batch := &Batch{
		Scores:     make([]float64, 0, len(records)*(len(header)-1)),
		NumClasses: len(header) - 1,
	}
	samples := make([][]int, len(records))

	for i, record := range records {
		line := i + 2
		if len(record) != len(header) {
			return nil, errors.Errorf("line %d: expected %d columns, got %d", line, len(header), len(record))
		}

		samples[i], err = parseLabelField(record[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %s", line, header[j+1])
			}
			batch.Scores = append(batch.Scores, v)
		}
	}

	batch.Labels = nn.NewLabels(samples)
	return batch, nil
}

// parseLabelField parses "2 0 -1" into [2 0].
func parseLabelField(field string) ([]int, error) {
	var labels []int
	for _, tok := range strings.Fields(field) {
		k, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid label %q", tok)
		}
		if k == nn.LabelSentinel {
			break
		}
		labels = append(labels, k)
	}
	return labels, nil
}
