package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/multilabel/internal/backend/cpu"
	"github.com/born-ml/multilabel/internal/dataset"
	"github.com/born-ml/multilabel/internal/nn"
	"github.com/born-ml/multilabel/internal/parallel"
)

func newEvalCmd() *cobra.Command {
	evalCmd := &cobra.Command{
		Use:   "eval CSV",
		Short: "Compute loss, per-sample losses and gradient for a batch",
		Long: `Compute the multi-label softmax loss of a batch.

The CSV has a header "labels,c0,c1,..." and one row per sample. The labels
column holds space-separated class indices; -1 ends the list early.`,
		Args: cobra.ExactArgs(1),
		RunE: evalHandler,
	}

	evalCmd.Flags().Float64("loss-weight", 1.0, "Upstream gradient of the loss")
	evalCmd.Flags().Bool("grad", false, "Print the gradient w.r.t. the scores")
	evalCmd.Flags().Bool("sequential", false, "Disable parallel per-sample loops")

	return evalCmd
}

func evalHandler(cmd *cobra.Command, args []string) error {
	lossWeight, err := cmd.Flags().GetFloat64("loss-weight")
	if err != nil {
		return err
	}
	showGrad, err := cmd.Flags().GetBool("grad")
	if err != nil {
		return err
	}
	sequential, err := cmd.Flags().GetBool("sequential")
	if err != nil {
		return err
	}

	batch, err := dataset.LoadCSV(args[0])
	if err != nil {
		return err
	}
	slog.Debug("loaded batch", "file", args[0], "samples", batch.NumSamples(), "classes", batch.NumClasses)

	par := parallel.DefaultConfig()
	if sequential {
		par = parallel.Sequential()
	}
	backend := cpu.NewWithConfig(par)

	scores, err := dataset.ScoresTensor(batch, backend)
	if err != nil {
		return err
	}

	criterion := nn.NewMultiLabelSoftmaxLoss[float64](nn.MultiLabelSoftmaxLossConfig{
		PerSampleLoss: true,
		Parallel:      par,
	}, backend)

	res, err := criterion.Forward(scores, batch.Labels)
	if err != nil {
		return fmt.Errorf("forward: %w", err)
	}
	slog.Debug("forward", "loss", res.Loss.Item(), "workers", par.NumWorkers, "parallel", par.Enabled)

	grad, err := criterion.Backward(res, lossWeight, nn.PropagateScores)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	acc, err := nn.MultiLabelAccuracy(scores, batch.Labels)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "loss:     %.6f\n", res.Loss.Item())
	fmt.Fprintf(out, "accuracy: %.4f\n", acc)
	fmt.Fprintln(out)

	perSample := res.PerSample.Data()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"SAMPLE", "LABELS", "ACTIVE", "LOSS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for i := range batch.NumSamples() {
		table.Append([]string{
			strconv.Itoa(i),
			joinLabels(batch.Labels.Sample(i)),
			strconv.Itoa(res.Counts[i]),
			strconv.FormatFloat(perSample[i], 'f', 6, 64),
		})
	}
	table.Render()

	if showGrad {
		fmt.Fprintln(out)
		writeGradient(out, grad.Data(), batch.NumClasses)
	}
	return nil
}

func writeGradient(w io.Writer, grad []float64, numClasses int) {
	header := []string{"SAMPLE"}
	for k := 0; k < numClasses; k++ {
		header = append(header, fmt.Sprintf("C%d", k))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	for i := 0; i < len(grad)/numClasses; i++ {
		row := []string{strconv.Itoa(i)}
		for _, g := range grad[i*numClasses : (i+1)*numClasses] {
			row = append(row, strconv.FormatFloat(g, 'f', 6, 64))
		}
		table.Append(row)
	}
	table.Render()
}

func joinLabels(labels []int) string {
	parts := make([]string, len(labels))
	for i, k := range labels {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, " ")
}
