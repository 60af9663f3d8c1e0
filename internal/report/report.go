// Package report writes pricing results to disk for inspection and
// downstream tooling.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pricer/internal/convergence"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// WriteJSON writes the full convergence study to convergence.json.
func WriteJSON(res *convergence.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "convergence.json"), b, 0644)
}

// WriteCSV writes the per-step-count points to convergence.csv.
func WriteCSV(res *convergence.Result, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "convergence.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"steps", "lattice_price", "closed_form_price", "abs_error"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, pt := range res.Points {
		row := []string{
			fmt.Sprintf("%d", pt.Steps),
			fmt.Sprintf("%.6f", pt.Lattice),
			fmt.Sprintf("%.6f", res.ClosedForm),
			fmt.Sprintf("%.6f", pt.AbsError),
		}
		_ = w.Write(row)
	}
	return nil
}

// WriteNodesCSV dumps a lattice's terminal states to nodes.csv. This is
// the diagnostic view of the pricer; writing it never changes a price.
func WriteNodesCSV(nodes iter.Seq[pricing.TerminalNode], outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "nodes.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"index", "terminal_price", "payoff", "probability"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for node := range nodes {
		row := []string{
			fmt.Sprintf("%d", node.Index),
			fmt.Sprintf("%.6f", node.Price),
			fmt.Sprintf("%.6f", node.Payoff),
			fmt.Sprintf("%.12f", node.Probability),
		}
		_ = w.Write(row)
	}
	return nil
}
