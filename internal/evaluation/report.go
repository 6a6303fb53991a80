package evaluation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/gcbaptista/answer-ranker/config"
	"github.com/gcbaptista/answer-ranker/model"
)

// ReportWriter emits ranked reports, either to a single stream or to one file per document.
type ReportWriter struct {
	out   io.Writer
	dir   string
	plus  *color.Color
	minus *color.Color

	mu     sync.Mutex
	docNum int
}

// NewConsoleReportWriter writes every report to out. colorMode is one of the config color modes;
// "auto" defers to fatih/color's terminal detection.
func NewConsoleReportWriter(out io.Writer, colorMode string) *ReportWriter {
	return &ReportWriter{
		out:   out,
		plus:  newSymbolColor(color.FgGreen, colorMode),
		minus: newSymbolColor(color.FgRed, colorMode),
	}
}

// NewFileReportWriter writes each document report to its own file under dir and the
// summary line to summaryOut. File reports are never colored.
func NewFileReportWriter(dir string, summaryOut io.Writer) (*ReportWriter, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &ReportWriter{
		out:   summaryOut,
		dir:   dir,
		plus:  newSymbolColor(color.FgGreen, config.ColorOff),
		minus: newSymbolColor(color.FgRed, config.ColorOff),
	}, nil
}

func newSymbolColor(attr color.Attribute, mode string) *color.Color {
	c := color.New(attr)
	switch mode {
	case config.ColorOn:
		c.EnableColor()
	case config.ColorOff:
		c.DisableColor()
	}
	return c
}

// FormatDocument renders the report of one document:
//
//	Question: <text>
//	<+|-> <score> <answer text>
//	Precision at <R>: <precision>
func (w *ReportWriter) FormatDocument(result model.EvaluationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", result.Question)
	for _, r := range result.Ranked {
		symbol := w.minus.Sprint(r.Symbol())
		if r.IsCorrect {
			symbol = w.plus.Sprint(r.Symbol())
		}
		fmt.Fprintf(&b, "%s %.2f %s\n", symbol, r.Score, r.Text)
	}
	if !result.Counted {
		fmt.Fprintf(&b, "Precision at %d: n/a\n", result.TotalCorrect)
	} else {
		fmt.Fprintf(&b, "Precision at %d: %.2f\n", result.TotalCorrect, result.Precision)
	}
	return b.String()
}

// FormatSummary renders the average precision line.
func FormatSummary(summary model.EvaluationSummary) string {
	if summary.Documents == 0 {
		return "Average Precision: n/a\n"
	}
	return fmt.Sprintf("Average Precision: %.2f\n", summary.AveragePrecision)
}

// WriteDocument writes the report of doc. Console reports are written under a lock so
// concurrent documents never interleave.
func (w *ReportWriter) WriteDocument(doc *model.Document, result model.EvaluationResult) error {
	report := w.FormatDocument(result)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == "" {
		if _, err := io.WriteString(w.out, report); err != nil {
			return fmt.Errorf("failed to write report for document %s: %w", doc.ID, err)
		}
		return nil
	}

	path := filepath.Join(w.dir, w.reportName(doc))
	if err := os.WriteFile(path, []byte(report), 0600); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return nil
}

// reportName returns "<source>.txt", or "doc<N>.txt" for documents without a source. Callers hold mu.
func (w *ReportWriter) reportName(doc *model.Document) string {
	if doc.Source == "" {
		name := fmt.Sprintf("doc%d.txt", w.docNum)
		w.docNum++
		return name
	}
	name := filepath.Base(doc.Source)
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	return name
}

// WriteSummary writes the average precision line to the console stream.
func (w *ReportWriter) WriteSummary(summary model.EvaluationSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := io.WriteString(w.out, FormatSummary(summary)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
