package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/models"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
)

// renderer writes records and reports as text, styled only on a terminal.
type renderer struct {
	w      io.Writer
	styled bool
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w, styled: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *renderer) style(s lipgloss.Style, str string) string {
	if !r.styled {
		return str
	}
	return s.Render(str)
}

func (r *renderer) heading(title string) {
	fmt.Fprintf(r.w, "\n%s\n", r.style(headingStyle, "== "+title+" =="))
}

func (r *renderer) record(rec *models.WalletRecord) {
	fmt.Fprintf(r.w, "%s %s\n", r.style(labelStyle, "Mnemonic:"), strings.Join(rec.Mnemonic, " "))
	fmt.Fprintf(r.w, "%s %d\n", r.style(labelStyle, "Address index:"), rec.AddressIndex)

	for _, chain := range models.AllChains {
		pair := rec.Pair(chain)
		fmt.Fprintf(r.w, "\n%s  %s\n", r.style(headingStyle, chain.Label()), r.style(labelStyle, pair.Path))
		fmt.Fprintf(r.w, "  %s %s\n", r.style(labelStyle, "Address:"), pair.Address)
		fmt.Fprintf(r.w, "  %s %s\n", r.style(labelStyle, "Secret: "), pair.Secret)
	}
}

func (r *renderer) report(report models.ValidationReport) {
	fmt.Fprintf(r.w, "\n%s\n", r.style(headingStyle, "Validation"))
	for _, c := range report.Checks {
		status := r.style(passStyle, "PASS")
		if !c.Passed {
			status = r.style(failStyle, "FAIL")
		}
		line := fmt.Sprintf("  [%s] %s", status, c.Label())
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		fmt.Fprintln(r.w, line)
	}

	summary := fmt.Sprintf("%d/%d checks passed", len(report.Checks)-len(report.Failed()), len(report.Checks))
	if report.OK() {
		fmt.Fprintf(r.w, "  %s\n", r.style(passStyle, summary))
	} else {
		fmt.Fprintf(r.w, "  %s\n", r.style(failStyle, summary))
	}
}

// errorResponse is the JSON shape of a failed command.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSONError(w io.Writer, err error) {
	json.NewEncoder(w).Encode(errorResponse{
		Error: errorDetail{
			Code:    config.ErrorCode(err),
			Message: err.Error(),
		},
	})
}

func writeTextError(w io.Writer, err error) {
	msg := "Error: " + err.Error()
	if isTerminal(w) {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
