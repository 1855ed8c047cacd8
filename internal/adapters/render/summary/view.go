package summary

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ptlab/ptsim/internal/application"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/expression"
)

type RenderOptions struct {
	ShowExchanges bool
	// MaxExchanges caps the exchanges listed per channel. Zero means no cap.
	MaxExchanges int
}

// RenderResults renders the outcome of one or more pipeline runs.
func RenderResults(results []application.Result, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return resultsView(results, opts, s)
	})
}

// RenderSimulation renders a loaded simulation file.
func RenderSimulation(file domain.SimulationFile, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return simulationView(file, opts, s)
	})
}

func resultsView(results []application.Result, opts RenderOptions, s styles) string {
	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
		}
	}

	lines := []string{
		s.title.Render("PassThru Simulation Synthesis"),
		s.header.Render(fmt.Sprintf("files: %d  failed: %d", len(results), failed)),
	}

	if len(results) == 0 {
		lines = append(lines, s.empty.Render("No trace files processed."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, result := range results {
		lines = append(lines, s.section.Render(resultBlock(result, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func resultBlock(result application.Result, opts RenderOptions, s styles) string {
	parts := []string{s.source.Render(filepath.Base(result.SourcePath))}

	if result.Failed() {
		parts = append(parts, s.failure.Render("error: "+result.Err.Error()))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, s.detail.Render(fmt.Sprintf(
		"expressions: %d (unclassified: %d)  channels: %d  duration: %s",
		result.Expressions, result.Unclassified(), len(result.Channels), formatDuration(result.Duration),
	)))

	if result.ExpressionPath != "" {
		parts = append(parts, s.detail.Render("expressions -> "+result.ExpressionPath))
	}
	if result.SimulationPath != "" {
		parts = append(parts, s.detail.Render("simulation  -> "+result.SimulationPath))
	}

	for _, channel := range result.Channels {
		parts = append(parts, channelLines(channel, opts, s)...)
	}

	if warning := diagnosticsLine(result.Diagnostics); warning != "" {
		parts = append(parts, s.warning.Render(warning))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func simulationView(file domain.SimulationFile, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Simulation " + file.Source),
		s.header.Render(fmt.Sprintf("channels: %d  run: %s  generated: %s",
			len(file.Channels), orNA(file.RunID), formatGenerated(file.GeneratedAt))),
	}
	if file.SourceDigest != "" {
		lines = append(lines, s.header.Render("digest: "+file.SourceDigest))
	}

	if len(file.Channels) == 0 {
		lines = append(lines, s.empty.Render("No channels recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, channel := range file.Channels {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, channelLines(channel, opts, s)...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func channelLines(channel domain.SimulationChannel, opts RenderOptions, s styles) []string {
	lines := []string{channelTitle(channel, s)}

	for _, filter := range channel.Filters {
		lines = append(lines, s.detail.Render("  "+filterLabel(filter)))
	}

	if !opts.ShowExchanges {
		return lines
	}

	for i, exchange := range channel.Exchanges {
		if opts.MaxExchanges > 0 && i >= opts.MaxExchanges {
			lines = append(lines, s.empty.Render(fmt.Sprintf("  ... %d more exchanges", len(channel.Exchanges)-i)))
			break
		}
		lines = append(lines, s.exchange.Render(fmt.Sprintf("  #%d >", exchange.Request.Index))+" "+s.payload.Render(payloadLabel(exchange.Request)))
		if len(exchange.Responses) == 0 {
			lines = append(lines, s.empty.Render("      (no response)"))
		}
		for _, response := range exchange.Responses {
			lines = append(lines, s.exchange.Render(fmt.Sprintf("  #%d <", response.Index))+" "+s.payload.Render(payloadLabel(response)))
		}
	}

	return lines
}

func channelTitle(channel domain.SimulationChannel, s styles) string {
	if channel.Orphan {
		return s.orphan.Render(fmt.Sprintf("orphan messages [%d..%d]  exchanges: %d  unsolicited: %d",
			channel.OpenedAt, channel.ClosedAt, len(channel.Exchanges), len(channel.Unsolicited)))
	}

	protocol := orNA(channel.Protocol)
	if channel.BaudRate > 0 {
		protocol = fmt.Sprintf("%s @ %d", protocol, channel.BaudRate)
	}

	return s.channel.Render(fmt.Sprintf("channel %d %s [%d..%d]  flags: 0x%08X  filters: %d  exchanges: %d  responses: %d",
		channel.ChannelID, protocol, channel.OpenedAt, channel.ClosedAt, channel.ConnectFlags,
		len(channel.Filters), len(channel.Exchanges), channel.ResponseCount()))
}

func filterLabel(filter domain.FilterSpec) string {
	id := "?"
	if filter.ID != domain.UnknownFilterID {
		id = fmt.Sprintf("%d", filter.ID)
	}

	parts := []string{fmt.Sprintf("filter %s %s", id, orNA(filter.Type))}
	if len(filter.Mask) > 0 {
		parts = append(parts, "mask "+expression.FormatBytes(filter.Mask))
	}
	if len(filter.Pattern) > 0 {
		parts = append(parts, "pattern "+expression.FormatBytes(filter.Pattern))
	}
	if len(filter.FlowControl) > 0 {
		parts = append(parts, "flow "+expression.FormatBytes(filter.FlowControl))
	}
	return strings.Join(parts, "  ")
}

func payloadLabel(ref domain.ExpressionRef) string {
	if len(ref.Messages) == 0 {
		return "(empty)"
	}
	labels := make([]string, 0, len(ref.Messages))
	for _, message := range ref.Messages {
		labels = append(labels, expression.FormatBytes(message))
	}
	return strings.Join(labels, " | ")
}

func diagnosticsLine(d domain.Diagnostics) string {
	var notes []string
	if n := len(d.Unclassified); n > 0 {
		notes = append(notes, fmt.Sprintf("%d unclassified", n))
	}
	if n := len(d.Orphans); n > 0 {
		notes = append(notes, fmt.Sprintf("%d orphan messages", n))
	}
	if n := len(d.FieldMisses); n > 0 {
		notes = append(notes, fmt.Sprintf("%d unparsable fields", n))
	}
	if len(notes) == 0 {
		return ""
	}
	return "[" + strings.Join(notes, ", ") + "]"
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return d.Round(time.Millisecond).String()
}

func formatGenerated(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.Format(time.RFC3339)
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "n/a"
	}
	return value
}
