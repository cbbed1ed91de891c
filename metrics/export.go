package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

// ExportedReport is the top-level JSON export shape of spec.md §6.2.
type ExportedReport struct {
	NetworkMetrics NetworkMetrics          `json:"network_metrics"`
	AgentMetrics   map[string]AgentMetrics `json:"agent_metrics"`
	ExportedAt     time.Time               `json:"exported_at"`
}

// ExportJSON writes a full metrics report for every known agent to w.
func (e *Engine) ExportJSON(w io.Writer) error {
	report := ExportedReport{
		NetworkMetrics: e.NetworkMetrics(),
		AgentMetrics:   make(map[string]AgentMetrics),
		ExportedAt:     e.now().UTC(),
	}
	for _, id := range e.store.AgentIDs() {
		report.AgentMetrics[id] = e.AgentMetrics(id)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("metrics: failed to marshal report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("metrics: failed to write report: %w", err)
	}
	return nil
}

// ExportCSV writes one row per agent with the core per-agent metrics,
// sorted by agent_id for deterministic output.
func (e *Engine) ExportCSV(w io.Writer) error {
	ids := e.store.AgentIDs()
	sort.Strings(ids)

	header := "agent_id,total_trust_score,average_trust_score,trust_centrality,trust_reliability,confidence_score,risk_score\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("metrics: writing csv header: %w", err)
	}
	for _, id := range ids {
		m := e.AgentMetrics(id)
		row := fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s\n",
			id,
			strconv.FormatFloat(m.TotalTrustScore, 'f', 6, 64),
			strconv.FormatFloat(m.AverageTrustScore, 'f', 6, 64),
			strconv.FormatFloat(m.TrustCentrality, 'f', 6, 64),
			strconv.FormatFloat(m.TrustReliability, 'f', 6, 64),
			strconv.FormatFloat(m.ConfidenceScore, 'f', 6, 64),
			strconv.FormatFloat(m.RiskScore, 'f', 6, 64),
		)
		if _, err := io.WriteString(w, row); err != nil {
			return fmt.Errorf("metrics: writing csv row: %w", err)
		}
	}
	return nil
}
