package decision

import "sort"

// SourceStats describes one registered source for introspection tooling.
type SourceStats struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Enabled  bool   `json:"enabled"`
}

// Stats summarizes the engine's registry.
type Stats struct {
	TotalSources   int           `json:"total_sources"`
	EnabledSources int           `json:"enabled_sources"`
	Sources        []SourceStats `json:"sources"`
}

// GetStats returns source counts and source descriptors listed in
// evaluation order: priority ascending, registration order breaking ties.
func (e *Engine) GetStats() Stats {
	e.mu.RLock()
	regs := make([]*registration, 0, len(e.sources))
	for _, reg := range e.sources {
		regs = append(regs, reg)
	}
	e.mu.RUnlock()

	sort.Slice(regs, func(i, j int) bool {
		if regs[i].priority() != regs[j].priority() {
			return regs[i].priority() < regs[j].priority()
		}
		return regs[i].seq < regs[j].seq
	})

	stats := Stats{TotalSources: len(regs)}
	for _, reg := range regs {
		enabled := reg.enabled()
		if enabled {
			stats.EnabledSources++
		}
		stats.Sources = append(stats.Sources, SourceStats{
			Name:     reg.name(),
			Priority: reg.priority(),
			Enabled:  enabled,
		})
	}
	return stats
}
