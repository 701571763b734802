package impact

import (
	"math"
	"sort"

	"github.com/voxmetric/call-timeline/internal/core/event"
)

// TagDefinition is a read-only classification entry supplied by the tagging
// subsystem.
type TagDefinition struct {
	Label         string `yaml:"label" json:"label"`
	Family        string `yaml:"family" json:"family"`
	OriginSpeaker string `yaml:"originSpeaker" json:"originSpeaker"`
	Color         string `yaml:"color" json:"color"`
}

// Pair is one conseiller action followed immediately by a client reaction in
// the filtered, time-sorted event list.
type Pair struct {
	Id                 string              `json:"id"`
	ConseillerEvent    event.TemporalEvent `json:"conseillerEvent"`
	ClientEvent        event.TemporalEvent `json:"clientEvent"`
	ConseillerStrategy Valence             `json:"conseillerStrategy"`
	ClientReaction     Valence             `json:"clientReaction"`
	IsCoherent         bool                `json:"isCoherent"`
	TimeDelta          float64             `json:"timeDelta"`
}

// Metrics aggregates the impact analysis over one event collection.
type Metrics struct {
	TotalPairs        int     `json:"totalPairs"`
	PositiveReactions int     `json:"positiveReactions"`
	NegativeReactions int     `json:"negativeReactions"`
	NeutralReactions  int     `json:"neutralReactions"`
	CoherentImpacts   int     `json:"coherentImpacts"`
	EfficiencyRate    int     `json:"efficiencyRate"`
	AvgTimeDelta      float64 `json:"avgTimeDelta"`
}

// Analyzer classifies adjacent conseiller/client turns against a tag
// definition table. It keeps no state between runs; Analyze is re-run in
// full whenever the events or the table change.
type Analyzer struct {
	tags map[string]TagDefinition
}

// NewAnalyzer indexes the tag definition table by normalized label.
func NewAnalyzer(definitions []TagDefinition) *Analyzer {
	tags := make(map[string]TagDefinition, len(definitions))
	for _, def := range definitions {
		tags[normalizeLabel(def.Label)] = def
	}
	return &Analyzer{tags: tags}
}

// Analyze filters the events to classified turns, pairs strictly adjacent
// conseiller→client turns, and aggregates the coherence metrics.
func (a *Analyzer) Analyze(events []event.TemporalEvent) ([]Pair, Metrics) {
	relevant := a.filterRelevant(events)

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].StartTime < relevant[j].StartTime
	})

	pairs := a.pairAdjacent(relevant)
	return pairs, computeMetrics(pairs)
}

// filterRelevant drops events with no tag definition or whose family is the
// excluded catch-all.
func (a *Analyzer) filterRelevant(events []event.TemporalEvent) []event.TemporalEvent {
	var out []event.TemporalEvent
	for _, e := range events {
		def, ok := a.lookup(e)
		if !ok {
			continue
		}
		if def.Family == FamilyOther {
			continue
		}
		out = append(out, e)
	}
	return out
}

// pairAdjacent walks consecutive events in the filtered sorted list and
// emits a pair for each conseiller turn immediately followed by a client
// turn. Adjacency is within the filtered list, so irrelevant events never
// break a pair.
func (a *Analyzer) pairAdjacent(events []event.TemporalEvent) []Pair {
	var pairs []Pair

	for i := 0; i+1 < len(events); i++ {
		current := events[i]
		next := events[i+1]

		currentDef, ok := a.lookup(current)
		if !ok || !isConseillerTag(currentDef) {
			continue
		}
		nextDef, ok := a.lookup(next)
		if !ok || !isClientTag(nextDef) {
			continue
		}

		strategy := classifyStrategy(currentDef)
		reaction := classifyReaction(nextDef)

		pairs = append(pairs, Pair{
			Id:                 current.Id + next.Id,
			ConseillerEvent:    current,
			ClientEvent:        next,
			ConseillerStrategy: strategy,
			ClientReaction:     reaction,
			IsCoherent:         isCoherent(strategy, reaction),
			TimeDelta:          next.StartTime - current.StartTime,
		})
	}
	return pairs
}

func (a *Analyzer) lookup(e event.TemporalEvent) (TagDefinition, bool) {
	def, ok := a.tags[normalizeLabel(e.Label())]
	return def, ok
}

func isConseillerTag(def TagDefinition) bool {
	return def.OriginSpeaker == SpeakerConseiller && strategyFamilies[def.Family]
}

func isClientTag(def TagDefinition) bool {
	return def.OriginSpeaker == SpeakerClient && def.Family == FamilyClient
}

func computeMetrics(pairs []Pair) Metrics {
	m := Metrics{TotalPairs: len(pairs)}
	if len(pairs) == 0 {
		return m
	}

	var deltaSum float64
	for _, p := range pairs {
		switch p.ClientReaction {
		case Positive:
			m.PositiveReactions++
		case Negative:
			m.NegativeReactions++
		default:
			m.NeutralReactions++
		}
		if p.IsCoherent {
			m.CoherentImpacts++
		}
		deltaSum += p.TimeDelta
	}

	m.EfficiencyRate = int(math.Round(100 * float64(m.CoherentImpacts) / float64(m.TotalPairs)))
	m.AvgTimeDelta = deltaSum / float64(m.TotalPairs)
	return m
}
