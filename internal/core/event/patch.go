package event

// Patch describes a partial update to an event. Nil fields are left
// untouched; Data entries are merged key by key.
type Patch struct {
	StartTime *float64               `json:"startTime,omitempty"`
	EndTime   *float64               `json:"endTime,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Metadata  *Metadata              `json:"metadata,omitempty"`
}

// Apply merges the patch into a copy of the event and returns it.
func (p Patch) Apply(e TemporalEvent) TemporalEvent {
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = p.EndTime
	}
	if p.Metadata != nil {
		e.Metadata = *p.Metadata
	}
	if len(p.Data) > 0 {
		merged := make(map[string]interface{}, len(e.Data)+len(p.Data))
		for k, v := range e.Data {
			merged[k] = v
		}
		for k, v := range p.Data {
			merged[k] = v
		}
		e.Data = merged
	}
	return e
}
