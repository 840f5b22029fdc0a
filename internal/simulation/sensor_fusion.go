package simulation

// FuseDetections returns the union of detected target IDs across all
// Active sensors, collapsing duplicates. This is the CommandPost's
// only input set.
func FuseDetections(sensors []*Sensor) map[string]bool {
	fused := make(map[string]bool)
	for _, s := range sensors {
		if !s.Active {
			continue
		}
		for id := range s.DetectedIDs {
			fused[id] = true
		}
	}
	return fused
}

// PerSensorDetections returns each Active sensor's own detection set
// without fusion, for diagnostics only; it is never consumed by
// allocation.
func PerSensorDetections(sensors []*Sensor) map[string][]string {
	out := make(map[string][]string, len(sensors))
	for _, s := range sensors {
		if !s.Active {
			continue
		}
		ids := make([]string, 0, len(s.DetectedIDs))
		for id := range s.DetectedIDs {
			ids = append(ids, id)
		}
		out[s.ID] = ids
	}
	return out
}
