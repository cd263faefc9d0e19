package rules

// Select returns the rules a run should apply. With a non-empty name it
// returns every rule with that name, enabled or not, keeping duplicates.
// Otherwise it returns the enabled rules. Order is preserved.
func Select(all []Rule, name string) []Rule {
	selected := make([]Rule, 0, len(all))
	for _, r := range all {
		if name != "" {
			if r.Name == name {
				selected = append(selected, r)
			}
			continue
		}
		if r.Enabled {
			selected = append(selected, r)
		}
	}
	return selected
}
