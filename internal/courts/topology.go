package courts

import "strings"

// groupSeparator splits a court name into its physical group key and the
// sub-court suffix: "Court A-1" belongs to group "Court A".
const groupSeparator = "-"

// GroupKeyFor returns the physical group key for a court name: the portion
// before the first separator, or the whole name when there is none
// ("Table 1" is its own group).
func GroupKeyFor(name string) string {
	prefix, _, found := strings.Cut(name, groupSeparator)
	if !found {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(prefix)
}

// GroupKeys returns the distinct group keys of the given courts, in first
// appearance order.
func GroupKeys(courts []Court) []string {
	seen := make(map[string]struct{}, len(courts))
	var keys []string
	for _, court := range courts {
		if _, ok := seen[court.GroupKey]; ok {
			continue
		}
		seen[court.GroupKey] = struct{}{}
		keys = append(keys, court.GroupKey)
	}
	return keys
}

// SportsSharingSpace returns the set of sport names that share the court's
// physical footprint: its own sport plus its declared shared_with list.
func SportsSharingSpace(court *Court) []string {
	var names []string
	if court.Sport != nil {
		names = append(names, court.Sport.Name)
	}
	for _, shared := range court.SharedWith {
		if !contains(names, shared) {
			names = append(names, shared)
		}
	}
	return names
}

// Blocks reports whether an existing overlapping reservation held on
// conflictCourtName (in group conflictGroupKey) makes candidate unavailable.
//
// A whole-court candidate is blocked by any reservation in its group: a
// single badminton half-court reservation takes the basketball floor. A
// sub-court candidate is blocked only by a reservation on the same logical
// court or on the whole physical court; a sibling sub-court does not block.
func Blocks(candidate *Court, conflictCourtName, conflictGroupKey string) bool {
	if conflictGroupKey != candidate.GroupKey {
		return false
	}
	if candidate.IsWholeCourt() {
		return true
	}
	return conflictCourtName == candidate.Name || conflictCourtName == candidate.GroupKey
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
