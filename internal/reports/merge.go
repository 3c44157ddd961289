package reports

import "logmed-backend/internal/matching"

// Merge folds newly extracted drafts into an existing list and returns the
// updated list. The input list is not modified.
//
// A driver-report draft fills in the route data of the first main-report
// draft for the same driver; without one it is kept on its own. A
// main-report draft absorbs a pending driver-report draft for the same
// driver; otherwise it is added unless its manifest is already listed.
// New standalone drafts go to the front of the list.
func Merge(list []Draft, incoming []Draft, m matching.Matcher) []Draft {
	out := make([]Draft, len(list))
	copy(out, list)

	for _, in := range incoming {
		switch in.Kind {
		case KindDriver:
			if i := indexByDriver(out, KindMain, in.DriverName, m); i >= 0 {
				out[i].overlayDriverData(in)
				if out[i].DriverID == "" {
					out[i].DriverID = in.DriverID
				}
				continue
			}
			out = prepend(out, in)

		default:
			if i := indexByDriver(out, KindDriver, in.DriverName, m); i >= 0 {
				merged := in
				merged.ID = out[i].ID
				merged.overlayDriverData(out[i])
				if merged.DriverID == "" {
					merged.DriverID = out[i].DriverID
				}
				out[i] = merged
				continue
			}
			if hasManifest(out, in.Manifesto) {
				continue
			}
			out = prepend(out, in)
		}
	}
	return out
}

func indexByDriver(list []Draft, kind Kind, name string, m matching.Matcher) int {
	for i, d := range list {
		if d.Kind == kind && m.Match(d.DriverName, name) {
			return i
		}
	}
	return -1
}

func hasManifest(list []Draft, manifesto string) bool {
	for _, d := range list {
		if d.Manifesto == manifesto {
			return true
		}
	}
	return false
}

func prepend(list []Draft, d Draft) []Draft {
	return append([]Draft{d}, list...)
}
