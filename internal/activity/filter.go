package activity

// View selects which records the dashboard shows.
type View string

const (
	ViewOverview      View = "overview"
	ViewCalls         View = "calls"
	ViewSMS           View = "sms"
	ViewNotifications View = "notifications"
	ViewLocation      View = "location"
)

// Views is the ordered list of dashboard views, as shown in the navigation.
var Views = []View{
	ViewOverview,
	ViewCalls,
	ViewSMS,
	ViewNotifications,
	ViewLocation,
}

var viewCategory = map[View]Category{
	ViewCalls:         CategoryCall,
	ViewSMS:           CategorySMS,
	ViewNotifications: CategoryNotification,
	ViewLocation:      CategoryLocation,
}

var viewLabels = map[View]string{
	ViewOverview:      "Overview",
	ViewCalls:         "Call Logs",
	ViewSMS:           "Messages",
	ViewNotifications: "Notifications",
	ViewLocation:      "Live Location",
}

// ParseView maps s to a known View. Unknown values yield ViewOverview and false.
func ParseView(s string) (View, bool) {
	v := View(s)
	if v == ViewOverview {
		return v, true
	}
	if _, ok := viewCategory[v]; ok {
		return v, true
	}
	return ViewOverview, false
}

// Label is the navigation label for v.
func (v View) Label() string {
	if l, ok := viewLabels[v]; ok {
		return l
	}
	return viewLabels[ViewOverview]
}

// Filter returns a new slice with the records of all visible under view,
// preserving order. Overview and unrecognized views return every record.
func Filter(all []Record, view View) []Record {
	cat, ok := viewCategory[view]
	if !ok {
		return cloneRecords(all)
	}

	out := make([]Record, 0, len(all))
	for _, r := range all {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return cloneRecords(out)
}
