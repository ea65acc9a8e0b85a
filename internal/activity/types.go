package activity

// Category is the kind of event a record describes.
type Category string

const (
	CategoryCall         Category = "CALL"
	CategorySMS          Category = "SMS"
	CategoryNotification Category = "NOTIFICATION"
	CategoryLocation     Category = "LOCATION"
)

// Status qualifies a record for display only. It never drives filtering.
type Status string

const (
	StatusIncoming Status = "incoming"
	StatusOutgoing Status = "outgoing"
	StatusMissed   Status = "missed"
	StatusReceived Status = "received"
)

// Coords is an illustrative latitude/longitude pair.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Record is one simulated event shown on the dashboard.
type Record struct {
	ID          string   `json:"id"`
	Category    Category `json:"type"`
	Title       string   `json:"title"`       // contact, app or place name
	Description string   `json:"description"` // message body or call duration
	Timestamp   string   `json:"timestamp"`   // display only, never parsed
	Status      Status   `json:"status,omitempty"`
	Coords      *Coords  `json:"locationCoords,omitempty"` // LOCATION records only
}

// Missed reports whether the record should carry a "Missed Call" badge.
func (r Record) Missed() bool {
	return r.Status == StatusMissed
}

// DeviceStatus is the static "live" panel shown beside the log list.
type DeviceStatus struct {
	Online       bool
	BatteryPct   int
	Signal       string
	SignalPct    int
	MapLabel     string
	MapUpdatedAt string
}

// MockDeviceStatus returns the fixed device panel values.
func MockDeviceStatus() DeviceStatus {
	return DeviceStatus{
		Online:       true,
		BatteryPct:   78,
		Signal:       "4G LTE",
		SignalPct:    90,
		MapLabel:     "Connaught Place, New Delhi",
		MapUpdatedAt: "Updated: 2 mins ago",
	}
}
