package activity

// Store is the fixed, ordered set of sample records. It is built once at
// startup and never mutated; every accessor hands out a copy.
type Store struct {
	records []Record
}

// NewStore copies records into a new Store.
func NewStore(records []Record) *Store {
	return &Store{records: cloneRecords(records)}
}

// SampleStore returns a Store holding the seven demo records.
func SampleStore() *Store {
	return &Store{records: sampleRecords()}
}

// All returns every record in display order.
func (s *Store) All() []Record {
	return cloneRecords(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// View returns the records visible under v.
func (s *Store) View(v View) []Record {
	return Filter(s.records, v)
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		if r.Coords != nil {
			c := *r.Coords
			r.Coords = &c
		}
		out[i] = r
	}
	return out
}

func sampleRecords() []Record {
	return []Record{
		{
			ID:          "1",
			Category:    CategoryCall,
			Title:       "Unknown Number",
			Description: "Duration: 00:00 (Missed)",
			Timestamp:   "10:30 AM",
			Status:      StatusMissed,
		},
		{
			ID:          "2",
			Category:    CategorySMS,
			Title:       "Rahul (Classmate)",
			Description: "Hey Ravi, are you coming to the cricket match today?",
			Timestamp:   "10:15 AM",
			Status:      StatusIncoming,
		},
		{
			ID:          "3",
			Category:    CategoryNotification,
			Title:       "Instagram",
			Description: "New like on your photo",
			Timestamp:   "09:45 AM",
			Status:      StatusReceived,
		},
		{
			ID:          "4",
			Category:    CategoryCall,
			Title:       "Mom",
			Description: "Duration: 02:15",
			Timestamp:   "09:00 AM",
			Status:      StatusIncoming,
		},
		{
			ID:          "5",
			Category:    CategorySMS,
			Title:       "SERVICE-ALERT",
			Description: "Your data pack is expiring soon.",
			Timestamp:   "Yesterday",
			Status:      StatusIncoming,
		},
		{
			ID:          "6",
			Category:    CategoryLocation,
			Title:       "School Zone",
			Description: "Ravi arrived at Delhi Public School",
			Timestamp:   "08:00 AM",
			Coords:      &Coords{Lat: 28.6139, Lng: 77.2090},
		},
		{
			ID:          "7",
			Category:    CategorySMS,
			Title:       "Unknown",
			Description: "Click this link to win a prize!",
			Timestamp:   "Yesterday",
			Status:      StatusIncoming,
		},
	}
}
