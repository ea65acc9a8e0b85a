package activity

// Summary holds the overview stat cards.
type Summary struct {
	Calls        int
	Messages     int
	Alerts       int // notifications plus missed calls
	LastLocation string
}

// Summarize computes the overview cards from records. LastLocation is the
// title of the first LOCATION record, records being newest first.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Category {
		case CategoryCall:
			s.Calls++
			if r.Missed() {
				s.Alerts++
			}
		case CategorySMS:
			s.Messages++
		case CategoryNotification:
			s.Alerts++
		case CategoryLocation:
			if s.LastLocation == "" {
				s.LastLocation = r.Title
			}
		}
	}
	return s
}

// CountByCategory returns how many records fall in each category.
func CountByCategory(records []Record) map[Category]int {
	counts := make(map[Category]int)
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}
