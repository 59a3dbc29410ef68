package domain

// Trend is a trending topic shown on the explore screen. CountTotal is a
// display string ("120K" in sample data) and is not guaranteed to be numeric.
type Trend struct {
	ID         string `json:"id"`
	Topic      string `json:"topic"`
	CountTotal string `json:"countTotal"`
}
