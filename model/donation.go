package model

import "time"

// Donation is a cumulative snapshot: Total is the all-time amount the
// player had donated as of Date, not the amount given that day.
type Donation struct {
	ID       int32
	PlayerID int32
	Date     time.Time
	Total    int
}

// DonationEntry is a snapshot together with the delta to the previous
// snapshot of the same player. The first entry always has Delta 0.
type DonationEntry struct {
	Date  time.Time
	Total int
	Delta int
}

// DonationStats summarizes one player's snapshot history.
type DonationStats struct {
	PlayerID         int32
	Entries          []DonationEntry
	LastTotal        int
	TotalDonated     int
	AvgMonthlyIncr   float64
	MonthBucketCount int
}

// FairnessRow is one line of the donation fairness report. Index is the
// actual total as a percentage of Matches times the per-match quota.
type FairnessRow struct {
	PlayerID int32
	Name     string
	Matches  int
	Total    int
	Index    float64
}
