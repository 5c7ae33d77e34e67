package models

import "encoding/json"

// HoursKind tags the shape of venue hours data we actually received.
// Upstream payloads are loose: some venues carry structured weekly periods,
// some only an open_now flag, some nothing at all.
type HoursKind int

const (
	HoursNone HoursKind = iota
	HoursPeriods
	HoursOpenNow
)

// TimePoint is one edge of an operating period. Time is digits "HHMM"
// (e.g. "2200"), not "HH:MM".
type TimePoint struct {
	Day  int    `json:"day" bson:"day"` // 0=Sun..6=Sat
	Time string `json:"time" bson:"time"`
}

type Period struct {
	Open  TimePoint `json:"open" bson:"open"`
	Close TimePoint `json:"close" bson:"close"`
}

type HoursData struct {
	Kind        HoursKind `json:"-" bson:"kind"`
	Periods     []Period  `json:"periods,omitempty" bson:"periods,omitempty"`
	OpenNow     *bool     `json:"open_now,omitempty" bson:"open_now,omitempty"`
	WeekdayText []string  `json:"weekday_text,omitempty" bson:"weekday_text,omitempty"`
}

// UnmarshalJSON derives the Kind tag so "no hours data" stays an explicit
// branch for the availability check instead of an implicit fallthrough.
func (h *HoursData) UnmarshalJSON(b []byte) error {
	type alias struct {
		Periods     []Period `json:"periods"`
		OpenNow     *bool    `json:"open_now"`
		WeekdayText []string `json:"weekday_text"`
	}
	var aux alias
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	h.Periods = aux.Periods
	h.OpenNow = aux.OpenNow
	h.WeekdayText = aux.WeekdayText

	switch {
	case len(aux.Periods) > 0:
		h.Kind = HoursPeriods
	case aux.OpenNow != nil:
		h.Kind = HoursOpenNow
	default:
		h.Kind = HoursNone
	}
	return nil
}

// PeriodFor returns the period whose opening day matches the given weekday.
func (h *HoursData) PeriodFor(day int) *Period {
	if h == nil {
		return nil
	}
	for i := range h.Periods {
		if h.Periods[i].Open.Day == day {
			return &h.Periods[i]
		}
	}
	return nil
}
