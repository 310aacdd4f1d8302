package model

import (
	"encoding/json"
	"fmt"
)

// Tracker types. One entry per (member, type, date).
const (
	TypeWorkout    = "workout"
	TypeSleep      = "sleep"
	TypeReading    = "reading"
	TypeSexuality  = "sexuality"
	TypePosture    = "posture"
	TypeHabits     = "habits"
	TypeDiet       = "diet"
	TypeMeditation = "meditation"
	TypeJournal    = "journal"
	TypeAffective  = "affective"
	TypeCareer     = "career"
	TypeCommunity  = "community"
)

var TrackerTypes = []string{
	TypeWorkout, TypeSleep, TypeReading, TypeSexuality, TypePosture, TypeHabits,
	TypeDiet, TypeMeditation, TypeJournal, TypeAffective, TypeCareer, TypeCommunity,
}

func IsTrackerType(t string) bool {
	for _, v := range TrackerTypes {
		if v == t {
			return true
		}
	}
	return false
}

// TrackerValue is the decoded payload of a tracker entry. Exactly one variant
// pointer is set, matching the entry type; types without a dedicated variant
// (and unknown types, which flow through unvalidated) keep the raw document.
type TrackerValue struct {
	Completed bool `json:"completed"`

	Workout    *WorkoutValue    `json:"-"`
	Sleep      *SleepValue      `json:"-"`
	Habits     *HabitsValue     `json:"-"`
	Diet       *DietValue       `json:"-"`
	Meditation *MeditationValue `json:"-"`
	Journal    *JournalValue    `json:"-"`

	Raw json.RawMessage `json:"-"`
}

type WorkoutValue struct {
	Completed bool   `json:"completed"`
	Kind      string `json:"type"`
	Duration  int    `json:"duration"`
}

type SleepValue struct {
	Completed bool    `json:"completed"`
	Hours     float64 `json:"hours"`
	Quality   int     `json:"quality"`
}

type HabitsValue struct {
	Completed       bool     `json:"completed"`
	CompletedHabits []string `json:"completedHabits"`
	Adherence       float64  `json:"adherence"`
}

type DietValue struct {
	Completed bool    `json:"completed"`
	Calories  int     `json:"calories"`
	Adherence float64 `json:"adherence"`
}

type MeditationValue struct {
	Completed bool   `json:"completed"`
	Minutes   int    `json:"minutes"`
	Technique string `json:"technique"`
}

type JournalValue struct {
	Completed bool   `json:"completed"`
	Entry     string `json:"entry"`
	Mood      string `json:"mood"`
}

// DecodeValue parses a stored value document into the variant for entryType.
func DecodeValue(entryType string, raw []byte) (TrackerValue, error) {
	v := TrackerValue{Raw: json.RawMessage(raw)}
	if len(raw) == 0 {
		return v, nil
	}

	var dst any
	switch entryType {
	case TypeWorkout:
		v.Workout = &WorkoutValue{}
		dst = v.Workout
	case TypeSleep:
		v.Sleep = &SleepValue{}
		dst = v.Sleep
	case TypeHabits:
		v.Habits = &HabitsValue{}
		dst = v.Habits
	case TypeDiet:
		v.Diet = &DietValue{}
		dst = v.Diet
	case TypeMeditation:
		v.Meditation = &MeditationValue{}
		dst = v.Meditation
	case TypeJournal:
		v.Journal = &JournalValue{}
		dst = v.Journal
	default:
		var generic struct {
			Completed bool `json:"completed"`
		}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return v, fmt.Errorf("decode %s value: %w", entryType, err)
		}
		v.Completed = generic.Completed
		return v, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return v, fmt.Errorf("decode %s value: %w", entryType, err)
	}
	switch d := dst.(type) {
	case *WorkoutValue:
		v.Completed = d.Completed
	case *SleepValue:
		v.Completed = d.Completed
	case *HabitsValue:
		v.Completed = d.Completed
	case *DietValue:
		v.Completed = d.Completed
	case *MeditationValue:
		v.Completed = d.Completed
	case *JournalValue:
		v.Completed = d.Completed
	}
	return v, nil
}

// Encode serializes a variant back to the stored document. Prefers the typed
// variant when set, otherwise the raw document.
func (v TrackerValue) Encode() ([]byte, error) {
	switch {
	case v.Workout != nil:
		return json.Marshal(v.Workout)
	case v.Sleep != nil:
		return json.Marshal(v.Sleep)
	case v.Habits != nil:
		return json.Marshal(v.Habits)
	case v.Diet != nil:
		return json.Marshal(v.Diet)
	case v.Meditation != nil:
		return json.Marshal(v.Meditation)
	case v.Journal != nil:
		return json.Marshal(v.Journal)
	case len(v.Raw) > 0:
		return v.Raw, nil
	}
	return json.Marshal(map[string]bool{"completed": v.Completed})
}
