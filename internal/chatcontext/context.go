// Package chatcontext derives and holds the ambient context bundle sent
// alongside every chat request: time of day, weekday, weather, location and
// the viewer's selected mood.
package chatcontext

import (
	"fmt"
	"sync"
	"time"
)

// TimeOfDay is one of four wall-clock buckets.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// DeriveTimeOfDay maps an hour (0-23) to a bucket using half-open intervals:
// [6,12) morning, [12,18) afternoon, [18,22) evening, everything else night.
func DeriveTimeOfDay(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// Label returns the Russian display label for the bucket.
func (t TimeOfDay) Label() string {
	switch t {
	case Morning:
		return "Утро"
	case Afternoon:
		return "День"
	case Evening:
		return "Вечер"
	default:
		return "Ночь"
	}
}

// Mood is the viewer-selected mood. Unknown values are not rejected; they
// render with the neutral label.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodSad        Mood = "sad"
	MoodExcited    Mood = "excited"
	MoodRelaxed    Mood = "relaxed"
	MoodRomantic   Mood = "romantic"
	MoodThoughtful Mood = "thoughtful"
	MoodScared     Mood = "scared"
	MoodEnergetic  Mood = "energetic"
	MoodNeutral    Mood = "neutral"
)

var moodLabels = map[Mood]string{
	MoodHappy:      "Хорошее настроение",
	MoodSad:        "Грустное настроение",
	MoodExcited:    "Возбужденное",
	MoodRelaxed:    "Спокойное",
	MoodRomantic:   "Романтическое",
	MoodThoughtful: "Задумчивое",
	MoodScared:     "Страшно",
	MoodEnergetic:  "Энергичное",
	MoodNeutral:    "Нейтральное",
}

// Label returns the Russian display label; unknown moods fall back to neutral.
func (m Mood) Label() string {
	if label, ok := moodLabels[m]; ok {
		return label
	}
	return moodLabels[MoodNeutral]
}

var weekdayNames = [...]string{
	time.Sunday:    "воскресенье",
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
}

// Snapshot is an immutable view of the conversation context at one instant.
type Snapshot struct {
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Hour      int       `json:"hour"`
	Day       string    `json:"day"`
	Formatted string    `json:"formatted,omitempty"`
	Weather   string    `json:"weather"`
	Location  string    `json:"location"`
	Mood      Mood      `json:"mood"`
	MoodLabel string    `json:"mood_label,omitempty"`
}

// Model holds the mutable part of the context. Mood is the only field a user
// action can change; everything else is derived from the clock or static.
type Model struct {
	mu       sync.RWMutex
	weather  string
	location string
	mood     Mood
}

func NewModel(weather, location string) *Model {
	return &Model{
		weather:  weather,
		location: location,
		mood:     MoodNeutral,
	}
}

// SetMood updates the stored mood. Setting the same value again is harmless.
func (m *Model) SetMood(mood Mood) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mood = mood
}

func (m *Model) Mood() Mood {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mood
}

// Snapshot composes the current context from the given instant. It performs
// no I/O and never fails.
func (m *Model) Snapshot(now time.Time) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hour := now.Hour()
	day := weekdayNames[now.Weekday()]
	return Snapshot{
		TimeOfDay: DeriveTimeOfDay(hour),
		Hour:      hour,
		Day:       day,
		Formatted: fmt.Sprintf("%d:%02d, %s", hour, now.Minute(), day),
		Weather:   m.weather,
		Location:  m.location,
		Mood:      m.mood,
		MoodLabel: m.mood.Label(),
	}
}
