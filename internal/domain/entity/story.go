// Package entity defines the domain entities.
package entity

import (
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Default targets for new stories and chapters.
const (
	DefaultStoryTarget   = 50000
	DefaultChapterTarget = 3000
)

// ChapterStatus is the chapter workflow enum.
type ChapterStatus string

const (
	ChapterPlanned   ChapterStatus = "planned"
	ChapterOutline   ChapterStatus = "outline"
	ChapterDrafting  ChapterStatus = "drafting"
	ChapterDraft     ChapterStatus = "draft"
	ChapterRevision  ChapterStatus = "revision"
	ChapterCompleted ChapterStatus = "completed"
)

// Valid reports whether s is one of the defined chapter statuses.
func (s ChapterStatus) Valid() bool {
	switch s {
	case ChapterPlanned, ChapterOutline, ChapterDrafting, ChapterDraft, ChapterRevision, ChapterCompleted:
		return true
	}
	return false
}

// Scene is a planned unit of a chapter. It starts as an outline entry
// (name, location, purpose) and gains prose through SetContent.
type Scene struct {
	Number      int       `json:"number"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Characters  []string  `json:"characters"`
	Purpose     string    `json:"purpose"`
	Content     string    `json:"content"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewScene(name, description, location string, characters []string, purpose string) Scene {
	if characters == nil {
		characters = []string{}
	}
	return Scene{
		Name:        name,
		Description: description,
		Location:    location,
		Characters:  characters,
		Purpose:     purpose,
		CreatedAt:   time.Now(),
	}
}

// SetContent replaces the scene prose and recomputes its word count.
func (s *Scene) SetContent(content string) {
	s.Content = content
	s.WordCount = CountWords(content)
}

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	cp := s
	cp.Characters = append([]string(nil), s.Characters...)
	return cp
}

// Chapter groups scenes and tracks drafting progress.
type Chapter struct {
	Number      int           `json:"number"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	Status      ChapterStatus `json:"status"`
	TargetWords int           `json:"target_words"`
	Scenes      []Scene       `json:"scenes"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func NewChapter(number int, title, summary string, targetWords int) *Chapter {
	if targetWords <= 0 {
		targetWords = DefaultChapterTarget
	}
	now := time.Now()
	return &Chapter{
		Number:      number,
		Title:       title,
		Summary:     summary,
		Status:      ChapterPlanned,
		TargetWords: targetWords,
		Scenes:      []Scene{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WordCount sums the word counts of all scenes.
func (c *Chapter) WordCount() int {
	total := 0
	for _, s := range c.Scenes {
		total += s.WordCount
	}
	return total
}

// Scene returns the scene with the given number, or false when absent.
func (c *Chapter) Scene(number int) (*Scene, bool) {
	for i := range c.Scenes {
		if c.Scenes[i].Number == number {
			return &c.Scenes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the chapter.
func (c *Chapter) Clone() *Chapter {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Scenes = make([]Scene, len(c.Scenes))
	for i, s := range c.Scenes {
		cp.Scenes[i] = s.Clone()
	}
	return &cp
}

// Story is a planned work with chapters and scenes.
type Story struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Genre        Genre      `json:"genre"`
	Synopsis     string     `json:"synopsis"`
	TargetLength int        `json:"target_length"`
	Chapters     []*Chapter `json:"chapters"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewStory(title string, genre Genre, synopsis string, targetLength int) *Story {
	if targetLength <= 0 {
		targetLength = DefaultStoryTarget
	}
	now := time.Now()
	return &Story{
		ID:           uuid.NewString(),
		Title:        title,
		Genre:        genre,
		Synopsis:     synopsis,
		TargetLength: targetLength,
		Chapters:     []*Chapter{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// WordCount sums the word counts of all chapters.
func (s *Story) WordCount() int {
	total := 0
	for _, c := range s.Chapters {
		total += c.WordCount()
	}
	return total
}

// Progress returns completion against the target length in percent, capped at 100.
func (s *Story) Progress() float64 {
	if s.TargetLength <= 0 {
		return 0
	}
	p := float64(s.WordCount()) / float64(s.TargetLength) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Chapter returns the chapter with the given number.
func (s *Story) Chapter(number int) (*Chapter, bool) {
	for _, c := range s.Chapters {
		if c.Number == number {
			return c, true
		}
	}
	return nil, false
}

// Clone returns a deep copy so stored state cannot be mutated through
// returned references.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Chapters = make([]*Chapter, len(s.Chapters))
	for i, c := range s.Chapters {
		cp.Chapters[i] = c.Clone()
	}
	return &cp
}

// CountWords counts non-whitespace runes. For Japanese prose this matches
// character-counted manuscript length.
func CountWords(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
