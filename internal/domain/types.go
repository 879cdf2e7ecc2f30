// Package domain defines the records tracked for a horror-game project.
// A Project is the identity root; every other record belongs to exactly one
// project through its ProjectID.
package domain

import "time"

// Project is one horror-game design effort.
type Project struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Concept        string        `json:"concept"`
	Setting        string        `json:"setting"`
	Theme          string        `json:"theme"`
	Perspective    string        `json:"perspective"`
	GameplayFocus  string        `json:"gameplayFocus"`
	UniqueHook     string        `json:"uniqueHook"`
	Engine         string        `json:"engine"`
	TargetPlatform string        `json:"targetPlatform"`
	Status         ProjectStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// StoryElement is a piece of the game design document (outline, character, lore...).
type StoryElement struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	Type       StoryType `json:"type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GameSystem is a gameplay system under design or construction.
type GameSystem struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	Category    SystemCategory `json:"category"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      WorkStatus     `json:"status"`
	Priority    Priority       `json:"priority"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Task is a unit of production work.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Status      TaskStatus   `json:"status"`
	Priority    Priority     `json:"priority"`
	DueDate     string       `json:"dueDate,omitempty"` // calendar date, YYYY-MM-DD
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}

// Asset is an art or audio deliverable.
type Asset struct {
	ID        string      `json:"id"`
	ProjectID string      `json:"projectId"`
	Name      string      `json:"name"`
	Type      AssetType   `json:"type"`
	Status    AssetStatus `json:"status"`
	FilePath  string      `json:"filePath"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"createdAt"`
}

// HorrorElement is one entry of the scare-design checklist.
type HorrorElement struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Type        HorrorType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Trigger     string     `json:"trigger"`
	Implemented bool       `json:"implemented"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Level is a playable space, ordered within its project.
type Level struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OrderIndex  int         `json:"orderIndex"`
	Status      LevelStatus `json:"status"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// MarketingActivity is a planned promotion or release step.
type MarketingActivity struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"projectId"`
	ActivityType  ActivityType `json:"activityType"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ScheduledDate string       `json:"scheduledDate,omitempty"` // calendar date, YYYY-MM-DD
	Completed     bool         `json:"completed"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ProjectStatus is the production phase of a project.
type ProjectStatus string

const (
	ProjectConcept       ProjectStatus = "concept"
	ProjectPreProduction ProjectStatus = "pre-production"
	ProjectProduction    ProjectStatus = "production"
	ProjectPolish        ProjectStatus = "polish"
	ProjectRelease       ProjectStatus = "release"
)

// ProjectStatuses lists the project phases in lifecycle order.
var ProjectStatuses = []ProjectStatus{ProjectConcept, ProjectPreProduction, ProjectProduction, ProjectPolish, ProjectRelease}

// StoryType classifies story elements.
type StoryType string

const (
	StoryOutline   StoryType = "story_outline"
	StoryCharacter StoryType = "character"
	StoryBackstory StoryType = "backstory"
	StoryTwist     StoryType = "twist"
	StoryLore      StoryType = "lore"
)

var StoryTypes = []StoryType{StoryOutline, StoryCharacter, StoryBackstory, StoryTwist, StoryLore}

// SystemCategory classifies game systems.
type SystemCategory string

const (
	SystemPlayer    SystemCategory = "player"
	SystemAI        SystemCategory = "ai"
	SystemPuzzle    SystemCategory = "puzzle"
	SystemInventory SystemCategory = "inventory"
	SystemSave      SystemCategory = "save"
	SystemUI        SystemCategory = "ui"
	SystemOther     SystemCategory = "other"
)

var SystemCategories = []SystemCategory{SystemPlayer, SystemAI, SystemPuzzle, SystemInventory, SystemSave, SystemUI, SystemOther}

// WorkStatus is the progress of a game system.
type WorkStatus string

const (
	WorkPlanned    WorkStatus = "planned"
	WorkInProgress WorkStatus = "in_progress"
	WorkCompleted  WorkStatus = "completed"
)

var WorkStatuses = []WorkStatus{WorkPlanned, WorkInProgress, WorkCompleted}

// Priority is shared by tasks and game systems.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// TaskCategory classifies tasks by discipline.
type TaskCategory string

const (
	TaskDesign        TaskCategory = "design"
	TaskCode          TaskCategory = "code"
	TaskArt           TaskCategory = "art"
	TaskAudio         TaskCategory = "audio"
	TaskTesting       TaskCategory = "testing"
	TaskDocumentation TaskCategory = "documentation"
)

var TaskCategories = []TaskCategory{TaskDesign, TaskCode, TaskArt, TaskAudio, TaskTesting, TaskDocumentation}

// TaskStatus is the progress of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskCompleted}

// AssetType classifies assets.
type AssetType string

const (
	Asset3DModel   AssetType = "3d_model"
	AssetTexture   AssetType = "texture"
	AssetSound     AssetType = "sound"
	AssetMusic     AssetType = "music"
	AssetAnimation AssetType = "animation"
	AssetSprite    AssetType = "sprite"
	AssetOther     AssetType = "other"
)

var AssetTypes = []AssetType{Asset3DModel, AssetTexture, AssetSound, AssetMusic, AssetAnimation, AssetSprite, AssetOther}

// AssetStatus is the production state of an asset.
type AssetStatus string

const (
	AssetNeeded     AssetStatus = "needed"
	AssetInProgress AssetStatus = "in_progress"
	AssetCompleted  AssetStatus = "completed"
)

var AssetStatuses = []AssetStatus{AssetNeeded, AssetInProgress, AssetCompleted}

// HorrorType classifies scare-design elements.
type HorrorType string

const (
	HorrorJumpscare     HorrorType = "jumpscare"
	HorrorAtmosphere    HorrorType = "atmosphere"
	HorrorPsychological HorrorType = "psychological"
	HorrorEnvironmental HorrorType = "environmental"
	HorrorAudio         HorrorType = "audio"
)

var HorrorTypes = []HorrorType{HorrorJumpscare, HorrorAtmosphere, HorrorPsychological, HorrorEnvironmental, HorrorAudio}

// LevelStatus is the build state of a level.
type LevelStatus string

const (
	LevelConcept  LevelStatus = "concept"
	LevelBlockout LevelStatus = "blockout"
	LevelDetailed LevelStatus = "detailed"
	LevelPolished LevelStatus = "polished"
)

var LevelStatuses = []LevelStatus{LevelConcept, LevelBlockout, LevelDetailed, LevelPolished}

// ActivityType classifies marketing activities.
type ActivityType string

const (
	ActivitySocialPost      ActivityType = "social_post"
	ActivityDevlog          ActivityType = "devlog"
	ActivityTrailer         ActivityType = "trailer"
	ActivityStreamerContact ActivityType = "streamer_contact"
	ActivityPressRelease    ActivityType = "press_release"
)

var ActivityTypes = []ActivityType{ActivitySocialPost, ActivityDevlog, ActivityTrailer, ActivityStreamerContact, ActivityPressRelease}

// DateLayout is the layout of user-entered calendar dates (due and scheduled dates).
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date or an RFC 3339 timestamp.
// The second result is false for empty or unparsable input.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
