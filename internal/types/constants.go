package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Project types
const (
	ProjectTypeBackend  = "back-end"
	ProjectTypeFrontend = "front-end"
	ProjectTypeIOS      = "iOS"
	ProjectTypeAndroid  = "Android"
)

// Issue priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Issue statuses
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusFinished   = "Finished"
)

// Issue tags
const (
	TagBug     = "BUG"
	TagFeature = "FEATURE"
	TagTask    = "TASK"
)

var (
	ProjectTypes = []string{ProjectTypeBackend, ProjectTypeFrontend, ProjectTypeIOS, ProjectTypeAndroid}
	Priorities   = []string{PriorityLow, PriorityMedium, PriorityHigh}
	Statuses     = []string{StatusToDo, StatusInProgress, StatusFinished}
	Tags         = []string{TagBug, TagFeature, TagTask}
)

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func ValidProjectType(value string) bool { return contains(ProjectTypes, value) }
func ValidPriority(value string) bool    { return contains(Priorities, value) }
func ValidStatus(value string) bool      { return contains(Statuses, value) }
func ValidTag(value string) bool         { return contains(Tags, value) }

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
