package tasks

import "fmt"

// ProgressUpdate represents a progress event during a catalog refresh.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	RenderCache Phase = iota
	FetchSection
	WriteCache
)

func (p Phase) String() string {
	switch p {
	case RenderCache:
		return "render_cache"
	case FetchSection:
		return "fetch_section"
	case WriteCache:
		return "write_cache"
	default:
		return ""
	}
}

func cacheRenderedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderCache,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Showing %d cached titles while the catalog refreshes...", count),
	}
}

func sectionDoneUpdate(step, total int, name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %d titles", step, total, name, count),
	}
}

func sectionFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s unavailable: %v", step, total, name, err),
	}
}

func cacheWrittenUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCache,
		Step:    1,
		Total:   1,
		Message: "Catalog snapshot saved.",
	}
}
