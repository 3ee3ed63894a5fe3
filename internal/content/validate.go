package content

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/starpath/internal/content/formats"
	"github.com/vovakirdan/starpath/internal/core"
	"github.com/vovakirdan/starpath/internal/progression"
)

// ErrContentLoad matches every *LoadError via errors.Is.
var ErrContentLoad = errors.New("content: load failed")

// Load error codes.
const (
	CodeRead           = "READ"
	CodeParse          = "PARSE"
	CodeEmptyID        = "EMPTY_ID"
	CodeTimeLimit      = "BAD_TIME_LIMIT"
	CodeLayout         = "BAD_LAYOUT"
	CodeEntity         = "BAD_ENTITY"
	CodeCheckpoint     = "BAD_CHECKPOINT"
	CodeObjective      = "BAD_OBJECTIVE"
	CodeRequirement    = "BAD_REQUIREMENT"
	CodeOrder          = "BAD_ORDER"
	CodeDuplicateID    = "DUPLICATE_ID"
	CodeIDMismatch     = "ID_MISMATCH"
	CodeEmptyWorld     = "EMPTY_WORLD"
	CodeWorldNotFound  = "WORLD_NOT_FOUND"
	CodeDuplicateWorld = "DUPLICATE_WORLD"
)

// LoadError reports missing or malformed content.
type LoadError struct {
	Path    string
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "content: " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrContentLoad
}

func loadErr(path, code, format string, args ...any) *LoadError {
	return &LoadError{Path: path, Code: code, Message: fmt.Sprintf(format, args...)}
}

// buildContent validates a parsed level file and converts it to Content.
func buildContent(path string, yl formats.YAMLLevel) (*progression.Content, error) {
	if yl.ID == "" {
		return nil, loadErr(path, CodeEmptyID, "level id is empty")
	}
	if yl.TimeLimit <= 0 || !core.IsFinite(yl.TimeLimit) {
		return nil, loadErr(path, CodeTimeLimit, "time_limit must be a positive number, got %v", yl.TimeLimit)
	}
	if len(yl.Layout) == 0 {
		return nil, loadErr(path, CodeLayout, "layout is empty")
	}
	layout, err := ParseLayout(yl.Layout)
	if err != nil {
		return nil, &LoadError{Path: path, Code: CodeLayout, Message: "invalid layout", Err: err}
	}

	c := &progression.Content{
		ID:        yl.ID,
		Name:      yl.Name,
		Layout:    layout,
		TimeLimit: yl.TimeLimit,
	}
	bounds := c.Bounds()

	for i, ye := range yl.Entities {
		kind := progression.EntityKind(ye.Type)
		if !kind.Valid() {
			return nil, loadErr(path, CodeEntity, "entity %d: unknown type %q", i, ye.Type)
		}
		pos := core.V(ye.X, ye.Y)
		if !bounds.Contains(pos) {
			return nil, loadErr(path, CodeEntity, "entity %d: position (%v, %v) outside %dx%d layout", i, ye.X, ye.Y, c.Width(), c.Height())
		}
		spec := progression.EntitySpec{Kind: kind, Pos: pos, Props: ye.Props}
		if ye.Velocity != nil {
			vel := core.V(ye.Velocity.X, ye.Velocity.Y)
			if !vel.Finite() {
				return nil, loadErr(path, CodeEntity, "entity %d: velocity must be finite", i)
			}
			spec.Velocity = &vel
		}
		c.Entities = append(c.Entities, spec)
	}

	for i, yp := range yl.Checkpoints {
		pos := core.V(yp.X, yp.Y)
		if !bounds.Contains(pos) {
			return nil, loadErr(path, CodeCheckpoint, "checkpoint %d: position (%v, %v) outside layout", i, yp.X, yp.Y)
		}
		c.Checkpoints = append(c.Checkpoints, pos)
	}

	seen := make(map[string]bool)
	for i, yo := range yl.Objectives {
		kind := progression.ObjectiveKind(yo.Kind)
		switch {
		case yo.ID == "":
			return nil, loadErr(path, CodeObjective, "objective %d: id is empty", i)
		case seen[yo.ID]:
			return nil, loadErr(path, CodeObjective, "objective %q defined twice", yo.ID)
		case !kind.Valid():
			return nil, loadErr(path, CodeObjective, "objective %q: unknown kind %q", yo.ID, yo.Kind)
		case yo.Target < 0 || !core.IsFinite(yo.Target):
			return nil, loadErr(path, CodeObjective, "objective %q: target must be a non-negative number", yo.ID)
		}
		seen[yo.ID] = true
		c.Objectives = append(c.Objectives, progression.ObjectiveSpec{
			ID:     yo.ID,
			Name:   yo.Name,
			Kind:   kind,
			Target: yo.Target,
		})
	}

	return c, nil
}

// validateManifest checks a world manifest before its level files are read.
func validateManifest(path string, yw formats.YAMLWorld) error {
	if yw.ID == "" {
		return loadErr(path, CodeEmptyID, "world id is empty")
	}
	if len(yw.Levels) == 0 {
		return loadErr(path, CodeEmptyWorld, "world %q lists no levels", yw.ID)
	}

	seen := make(map[string]bool)
	for i, ref := range yw.Levels {
		if ref.ID == "" {
			return loadErr(path, CodeEmptyID, "level %d: id is empty", i)
		}
		if ref.File == "" {
			return loadErr(path, CodeRead, "level %q: file is empty", ref.ID)
		}
		if seen[ref.ID] {
			return loadErr(path, CodeDuplicateID, "level %q listed twice", ref.ID)
		}
		seen[ref.ID] = true

		if ref.Requirements.Stars < 0 || ref.Requirements.Stars > progression.MaxStars {
			return loadErr(path, CodeRequirement, "level %q: stars requirement %d outside 0-%d", ref.ID, ref.Requirements.Stars, progression.MaxStars)
		}

		// previous_level may be omitted; when set it must match the play order.
		want := ""
		if i > 0 {
			want = yw.Levels[i-1].ID
		}
		prev := ref.Requirements.PreviousLevel
		if prev != "" && prev != want {
			return loadErr(path, CodeOrder, "level %q: previous_level %q, expected %q", ref.ID, ref.Requirements.PreviousLevel, want)
		}
	}
	return nil
}
