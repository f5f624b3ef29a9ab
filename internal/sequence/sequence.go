// Package sequence defines the target-set model that seqview displays.
package sequence

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nightsky/seqview/internal/format"
)

// Domain errors.
var (
	ErrTargetNotFound = errors.New("target not found")
	ErrEmptySequence  = errors.New("sequence has no targets")
)

// DefaultDownloadTime is the per-frame download estimate in seconds.
const DefaultDownloadTime = 5.0

// ImageType is the kind of frame an exposure captures.
type ImageType string

const (
	ImageLight    ImageType = "LIGHT"
	ImageDark     ImageType = "DARK"
	ImageBias     ImageType = "BIAS"
	ImageFlat     ImageType = "FLAT"
	ImageSnapshot ImageType = "SNAPSHOT"
)

// Mode is the target acquisition mode.
type Mode string

const (
	ModeStandard Mode = "STANDARD"
	ModeRotate   Mode = "ROTATE"
)

// Binning is the camera binning for an exposure.
type Binning struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders binning as "1x1".
func (b Binning) String() string {
	return strconv.Itoa(b.X) + "x" + strconv.Itoa(b.Y)
}

// Filter identifies a filter wheel slot.
type Filter struct {
	Name          string   `json:"name"`
	Position      int      `json:"position"`
	FocusOffset   *int     `json:"focusOffset,omitempty"`
	AutoFocusTime *float64 `json:"autoFocusExposureTime,omitempty"`
}

// Exposure is one row of a target's exposure plan.
type Exposure struct {
	ID            string              `json:"id"`
	Enabled       bool                `json:"enabled"`
	Status        format.EntityStatus `json:"status"`
	ExposureTime  float64             `json:"exposureTime"` // seconds per frame
	ImageType     ImageType           `json:"imageType"`
	Filter        *Filter             `json:"filter,omitempty"`
	Binning       Binning             `json:"binning"`
	Gain          int                 `json:"gain"`   // -1 uses camera default
	Offset        int                 `json:"offset"` // -1 uses camera default
	TotalCount    int                 `json:"totalCount"`
	ProgressCount int                 `json:"progressCount"`
	Dither        bool                `json:"dither"`
	DitherEvery   int                 `json:"ditherEvery"`
}

// NewExposure returns an exposure with the editor's defaults.
func NewExposure() Exposure {
	return Exposure{
		ID:           uuid.NewString(),
		Enabled:      true,
		Status:       format.StatusCreated,
		ExposureTime: 60,
		ImageType:    ImageLight,
		Binning:      Binning{X: 1, Y: 1},
		Gain:         -1,
		Offset:       -1,
		TotalCount:   10,
		DitherEvery:  1,
	}
}

// Remaining returns the frames still to take, never below zero.
func (e Exposure) Remaining() int {
	return max(e.TotalCount-e.ProgressCount, 0)
}

// Runtime returns the seconds needed for the remaining frames.
// Disabled exposures take no time.
func (e Exposure) Runtime(downloadTime float64) float64 {
	if !e.Enabled {
		return 0
	}
	return float64(e.Remaining()) * (e.ExposureTime + downloadTime)
}

// FilterName returns the filter name or an empty string.
func (e Exposure) FilterName() string {
	if e.Filter == nil {
		return ""
	}
	return e.Filter.Name
}

// ETA is an estimated schedule, derived from the flat fields stored in the file.
type ETA struct {
	Start    time.Time
	End      time.Time
	Duration float64 // seconds
}

// AutoFocusOptions are the per-target autofocus triggers.
type AutoFocusOptions struct {
	AutoFocusOnStart                      bool    `json:"autoFocusOnStart"`
	AutoFocusOnFilterChange               bool    `json:"autoFocusOnFilterChange"`
	AutoFocusAfterSetTime                 bool    `json:"autoFocusAfterSetTime"`
	AutoFocusSetTime                      int     `json:"autoFocusSetTime"` // minutes
	AutoFocusAfterSetExposures            bool    `json:"autoFocusAfterSetExposures"`
	AutoFocusSetExposures                 int     `json:"autoFocusSetExposures"`
	AutoFocusAfterTemperatureChange       bool    `json:"autoFocusAfterTemperatureChange"`
	AutoFocusAfterTemperatureChangeAmount float64 `json:"autoFocusAfterTemperatureChangeAmount"`
	AutoFocusAfterHFRChange               bool    `json:"autoFocusAfterHfrChange"`
	AutoFocusAfterHFRChangeAmount         float64 `json:"autoFocusAfterHfrChangeAmount"`
}

// Target is a deep-sky object with its exposure plan.
type Target struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Status        format.EntityStatus `json:"status"`
	FileName      string              `json:"fileName,omitempty"`
	TargetName    string              `json:"targetName"`
	Coordinates   Coordinates         `json:"coordinates"`
	PositionAngle float64             `json:"positionAngle"`
	Rotation      float64             `json:"rotation"`
	Delay         int                 `json:"delay"` // seconds before the first exposure
	Mode          Mode                `json:"mode"`
	SlewToTarget  bool                `json:"slewToTarget"`
	CenterTarget  bool                `json:"centerTarget"`
	RotateTarget  bool                `json:"rotateTarget"`
	StartGuiding  bool                `json:"startGuiding"`
	AutoFocusOptions
	Exposures []Exposure `json:"exposures"`

	EstimatedStartTime *time.Time `json:"estimatedStartTime,omitempty"`
	EstimatedEndTime   *time.Time `json:"estimatedEndTime,omitempty"`
	EstimatedDuration  *float64   `json:"estimatedDuration,omitempty"`
}

// NewTarget returns a target with one default exposure.
func NewTarget(name string) Target {
	return Target{
		ID:           uuid.NewString(),
		Name:         name,
		TargetName:   name,
		Status:       format.StatusCreated,
		Mode:         ModeStandard,
		SlewToTarget: true,
		CenterTarget: true,
		StartGuiding: true,
		AutoFocusOptions: AutoFocusOptions{
			AutoFocusOnStart:                      true,
			AutoFocusSetTime:                      30,
			AutoFocusSetExposures:                 10,
			AutoFocusAfterTemperatureChangeAmount: 1,
			AutoFocusAfterHFRChangeAmount:         15,
		},
		Exposures: []Exposure{NewExposure()},
	}
}

// ETA returns the stored schedule, or false when CalculateETAs has not run.
func (t Target) ETA() (ETA, bool) {
	return etaOf(t.EstimatedStartTime, t.EstimatedEndTime, t.EstimatedDuration)
}

// Runtime returns the delay plus the runtime of every exposure.
func (t Target) Runtime(downloadTime float64) float64 {
	total := float64(t.Delay)
	for _, e := range t.Exposures {
		total += e.Runtime(downloadTime)
	}
	return total
}

// TotalExposureCount sums the planned frames.
func (t Target) TotalExposureCount() int {
	n := 0
	for _, e := range t.Exposures {
		n += e.TotalCount
	}
	return n
}

// RemainingExposureCount sums the frames still to take.
func (t Target) RemainingExposureCount() int {
	n := 0
	for _, e := range t.Exposures {
		n += e.Remaining()
	}
	return n
}

// StartOptions run once before the first target.
type StartOptions struct {
	CoolCamera      bool    `json:"coolCameraAtSequenceStart"`
	CoolTemperature float64 `json:"coolCameraTemperature"`
	CoolDuration    int     `json:"coolCameraDuration"`
	UnparkMount     bool    `json:"unparkMountAtSequenceStart"`
	DoMeridianFlip  bool    `json:"doMeridianFlip"`
}

// EndOptions run once after the last target.
type EndOptions struct {
	WarmCamera   bool `json:"warmCamAtSequenceEnd"`
	WarmDuration int  `json:"warmCameraDuration"`
	ParkMount    bool `json:"parkMountAtSequenceEnd"`
}

// Sequence is a target set.
type Sequence struct {
	ID                    string       `json:"id"`
	Title                 string       `json:"title"`
	StartOptions          StartOptions `json:"startOptions"`
	EndOptions            EndOptions   `json:"endOptions"`
	Targets               []Target     `json:"targets"`
	SelectedTargetID      string       `json:"selectedTargetId,omitempty"`
	ActiveTargetID        string       `json:"activeTargetId,omitempty"`
	IsRunning             bool         `json:"isRunning"`
	EstimatedDownloadTime float64      `json:"estimatedDownloadTime"`

	OverallStartTime *time.Time `json:"overallStartTime,omitempty"`
	OverallEndTime   *time.Time `json:"overallEndTime,omitempty"`
	OverallDuration  *float64   `json:"overallDuration,omitempty"`
}

// New returns a sequence holding one default target, selected and active.
func New(title string) *Sequence {
	first := NewTarget("Target")
	return &Sequence{
		ID:    uuid.NewString(),
		Title: title,
		StartOptions: StartOptions{
			CoolCamera:      true,
			CoolTemperature: -10,
			CoolDuration:    600,
			UnparkMount:     true,
			DoMeridianFlip:  true,
		},
		EndOptions: EndOptions{
			WarmCamera:   true,
			WarmDuration: 600,
			ParkMount:    true,
		},
		Targets:               []Target{first},
		SelectedTargetID:      first.ID,
		ActiveTargetID:        first.ID,
		EstimatedDownloadTime: DefaultDownloadTime,
	}
}

// TotalRuntime returns the seconds needed for every target.
func (s *Sequence) TotalRuntime() float64 {
	total := 0.0
	for _, t := range s.Targets {
		total += t.Runtime(s.EstimatedDownloadTime)
	}
	return total
}

// TotalExposureCount sums planned frames across targets.
func (s *Sequence) TotalExposureCount() int {
	n := 0
	for _, t := range s.Targets {
		n += t.TotalExposureCount()
	}
	return n
}

// RemainingExposureCount sums outstanding frames across targets.
func (s *Sequence) RemainingExposureCount() int {
	n := 0
	for _, t := range s.Targets {
		n += t.RemainingExposureCount()
	}
	return n
}

// CompletedExposureCount is the number of frames already taken, capped per
// exposure at its total.
func (s *Sequence) CompletedExposureCount() int {
	return s.TotalExposureCount() - s.RemainingExposureCount()
}

// Status derives the sequence state: running while the sequencer runs,
// finished once every planned frame is taken, created otherwise.
func (s *Sequence) Status() format.EntityStatus {
	switch {
	case s.IsRunning:
		return format.StatusRunning
	case s.TotalExposureCount() > 0 && s.RemainingExposureCount() == 0:
		return format.StatusFinished
	default:
		return format.StatusCreated
	}
}

// FindTarget returns the target with the given id.
func (s *Sequence) FindTarget(id string) (*Target, error) {
	for i := range s.Targets {
		if s.Targets[i].ID == id {
			return &s.Targets[i], nil
		}
	}
	return nil, ErrTargetNotFound
}

// ResolveTarget picks the target to show. An explicit id must exist;
// otherwise the selected target wins, then the active one, then the first.
func (s *Sequence) ResolveTarget(id string) (*Target, error) {
	if len(s.Targets) == 0 {
		return nil, ErrEmptySequence
	}
	if id != "" {
		return s.FindTarget(id)
	}
	for _, candidate := range []string{s.SelectedTargetID, s.ActiveTargetID} {
		if candidate == "" {
			continue
		}
		if t, err := s.FindTarget(candidate); err == nil {
			return t, nil
		}
	}
	return &s.Targets[0], nil
}

// TargetIndex returns the index of id, or -1.
func (s *Sequence) TargetIndex(id string) int {
	for i := range s.Targets {
		if s.Targets[i].ID == id {
			return i
		}
	}
	return -1
}

// CalculateETAs schedules targets back to back starting at now and stores
// the estimates on each target. It returns the overall estimate.
func (s *Sequence) CalculateETAs(now time.Time) ETA {
	current := now
	total := 0.0
	for i := range s.Targets {
		t := &s.Targets[i]
		d := t.Runtime(s.EstimatedDownloadTime)
		start, end := current, current.Add(seconds(d))
		t.EstimatedStartTime, t.EstimatedEndTime, t.EstimatedDuration = &start, &end, &d
		current = end
		total += d
	}

	end := now.Add(seconds(total))
	s.OverallStartTime, s.OverallEndTime, s.OverallDuration = &now, &end, &total
	return ETA{Start: now, End: end, Duration: total}
}

// OverallETA returns the stored sequence schedule, or false when
// CalculateETAs has not run.
func (s *Sequence) OverallETA() (ETA, bool) {
	return etaOf(s.OverallStartTime, s.OverallEndTime, s.OverallDuration)
}

func etaOf(start, end *time.Time, d *float64) (ETA, bool) {
	if start == nil || end == nil {
		return ETA{}, false
	}
	eta := ETA{Start: *start, End: *end}
	if d != nil {
		eta.Duration = *d
	}
	return eta, true
}

// seconds truncates fractional seconds, as the runtime display does.
func seconds(v float64) time.Duration {
	return time.Duration(int64(v)) * time.Second
}
