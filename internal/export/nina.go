package export

import "github.com/nightsky/seqview/internal/sequence"

// ninaTargetSetDoc is a NINA target set: PascalCase keys and NINA's own
// names for a few fields.
type ninaTargetSetDoc struct {
	Title        string              `json:"Title"`
	StartOptions ninaStartOptions    `json:"StartOptions"`
	EndOptions   ninaEndOptions      `json:"EndOptions"`
	Targets      []ninaCaptureTarget `json:"Targets"`
}

type ninaStartOptions struct {
	CoolCameraAtSequenceStart  bool    `json:"CoolCameraAtSequenceStart"`
	CoolCameraTemperature      float64 `json:"CoolCameraTemperature"`
	CoolCameraDuration         int     `json:"CoolCameraDuration"`
	UnparkMountAtSequenceStart bool    `json:"UnparkMountAtSequenceStart"`
	DoMeridianFlip             bool    `json:"DoMeridianFlip"`
}

type ninaEndOptions struct {
	WarmCamAtSequenceEnd   bool `json:"WarmCamAtSequenceEnd"`
	WarmCameraDuration     int  `json:"WarmCameraDuration"`
	ParkMountAtSequenceEnd bool `json:"ParkMountAtSequenceEnd"`
}

type ninaCoordinates struct {
	RAHours     int     `json:"RAHours"`
	RAMinutes   int     `json:"RAMinutes"`
	RASeconds   float64 `json:"RASeconds"`
	DecDegrees  int     `json:"DecDegrees"`
	DecMinutes  int     `json:"DecMinutes"`
	DecSeconds  float64 `json:"DecSeconds"`
	NegativeDec bool    `json:"NegativeDec"`
}

type ninaCaptureTarget struct {
	TargetName                            string            `json:"TargetName"`
	Coordinates                           ninaCoordinates   `json:"Coordinates"`
	PositionAngle                         float64           `json:"PositionAngle"`
	Delay                                 int               `json:"Delay"`
	Mode                                  string            `json:"Mode"`
	SlewToTarget                          bool              `json:"SlewToTarget"`
	CenterTarget                          bool              `json:"CenterTarget"`
	RotateTarget                          bool              `json:"RotateTarget"`
	StartGuiding                          bool              `json:"StartGuiding"`
	AutoFocusOnStart                      bool              `json:"AutoFocusOnStart"`
	AutoFocusOnFilterChange               bool              `json:"AutoFocusOnFilterChange"`
	AutoFocusAfterSetTime                 bool              `json:"AutoFocusAfterSetTime"`
	AutoFocusSetTime                      int               `json:"AutoFocusSetTime"`
	AutoFocusAfterSetExposures            bool              `json:"AutoFocusAfterSetExposures"`
	AutoFocusSetExposures                 int               `json:"AutoFocusSetExposures"`
	AutoFocusAfterTemperatureChange       bool              `json:"AutoFocusAfterTemperatureChange"`
	AutoFocusAfterTemperatureChangeAmount float64           `json:"AutoFocusAfterTemperatureChangeAmount"`
	AutoFocusAfterHFRChange               bool              `json:"AutoFocusAfterHFRChange"`
	AutoFocusAfterHFRChangeAmount         float64           `json:"AutoFocusAfterHFRChangeAmount"`
	Items                                 []ninaCaptureItem `json:"Items"`
}

type ninaCaptureItem struct {
	Enabled               bool        `json:"Enabled"`
	ExposureTime          float64     `json:"ExposureTime"`
	ImageType             string      `json:"ImageType"`
	FilterType            *ninaFilter `json:"FilterType,omitempty"`
	Binning               ninaBinning `json:"Binning"`
	Gain                  int         `json:"Gain"`
	Offset                int         `json:"Offset"`
	TotalExposureCount    int         `json:"TotalExposureCount"`
	ProgressExposureCount int         `json:"ProgressExposureCount"`
	Dither                bool        `json:"Dither"`
	DitherAmount          int         `json:"DitherAmount"`
}

type ninaFilter struct {
	Name     string `json:"Name"`
	Position int    `json:"Position"`
}

type ninaBinning struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

func ninaTargetSet(seq *sequence.Sequence) ninaTargetSetDoc {
	doc := ninaTargetSetDoc{
		Title: seq.Title,
		StartOptions: ninaStartOptions{
			CoolCameraAtSequenceStart:  seq.StartOptions.CoolCamera,
			CoolCameraTemperature:      seq.StartOptions.CoolTemperature,
			CoolCameraDuration:         seq.StartOptions.CoolDuration,
			UnparkMountAtSequenceStart: seq.StartOptions.UnparkMount,
			DoMeridianFlip:             seq.StartOptions.DoMeridianFlip,
		},
		EndOptions: ninaEndOptions{
			WarmCamAtSequenceEnd:   seq.EndOptions.WarmCamera,
			WarmCameraDuration:     seq.EndOptions.WarmDuration,
			ParkMountAtSequenceEnd: seq.EndOptions.ParkMount,
		},
		Targets: make([]ninaCaptureTarget, 0, len(seq.Targets)),
	}

	for _, t := range seq.Targets {
		c := t.Coordinates
		nt := ninaCaptureTarget{
			TargetName: t.TargetName,
			Coordinates: ninaCoordinates{
				RAHours: c.RAHours, RAMinutes: c.RAMinutes, RASeconds: c.RASeconds,
				DecDegrees: c.DecDegrees, DecMinutes: c.DecMinutes, DecSeconds: c.DecSeconds,
				NegativeDec: c.NegativeDec,
			},
			PositionAngle:                         t.PositionAngle,
			Delay:                                 t.Delay,
			Mode:                                  string(t.Mode),
			SlewToTarget:                          t.SlewToTarget,
			CenterTarget:                          t.CenterTarget,
			RotateTarget:                          t.RotateTarget,
			StartGuiding:                          t.StartGuiding,
			AutoFocusOnStart:                      t.AutoFocusOnStart,
			AutoFocusOnFilterChange:               t.AutoFocusOnFilterChange,
			AutoFocusAfterSetTime:                 t.AutoFocusAfterSetTime,
			AutoFocusSetTime:                      t.AutoFocusSetTime,
			AutoFocusAfterSetExposures:            t.AutoFocusAfterSetExposures,
			AutoFocusSetExposures:                 t.AutoFocusSetExposures,
			AutoFocusAfterTemperatureChange:       t.AutoFocusAfterTemperatureChange,
			AutoFocusAfterTemperatureChangeAmount: t.AutoFocusAfterTemperatureChangeAmount,
			AutoFocusAfterHFRChange:               t.AutoFocusAfterHFRChange,
			AutoFocusAfterHFRChangeAmount:         t.AutoFocusAfterHFRChangeAmount,
			Items:                                 make([]ninaCaptureItem, 0, len(t.Exposures)),
		}
		for _, e := range t.Exposures {
			item := ninaCaptureItem{
				Enabled:               e.Enabled,
				ExposureTime:          e.ExposureTime,
				ImageType:             string(e.ImageType),
				Binning:               ninaBinning{X: e.Binning.X, Y: e.Binning.Y},
				Gain:                  e.Gain,
				Offset:                e.Offset,
				TotalExposureCount:    e.TotalCount,
				ProgressExposureCount: e.ProgressCount,
				Dither:                e.Dither,
				DitherAmount:          e.DitherEvery,
			}
			if e.Filter != nil {
				item.FilterType = &ninaFilter{Name: e.Filter.Name, Position: e.Filter.Position}
			}
			nt.Items = append(nt.Items, item)
		}
		doc.Targets = append(doc.Targets, nt)
	}
	return doc
}
