package export

import (
	"encoding/xml"

	"github.com/nightsky/seqview/internal/sequence"
)

type xmlSequence struct {
	XMLName xml.Name    `xml:"Sequence"`
	Title   string      `xml:"Title"`
	Targets []xmlTarget `xml:"Targets>Target"`
}

type xmlTarget struct {
	Name          string        `xml:"Name"`
	RA            string        `xml:"RA"`
	Dec           string        `xml:"Dec"`
	PositionAngle string        `xml:"PositionAngle"`
	SlewToTarget  *bool         `xml:"SlewToTarget,omitempty"`
	CenterTarget  *bool         `xml:"CenterTarget,omitempty"`
	StartGuiding  *bool         `xml:"StartGuiding,omitempty"`
	Exposures     *xmlExposures `xml:"Exposures,omitempty"`
}

// xmlExposures is a pointer target so targets without exposures omit the
// wrapper element.
type xmlExposures struct {
	Items []xmlExposure `xml:"Exposure"`
}

type xmlExposure struct {
	ExposureTime string `xml:"ExposureTime"`
	ImageType    string `xml:"ImageType"`
	Filter       string `xml:"Filter,omitempty"`
	Binning      string `xml:"Binning"`
	Gain         int    `xml:"Gain"`
	Offset       int    `xml:"Offset"`
	Count        int    `xml:"Count"`
	Progress     *int   `xml:"Progress,omitempty"`
}

type aptDocument struct {
	XMLName xml.Name    `xml:"AstroPhotographyTool"`
	Version string      `xml:"version,attr"`
	Objects []aptObject `xml:"ObjectList>Object"`
}

type aptObject struct {
	Name string  `xml:"Name"`
	RA   float64 `xml:"RA"`
	Dec  float64 `xml:"Dec"`
	PA   string  `xml:"PA"`
}

func writeXML(seq *sequence.Sequence, opts Options) ([]byte, error) {
	doc := xmlSequence{Title: seq.Title}
	for _, t := range seq.Targets {
		xt := xmlTarget{
			Name:          t.TargetName,
			RA:            FormatRA(t.Coordinates, opts.Coordinates, opts.DecimalPlaces),
			Dec:           FormatDec(t.Coordinates, opts.Coordinates, opts.DecimalPlaces),
			PositionAngle: fixed1(t.PositionAngle),
		}
		if opts.IncludeSettings {
			slew, center, guide := t.SlewToTarget, t.CenterTarget, t.StartGuiding
			xt.SlewToTarget, xt.CenterTarget, xt.StartGuiding = &slew, &center, &guide
		}
		if opts.IncludeExposures && len(t.Exposures) > 0 {
			xt.Exposures = &xmlExposures{}
			for _, e := range t.Exposures {
				xe := xmlExposure{
					ExposureTime: fixed1(e.ExposureTime),
					ImageType:    string(e.ImageType),
					Filter:       e.FilterName(),
					Binning:      e.Binning.String(),
					Gain:         e.Gain,
					Offset:       e.Offset,
					Count:        e.TotalCount,
				}
				if opts.IncludeProgress {
					progress := e.ProgressCount
					xe.Progress = &progress
				}
				xt.Exposures.Items = append(xt.Exposures.Items, xe)
			}
		}
		doc.Targets = append(doc.Targets, xt)
	}
	return marshalXML(doc)
}

func writeAPT(seq *sequence.Sequence) ([]byte, error) {
	doc := aptDocument{Version: "3.0"}
	for _, t := range seq.Targets {
		doc.Objects = append(doc.Objects, aptObject{
			Name: t.TargetName,
			RA:   t.Coordinates.RADecimal(),
			Dec:  t.Coordinates.DecDecimal(),
			PA:   fixed1(t.PositionAngle),
		})
	}
	return marshalXML(doc)
}

func marshalXML(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}
