package convert

import (
	"log/slog"

	"github.com/beetlebugorg/gsiconv/internal/gsi"
	"github.com/beetlebugorg/gsiconv/internal/ltop"
)

type decodedLine struct {
	line  gsi.Line
	gsi16 bool
	errs  []error
}

// decodeGSI decodes a GSI file in the map stage and reports its broken
// blocks.
func (s *session) decodeGSI(lines []string) *gsi.Decoded {
	results := mapLines(len(lines), s.opts, func(i int) decodedLine {
		line, gsi16, errs := gsi.DecodeLine(lines[i])
		return decodedLine{line: line, gsi16: gsi16, errs: errs}
	})

	d := gsi.NewDecoded(len(results))
	for _, r := range results {
		d.Add(r.line, r.gsi16, r.errs)
	}
	s.report(d.Diagnostics...)
	return d
}

func gsiToGSI(s *session, in Input) []string {
	d := s.decodeGSI(in.Lines)
	return s.gsiOutput([]record{{lines: d.NonEmpty()}})
}

// kooWordIndices picks the coordinate triple written to KOO: target
// coordinates when the file has any, station coordinates otherwise.
func kooWordIndices(found gsi.WordIndexSet) ([3]int, bool) {
	switch {
	case found.HasAny(gsi.WIEasting, gsi.WINorthing, gsi.WIHeight):
		return [3]int{gsi.WIEasting, gsi.WINorthing, gsi.WIHeight}, true
	case found.HasAny(gsi.WIStationEasting, gsi.WIStationNorthing, gsi.WIStationHeight):
		return [3]int{gsi.WIStationEasting, gsi.WIStationNorthing, gsi.WIStationHeight}, true
	}
	return [3]int{}, false
}

func gsiToKOO(s *session, in Input) []string {
	d := s.decodeGSI(in.Lines)
	wis, ok := kooWordIndices(d.Found)
	if !ok {
		s.log.Info("no coordinates in file", slog.Any("word_indices", d.Found.Sorted()))
		return nil
	}

	records := make([]record, 0, len(d.Lines))
	for i, line := range d.Lines {
		p := point{
			number:   line.PointNumber(),
			easting:  line.Print(wis[0]),
			northing: line.Print(wis[1]),
			height:   line.Print(wis[2]),
		}
		if p.easting == "" && p.northing == "" && p.height == "" {
			continue
		}
		records = append(records, record{line: i + 1, points: []point{p}})
	}
	return s.kooOutput(records)
}

// mesObservations lists the word indices written as MES observations.
var mesObservations = []struct {
	wi   int
	kind ltop.ObservationKind
}{
	{gsi.WIHorizontalAngle, ltop.KindDirection},
	{gsi.WIVerticalAngle, ltop.KindZenith},
	{gsi.WISlopeDistance, ltop.KindDistance},
}

// gsiToMES writes a station line for every record with an instrument
// height and one observation line per direction, zenith angle and slope
// distance. Measurement order is kept; MES output is never sorted.
func gsiToMES(s *session, in Input) []string {
	d := s.decodeGSI(in.Lines)

	var out []string
	emit := func(n int, o ltop.Observation) {
		line, errs := ltop.PrepareStringForMES(o)
		for _, err := range errs {
			s.report(atLine(n, err))
		}
		out = append(out, line)
	}

	for i, line := range d.Lines {
		if len(line) == 0 {
			continue
		}
		number := line.PointNumber()
		if line.Has(gsi.WIInstrumentHeight) {
			emit(i+1, ltop.Observation{
				Kind:   ltop.KindStation,
				Target: number,
				Value:  line.Print(gsi.WIInstrumentHeight),
			})
		}
		for _, obs := range mesObservations {
			if !line.Has(obs.wi) {
				continue
			}
			emit(i+1, ltop.Observation{
				Kind:         obs.kind,
				Target:       number,
				Value:        line.Print(obs.wi),
				TargetHeight: line.Print(gsi.WITargetHeight),
			})
		}
	}

	if len(out) == 0 {
		return nil
	}
	return append([]string{ltop.MESHeader}, out...)
}
