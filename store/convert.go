package store

import (
	"encoding/json"
	"fmt"
	"time"

	nmea "github.com/aldas/adcp-ingest"
)

func formatDate(d nmea.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func formatTime(t nmea.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// numVal/numOK split a Number into its flattened (value, present) column pair.
func numVal(n nmea.Number) float64 { return n.Value }
func numOK(n nmea.Number) bool     { return n.Present }

func rawLineModel(l nmea.RawLine) RawLineModel {
	return RawLineModel{
		ReceivedAt:    l.ReceivedAt,
		Bytes:         l.Bytes,
		Outcome:       string(l.Outcome),
		Prefix:        l.Prefix,
		ChecksumValid: l.ChecksumValid,
		ErrorMessage:  l.ErrorMessage,
	}
}

func parseErrorModel(e nmea.ParseError) ParseErrorModel {
	return ParseErrorModel{
		ReceivedAt:       e.ReceivedAt,
		Bytes:            e.Bytes,
		ErrorKind:        string(e.Kind),
		AttemptedPrefix:  e.AttemptedPrefix,
		ExpectedChecksum: e.ExpectedChecksum,
		ActualChecksum:   e.ActualChecksum,
		Detail:           e.Detail,
	}
}

// parsedModel converts one ParsedRecord into the single GORM model row it backs, returning
// it as an `any` ready for tx.Create. The switch mirrors record.go's RecordKind set; a kind
// with no case is a programmer error in the router/parser wiring, not a runtime data issue;
// it returns nil, which WriteParsed reports as an error.
func parsedModel(r nmea.ParsedRecord) any {
	switch r.Kind {
	case nmea.KindPnori:
		return pnoriModel(r.ReceivedAt, r.Pnori)
	case nmea.KindPnors:
		return pnorsModel(r.ReceivedAt, r.Pnors)
	case nmea.KindPnorc:
		return pnorcModel(r.ReceivedAt, r.Pnorc)
	case nmea.KindPnorcAveraged:
		return pnorcAveragedModel(r.ReceivedAt, r.PnorcAveraged)
	case nmea.KindPnorHeader:
		return pnorHeaderModel(r.ReceivedAt, r.PnorHeader)
	case nmea.KindPnora:
		return pnoraModel(r.ReceivedAt, r.Pnora)
	case nmea.KindPnorw:
		return pnorwModel(r.ReceivedAt, r.Pnorw)
	case nmea.KindPnorbWaveBand:
		return pnorbWaveBandModel(r.ReceivedAt, r.PnorbWaveBand)
	case nmea.KindPnorbBottomTrack:
		return pnorbBottomTrackModel(r.ReceivedAt, r.PnorbBottomTrack)
	case nmea.KindPnore:
		return pnoreModel(r.ReceivedAt, r.Pnore)
	case nmea.KindPnorf:
		return pnorfModel(r.ReceivedAt, r.Pnorf)
	case nmea.KindPnorwd:
		return pnorwdModel(r.ReceivedAt, r.Pnorwd)
	default:
		return nil
	}
}

func pnoriModel(receivedAt time.Time, p *nmea.Pnori) *PnoriRecordModel {
	if p == nil {
		return nil
	}
	return &PnoriRecordModel{
		ReceivedAt:      receivedAt,
		Variant:         string(p.Variant),
		InstrumentType:  p.InstrumentType,
		HeadID:          p.HeadID,
		Beams:           p.Beams,
		Cells:           p.Cells,
		Blanking:        p.Blanking,
		CellSize:        p.CellSize,
		CoordSystemCode: p.CoordSystemCode,
		CoordSystem:     string(p.CoordSystem),
	}
}

func pnorsModel(receivedAt time.Time, p *nmea.Pnors) *PnorsRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorsRecordModel{
		ReceivedAt: receivedAt,
		Variant:    string(p.Variant),
		Date:       formatDate(p.Date),
		Time:       formatTime(p.Time),
		ErrorCode:  p.ErrorCode,
		Status:     p.Status,
	}
	m.Battery, m.BatteryValid = numVal(p.Battery), numOK(p.Battery)
	m.SoundSpeed, m.SoundSpeedValid = numVal(p.SoundSpeed), numOK(p.SoundSpeed)
	m.Heading, m.HeadingValid = numVal(p.Heading), numOK(p.Heading)
	m.HeadingSD, m.HeadingSDValid = numVal(p.HeadingSD), numOK(p.HeadingSD)
	m.Pitch, m.PitchValid = numVal(p.Pitch), numOK(p.Pitch)
	m.PitchSD, m.PitchSDValid = numVal(p.PitchSD), numOK(p.PitchSD)
	m.Roll, m.RollValid = numVal(p.Roll), numOK(p.Roll)
	m.RollSD, m.RollSDValid = numVal(p.RollSD), numOK(p.RollSD)
	m.Pressure, m.PressureValid = numVal(p.Pressure), numOK(p.Pressure)
	m.PressureSD, m.PressureSDValid = numVal(p.PressureSD), numOK(p.PressureSD)
	m.Temperature, m.TemperatureValid = numVal(p.Temperature), numOK(p.Temperature)
	m.AnalogInput1, m.AnalogInput1Valid = numVal(p.AnalogInput1), numOK(p.AnalogInput1)
	m.AnalogInput2, m.AnalogInput2Valid = numVal(p.AnalogInput2), numOK(p.AnalogInput2)
	return m
}

func pnorcModel(receivedAt time.Time, p *nmea.Pnorc) *PnorcRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorcRecordModel{
		ReceivedAt:       receivedAt,
		Variant:          string(p.Variant),
		Date:             formatDate(p.Date),
		Time:             formatTime(p.Time),
		CellIndex:        p.CellIndex,
		CellIndexWarning: p.CellIndexWarning,
	}
	m.Velocity1, m.Velocity1Valid = numVal(p.Velocity1), numOK(p.Velocity1)
	m.Velocity2, m.Velocity2Valid = numVal(p.Velocity2), numOK(p.Velocity2)
	m.Velocity3, m.Velocity3Valid = numVal(p.Velocity3), numOK(p.Velocity3)
	m.Velocity4, m.Velocity4Valid = numVal(p.Velocity4), numOK(p.Velocity4)
	m.Amplitude1, m.Amplitude1Valid = numVal(p.Amplitude1), numOK(p.Amplitude1)
	m.Amplitude2, m.Amplitude2Valid = numVal(p.Amplitude2), numOK(p.Amplitude2)
	m.Amplitude3, m.Amplitude3Valid = numVal(p.Amplitude3), numOK(p.Amplitude3)
	m.Amplitude4, m.Amplitude4Valid = numVal(p.Amplitude4), numOK(p.Amplitude4)
	m.Corr1, m.Corr1Valid = numVal(p.Corr1), numOK(p.Corr1)
	m.Corr2, m.Corr2Valid = numVal(p.Corr2), numOK(p.Corr2)
	m.Corr3, m.Corr3Valid = numVal(p.Corr3), numOK(p.Corr3)
	m.Corr4, m.Corr4Valid = numVal(p.Corr4), numOK(p.Corr4)
	return m
}

func pnorcAveragedModel(receivedAt time.Time, p *nmea.PnorcAveraged) *PnorcAveragedRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorcAveragedRecordModel{
		ReceivedAt:       receivedAt,
		Variant:          string(p.Variant),
		Date:             formatDate(p.Date),
		Time:             formatTime(p.Time),
		CellIndex:        p.CellIndex,
		CellIndexWarning: p.CellIndexWarning,
	}
	m.Speed, m.SpeedValid = numVal(p.Speed), numOK(p.Speed)
	m.Direction, m.DirectionValid = numVal(p.Direction), numOK(p.Direction)
	m.Amplitude, m.AmplitudeValid = numVal(p.Amplitude), numOK(p.Amplitude)
	return m
}

func pnorHeaderModel(receivedAt time.Time, p *nmea.PnorHeader) *PnorHeaderRecordModel {
	if p == nil {
		return nil
	}
	return &PnorHeaderRecordModel{
		ReceivedAt: receivedAt,
		Variant:    string(p.Variant),
		Date:       formatDate(p.Date),
		Time:       formatTime(p.Time),
		ErrorCode:  p.ErrorCode,
		Status:     p.Status,
	}
}

func pnoraModel(receivedAt time.Time, p *nmea.Pnora) *PnoraRecordModel {
	if p == nil {
		return nil
	}
	m := &PnoraRecordModel{
		ReceivedAt: receivedAt,
		Date:       formatDate(p.Date),
		Time:       formatTime(p.Time),
		Status:     p.Status,
		FormatCode: p.FormatCode,
	}
	m.Pressure, m.PressureValid = numVal(p.Pressure), numOK(p.Pressure)
	m.Distance, m.DistanceValid = numVal(p.Distance), numOK(p.Distance)
	m.Quality, m.QualityValid = numVal(p.Quality), numOK(p.Quality)
	m.Pitch, m.PitchValid = numVal(p.Pitch), numOK(p.Pitch)
	m.Roll, m.RollValid = numVal(p.Roll), numOK(p.Roll)
	return m
}

func pnorwModel(receivedAt time.Time, p *nmea.Pnorw) *PnorwRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorwRecordModel{ReceivedAt: receivedAt, Date: formatDate(p.Date), Time: formatTime(p.Time), ErrorCode: p.ErrorCode}
	m.Hm0, m.Hm0Valid = numVal(p.Hm0), numOK(p.Hm0)
	m.H3, m.H3Valid = numVal(p.H3), numOK(p.H3)
	m.H10, m.H10Valid = numVal(p.H10), numOK(p.H10)
	m.Hmax, m.HmaxValid = numVal(p.Hmax), numOK(p.Hmax)
	m.Tm02, m.Tm02Valid = numVal(p.Tm02), numOK(p.Tm02)
	m.Tp, m.TpValid = numVal(p.Tp), numOK(p.Tp)
	m.Tz, m.TzValid = numVal(p.Tz), numOK(p.Tz)
	m.PeakDirection, m.PeakDirectionValid = numVal(p.PeakDirection), numOK(p.PeakDirection)
	m.Spread, m.SpreadValid = numVal(p.Spread), numOK(p.Spread)
	m.MeanDirection, m.MeanDirectionValid = numVal(p.MeanDirection), numOK(p.MeanDirection)
	m.UnidirectivityIndex, m.UnidirectivityIndexValid = numVal(p.UnidirectivityIndex), numOK(p.UnidirectivityIndex)
	m.MeanPressure, m.MeanPressureValid = numVal(p.MeanPressure), numOK(p.MeanPressure)
	m.NoDetectCount, m.NoDetectCountValid = numVal(p.NoDetectCount), numOK(p.NoDetectCount)
	m.BadDetectCount, m.BadDetectCountValid = numVal(p.BadDetectCount), numOK(p.BadDetectCount)
	m.NearSurfaceSpeed, m.NearSurfaceSpeedValid = numVal(p.NearSurfaceSpeed), numOK(p.NearSurfaceSpeed)
	m.NearSurfaceDirection, m.NearSurfaceDirectionValid = numVal(p.NearSurfaceDirection), numOK(p.NearSurfaceDirection)
	return m
}

func pnorbWaveBandModel(receivedAt time.Time, p *nmea.PnorbWaveBand) *PnorbWaveBandRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorbWaveBandRecordModel{ReceivedAt: receivedAt, ErrorCode: p.ErrorCode}
	m.FreqLow, m.FreqLowValid = numVal(p.FreqLow), numOK(p.FreqLow)
	m.FreqHigh, m.FreqHighValid = numVal(p.FreqHigh), numOK(p.FreqHigh)
	m.Hm0, m.Hm0Valid = numVal(p.Hm0), numOK(p.Hm0)
	m.H3, m.H3Valid = numVal(p.H3), numOK(p.H3)
	m.Tm02, m.Tm02Valid = numVal(p.Tm02), numOK(p.Tm02)
	m.Tp, m.TpValid = numVal(p.Tp), numOK(p.Tp)
	m.DirTp, m.DirTpValid = numVal(p.DirTp), numOK(p.DirTp)
	m.Spread, m.SpreadValid = numVal(p.Spread), numOK(p.Spread)
	m.MainDirection, m.MainDirectionValid = numVal(p.MainDirection), numOK(p.MainDirection)
	m.MeanPressure, m.MeanPressureValid = numVal(p.MeanPressure), numOK(p.MeanPressure)
	m.Quality, m.QualityValid = numVal(p.Quality), numOK(p.Quality)
	return m
}

func pnorbBottomTrackModel(receivedAt time.Time, p *nmea.PnorbBottomTrack) *PnorbBottomTrackRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorbBottomTrackRecordModel{ReceivedAt: receivedAt, Status: p.Status}
	m.Range1, m.Range1Valid = numVal(p.Range1), numOK(p.Range1)
	m.Range2, m.Range2Valid = numVal(p.Range2), numOK(p.Range2)
	m.Range3, m.Range3Valid = numVal(p.Range3), numOK(p.Range3)
	m.Range4, m.Range4Valid = numVal(p.Range4), numOK(p.Range4)
	m.Quality, m.QualityValid = numVal(p.Quality), numOK(p.Quality)
	return m
}

func pnoreModel(receivedAt time.Time, p *nmea.Pnore) *PnoreRecordModel {
	if p == nil {
		return nil
	}
	m := &PnoreRecordModel{ReceivedAt: receivedAt, Date: formatDate(p.Date), Time: formatTime(p.Time), CellIndex: p.CellIndex}
	m.Beam1, m.Beam1Valid = numVal(p.Beam1), numOK(p.Beam1)
	m.Beam2, m.Beam2Valid = numVal(p.Beam2), numOK(p.Beam2)
	m.Beam3, m.Beam3Valid = numVal(p.Beam3), numOK(p.Beam3)
	m.Beam4, m.Beam4Valid = numVal(p.Beam4), numOK(p.Beam4)
	return m
}

func pnorfModel(receivedAt time.Time, p *nmea.Pnorf) *PnorfRecordModel {
	if p == nil {
		return nil
	}
	coeffJSON, _ := json.Marshal(p.Coefficients)
	m := &PnorfRecordModel{
		ReceivedAt:       receivedAt,
		Flag:             p.Flag,
		Date:             formatDate(p.Date),
		Time:             formatTime(p.Time),
		Basis:            p.Basis,
		N:                p.N,
		CoefficientsJSON: string(coeffJSON),
	}
	m.StartFreq, m.StartFreqValid = numVal(p.StartFreq), numOK(p.StartFreq)
	m.StepFreq, m.StepFreqValid = numVal(p.StepFreq), numOK(p.StepFreq)
	return m
}

func pnorwdModel(receivedAt time.Time, p *nmea.Pnorwd) *PnorwdRecordModel {
	if p == nil {
		return nil
	}
	m := &PnorwdRecordModel{ReceivedAt: receivedAt}
	m.FreqBin, m.FreqBinValid = numVal(p.FreqBin), numOK(p.FreqBin)
	m.Direction, m.DirectionValid = numVal(p.Direction), numOK(p.Direction)
	m.Spread, m.SpreadValid = numVal(p.Spread), numOK(p.Spread)
	m.Energy, m.EnergyValid = numVal(p.Energy), numOK(p.Energy)
	return m
}
