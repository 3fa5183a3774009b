package report

import (
	"errors"
	"fmt"
	"time"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/biscuits/report/resultsfb"
	"github.com/signalnine/biscuits/simulation"
)

// ErrMalformed is returned when a FlatBuffers report cannot be decoded.
var ErrMalformed = errors.New("malformed report buffer")

// EncodeFlatBuffer serializes r with the resultsfb schema.
func EncodeFlatBuffer(r Results) []byte {
	builder := flatbuffers.NewBuilder(1024)

	// Child tables and strings must be built before their parent.
	offsets := make([]flatbuffers.UOffsetT, len(r.Summaries))
	for i := range r.Summaries {
		offsets[i] = serializeSummary(builder, &r.Summaries[i])
	}

	resultsfb.ReportStartSummariesVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	summaries := builder.EndVector(len(offsets))

	runID := builder.CreateString(r.RunID)
	rules := builder.CreateString(r.Rules)

	resultsfb.ReportStart(builder)
	resultsfb.ReportAddRunId(builder, runID)
	resultsfb.ReportAddRules(builder, rules)
	resultsfb.ReportAddSeed(builder, r.Seed)
	resultsfb.ReportAddCeiling(builder, int32(r.Ceiling))
	resultsfb.ReportAddLowScoreWins(builder, r.LowScoreWins)
	resultsfb.ReportAddSummaries(builder, summaries)
	builder.Finish(resultsfb.ReportEnd(builder))

	return builder.FinishedBytes()
}

func serializeSummary(builder *flatbuffers.Builder, s *simulation.Summary) flatbuffers.UOffsetT {
	name := builder.CreateString(s.Strategy)

	resultsfb.StrategySummaryStart(builder)
	resultsfb.StrategySummaryAddStrategy(builder, name)
	resultsfb.StrategySummaryAddTrials(builder, s.Trials)
	resultsfb.StrategySummaryAddAvg(builder, s.Avg)
	resultsfb.StrategySummaryAddStddev(builder, s.StdDev)
	resultsfb.StrategySummaryAddMin(builder, int32(s.Min))
	resultsfb.StrategySummaryAddMax(builder, int32(s.Max))
	resultsfb.StrategySummaryAddGravies(builder, s.Gravies)
	resultsfb.StrategySummaryAddBusts(builder, s.Busts)
	resultsfb.StrategySummaryAddStops(builder, s.Stops)
	resultsfb.StrategySummaryAddSuspect(builder, s.Suspect)
	resultsfb.StrategySummaryAddAvgTurns(builder, s.AvgTurns)
	resultsfb.StrategySummaryAddElapsedNs(builder, int64(s.Elapsed))
	return resultsfb.StrategySummaryEnd(builder)
}

// DecodeFlatBuffer parses a buffer written by EncodeFlatBuffer.
func DecodeFlatBuffer(buf []byte) (r Results, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return Results{}, fmt.Errorf("%w: %d bytes", ErrMalformed, len(buf))
	}
	// The generated accessors index the buffer without bounds checks.
	defer func() {
		if p := recover(); p != nil {
			r, err = Results{}, fmt.Errorf("%w: %v", ErrMalformed, p)
		}
	}()

	root := resultsfb.GetRootAsReport(buf, 0)
	if n := root.SummariesLength(); n > len(buf)/flatbuffers.SizeUOffsetT {
		return Results{}, fmt.Errorf("%w: %d summaries in %d bytes", ErrMalformed, n, len(buf))
	}
	r = Results{
		RunID:        string(root.RunId()),
		Rules:        string(root.Rules()),
		Seed:         root.Seed(),
		Ceiling:      int(root.Ceiling()),
		LowScoreWins: root.LowScoreWins(),
		Summaries:    make([]simulation.Summary, root.SummariesLength()),
	}

	var fs resultsfb.StrategySummary
	for i := range r.Summaries {
		if !root.Summaries(&fs, i) {
			return Results{}, fmt.Errorf("%w: missing summary %d", ErrMalformed, i)
		}
		r.Summaries[i] = simulation.Summary{
			Strategy:     string(fs.Strategy()),
			Rules:        r.Rules,
			Trials:       fs.Trials(),
			Avg:          fs.Avg(),
			StdDev:       fs.Stddev(),
			Min:          int(fs.Min()),
			Max:          int(fs.Max()),
			Gravies:      fs.Gravies(),
			Busts:        fs.Busts(),
			Stops:        fs.Stops(),
			Suspect:      fs.Suspect(),
			AvgTurns:     fs.AvgTurns(),
			Elapsed:      time.Duration(fs.ElapsedNs()),
			Seed:         r.Seed,
			Ceiling:      r.Ceiling,
			LowScoreWins: r.LowScoreWins,
		}
	}
	if len(r.Summaries) > 0 {
		r.Trials = r.Summaries[0].Trials
	}
	return r, nil
}
