// Package charsniff guesses the character encoding of raw bytes.
//
// Detection runs in stages: a byte-order mark decides immediately when one
// is present; otherwise candidate encodings are trialed against sampled
// windows of the input, scored for decoded-text "mess", optionally scored
// for language plausibility, then ranked with byte-identical decodings
// collapsed into one match.
//
// Calls are deterministic and CPU-bound. The only state shared between
// concurrent calls is immutable reference data, so callers may run
// detections from as many goroutines as they like.
package charsniff

import (
	"context"

	"charsniff/internal/core/bomsig"
	"charsniff/internal/core/codec"
	"charsniff/internal/core/coherence"
	"charsniff/internal/core/mess"
	"charsniff/internal/core/sampler"
	perr "charsniff/internal/platform/errors"
	"charsniff/internal/platform/logger"
	"charsniff/internal/refdata"

	"github.com/google/uuid"
)

// Detect trials input with DefaultOptions
func Detect(input []byte) (*Result, error) {
	return DetectWithOptions(input, DefaultOptions())
}

// DetectWithOptions runs the full pipeline under the given options.
//
// Configuration problems surface as errors before any candidate work.
// Candidates that fail to decode or exceed the mess threshold are dropped
// silently; an input where everything drops yields an empty Result, not
// an error
func DetectWithOptions(input []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if opts.Explain {
		ctx = logger.WithDetection(ctx, uuid.NewString())
		logger.C(ctx).Debug().
			Int("bytes", len(input)).
			Int("steps", opts.Steps).
			Int("chunk_size", opts.ChunkSize).
			Float64("threshold", opts.Threshold).
			Msg("detection start")
	}

	var pack *refdata.Pack
	if !opts.DisableLanguageDetection {
		p, err := refdata.Default()
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInternal, "load reference data")
		}
		pack = p
	}

	if len(input) == 0 {
		return emptyInputResult(ctx, opts), nil
	}

	if !opts.IgnoreBOM {
		if sig, ok := bomsig.Detect(input); ok {
			return signatureResult(ctx, opts, sig, input), nil
		}
	}

	entries, unknown := codec.Select(len(input), opts.IsolateTo, opts.Exclude)
	if len(unknown) > 0 {
		logger.C(ctx).Warn().Strs("encodings", unknown).Msg("ignoring unknown encoding names")
	}

	var recorded []Match
	for _, e := range entries {
		rep, decoded := mess.Score(e, input, sampler.Spans(len(input), opts.Steps, opts.ChunkSize), opts.Threshold)
		if opts.Explain {
			logger.C(ctx).Debug().
				Str("encoding", e.Name).
				Float64("ratio", rep.Ratio).
				Int("chunks", rep.Chunks).
				Bool("accepted", rep.Accepted).
				Msg("candidate trial")
		}
		if !rep.Accepted {
			continue
		}

		m := Match{
			Encoding:  e.Name,
			MessRatio: rep.Ratio,
			Scripts:   refdata.Scripts(decoded),
			Aliases:   append([]string(nil), e.Aliases...),
			priority:  e.Priority,
			decoded:   decoded,
		}
		if pack != nil {
			m.Languages = coherence.Score(decoded, pack)
		}
		recorded = append(recorded, m)

		// flawless ascii or utf-8 is unbeatable, stop trialing
		if rep.Perfect() && (e.Kind == codec.KindASCII || e.Kind == codec.KindUTF8) {
			if opts.Explain {
				logger.C(ctx).Debug().Str("encoding", e.Name).Msg("perfect match, stopping trials")
			}
			break
		}
	}

	res := &Result{Matches: rank(recorded)}
	if opts.Explain {
		ev := logger.C(ctx).Debug().Int("matches", len(res.Matches))
		if best := res.Best(); best != nil {
			ev = ev.Str("best", best.Encoding)
		}
		ev.Msg("detection done")
	}
	return res, nil
}

// emptyInputResult implements the documented degenerate policy: empty
// input is trivially utf-8 with nothing to score
func emptyInputResult(ctx context.Context, opts Options) *Result {
	e, _ := codec.Lookup("utf-8")
	if opts.Explain {
		logger.C(ctx).Debug().Msg("empty input, trivial utf-8 match")
	}
	return &Result{Matches: []Match{{
		Encoding: e.Name,
		Aliases:  append([]string(nil), e.Aliases...),
		priority: e.Priority,
	}}}
}

// signatureResult short-circuits on a byte-order mark: the marked encoding
// is the sole match at ratio zero, candidate trials never run
func signatureResult(ctx context.Context, opts Options, sig bomsig.Signature, input []byte) *Result {
	e, _ := codec.Lookup(sig.Encoding)
	if opts.Explain {
		logger.C(ctx).Debug().
			Str("encoding", e.Name).
			Int("payload_bytes", len(sig.Strip(input))).
			Msg("signature match")
	}
	return &Result{Matches: []Match{{
		Encoding: e.Name,
		BOM:      true,
		Aliases:  append([]string(nil), e.Aliases...),
		priority: e.Priority,
	}}}
}
