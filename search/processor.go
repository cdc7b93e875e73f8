package search

import (
	"log/slog"
	"slices"
)

// MergeOptions selects the splice policy for Merge.
type MergeOptions struct {
	// ForQSB applies the home search box policy: exactly QSBWebCount web
	// results, followed by the divider.
	ForQSB bool

	// QSBWebCount is the number of web results spliced in for the QSB.
	// Values outside [0, len(web)] are clamped.
	QSBWebCount int

	// AllAppsWebCount is the number of web results spliced in on the all apps
	// surface when there is on-device content besides fallback suggestions.
	// A rich answer at the top of the web list gets one extra slot.
	AllAppsWebCount int

	// UseFallbackAppSearch treats the device results as app-only suggestions:
	// web results go after all of them and the first one is marked for quick launch.
	UseFallbackAppSearch bool
}

// MergeStats describes the decisions a single merge made.
type MergeStats struct {
	DeviceCount                int
	WebCount                   int
	InsertionIndex             int
	PlaceholderIndex           int
	RichAnswerPlaceholderIndex int
	FallbackCount              int
	SectionHeader              bool
	OutputCount                int
}

// Observer receives the stats of every merge run by a Processor.
type Observer interface {
	ObserveMerge(stats MergeStats)
}

// Processor interleaves web and device results.
// It holds no per-merge state and is safe for concurrent use with independent inputs.
type Processor struct {
	logger   *slog.Logger
	observer Observer
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for merge diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver registers an observer that receives per-merge stats.
func WithObserver(o Observer) Option {
	return func(p *Processor) {
		p.observer = o
	}
}

// NewProcessor creates a Processor.
func NewProcessor(optFns ...Option) *Processor {
	p := &Processor{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(p)
		}
	}
	return p
}

var defaultProcessor = NewProcessor()

// Merge interleaves web into device with the default Processor.
func Merge(web, device []*Target, opts MergeOptions) []*Target {
	return defaultProcessor.Merge(web, device, opts)
}

// Merge splices web results into the device results and returns the list
// the UI renders.
//
// Placeholder records in device mark where web content goes and never
// appear in the output. The device slice itself is left untouched, but
// web[0] is tagged as the proxy web item and, with fallback app search,
// device[0] is tagged for quick launch.
func (p *Processor) Merge(web, device []*Target, opts MergeOptions) []*Target {
	// Nil records carry nothing to render.
	isNil := func(t *Target) bool { return t == nil }
	web = slices.DeleteFunc(slices.Clone(web), isNil)
	device = slices.DeleteFunc(slices.Clone(device), isNil)
	if len(web) == 0 && len(device) == 0 {
		return []*Target{}
	}

	// Web results go right after the last app row or app block unless a
	// placeholder says otherwise.
	insertionIdx := 0
	placeholderIdx := -1
	richAnswerPlaceholderIdx := -1
	hasTextHeader := false

	if len(web) > 0 {
		web[0].PutExtra(ExtraProxyWebItem, true)
	}

	for i := 0; i < len(device); i++ {
		if device[i].LayoutType == LayoutTextHeaderRow {
			hasTextHeader = true
		}
		// The rich answer placeholder is handled first so that a generic
		// placeholder shifted into i is still seen below.
		if device[i].LayoutType == LayoutRichAnswerPlaceholder {
			richAnswerPlaceholderIdx = i
			device = removePlaceholder(device, i)
		}
		if i < len(device) && device[i].LayoutType == LayoutPlaceholder {
			insertionIdx, placeholderIdx = i, i
			device = removePlaceholder(device, i)
		}
	}

	if placeholderIdx < 0 && len(device) > 0 && device[0].ResultType == ResultApplication {
		insertionIdx = appBlockEnd(device)
	}

	if opts.UseFallbackAppSearch && len(device) > 0 {
		device[0].PutExtra(ExtraQuickLaunch, true)
		device = append(device, NewEmptyDivider())
		insertionIdx = len(device)
	}

	fallbackCount := FallbackAndDividerCount(device)

	// On-device content other than apps, dividers and fallback gets a
	// section header instead of a plain divider.
	divider := NewEmptyDivider()
	if !hasTextHeader && !opts.UseFallbackAppSearch && len(device)-insertionIdx > fallbackCount {
		divider = NewSectionHeader()
	}

	out := make([]*Target, 0, len(device)+len(web)+3)
	out = append(out, device...)
	insertionIdx = min(insertionIdx, len(out))

	allAppsWebCount := max(opts.AllAppsWebCount, 0)
	if len(web) > 0 && IsRichAnswer(web[0]) {
		allAppsWebCount++
	}
	nonFallbackExists := len(device) > fallbackCount

	switch {
	case opts.ForQSB:
		n := min(max(opts.QSBWebCount, 0), len(web))
		out = slices.Insert(out, insertionIdx, web[:n]...)
		out = slices.Insert(out, insertionIdx+n, divider)
	case nonFallbackExists && len(web) >= allAppsWebCount:
		out = slices.Insert(out, insertionIdx, web[:allAppsWebCount]...)
		out = slices.Insert(out, insertionIdx+allAppsWebCount, divider)
	default:
		if len(device) > 0 && len(web) > 0 {
			// Divider before the fallback block.
			out = slices.Insert(out, insertionIdx, NewEmptyDivider())
		}
		out = slices.Insert(out, insertionIdx, web...)
	}

	if len(web) > 1 && IsAnswer(web[0]) {
		top := web[0]
		if richAnswerPlaceholderIdx == -1 || !IsRichAnswer(top) {
			// Keep the answer on top of the web block with a divider below it.
			out = slices.Insert(out, min(insertionIdx+1, len(out)), NewEmptyDivider())
		} else {
			// Move the rich answer to the slot its placeholder held.
			if i := slices.Index(out, top); i >= 0 {
				out = slices.Delete(out, i, i+1)
			}
			pos := min(richAnswerPlaceholderIdx, len(out))
			out = slices.Insert(out, pos, top, NewEmptyDivider())
		}
	}

	stats := MergeStats{
		DeviceCount:                len(device),
		WebCount:                   len(web),
		InsertionIndex:             insertionIdx,
		PlaceholderIndex:           placeholderIdx,
		RichAnswerPlaceholderIndex: richAnswerPlaceholderIdx,
		FallbackCount:              fallbackCount,
		SectionHeader:              IsSectionHeader(divider),
		OutputCount:                len(out),
	}
	p.logger.Debug("merged search targets",
		"device", stats.DeviceCount,
		"web", stats.WebCount,
		"insertion_index", stats.InsertionIndex,
		"fallback", stats.FallbackCount,
		"section_header", stats.SectionHeader,
		"qsb", opts.ForQSB,
	)
	if p.observer != nil {
		p.observer.ObserveMerge(stats)
	}

	return out
}

// appBlockEnd returns the index one past the leading block of app rows.
// Records chained to the last app (by parent id or decorator group) belong
// to the block, dividers are skipped, and anything else ends it.
func appBlockEnd(device []*Target) int {
	end := 0
	lastAppID := ""
	for i, t := range device {
		if lastAppID != "" && (t.ParentID == lastAppID || DecoratorID(t) == lastAppID) {
			end = i + 1
			continue
		}
		if t.LayoutType == LayoutEmptyDivider {
			continue
		}
		if t.ResultType == ResultApplication && t.LayoutType.isAppIcon() {
			lastAppID = t.ID
			end = i + 1
			continue
		}
		return i
	}
	return end
}

// FallbackAndDividerCount counts fallback suggestions (ResultSuggest) and
// dividers (ResultNoFulfillment) in targets.
func FallbackAndDividerCount(targets []*Target) int {
	n := 0
	for _, t := range targets {
		if t != nil && (t.ResultType == ResultSuggest || t.ResultType == ResultNoFulfillment) {
			n++
		}
	}
	return n
}

// removePlaceholder removes the placeholder at idx together with a divider
// directly following it.
func removePlaceholder(targets []*Target, idx int) []*Target {
	targets = slices.Delete(targets, idx, idx+1)
	if idx < len(targets) && targets[idx].LayoutType == LayoutEmptyDivider {
		targets = slices.Delete(targets, idx, idx+1)
	}
	return targets
}
