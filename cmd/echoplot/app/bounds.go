package app

import "math"

const (
	defaultMinSv = -90.0 // dB
	defaultMaxSv = -30.0 // dB

	// For 20 samples:
	// - 5% percentile  = 1 sample
	// - 95% percentile = 19th sample
	minimumSampleCount = 20
)

// SvBounds represents the calculated display boundaries in dB.
type SvBounds struct {
	Min  float64 // 5th percentile Sv in dB
	Max  float64 // 95th percentile Sv in dB
	Mean float64 // Mean Sv in dB
}

func defaultSvBounds() SvBounds {
	return SvBounds{
		Min:  defaultMinSv,
		Max:  defaultMaxSv,
		Mean: (defaultMinSv + defaultMaxSv) / 2,
	}
}

// SvHistogram maintains a histogram of Sv values with 1dB bins. NaN samples
// (no data) are ignored.
type SvHistogram struct {
	bins       map[int]uint32 // Map of bin index to count
	totalCount uint64         // Total number of samples
	minBin     int            // Cache for min bin
	maxBin     int            // Cache for max bin
}

// NewSvHistogram creates a new histogram.
func NewSvHistogram() *SvHistogram {
	return &SvHistogram{
		bins:   make(map[int]uint32),
		minBin: math.MaxInt32,
		maxBin: math.MinInt32,
	}
}

// getBinIndex converts an Sv value to a bin index.
func getBinIndex(sv float64) int {
	return int(math.Floor(sv)) // 1dB bins
}

// scaleDown scales all bin counts down by factor of 2.
func (h *SvHistogram) scaleDown() {
	h.minBin = math.MaxInt32
	h.maxBin = math.MinInt32

	for bin := range h.bins {
		h.bins[bin] /= 2
		if h.bins[bin] == 0 {
			delete(h.bins, bin)
		}

		if bin < h.minBin {
			h.minBin = bin
		}
		if bin > h.maxBin {
			h.maxBin = bin
		}
	}
	h.totalCount /= 2
}

// Update adds a new Sv reading to the histogram.
func (h *SvHistogram) Update(sv float64) {
	if math.IsNaN(sv) {
		return
	}

	bin := getBinIndex(sv)

	if h.bins[bin] == math.MaxUint32 || h.totalCount == math.MaxUint64 {
		h.scaleDown()
	}

	h.bins[bin]++
	h.totalCount++

	if bin < h.minBin {
		h.minBin = bin
	}
	if bin > h.maxBin {
		h.maxBin = bin
	}
}

// PercentileBounds returns display bounds based on the 5th and 95th
// percentiles, widened to a minimum 30dB window plus a 10% margin.
func (h *SvHistogram) PercentileBounds() SvBounds {
	if h.totalCount < minimumSampleCount {
		return defaultSvBounds()
	}

	target5th := h.totalCount * 5 / 100

	var count uint64
	var min5th, max95th int

	for bin := h.minBin; bin <= h.maxBin; bin++ {
		count += uint64(h.bins[bin])
		if count >= target5th {
			min5th = bin
			break
		}
	}

	count = 0
	for bin := h.maxBin; bin >= h.minBin; bin-- {
		count += uint64(h.bins[bin])
		if count >= target5th {
			max95th = bin
			break
		}
	}

	// Mean as weighted average of bin centers
	var sumProduct float64
	for bin := h.minBin; bin <= h.maxBin; bin++ {
		sumProduct += float64(bin) * float64(h.bins[bin])
	}
	mean := sumProduct / float64(h.totalCount)

	// Ensure minimum range of 30dB
	if max95th-min5th < 30 {
		center := (max95th + min5th) / 2
		min5th = center - 15
		max95th = center + 15
	}

	margin := (max95th - min5th) * 1 / 10 // 10% margin

	return SvBounds{
		Min:  float64(min5th - margin),
		Max:  float64(max95th + margin),
		Mean: mean,
	}
}
