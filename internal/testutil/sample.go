package testutil

// SampleInput is the canonical six-record puzzle input.
const SampleInput = `???.### 1,1,3
.??..??...?##. 1,1,3
?#?#?#?#?#?#?#? 1,3,1,6
????.#...#... 4,1,1
????.######..#####. 1,6,5
?###???????? 3,2,1
`

// SampleCounts are the per-line arrangement counts of SampleInput.
var SampleCounts = []uint64{1, 4, 1, 1, 4, 10}

// SampleUnfoldedCounts are the per-line counts of SampleInput unfolded
// five times.
var SampleUnfoldedCounts = []uint64{1, 16384, 1, 16, 2500, 506250}

const (
	// SampleTotal is the sum of SampleCounts.
	SampleTotal uint64 = 21
	// SampleUnfoldedTotal is the sum of SampleUnfoldedCounts.
	SampleUnfoldedTotal uint64 = 525152
)
