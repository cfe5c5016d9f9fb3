package zopfli

// findMinimum locates the x in [start, end) minimizing f. Small domains
// are scanned; larger ones are narrowed with 9 probe points per round,
// which finds the true minimum when f is reasonably smooth and a good
// local one otherwise.
func findMinimum(f func(int) float64, start, end int) (int, float64) {
	if end-start < 1024 {
		best := largeFloat
		result := start
		for i := start; i < end; i++ {
			v := f(i)
			if v < best {
				best = v
				result = i
			}
		}
		return result, best
	}

	const num = 9
	var p [num]int
	var vp [num]float64
	lastBest := largeFloat
	pos := start

	for {
		if end-start <= num {
			break
		}
		bestIdx := 0
		best := largeFloat
		for i := 0; i < num; i++ {
			p[i] = start + (i+1)*((end-start)/(num+1))
			vp[i] = f(p[i])
			if vp[i] < best {
				best = vp[i]
				bestIdx = i
			}
		}
		if best > lastBest {
			break
		}

		if bestIdx > 0 {
			start = p[bestIdx-1]
		}
		if bestIdx < num-1 {
			end = p[bestIdx+1]
		}

		pos = p[bestIdx]
		lastBest = best
	}
	return pos, lastBest
}
