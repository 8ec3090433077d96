// SPDX-License-Identifier: EPL-2.0

package beepsink

// ramp glides linearly to a target over a number of samples.
type ramp struct {
	cur, target, step float64
	left              int
}

func (r *ramp) set(target float64, samples int) {
	r.target = target
	if samples <= 0 {
		r.cur, r.left, r.step = target, 0, 0
		return
	}
	r.left = samples
	r.step = (target - r.cur) / float64(samples)
}

func (r *ramp) next() float64 {
	if r.left > 0 {
		r.cur += r.step
		r.left--
		if r.left == 0 {
			r.cur = r.target
		}
	}
	return r.cur
}

func (r *ramp) active() bool { return r.left > 0 }
