package session

import "time"

// Animator is the presentation layer's wheel. Rotate returns once the wheel has stopped on step.Sector.
type Animator interface {
	Rotate(step Step)
}

// TimedAnimator stands in for a real wheel by waiting the configured spin duration.
type TimedAnimator struct {
	Duration time.Duration
}

func (a TimedAnimator) Rotate(Step) {
	if a.Duration > 0 {
		time.Sleep(a.Duration)
	}
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func(Step)

func (f AnimatorFunc) Rotate(s Step) { f(s) }

// Play runs a whole round: main spin, then every free spin it triggers, each animated before the next
// draw. It cannot be cancelled once started.
func (m *Machine) Play(a Animator) (*Round, error) {
	step, err := m.Spin()
	if err != nil {
		return nil, err
	}
	for {
		if a != nil {
			a.Rotate(step)
		}
		next, done, err := m.Finish()
		if err != nil {
			return nil, err
		}
		if done != nil {
			return done, nil
		}
		step = *next
	}
}
