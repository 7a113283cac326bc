package match3

import "fmt"

// BaseTileScore is the score for one destroyed tile at chain 1.
const BaseTileScore = 10

// ScoreDelta returns the score for destroying n tiles during chain step
// chain (1-based).
func ScoreDelta(n, chain int) int {
	if n <= 0 || chain <= 0 {
		return 0
	}
	return n * BaseTileScore * chain
}

// Thresholds are the scores required for one, two and three stars.
type Thresholds struct {
	Star1 int `yaml:"star1" json:"star1"`
	Star2 int `yaml:"star2" json:"star2"`
	Star3 int `yaml:"star3" json:"star3"`
}

// Validate requires positive, non-decreasing thresholds.
func (t Thresholds) Validate() error {
	if t.Star1 <= 0 {
		return fmt.Errorf("match3: star1 threshold must be positive, got %d", t.Star1)
	}
	if t.Star2 < t.Star1 || t.Star3 < t.Star2 {
		return fmt.Errorf("match3: star thresholds must not decrease: %d/%d/%d", t.Star1, t.Star2, t.Star3)
	}
	return nil
}

// Stars rates score against the thresholds.
func (t Thresholds) Stars(score int) int {
	switch {
	case score >= t.Star3:
		return 3
	case score >= t.Star2:
		return 2
	case score >= t.Star1:
		return 1
	default:
		return 0
	}
}

// Result is the outcome of a finished session.
type Result struct {
	Phase Phase // PhaseWin or PhaseGameOver
	Score int
	Stars int
}

// Won reports whether the session ended in a win.
func (r Result) Won() bool {
	return r.Phase == PhaseWin
}

// Evaluate applies the termination policy after a resolution pass.
// ok is false while the session continues.
func Evaluate(mode Mode, score, moves int, th Thresholds, finishScore int) (res Result, ok bool) {
	stars := th.Stars(score)
	switch mode {
	case ModeTarget:
		if finishScore > 0 && score >= finishScore {
			return Result{Phase: PhaseWin, Score: score, Stars: stars}, true
		}
		if moves <= 0 {
			return Result{Phase: PhaseGameOver, Score: score, Stars: stars}, true
		}
	default:
		if moves > 0 {
			return Result{}, false
		}
		if stars == 0 {
			return Result{Phase: PhaseGameOver, Score: score}, true
		}
		return Result{Phase: PhaseWin, Score: score, Stars: stars}, true
	}
	return Result{}, false
}
