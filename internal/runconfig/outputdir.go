package runconfig

import (
	"path"
	"strings"
	"time"
)

// runTimestampLayout is the timestamp segment appended to derived run names.
const runTimestampLayout = "02-01_15:04:05"

// OutputDir derives the run's output directory as a pure function of the
// resolved configuration and the given clock reading.
//
// An empty name_exp falls back to "runs". An empty name_run derives
// ALGORITHM_OBSERVATION_REWARD, plus the encoder type unless it is "none",
// plus the timestamp, all upper-cased, so two runs of the same experiment
// never collide.
func (c *Config) OutputDir(now time.Time) string {
	nameExp := c.Run.NameExp
	if nameExp == "" {
		nameExp = "runs"
	}

	nameRun := c.Run.NameRun
	if nameRun == "" {
		segments := []string{
			strings.ToUpper(c.AlgorithmName),
			strings.ToUpper(c.ObservationType),
			strings.ToUpper(c.RewardType),
		}
		if c.EncoderType != "none" {
			segments = append(segments, strings.ToUpper(c.EncoderType))
		}
		segments = append(segments, now.Format(runTimestampLayout))
		nameRun = strings.Join(segments, "_")
	}

	return path.Join(nameExp, nameRun)
}
