package runconfig

import "github.com/zclconf/go-cty/cty"

// EnvView is the slice of the configuration consumed by the environment
// factory. sdc_paths_from_data inverts the dataset dialect flag: route paths
// come from the data itself except on the Waymo dialect.
type EnvView struct {
	PathDataset        string
	PathDatasetEval    string
	SDCPathsFromData   bool
	TerminationKeys    []string
	MaxNumObjects      int
	RewardType         string
	RewardConfig       cty.Value
	ObservationType    string
	ObservationConfig  cty.Value
	NumEnvs            int
	NumEpisodePerEpoch int
	NumScenarioPerEval int
	Seed               int64
}

// RunView is the slice of the configuration consumed by the training driver:
// cadence settings plus the algorithm hyperparameters (minus the algorithm
// name, which only selects the implementation) and the network configuration.
type RunView struct {
	TotalTimesteps     int64
	ScenarioLength     int
	LogFreq            int
	SaveFreq           int
	EvalFreq           int
	NumEnvs            int
	NumEpisodePerEpoch int
	NumScenarioPerEval int
	Seed               int64
	Hyperparameters    cty.Value
	Network            cty.Value
}

// EnvView splits out the environment factory's configuration.
func (c *Config) EnvView() EnvView {
	return EnvView{
		PathDataset:        c.Env.PathDataset,
		PathDatasetEval:    c.Env.PathDatasetEval,
		SDCPathsFromData:   !c.Env.WaymoDataset,
		TerminationKeys:    c.Env.TerminationKeys,
		MaxNumObjects:      c.Env.MaxNumObjects,
		RewardType:         c.RewardType,
		RewardConfig:       c.resolved.GetAttr("reward_config"),
		ObservationType:    c.ObservationType,
		ObservationConfig:  c.resolved.GetAttr("observation_config"),
		NumEnvs:            c.Run.NumEnvs,
		NumEpisodePerEpoch: c.Run.NumEpisodePerEpoch,
		NumScenarioPerEval: c.Run.NumScenarioPerEval,
		Seed:               c.Run.Seed,
	}
}

// RunView splits out the training driver's configuration.
func (c *Config) RunView() RunView {
	return RunView{
		TotalTimesteps:     c.Run.TotalTimesteps,
		ScenarioLength:     c.Run.ScenarioLength,
		LogFreq:            c.Run.LogFreq,
		SaveFreq:           c.Run.SaveFreq,
		EvalFreq:           c.Run.EvalFreq,
		NumEnvs:            c.Run.NumEnvs,
		NumEpisodePerEpoch: c.Run.NumEpisodePerEpoch,
		NumScenarioPerEval: c.Run.NumScenarioPerEval,
		Seed:               c.Run.Seed,
		Hyperparameters:    c.hyperparameters(),
		Network:            c.Network,
	}
}
