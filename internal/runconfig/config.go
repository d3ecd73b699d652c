package runconfig

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// RunSettings are the training cadence and identification settings consumed
// by the training driver.
type RunSettings struct {
	TotalTimesteps     int64
	NumEnvs            int
	NumEvalEnvs        int
	NumEpisodePerEpoch int
	NumScenarioPerEval int
	ScenarioLength     int
	LogFreq            int
	SaveFreq           int
	EvalFreq           int
	Seed               int64
	NameRun            string
	NameExp            string
}

// Flags are the opaque pass-through feature toggles. Their effect belongs to
// downstream consumers; the resolver only guarantees their type.
type Flags struct {
	Debug bool
	Perf  bool
	Cache bool
}

// EnvSettings are the dataset and episode-termination settings consumed by
// the environment factory.
type EnvSettings struct {
	PathDataset     string
	PathDatasetEval string
	WaymoDataset    bool
	MaxNumObjects   int
	TerminationKeys []string
}

// RewardComponent is one reward-shaping record. Fields are optional per
// component; nil means the component does not use that parameter.
type RewardComponent struct {
	Bonus   *float64
	Penalty *float64
	Weight  *float64
}

// Channel is one observation channel: its ordered feature list plus the raw
// channel record with the channel-specific structural parameters.
type Channel struct {
	Features []string
	Record   cty.Value
}

// Observation is the observation featurization section.
type Observation struct {
	ObsPastNumSteps int
	Channels        map[string]Channel
}

// Config is the typed resolved configuration.
type Config struct {
	Run   RunSettings
	Flags Flags
	Env   EnvSettings

	RewardType string
	Reward     map[string]RewardComponent

	ObservationType string
	Observation     Observation

	// AlgorithmName and EncoderType are pre-extracted because the output
	// directory derivation depends on them.
	AlgorithmName string
	EncoderType   string

	// Algorithm and Network stay dynamic: their interior layout belongs to
	// the external training driver and network factory.
	Algorithm cty.Value
	Network   cty.Value

	resolved cty.Value
}

// Decode builds the typed configuration from a resolved tree. The tree must
// already have passed schema validation; Decode only reports structural
// surprises as internal errors.
func Decode(resolved cty.Value) (*Config, error) {
	cfg := &Config{resolved: resolved}

	var err error
	if cfg.Run, err = decodeRunSettings(resolved); err != nil {
		return nil, err
	}
	cfg.Flags = Flags{
		Debug: boolAt(resolved, "debug_flag"),
		Perf:  boolAt(resolved, "perf_flag"),
		Cache: boolAt(resolved, "cache_flag"),
	}
	cfg.Env = EnvSettings{
		PathDataset:     stringAt(resolved, "path_dataset"),
		PathDatasetEval: stringAt(resolved, "path_dataset_eval"),
		WaymoDataset:    boolAt(resolved, "waymo_dataset"),
		MaxNumObjects:   int(intAt(resolved, "max_num_objects")),
		TerminationKeys: stringsAt(resolved, "termination_keys"),
	}

	cfg.RewardType = stringAt(resolved, "reward_type")
	if cfg.Reward, err = decodeReward(resolved.GetAttr("reward_config")); err != nil {
		return nil, err
	}

	cfg.ObservationType = stringAt(resolved, "observation_type")
	if cfg.Observation, err = decodeObservation(resolved.GetAttr("observation_config")); err != nil {
		return nil, err
	}

	cfg.Algorithm = resolved.GetAttr("algorithm")
	cfg.Network = resolved.GetAttr("network")
	cfg.AlgorithmName = stringAt(cfg.Algorithm, "name")
	cfg.EncoderType = stringAt(cfg.Network.GetAttr("encoder"), "type")

	return cfg, nil
}

// Resolved returns the full resolved tree backing this configuration.
func (c *Config) Resolved() cty.Value {
	return c.resolved
}

func decodeRunSettings(resolved cty.Value) (RunSettings, error) {
	return RunSettings{
		TotalTimesteps:     intAt(resolved, "total_timesteps"),
		NumEnvs:            int(intAt(resolved, "num_envs")),
		NumEvalEnvs:        int(intAt(resolved, "num_eval_envs")),
		NumEpisodePerEpoch: int(intAt(resolved, "num_episode_per_epoch")),
		NumScenarioPerEval: int(intAt(resolved, "num_scenario_per_eval")),
		ScenarioLength:     int(intAt(resolved, "scenario_length")),
		LogFreq:            int(intAt(resolved, "log_freq")),
		SaveFreq:           int(intAt(resolved, "save_freq")),
		EvalFreq:           int(intAt(resolved, "eval_freq")),
		Seed:               intAt(resolved, "seed"),
		NameRun:            stringAt(resolved, "name_run"),
		NameExp:            stringAt(resolved, "name_exp"),
	}, nil
}

func decodeReward(section cty.Value) (map[string]RewardComponent, error) {
	components := make(map[string]RewardComponent)
	for _, name := range attrNames(section) {
		record := section.GetAttr(name)
		if !record.Type().IsObjectType() {
			return nil, fmt.Errorf("internal error: reward component %s is not a record", name)
		}
		components[name] = RewardComponent{
			Bonus:   floatPtrAt(record, "bonus"),
			Penalty: floatPtrAt(record, "penalty"),
			Weight:  floatPtrAt(record, "weight"),
		}
	}
	return components, nil
}

func decodeObservation(section cty.Value) (Observation, error) {
	obs := Observation{
		ObsPastNumSteps: int(intAt(section, "obs_past_num_steps")),
		Channels:        make(map[string]Channel),
	}
	for _, name := range attrNames(section) {
		if name == "obs_past_num_steps" {
			continue
		}
		record := section.GetAttr(name)
		if !record.Type().IsObjectType() {
			return Observation{}, fmt.Errorf("internal error: observation channel %s is not a record", name)
		}
		obs.Channels[name] = Channel{
			Features: stringsAt(record, "features"),
			Record:   record,
		}
	}
	return obs, nil
}

// hyperparameters returns the algorithm section minus its name, matching the
// shape the training driver expects to spread into its own settings.
func (c *Config) hyperparameters() cty.Value {
	attrs := make(map[string]cty.Value)
	for _, name := range attrNames(c.Algorithm) {
		if name == "name" {
			continue
		}
		attrs[name] = c.Algorithm.GetAttr(name)
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}
