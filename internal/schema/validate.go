package schema

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/conferr"
	"github.com/vmaxlab/expconf/internal/confpath"
)

// runCountFields are the top-level cadence and count settings, all strictly
// positive integers.
var runCountFields = []string{
	"total_timesteps",
	"num_envs",
	"num_eval_envs",
	"num_episode_per_epoch",
	"num_scenario_per_eval",
	"scenario_length",
	"log_freq",
	"save_freq",
	"eval_freq",
}

// flagFields are the opaque pass-through feature toggles. The resolver
// validates their type only; their effect belongs to downstream consumers.
var flagFields = []string{
	"debug_flag",
	"perf_flag",
	"cache_flag",
}

// Validate checks the fully resolved configuration against the experiment
// schema and returns the first violation found, or nil.
func Validate(config cty.Value) error {
	if config.IsNull() || !config.Type().IsObjectType() {
		return conferr.New(conferr.TypeMismatch, nil, "resolved configuration must be an object")
	}

	if err := validateRunSettings(config); err != nil {
		return err
	}
	if err := validateFlags(config); err != nil {
		return err
	}
	if err := validateEnvironment(config); err != nil {
		return err
	}
	if err := validateReward(config); err != nil {
		return err
	}
	if err := validateObservation(config); err != nil {
		return err
	}
	if err := validateAlgorithm(config); err != nil {
		return err
	}
	return validateNetwork(config)
}

func validateRunSettings(config cty.Value) error {
	for _, name := range runCountFields {
		path := confpath.Root(name)
		value, ok := attr(config, name)
		if !ok {
			return conferr.New(conferr.TypeMismatch, path, "required key is missing")
		}
		if err := checkPositiveInt(value, path); err != nil {
			return err
		}
	}

	seedPath := confpath.Root("seed")
	seed, ok := attr(config, "seed")
	if !ok {
		return conferr.New(conferr.TypeMismatch, seedPath, "required key is missing")
	}
	if err := checkNonNegativeInt(seed, seedPath); err != nil {
		return err
	}

	// Run identifiers may be empty; empty triggers the derived defaults.
	for _, name := range []string{"name_run", "name_exp"} {
		path := confpath.Root(name)
		value, ok := attr(config, name)
		if !ok {
			return conferr.New(conferr.TypeMismatch, path, "required key is missing")
		}
		if err := checkString(value, path); err != nil {
			return err
		}
	}
	return nil
}

func validateFlags(config cty.Value) error {
	for _, name := range flagFields {
		path := confpath.Root(name)
		value, ok := attr(config, name)
		if !ok {
			return conferr.New(conferr.TypeMismatch, path, "required key is missing")
		}
		if err := checkBool(value, path); err != nil {
			return err
		}
	}
	return nil
}

func validateEnvironment(config cty.Value) error {
	for _, name := range []string{"path_dataset", "path_dataset_eval"} {
		path := confpath.Root(name)
		value, ok := attr(config, name)
		if !ok {
			return conferr.New(conferr.TypeMismatch, path, "required key is missing")
		}
		if err := checkNonEmptyString(value, path); err != nil {
			return err
		}
	}

	waymoPath := confpath.Root("waymo_dataset")
	waymo, ok := attr(config, "waymo_dataset")
	if !ok {
		return conferr.New(conferr.TypeMismatch, waymoPath, "required key is missing")
	}
	if err := checkBool(waymo, waymoPath); err != nil {
		return err
	}

	maxObjPath := confpath.Root("max_num_objects")
	maxObj, ok := attr(config, "max_num_objects")
	if !ok {
		return conferr.New(conferr.TypeMismatch, maxObjPath, "required key is missing")
	}
	if err := checkPositiveInt(maxObj, maxObjPath); err != nil {
		return err
	}

	termPath := confpath.Root("termination_keys")
	term, ok := attr(config, "termination_keys")
	if !ok {
		return conferr.New(conferr.TypeMismatch, termPath, "required key is missing")
	}
	if err := checkStringList(term, termPath, TerminationKeys); err != nil {
		return err
	}
	return nil
}

func validateReward(config cty.Value) error {
	typePath := confpath.Root("reward_type")
	rewardType, ok := attr(config, "reward_type")
	if !ok {
		return conferr.New(conferr.TypeMismatch, typePath, "required key is missing")
	}
	if err := checkNonEmptyString(rewardType, typePath); err != nil {
		return err
	}

	sectionPath := confpath.Root("reward_config")
	section, cerr := requireSection(config, sectionPath)
	if cerr != nil {
		return cerr
	}

	for _, component := range attrNames(section) {
		componentPath := sectionPath.Child(component)
		if !contains(RewardComponents, component) {
			return conferr.New(conferr.UnknownVocabularyEntry, componentPath,
				"%q is not a recognized reward component (known: %v)", component, RewardComponents)
		}
		record, _ := attr(section, component)
		if record.IsNull() || !record.Type().IsObjectType() {
			return conferr.New(conferr.TypeMismatch, componentPath, "expected a record of numeric parameters")
		}
		// Partial records are fine: every field is optional per component.
		for _, field := range RewardFields {
			value, ok := attr(record, field)
			if !ok {
				continue
			}
			if err := checkFiniteNumber(value, componentPath.Child(field)); err != nil {
				return err
			}
		}
	}
	return nil
}

// channelScalars are the per-channel structural parameters, all strictly
// positive integers when present.
var channelScalars = map[string][]string{
	"objects":        {"num_closest_objects"},
	"path_target":    {"num_points", "points_gap"},
	"roadgraphs":     {"roadgraph_top_k", "interval", "max_meters"},
	"traffic_lights": {"num_closest_traffic_lights"},
}

// metersBoxSides are the grid extents of the roadgraph crop box.
var metersBoxSides = []string{"back", "front", "left", "right"}

func validateObservation(config cty.Value) error {
	typePath := confpath.Root("observation_type")
	obsType, ok := attr(config, "observation_type")
	if !ok {
		return conferr.New(conferr.TypeMismatch, typePath, "required key is missing")
	}
	if err := checkNonEmptyString(obsType, typePath); err != nil {
		return err
	}

	sectionPath := confpath.Root("observation_config")
	section, cerr := requireSection(config, sectionPath)
	if cerr != nil {
		return cerr
	}

	pastPath := sectionPath.Child("obs_past_num_steps")
	past, ok := attr(section, "obs_past_num_steps")
	if !ok {
		return conferr.New(conferr.TypeMismatch, pastPath, "required key is missing")
	}
	if err := checkPositiveInt(past, pastPath); err != nil {
		return err
	}

	for _, channel := range attrNames(section) {
		if channel == "obs_past_num_steps" {
			continue
		}
		channelPath := sectionPath.Child(channel)
		if !contains(ObservationChannels, channel) {
			return conferr.New(conferr.UnknownVocabularyEntry, channelPath,
				"%q is not a recognized observation channel (known: %v)", channel, ObservationChannels)
		}
		record, _ := attr(section, channel)
		if record.IsNull() || !record.Type().IsObjectType() {
			return conferr.New(conferr.TypeMismatch, channelPath, "expected a channel record")
		}
		if err := validateChannel(channel, channelPath, record); err != nil {
			return err
		}
	}
	return nil
}

func validateChannel(channel string, channelPath confpath.Path, record cty.Value) error {
	featuresPath := channelPath.Child("features")
	features, ok := attr(record, "features")
	if !ok {
		return conferr.New(conferr.TypeMismatch, featuresPath, "channel record must carry a features list")
	}
	if err := checkStringList(features, featuresPath, ChannelFeatures[channel]); err != nil {
		return err
	}

	for _, scalar := range channelScalars[channel] {
		value, ok := attr(record, scalar)
		if !ok {
			continue
		}
		if err := checkPositiveInt(value, channelPath.Child(scalar)); err != nil {
			return err
		}
	}

	if channel != "roadgraphs" {
		return nil
	}
	box, ok := attr(record, "meters_box")
	if !ok {
		return nil
	}
	boxPath := channelPath.Child("meters_box")
	if box.IsNull() || !box.Type().IsObjectType() {
		return conferr.New(conferr.TypeMismatch, boxPath, "expected an object with sides %v", metersBoxSides)
	}
	for _, side := range metersBoxSides {
		value, ok := attr(box, side)
		if !ok {
			return conferr.New(conferr.TypeMismatch, boxPath.Child(side), "required key is missing")
		}
		if err := checkPositiveInt(value, boxPath.Child(side)); err != nil {
			return err
		}
	}
	return nil
}

func validateAlgorithm(config cty.Value) error {
	sectionPath := confpath.Root("algorithm")
	section, cerr := requireSection(config, sectionPath)
	if cerr != nil {
		return cerr
	}
	namePath := sectionPath.Child("name")
	name, ok := attr(section, "name")
	if !ok {
		return conferr.New(conferr.TypeMismatch, namePath, "required key is missing")
	}
	return errOrNil(checkNonEmptyString(name, namePath))
}

func validateNetwork(config cty.Value) error {
	sectionPath := confpath.Root("network")
	section, cerr := requireSection(config, sectionPath)
	if cerr != nil {
		return cerr
	}

	encoderPath := sectionPath.Child("encoder")
	encoder, ok := attr(section, "encoder")
	if !ok {
		return conferr.New(conferr.TypeMismatch, encoderPath, "required key is missing")
	}
	if encoder.IsNull() || !encoder.Type().IsObjectType() {
		return conferr.New(conferr.TypeMismatch, encoderPath, "expected an encoder record")
	}

	typePath := encoderPath.Child("type")
	encoderType, ok := attr(encoder, "type")
	if !ok {
		return conferr.New(conferr.TypeMismatch, typePath, "required key is missing")
	}
	if err := checkNonEmptyString(encoderType, typePath); err != nil {
		return err
	}
	if !contains(EncoderTypes, encoderType.AsString()) {
		return conferr.New(conferr.UnknownVocabularyEntry, typePath,
			"%q is not a recognized encoder type (known: %v)", encoderType.AsString(), EncoderTypes)
	}
	return nil
}

// errOrNil keeps a typed-nil *conferr.Error from leaking into a non-nil
// error interface.
func errOrNil(err *conferr.Error) error {
	if err == nil {
		return nil
	}
	return err
}
