package schema

// TerminationKeys is the recognized vocabulary for episode termination
// conditions.
var TerminationKeys = []string{
	"off_route",
	"offroad",
	"overlap",
	"run_red_light",
}

// RewardComponents is the recognized vocabulary for reward-shaping component
// names. Each component record may carry any subset of bonus, penalty, and
// weight.
var RewardComponents = []string{
	"off_route",
	"offroad",
	"overlap",
	"progression",
	"red_light",
}

// RewardFields are the numeric parameters a reward component record may
// carry. All are optional per component.
var RewardFields = []string{
	"bonus",
	"penalty",
	"weight",
}

// ObservationChannels is the recognized vocabulary for observation channel
// names.
var ObservationChannels = []string{
	"objects",
	"path_target",
	"roadgraphs",
	"traffic_lights",
}

// ChannelFeatures is the per-channel vocabulary of feature names. Feature
// lists are ordered: the order fixes the layout of the feature tensor handed
// to the network, so validation never reorders them.
var ChannelFeatures = map[string][]string{
	"objects":        {"object_types", "size", "speed", "valid", "velocity", "waypoints", "yaw"},
	"path_target":    {"waypoints"},
	"roadgraphs":     {"direction", "types", "valid", "waypoints"},
	"traffic_lights": {"state", "valid", "waypoints"},
}

// EncoderTypes is the recognized vocabulary for network encoder types.
// "none" selects a flat observation with no encoder stage.
var EncoderTypes = []string{
	"mgail",
	"mlp",
	"mtr",
	"none",
	"perceiver",
	"wayformer",
}

// OpenRoots are the top-level sections that accept ad-hoc override keys not
// present in the merged document. Experimentation adds knobs under these
// sections without a schema change.
var OpenRoots = []string{
	"algorithm",
	"network",
	"observation_config",
	"reward_config",
}

func contains(vocab []string, name string) bool {
	for _, entry := range vocab {
		if entry == name {
			return true
		}
	}
	return false
}
