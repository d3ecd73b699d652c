package testutil

import (
	"fmt"
	"strings"
)

// BaseDocument is a schema-complete base configuration used as the starting
// point for most integration tests. Tests overwrite individual entries of
// ValidFiles to probe one behavior at a time.
const BaseDocument = `
defaults = [
  "algorithm/ppo",
  "network/mlp",
  "_self_",
]
` + baseBody

// BaseDocumentWith builds the standard base document with a custom defaults
// list and extra configuration appended after the standard keys.
func BaseDocumentWith(defaults []string, extra string) string {
	var sb strings.Builder
	sb.WriteString("\ndefaults = [\n")
	for _, entry := range defaults {
		fmt.Fprintf(&sb, "  %q,\n", entry)
	}
	sb.WriteString("]\n")
	sb.WriteString(baseBody)
	sb.WriteString(extra)
	return sb.String()
}

const baseBody = `
total_timesteps       = 1000000
num_envs              = 4
num_eval_envs         = 2
num_episode_per_epoch = 5
num_scenario_per_eval = 8
scenario_length       = 80
log_freq              = 10
save_freq             = 20
eval_freq             = 20
seed                  = 7
name_run              = "exp1"
name_exp              = "run1"

debug_flag = false
perf_flag  = false
cache_flag = true

path_dataset      = "local_womd_training"
path_dataset_eval = "local_womd_valid"
waymo_dataset     = false
max_num_objects   = 32
termination_keys  = ["offroad", "overlap", "run_red_light"]

reward_type = "linear"

reward_config {
  overlap {
    bonus   = 0.0
    penalty = -1.0
    weight  = 1.0
  }
  progression {
    bonus   = 1.0
    penalty = 0.0
    weight  = 0.2
  }
}

observation_type = "base"

observation_config {
  obs_past_num_steps = 5

  objects {
    features            = ["waypoints", "velocity", "yaw", "size", "valid"]
    num_closest_objects = 8
  }

  roadgraphs {
    features        = ["waypoints", "direction", "types", "valid"]
    roadgraph_top_k = 128
  }

  traffic_lights {
    features                   = ["waypoints", "state", "valid"]
    num_closest_traffic_lights = 16
  }

  path_target {
    features   = ["waypoints"]
    num_points = 10
    points_gap = 5
  }
}
`

// AlgorithmPPO is the default algorithm group choice for tests.
const AlgorithmPPO = `
name = "ppo"

learning_rate = 0.0003
gamma         = 0.99
`

// AlgorithmSAC is an alternative algorithm group choice for selector tests.
const AlgorithmSAC = `
name = "sac"

learning_rate = 0.001
tau           = 0.005
`

// NetworkMLP is the default network group choice for tests.
const NetworkMLP = `
encoder {
  type        = "mlp"
  layer_sizes = [64, 64]
}
`

// NetworkWayformer is an alternative network group choice for selector tests.
const NetworkWayformer = `
encoder {
  type       = "wayformer"
  num_layers = 2
}
`

// ValidFiles returns a fresh copy of the standard valid conf tree. Callers
// mutate the returned map freely.
func ValidFiles() map[string]string {
	return map[string]string{
		"conf/config.hcl":            BaseDocument,
		"conf/algorithm/ppo.hcl":     AlgorithmPPO,
		"conf/algorithm/sac.hcl":     AlgorithmSAC,
		"conf/network/mlp.hcl":       NetworkMLP,
		"conf/network/wayformer.hcl": NetworkWayformer,
	}
}
