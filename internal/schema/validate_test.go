package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/conferr"
)

// validAttrs builds the attribute map of a schema-complete configuration.
// Tests mutate the returned map before assembling the object.
func validAttrs() map[string]cty.Value {
	return map[string]cty.Value{
		"total_timesteps":       cty.NumberIntVal(1000000),
		"num_envs":              cty.NumberIntVal(4),
		"num_eval_envs":         cty.NumberIntVal(2),
		"num_episode_per_epoch": cty.NumberIntVal(5),
		"num_scenario_per_eval": cty.NumberIntVal(8),
		"scenario_length":       cty.NumberIntVal(80),
		"log_freq":              cty.NumberIntVal(10),
		"save_freq":             cty.NumberIntVal(20),
		"eval_freq":             cty.NumberIntVal(20),
		"seed":                  cty.NumberIntVal(7),
		"name_run":              cty.StringVal("exp1"),
		"name_exp":              cty.StringVal("run1"),

		"debug_flag": cty.False,
		"perf_flag":  cty.False,
		"cache_flag": cty.True,

		"path_dataset":      cty.StringVal("local_womd_training"),
		"path_dataset_eval": cty.StringVal("local_womd_valid"),
		"waymo_dataset":     cty.False,
		"max_num_objects":   cty.NumberIntVal(32),
		"termination_keys": cty.TupleVal([]cty.Value{
			cty.StringVal("offroad"), cty.StringVal("overlap"),
		}),

		"reward_type": cty.StringVal("linear"),
		"reward_config": cty.ObjectVal(map[string]cty.Value{
			"overlap": cty.ObjectVal(map[string]cty.Value{
				"bonus":   cty.NumberFloatVal(0.0),
				"penalty": cty.NumberFloatVal(-1.0),
				"weight":  cty.NumberFloatVal(1.0),
			}),
			"progression": cty.ObjectVal(map[string]cty.Value{
				"weight": cty.NumberFloatVal(0.2),
			}),
		}),

		"observation_type": cty.StringVal("base"),
		"observation_config": cty.ObjectVal(map[string]cty.Value{
			"obs_past_num_steps": cty.NumberIntVal(5),
			"objects": cty.ObjectVal(map[string]cty.Value{
				"features": cty.TupleVal([]cty.Value{
					cty.StringVal("waypoints"), cty.StringVal("velocity"), cty.StringVal("valid"),
				}),
				"num_closest_objects": cty.NumberIntVal(8),
			}),
			"roadgraphs": cty.ObjectVal(map[string]cty.Value{
				"features": cty.TupleVal([]cty.Value{
					cty.StringVal("waypoints"), cty.StringVal("direction"),
				}),
				"roadgraph_top_k": cty.NumberIntVal(128),
				"meters_box": cty.ObjectVal(map[string]cty.Value{
					"front": cty.NumberIntVal(50),
					"back":  cty.NumberIntVal(10),
					"left":  cty.NumberIntVal(20),
					"right": cty.NumberIntVal(20),
				}),
			}),
		}),

		"algorithm": cty.ObjectVal(map[string]cty.Value{
			"name":          cty.StringVal("ppo"),
			"learning_rate": cty.NumberFloatVal(0.0003),
		}),
		"network": cty.ObjectVal(map[string]cty.Value{
			"encoder": cty.ObjectVal(map[string]cty.Value{
				"type": cty.StringVal("mlp"),
			}),
		}),
	}
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(cty.ObjectVal(validAttrs())))
}

func TestValidate_Violations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mutate   func(attrs map[string]cty.Value)
		wantKind conferr.Kind
		wantPath string
	}{
		{
			name:     "missing run count",
			mutate:   func(attrs map[string]cty.Value) { delete(attrs, "num_envs") },
			wantKind: conferr.TypeMismatch,
			wantPath: "num_envs",
		},
		{
			name:     "zero run count",
			mutate:   func(attrs map[string]cty.Value) { attrs["num_envs"] = cty.NumberIntVal(0) },
			wantKind: conferr.RangeViolation,
			wantPath: "num_envs",
		},
		{
			name:     "non-integral count",
			mutate:   func(attrs map[string]cty.Value) { attrs["scenario_length"] = cty.NumberFloatVal(80.5) },
			wantKind: conferr.TypeMismatch,
			wantPath: "scenario_length",
		},
		{
			name:     "negative seed",
			mutate:   func(attrs map[string]cty.Value) { attrs["seed"] = cty.NumberIntVal(-1) },
			wantKind: conferr.RangeViolation,
			wantPath: "seed",
		},
		{
			name:     "flag not boolean",
			mutate:   func(attrs map[string]cty.Value) { attrs["debug_flag"] = cty.StringVal("yes") },
			wantKind: conferr.TypeMismatch,
			wantPath: "debug_flag",
		},
		{
			name:     "empty dataset path",
			mutate:   func(attrs map[string]cty.Value) { attrs["path_dataset"] = cty.StringVal("") },
			wantKind: conferr.RangeViolation,
			wantPath: "path_dataset",
		},
		{
			name: "unknown termination key",
			mutate: func(attrs map[string]cty.Value) {
				attrs["termination_keys"] = cty.TupleVal([]cty.Value{
					cty.StringVal("offroad"), cty.StringVal("made_up_key"),
				})
			},
			wantKind: conferr.UnknownVocabularyEntry,
			wantPath: "termination_keys[1]",
		},
		{
			name: "unknown reward component",
			mutate: func(attrs map[string]cty.Value) {
				attrs["reward_config"] = cty.ObjectVal(map[string]cty.Value{
					"comfort": cty.ObjectVal(map[string]cty.Value{
						"weight": cty.NumberFloatVal(1.0),
					}),
				})
			},
			wantKind: conferr.UnknownVocabularyEntry,
			wantPath: "reward_config.comfort",
		},
		{
			name: "reward field not a number",
			mutate: func(attrs map[string]cty.Value) {
				attrs["reward_config"] = cty.ObjectVal(map[string]cty.Value{
					"overlap": cty.ObjectVal(map[string]cty.Value{
						"weight": cty.StringVal("heavy"),
					}),
				})
			},
			wantKind: conferr.TypeMismatch,
			wantPath: "reward_config.overlap.weight",
		},
		{
			name:     "reward section missing",
			mutate:   func(attrs map[string]cty.Value) { delete(attrs, "reward_config") },
			wantKind: conferr.TypeMismatch,
			wantPath: "reward_config",
		},
		{
			name: "unknown observation channel",
			mutate: func(attrs map[string]cty.Value) {
				attrs["observation_config"] = cty.ObjectVal(map[string]cty.Value{
					"obs_past_num_steps": cty.NumberIntVal(5),
					"lidar": cty.ObjectVal(map[string]cty.Value{
						"features": cty.TupleVal([]cty.Value{cty.StringVal("waypoints")}),
					}),
				})
			},
			wantKind: conferr.UnknownVocabularyEntry,
			wantPath: "observation_config.lidar",
		},
		{
			name: "feature outside channel vocabulary",
			mutate: func(attrs map[string]cty.Value) {
				attrs["observation_config"] = cty.ObjectVal(map[string]cty.Value{
					"obs_past_num_steps": cty.NumberIntVal(5),
					"path_target": cty.ObjectVal(map[string]cty.Value{
						"features": cty.TupleVal([]cty.Value{cty.StringVal("velocity")}),
					}),
				})
			},
			wantKind: conferr.UnknownVocabularyEntry,
			wantPath: "observation_config.path_target.features[0]",
		},
		{
			name: "channel without features list",
			mutate: func(attrs map[string]cty.Value) {
				attrs["observation_config"] = cty.ObjectVal(map[string]cty.Value{
					"obs_past_num_steps": cty.NumberIntVal(5),
					"objects": cty.ObjectVal(map[string]cty.Value{
						"num_closest_objects": cty.NumberIntVal(8),
					}),
				})
			},
			wantKind: conferr.TypeMismatch,
			wantPath: "observation_config.objects.features",
		},
		{
			name: "meters_box missing a side",
			mutate: func(attrs map[string]cty.Value) {
				attrs["observation_config"] = cty.ObjectVal(map[string]cty.Value{
					"obs_past_num_steps": cty.NumberIntVal(5),
					"roadgraphs": cty.ObjectVal(map[string]cty.Value{
						"features": cty.TupleVal([]cty.Value{cty.StringVal("waypoints")}),
						"meters_box": cty.ObjectVal(map[string]cty.Value{
							"front": cty.NumberIntVal(50),
							"back":  cty.NumberIntVal(10),
							"left":  cty.NumberIntVal(20),
						}),
					}),
				})
			},
			wantKind: conferr.TypeMismatch,
			wantPath: "observation_config.roadgraphs.meters_box.right",
		},
		{
			name: "algorithm without name",
			mutate: func(attrs map[string]cty.Value) {
				attrs["algorithm"] = cty.ObjectVal(map[string]cty.Value{
					"learning_rate": cty.NumberFloatVal(0.0003),
				})
			},
			wantKind: conferr.TypeMismatch,
			wantPath: "algorithm.name",
		},
		{
			name: "unknown encoder type",
			mutate: func(attrs map[string]cty.Value) {
				attrs["network"] = cty.ObjectVal(map[string]cty.Value{
					"encoder": cty.ObjectVal(map[string]cty.Value{
						"type": cty.StringVal("transformer"),
					}),
				})
			},
			wantKind: conferr.UnknownVocabularyEntry,
			wantPath: "network.encoder.type",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			attrs := validAttrs()
			tc.mutate(attrs)

			err := Validate(cty.ObjectVal(attrs))
			require.Error(t, err)
			assert.True(t, errors.Is(err, &conferr.Error{Kind: tc.wantKind}),
				"got %v, want kind %s", err, tc.wantKind)

			var cerr *conferr.Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.wantPath, cerr.Path.String())
		})
	}
}

func TestValidate_EmptyRunNamesAllowed(t *testing.T) {
	t.Parallel()

	attrs := validAttrs()
	attrs["name_run"] = cty.StringVal("")
	attrs["name_exp"] = cty.StringVal("")

	require.NoError(t, Validate(cty.ObjectVal(attrs)))
}

func TestValidate_PartialRewardRecords(t *testing.T) {
	t.Parallel()

	attrs := validAttrs()
	attrs["reward_config"] = cty.ObjectVal(map[string]cty.Value{
		"progression": cty.ObjectVal(map[string]cty.Value{
			"weight": cty.NumberFloatVal(0.2),
		}),
		"red_light": cty.ObjectVal(map[string]cty.Value{
			"penalty": cty.NumberFloatVal(-2.0),
		}),
	})

	require.NoError(t, Validate(cty.ObjectVal(attrs)))
}
