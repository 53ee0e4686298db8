// Package config carries the tunables spec.md's DS2I_* environment bag
// names: top-k size, block-partitioning cost parameters, and worker
// pool sizing. It is a plain struct built by a constructor function,
// never a process singleton, so a process can open more than one index
// with different settings.
package config

import (
	"os"
	"runtime"
	"strconv"
)

// Config holds retrieval and build-time tunables.
type Config struct {
	K                      int
	BlockSize              uint64
	Eps1                   float64
	Eps2                   float64
	Eps3                   float64
	FixedCost              float64
	LogPartitionSize       uint8
	WorkerThreads          int
	ThresholdWandList      string // reserved, unused: see spec.md Design Notes 9(b)
	HeuristicGreedy        bool
	FixedCostWandPartition float64
	Eps1Wand               float64
	Eps2Wand               float64
	ReferenceSize          uint64
}

// DefaultConfig returns the PISA reference defaults.
func DefaultConfig() Config {
	return Config{
		K:                      10,
		BlockSize:              128,
		Eps1:                   0.01,
		Eps2:                   0.3,
		Eps3:                   0.01,
		FixedCost:              64,
		LogPartitionSize:       9, // 512-element blocks, matches compact.RankedParams default
		WorkerThreads:          runtime.NumCPU(),
		HeuristicGreedy:        false,
		FixedCostWandPartition: 64,
		Eps1Wand:               0.01,
		Eps2Wand:               0.3,
		ReferenceSize:          1024,
	}
}

// ConfigFromEnv starts from DefaultConfig and overrides any field whose
// DS2I_* environment variable is set and parses cleanly; unparsable or
// absent variables leave the default untouched.
func ConfigFromEnv() Config {
	c := DefaultConfig()

	if v, ok := envInt("DS2I_K"); ok {
		c.K = v
	}
	if v, ok := envUint("DS2I_BLOCK_SIZE"); ok {
		c.BlockSize = v
	}
	if v, ok := envFloat("DS2I_EPS1"); ok {
		c.Eps1 = v
	}
	if v, ok := envFloat("DS2I_EPS2"); ok {
		c.Eps2 = v
	}
	if v, ok := envFloat("DS2I_EPS3"); ok {
		c.Eps3 = v
	}
	if v, ok := envFloat("DS2I_FIXED_COST"); ok {
		c.FixedCost = v
	}
	if v, ok := envInt("DS2I_LOG_PARTITION_SIZE"); ok {
		c.LogPartitionSize = uint8(v)
	}
	if v, ok := envInt("DS2I_WORKER_THREADS"); ok {
		c.WorkerThreads = v
	}
	if v, ok := os.LookupEnv("DS2I_THRESHOLD_WAND_LIST"); ok {
		c.ThresholdWandList = v
	}
	if v, ok := envBool("DS2I_HEURISTIC_GREEDY"); ok {
		c.HeuristicGreedy = v
	}
	if v, ok := envFloat("DS2I_FIXED_COST_WAND_PARTITION"); ok {
		c.FixedCostWandPartition = v
	}
	if v, ok := envFloat("DS2I_EPS1_WAND"); ok {
		c.Eps1Wand = v
	}
	if v, ok := envFloat("DS2I_EPS2_WAND"); ok {
		c.Eps2Wand = v
	}
	if v, ok := envUint("DS2I_REFERENCE_SIZE"); ok {
		c.ReferenceSize = v
	}

	return c
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func envUint(name string) (uint64, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}

func envFloat(name string) (float64, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func envBool(name string) (bool, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	return v, err == nil
}
