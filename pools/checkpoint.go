package pools

import (
	"encoding/json"
	"fmt"
	"os"

	"poolwatch/types"
)

// Checkpoint is the persisted result of a pool sync. It lets later runs
// resume the factory scan from the last synced block instead of replaying
// full history.
type Checkpoint struct {
	LastBlock uint64       `json:"lastBlock"`
	Pools     []types.Pool `json:"pools"`
}

func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", path, err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint %s: %w", path, err)
	}
	return &cp, nil
}

func SaveCheckpoint(path string, cp *Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", path, err)
	}
	return nil
}
