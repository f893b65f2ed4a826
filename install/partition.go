package install

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMode is returned when a partition plan is requested for a
	// partitioning mode this package has no layout for.
	ErrUnknownMode = errors.New("unknown partitioning mode")
	// ErrUnknownAction classifies partition actions outside the closed set.
	ErrUnknownAction = errors.New("unknown partition action")
)

// Partitioning modes selectable in the UI.
const (
	ModeAuto    = "auto"
	ModeManual  = "manual"
	ModeReplace = "replace"
)

// Partition describes the disk layout strategy chosen for the install.
type Partition struct {
	Device string `json:"device"`
	Mode   string `json:"mode"`
	EFI    bool   `json:"efi"`
	Swap   bool   `json:"swap"`
	// SwapSize is empty when unset.
	SwapSize     string `json:"swap_size,omitempty"`
	Partitions   Value  `json:"partitions"`
	EncryptCheck bool   `json:"encrypt_check"`

	// Planning is scratch state exchanged between the UI and the
	// partitioning engine. It is never part of a saved configuration.
	Planning Planning `json:"-"`
}

// DefaultPartition returns an empty partition choice with a null table.
func DefaultPartition() Partition {
	return Partition{}
}

// Plan decodes the partition table for the manual and replace modes. The
// automatic mode has no user supplied table and yields nil.
func (p Partition) Plan() ([]P, error) {
	switch p.Mode {
	case "", ModeAuto:
		return nil, nil
	case ModeManual, ModeReplace:
		var out []P
		if err := p.Partitions.Decode(&out); err != nil {
			return nil, fmt.Errorf("decoding %s partition table: %w", p.Mode, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode)
	}
}

// SetPlan stores entries as the partition table for the current mode.
func (p *Partition) SetPlan(entries []P) error {
	switch p.Mode {
	case ModeManual, ModeReplace:
	default:
		return fmt.Errorf("%w: %q takes no partition table", ErrUnknownMode, p.Mode)
	}
	v, err := NewValue(entries)
	if err != nil {
		return err
	}
	p.Partitions = v
	return nil
}

// Planning holds the partitioning engine's working state for one session.
type Planning struct {
	InstallAlongPartitions   []SuggestedPartition
	SystemStorageInfo        []SystemStorageInfo
	SystemStorageInfoCurrent []SystemStorageInfo
}

// SuggestedPartition is an existing partition that can be shrunk to make
// room for an install alongside the current system.
type SuggestedPartition struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	FileSystem string `json:"fileSystem"`
	Size       int64  `json:"size"`
	Used       int64  `json:"used"`
}

// SystemStorageInfo is a snapshot of one device's partition table.
type SystemStorageInfo struct {
	Partitions []P `json:"partitions"`
}

// P is one row of a disk layout plan. Nil fields have not been determined yet.
// Offsets and sizes are bytes; values beyond int64 fail the decode.
type P struct {
	Name          *string          `json:"name"`
	PartitionName *string          `json:"partitionName"`
	Start         *int64           `json:"start"`
	Size          *int64           `json:"size"`
	Action        *PartitionAction `json:"action"`
	End           *int64           `json:"end"`
	FileSystem    *string          `json:"fileSytem"`
}

// PartitionAction is applied to an existing partition while planning.
type PartitionAction string

// Valid PartitionAction values.
const (
	ActionDelete PartitionAction = "Delete"
	ActionShrink PartitionAction = "Shrink"
	ActionCreate PartitionAction = "Create"
	ActionNone   PartitionAction = "None"
)

var partitionActions = []PartitionAction{ActionDelete, ActionShrink, ActionCreate, ActionNone}

// ParsePartitionAction matches s against the known actions, ignoring case.
func ParsePartitionAction(s string) (PartitionAction, error) {
	for _, a := range partitionActions {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Known reports whether a is one of the four planning actions.
func (a PartitionAction) Known() bool {
	for _, k := range partitionActions {
		if a == k {
			return true
		}
	}
	return false
}

// UnmarshalJSON implements json.Unmarshaler. Known actions are normalised to
// their canonical spelling; anything else the frontend sends is kept as is.
func (a *PartitionAction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, err := ParsePartitionAction(s); err == nil {
		*a = parsed
		return nil
	}
	*a = PartitionAction(s)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Planning state sent back by the
// UI is picked up here; it is never marshaled.
func (p *Partition) UnmarshalJSON(b []byte) error {
	type plain Partition
	aux := struct {
		*plain
		InstallAlongPartitions   *[]SuggestedPartition `json:"installAlongPartitions"`
		SystemStorageInfo        *[]SystemStorageInfo  `json:"system_storage_info"`
		SystemStorageInfoCurrent *[]SystemStorageInfo  `json:"system_storage_info_current"`
	}{plain: (*plain)(p)}
	b, err := exactKeys(b, partitionKeys)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.InstallAlongPartitions != nil {
		p.Planning.InstallAlongPartitions = *aux.InstallAlongPartitions
	}
	if aux.SystemStorageInfo != nil {
		p.Planning.SystemStorageInfo = *aux.SystemStorageInfo
	}
	if aux.SystemStorageInfoCurrent != nil {
		p.Planning.SystemStorageInfoCurrent = *aux.SystemStorageInfoCurrent
	}
	return nil
}
