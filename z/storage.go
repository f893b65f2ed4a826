package z

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strconv"

	"github.com/twitchylinux/twlconf/install"
)

const sectorSize = 512

// lsblkColumns are the columns ProbeStorage asks lsblk for.
var lsblkColumns = "NAME,PATH,TYPE,SIZE,START,FSTYPE,PARTLABEL,FSUSED"

// Disk describes a whole block device and its current partition table.
// Offsets and sizes are in bytes.
type Disk struct {
	Name, Path string
	Size       int64
	Layout     install.SystemStorageInfo

	used map[string]int64
}

// lsblkInt accepts both the numeric and the quoted form, older lsblk
// releases quote every value even with --bytes.
type lsblkInt struct {
	Valid bool
	N     int64
}

func (i *lsblkInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*i = lsblkInt{}
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("decoding lsblk number %q: %v", string(b), err)
	}
	*i = lsblkInt{Valid: true, N: n}
	return nil
}

type blockDevice struct {
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	Type      string        `json:"type"`
	Size      lsblkInt      `json:"size"`
	Start     lsblkInt      `json:"start"`
	FSType    *string       `json:"fstype"`
	PartLabel *string       `json:"partlabel"`
	FSUsed    lsblkInt      `json:"fsused"`
	Children  []blockDevice `json:"children"`
}

// ParseLsblk decodes the JSON output of `lsblk -J -b` into disks.
func ParseLsblk(data []byte) ([]Disk, error) {
	var blockDevs map[string][]blockDevice
	if err := json.Unmarshal(data, &blockDevs); err != nil {
		return nil, fmt.Errorf("decoding lsblk output: %v", err)
	}

	var out []Disk
	for _, blkDev := range blockDevs["blockdevices"] {
		if blkDev.Type != "disk" {
			continue
		}
		d := Disk{
			Name: blkDev.Name,
			Path: blkDev.Path,
			Size: blkDev.Size.N,
			used: map[string]int64{},
		}
		if d.Path == "" {
			d.Path = "/dev/" + blkDev.Name
		}

		var parts []blockDevice
		for _, c := range blkDev.Children {
			if c.Type == "part" {
				parts = append(parts, c)
			}
		}
		sort.SliceStable(parts, func(i, j int) bool {
			return parts[i].Start.N < parts[j].Start.N
		})

		d.Layout.Partitions = []install.P{}
		for _, part := range parts {
			d.Layout.Partitions = append(d.Layout.Partitions, describe(part))
			if part.FSUsed.Valid {
				d.used[partPath(part)] = part.FSUsed.N
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func partPath(b blockDevice) string {
	if b.Path != "" {
		return b.Path
	}
	return "/dev/" + b.Name
}

func describe(part blockDevice) install.P {
	none := install.ActionNone
	p := install.P{
		Name:          strPtr(partPath(part)),
		PartitionName: part.PartLabel,
		FileSystem:    part.FSType,
		Action:        &none,
	}
	if part.Size.Valid {
		p.Size = int64Ptr(part.Size.N)
	}
	if part.Start.Valid {
		p.Start = int64Ptr(part.Start.N * sectorSize)
		if part.Size.Valid {
			p.End = int64Ptr(*p.Start + part.Size.N)
		}
	}
	return p
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// ProbeStorage lists the disks attached to the system.
func ProbeStorage(ctx context.Context) ([]Disk, error) {
	stdout, err := exec.CommandContext(ctx, "lsblk", "-J", "-b", "-o", lsblkColumns).Output()
	if err != nil {
		return nil, fmt.Errorf("running lsblk: %v", err)
	}
	return ParseLsblk(stdout)
}

// Snapshot collects the partition tables of disks in order.
func Snapshot(disks []Disk) []install.SystemStorageInfo {
	out := make([]install.SystemStorageInfo, 0, len(disks))
	for _, d := range disks {
		out = append(out, d.Layout)
	}
	return out
}

// shrinkable lists filesystems that can be resized to make room.
var shrinkable = map[string]bool{
	"ext4":  true,
	"ext3":  true,
	"btrfs": true,
	"ntfs":  true,
}

// SuggestAlongside returns partitions that could be shrunk to free at least
// minFree bytes for a new installation.
func SuggestAlongside(disks []Disk, minFree int64) []install.SuggestedPartition {
	var out []install.SuggestedPartition
	for _, d := range disks {
		for _, p := range d.Layout.Partitions {
			if p.FileSystem == nil || !shrinkable[*p.FileSystem] || p.Size == nil || p.Name == nil {
				continue
			}
			used, ok := d.used[*p.Name]
			if !ok || *p.Size-used < minFree {
				continue
			}
			name := *p.Name
			if p.PartitionName != nil && *p.PartitionName != "" {
				name = *p.PartitionName
			}
			out = append(out, install.SuggestedPartition{
				Name:       name,
				Path:       *p.Name,
				FileSystem: *p.FileSystem,
				Size:       *p.Size,
				Used:       used,
			})
		}
	}
	return out
}
