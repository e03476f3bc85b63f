package transcode

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// MaxMembers is the number of members a 16-bit register can address.
const MaxMembers = 16

// Member is one selectable option of a bit-flag register. Its ordinal position
// in the set is its bit index.
type Member struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// BitFlagSet maps a 16-bit register onto an ordered list of members.
type BitFlagSet struct {
	Members []Member
}

// NewBitFlagSet builds members from enum values and optional titles. Missing
// or empty titles fall back to the enum value.
func NewBitFlagSet(enum []any, titles []string) BitFlagSet {
	members := make([]Member, 0, len(enum))
	for idx, value := range enum {
		key := fmt.Sprint(value)
		label := key
		if idx < len(titles) && titles[idx] != "" {
			label = titles[idx]
		}
		members = append(members, Member{Key: key, Label: label})
	}
	return BitFlagSet{Members: members}
}

// Selected returns the keys whose bit is set in raw, interpreted as a signed
// 16-bit integer. The result is never nil.
func (s BitFlagSet) Selected(raw int) []string {
	bits := uint16(int16(raw))
	selected := make([]string, 0, len(s.Members))
	for idx, member := range s.Members {
		if idx >= MaxMembers {
			break
		}
		if bits&(1<<uint(idx)) != 0 {
			selected = append(selected, member.Key)
		}
	}
	return selected
}

// Raw sets the bit of every selected member and reinterprets the result as a
// signed 16-bit integer, so bit 15 yields a negative value. Unknown keys are
// ignored.
func (s BitFlagSet) Raw(keys []string) int16 {
	if len(keys) == 0 {
		return 0
	}
	chosen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		chosen[key] = struct{}{}
	}
	var bits uint16
	for idx, member := range s.Members {
		if idx >= MaxMembers {
			break
		}
		if _, ok := chosen[member.Key]; ok {
			bits |= 1 << uint(idx)
		}
	}
	return int16(bits)
}

// Columns is the layout hint for the checkbox grid: the longest of the title
// and each label (plus four for the checkbox) divided by seven, kept within
// [2, 12].
func (s BitFlagSet) Columns(title string) int {
	longest := float64(utf8.RuneCountInString(title))
	for _, member := range s.Members {
		longest = math.Max(longest, float64(utf8.RuneCountInString(member.Label)+4))
	}
	return int(math.Min(12, math.Max(longest/7, 2)))
}
