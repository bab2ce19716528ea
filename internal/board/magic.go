package board

import (
	"fmt"
	"math/bits"
)

// MagicCollisionError reports two occupancies of one square that share a magic index but
// produce different attack sets.
type MagicCollisionError struct {
	Slider         Slider
	Square         Square
	OccupancyIndex int
	MagicIndex     uint64
	Existing       uint64
	Attack         uint64
}

func (e *MagicCollisionError) Error() string {
	return fmt.Sprintf("%s magic collision at %s: occupancy index %d, magic index %d",
		e.Slider, e.Square, e.OccupancyIndex, e.MagicIndex)
}

// ValidateMagics checks every square's magic number against every occupancy subset of its
// relevance mask and returns the first collision found.
func ValidateMagics(s Slider) error {
	for sq := A8; sq < NoSquare; sq++ {
		mask := sliderMask(s, sq)
		n := 1 << bits.OnesCount64(mask)

		size := 1 << rookRelevantBits[sq]
		if s == Bishop {
			size = 1 << bishopRelevantBits[sq]
		}
		used := make([]uint64, size)
		seen := make([]bool, size)

		for index := 0; index < n; index++ {
			occupancy := setOccupancy(index, mask)
			attack := sliderAttacksSlow(s, sq, occupancy)
			idx := magicIndex(s, sq, occupancy)

			switch {
			case !seen[idx]:
				used[idx] = attack
				seen[idx] = true
			case used[idx] != attack:
				return &MagicCollisionError{
					Slider:         s,
					Square:         sq,
					OccupancyIndex: index,
					MagicIndex:     idx,
					Existing:       used[idx],
					Attack:         attack,
				}
			}
		}
	}
	return nil
}
