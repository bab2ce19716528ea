package board

import "math/bits"

const (
	notAFile  uint64 = 0xFEFEFEFEFEFEFEFE
	notHFile  uint64 = 0x7F7F7F7F7F7F7F7F
	notHGFile uint64 = 0x3F3F3F3F3F3F3F3F
	notABFile uint64 = 0xFCFCFCFCFCFCFCFC
)

// Attack tables are shared by every Board and only read after init.
var (
	pawnAttacks   [2][64]uint64
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	bishopMasks   [64]uint64
	rookMasks     [64]uint64
	bishopTable   [64][512]uint64
	rookTable     [64][4096]uint64
)

func init() {
	initLeaperAttacks()
	initSliderAttacks(Bishop)
	initSliderAttacks(Rook)
}

// Slider selects the bishop or rook magic tables.
type Slider int

const (
	Bishop Slider = iota
	Rook
)

func (s Slider) String() string {
	if s == Bishop {
		return "bishop"
	}
	return "rook"
}

func popLSB(bb *uint64) Square {
	sq := Square(bits.TrailingZeros64(*bb))
	*bb &= *bb - 1
	return sq
}

func maskPawnAttacks(side Color, sq Square) uint64 {
	bb := sq.Bitboard()
	var attacks uint64
	if side == White {
		attacks |= (bb >> 7) & notAFile
		attacks |= (bb >> 9) & notHFile
	} else {
		attacks |= (bb << 7) & notHFile
		attacks |= (bb << 9) & notAFile
	}
	return attacks
}

func maskKnightAttacks(sq Square) uint64 {
	bb := sq.Bitboard()
	var attacks uint64
	attacks |= (bb >> 17) & notHFile
	attacks |= (bb >> 15) & notAFile
	attacks |= (bb >> 10) & notHGFile
	attacks |= (bb >> 6) & notABFile
	attacks |= (bb << 17) & notAFile
	attacks |= (bb << 15) & notHFile
	attacks |= (bb << 10) & notABFile
	attacks |= (bb << 6) & notHGFile
	return attacks
}

func maskKingAttacks(sq Square) uint64 {
	bb := sq.Bitboard()
	var attacks uint64
	attacks |= bb >> 8
	attacks |= (bb >> 9) & notHFile
	attacks |= (bb >> 7) & notAFile
	attacks |= (bb >> 1) & notHFile
	attacks |= bb << 8
	attacks |= (bb << 9) & notAFile
	attacks |= (bb << 7) & notHFile
	attacks |= (bb << 1) & notAFile
	return attacks
}

var (
	bishopDirs = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func dirsFor(s Slider) [4][2]int {
	if s == Bishop {
		return bishopDirs
	}
	return rookDirs
}

// sliderMask is the relevant occupancy mask: every ray square except the board edge.
func sliderMask(s Slider, sq Square) uint64 {
	var mask uint64
	row, file := sq.Row(), sq.File()
	for _, d := range dirsFor(s) {
		r, f := row+d[0], file+d[1]
		for {
			nr, nf := r+d[0], f+d[1]
			// stop before the edge square in the direction of travel
			if (d[0] != 0 && (nr < 0 || nr > 7)) || (d[1] != 0 && (nf < 0 || nf > 7)) {
				break
			}
			mask |= 1 << uint(r*8+f)
			r, f = nr, nf
		}
	}
	return mask
}

// sliderAttacksSlow walks each ray until it leaves the board or hits a blocker.
func sliderAttacksSlow(s Slider, sq Square, block uint64) uint64 {
	var attacks uint64
	row, file := sq.Row(), sq.File()
	for _, d := range dirsFor(s) {
		for r, f := row+d[0], file+d[1]; r >= 0 && r <= 7 && f >= 0 && f <= 7; r, f = r+d[0], f+d[1] {
			bit := uint64(1) << uint(r*8+f)
			attacks |= bit
			if bit&block != 0 {
				break
			}
		}
	}
	return attacks
}

// setOccupancy maps index onto the subset of mask bits it selects.
func setOccupancy(index int, mask uint64) uint64 {
	var occupancy uint64
	for count := 0; mask != 0; count++ {
		sq := popLSB(&mask)
		if index&(1<<count) != 0 {
			occupancy |= sq.Bitboard()
		}
	}
	return occupancy
}

func magicIndex(s Slider, sq Square, occupancy uint64) uint64 {
	if s == Bishop {
		return (occupancy * bishopMagics[sq]) >> (64 - bishopRelevantBits[sq])
	}
	return (occupancy * rookMagics[sq]) >> (64 - rookRelevantBits[sq])
}

func initLeaperAttacks() {
	for sq := A8; sq < NoSquare; sq++ {
		pawnAttacks[White][sq] = maskPawnAttacks(White, sq)
		pawnAttacks[Black][sq] = maskPawnAttacks(Black, sq)
		knightAttacks[sq] = maskKnightAttacks(sq)
		kingAttacks[sq] = maskKingAttacks(sq)
	}
}

func initSliderAttacks(s Slider) {
	for sq := A8; sq < NoSquare; sq++ {
		mask := sliderMask(s, sq)
		if s == Bishop {
			bishopMasks[sq] = mask
		} else {
			rookMasks[sq] = mask
		}

		n := 1 << bits.OnesCount64(mask)
		for index := 0; index < n; index++ {
			occupancy := setOccupancy(index, mask)
			idx := magicIndex(s, sq, occupancy)
			if s == Bishop {
				bishopTable[sq][idx] = sliderAttacksSlow(s, sq, occupancy)
			} else {
				rookTable[sq][idx] = sliderAttacksSlow(s, sq, occupancy)
			}
		}
	}
}

// BishopAttacks returns the squares a bishop on sq attacks given the board occupancy.
func BishopAttacks(sq Square, occupancy uint64) uint64 {
	return bishopTable[sq][magicIndex(Bishop, sq, occupancy&bishopMasks[sq])]
}

func RookAttacks(sq Square, occupancy uint64) uint64 {
	return rookTable[sq][magicIndex(Rook, sq, occupancy&rookMasks[sq])]
}

func QueenAttacks(sq Square, occupancy uint64) uint64 {
	return BishopAttacks(sq, occupancy) | RookAttacks(sq, occupancy)
}

func KnightAttacks(sq Square) uint64 { return knightAttacks[sq] }
func KingAttacks(sq Square) uint64   { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of side on sq attacks.
func PawnAttacks(side Color, sq Square) uint64 { return pawnAttacks[side][sq] }
