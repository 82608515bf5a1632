package pattern

import (
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern/detectors"
)

// RegisterDefaults populates reg with the seeded catalog (spec §4.5
// minimum set), intended to run once at process startup.
func RegisterDefaults(reg *Registry) {
	reg.Register(detectors.QueensideMajorityAttack{})
	reg.Register(detectors.MinorityAttack{})
	reg.Register(detectors.GreekGiftSacrifice{})
	reg.Register(detectors.LucenaPosition{})
	reg.Register(detectors.PhilidorPosition{})
}

// SeedCatalog returns the persistence-layer catalog rows for the default
// detector set, keyed by each detector's own pattern id so
// detector_module always matches the registered implementation.
func SeedCatalog() []chessmodel.PatternCatalogEntry {
	entries := []struct {
		id, name string
		typ      chessmodel.PatternType
		desc     string
		criteria string
	}{
		{"queenside_majority_attack", "Queenside Majority Attack", chessmodel.PatternStrategic,
			"A queenside pawn majority is pushed to create a passed pawn or open file.",
			"Initiating color holds more queenside pawns and captures with a queenside pawn."},
		{"minority_attack", "Minority Attack", chessmodel.PatternStrategic,
			"A queenside pawn minority advances against a majority to fix a long-term weakness.",
			"Initiating color holds fewer queenside pawns yet advances or captures on that wing."},
		{"greek_gift_sacrifice", "Greek Gift Sacrifice", chessmodel.PatternTactical,
			"A bishop sacrifices itself on h7 or h2 to open the king's shelter.",
			"A bishop captures on h7 (against Black) or h2 (against White)."},
		{"lucena_position", "Lucena Position", chessmodel.PatternEndgame,
			"A K+R+P vs K+R ending with the pawn on the seventh rank, a textbook win.",
			"Material is K+R+P vs K+R and the stronger side's pawn reaches the seventh rank."},
		{"philidor_position", "Philidor Position", chessmodel.PatternEndgame,
			"A K+R+P vs K+R ending defended from the third rank, a textbook draw.",
			"Material is K+R+P vs K+R and the stronger side's pawn has not passed the fifth rank."},
	}

	out := make([]chessmodel.PatternCatalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, chessmodel.PatternCatalogEntry{
			PatternID:       e.id,
			PatternName:     e.name,
			PatternType:     e.typ,
			Description:     chessmodel.Some(e.desc),
			DetectorModule:  e.id,
			SuccessCriteria: chessmodel.Some(e.criteria),
			Enabled:         true,
		})
	}
	return out
}
